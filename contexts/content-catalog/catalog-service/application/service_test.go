package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"ratehub/contexts/content-catalog/catalog-service/adapters/memory"
	domainerrors "ratehub/contexts/content-catalog/catalog-service/domain/errors"
	"ratehub/contexts/content-catalog/catalog-service/ports"
	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	authzerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
)

func admin() authzentities.Requester {
	return authzentities.Requester{AccountID: "admin-1", Username: "root", Role: authzentities.RoleAdmin, Authenticated: true}
}

func plainUser() authzentities.Requester {
	return authzentities.Requester{AccountID: "u1", Username: "reader", Role: authzentities.RoleUser, Authenticated: true}
}

func newService(store *memory.Store, ratings ports.RatingSource) Service {
	return Service{Repo: store, Ratings: ratings, Clock: store, IDGen: store}
}

func TestAdminManagesCategories(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, nil)

	created, err := service.CreateCategory(context.Background(), admin(), ports.Category{Name: "Films", Slug: "films"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Slug != "films" {
		t.Fatalf("unexpected slug %q", created.Slug)
	}

	_, err = service.CreateCategory(context.Background(), admin(), ports.Category{Name: "Other films", Slug: "films"})
	if !errors.Is(err, domainerrors.ErrSlugTaken) {
		t.Fatalf("expected slug conflict, got %v", err)
	}

	categories, err := service.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("expected one category, got %d", len(categories))
	}
}

func TestNonAdminCannotWriteCatalog(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, nil)

	_, err := service.CreateCategory(context.Background(), plainUser(), ports.Category{Name: "Films", Slug: "films"})
	if !errors.Is(err, authzerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	_, err = service.CreateGenre(context.Background(), authzentities.Requester{}, ports.Genre{Name: "Drama", Slug: "drama"})
	if !errors.Is(err, authzerrors.ErrAuthenticationRequired) {
		t.Fatalf("expected authentication required, got %v", err)
	}
}

func TestSlugValidation(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, nil)

	for _, slug := range []string{"bad slug", "йцук", "no/slash", ""} {
		_, err := service.CreateGenre(context.Background(), admin(), ports.Genre{Name: "Drama", Slug: slug})
		if !errors.Is(err, domainerrors.ErrInvalidSlug) {
			t.Fatalf("slug %q: expected invalid slug error, got %v", slug, err)
		}
	}
	if _, err := service.CreateGenre(context.Background(), admin(), ports.Genre{Name: "Drama", Slug: "drama-2024_a"}); err != nil {
		t.Fatalf("valid slug rejected: %v", err)
	}
}

func TestTitleYearCannotBeInFuture(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, nil)

	future := time.Now().UTC().Year() + 1
	_, err := service.CreateTitle(context.Background(), admin(), ports.NewTitle{Name: "Tomorrow", Year: future})
	if !errors.Is(err, domainerrors.ErrInvalidYear) {
		t.Fatalf("expected invalid year, got %v", err)
	}

	current := time.Now().UTC().Year()
	if _, err := service.CreateTitle(context.Background(), admin(), ports.NewTitle{Name: "Today", Year: current}); err != nil {
		t.Fatalf("current year rejected: %v", err)
	}
}

func TestTitleReferencesResolve(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, nil)

	_, err := service.CreateTitle(context.Background(), admin(), ports.NewTitle{Name: "Orphan", Year: 2000, CategorySlug: "ghost"})
	if !errors.Is(err, domainerrors.ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got %v", err)
	}

	if _, err := service.CreateCategory(context.Background(), admin(), ports.Category{Name: "Films", Slug: "films"}); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if _, err := service.CreateGenre(context.Background(), admin(), ports.Genre{Name: "Drama", Slug: "drama"}); err != nil {
		t.Fatalf("create genre failed: %v", err)
	}

	title, err := service.CreateTitle(context.Background(), admin(), ports.NewTitle{
		Name:         "Anchored",
		Year:         2000,
		CategorySlug: "films",
		GenreSlugs:   []string{"drama"},
	})
	if err != nil {
		t.Fatalf("create title failed: %v", err)
	}
	if title.Category == nil || title.Category.Slug != "films" {
		t.Fatalf("expected films category, got %+v", title.Category)
	}
	if len(title.Genres) != 1 || title.Genres[0].Slug != "drama" {
		t.Fatalf("expected drama genre, got %+v", title.Genres)
	}
}

func TestDeletingCategoryDetachesTitles(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, nil)

	if _, err := service.CreateCategory(context.Background(), admin(), ports.Category{Name: "Films", Slug: "films"}); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	title, err := service.CreateTitle(context.Background(), admin(), ports.NewTitle{Name: "Detached", Year: 2000, CategorySlug: "films"})
	if err != nil {
		t.Fatalf("create title failed: %v", err)
	}

	if err := service.DeleteCategory(context.Background(), admin(), "films"); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}

	got, err := service.GetTitle(context.Background(), title.TitleID)
	if err != nil {
		t.Fatalf("get title failed: %v", err)
	}
	if got.Category != nil {
		t.Fatalf("expected detached title, got category %+v", got.Category)
	}
}

func TestTitleListFiltering(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, nil)

	if _, err := service.CreateCategory(context.Background(), admin(), ports.Category{Name: "Films", Slug: "films"}); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if _, err := service.CreateCategory(context.Background(), admin(), ports.Category{Name: "Books", Slug: "books"}); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if _, err := service.CreateGenre(context.Background(), admin(), ports.Genre{Name: "Drama", Slug: "drama"}); err != nil {
		t.Fatalf("create genre failed: %v", err)
	}

	seed := []ports.NewTitle{
		{Name: "Winter Light", Year: 1963, CategorySlug: "films", GenreSlugs: []string{"drama"}},
		{Name: "Summer Book", Year: 1972, CategorySlug: "books"},
		{Name: "Winter Journal", Year: 2012, CategorySlug: "books"},
	}
	for _, input := range seed {
		if _, err := service.CreateTitle(context.Background(), admin(), input); err != nil {
			t.Fatalf("create title %q failed: %v", input.Name, err)
		}
	}

	list := func(filter ports.TitleFilter) []ports.Title {
		t.Helper()
		titles, err := service.ListTitles(context.Background(), filter)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		return titles
	}

	if got := list(ports.TitleFilter{}); len(got) != 3 {
		t.Fatalf("expected all three titles, got %d", len(got))
	}
	if got := list(ports.TitleFilter{CategorySlug: "books"}); len(got) != 2 {
		t.Fatalf("expected two book titles, got %d", len(got))
	}
	if got := list(ports.TitleFilter{GenreSlug: "drama"}); len(got) != 1 || got[0].Name != "Winter Light" {
		t.Fatalf("expected only the drama title, got %+v", got)
	}
	if got := list(ports.TitleFilter{Name: "winter"}); len(got) != 2 {
		t.Fatalf("expected case-insensitive name match on two titles, got %d", len(got))
	}
	year := 1972
	if got := list(ports.TitleFilter{Year: &year}); len(got) != 1 || got[0].Name != "Summer Book" {
		t.Fatalf("expected the 1972 title, got %+v", got)
	}
	if got := list(ports.TitleFilter{CategorySlug: "books", Name: "winter"}); len(got) != 1 || got[0].Name != "Winter Journal" {
		t.Fatalf("expected filters to combine, got %+v", got)
	}
}

type fixedRatings map[string]float64

func (f fixedRatings) AverageScore(_ context.Context, titleID string) (*float64, error) {
	if value, ok := f[titleID]; ok {
		return &value, nil
	}
	return nil, nil
}

func TestTitlesCarryDerivedRating(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, nil)

	rated, err := service.CreateTitle(context.Background(), admin(), ports.NewTitle{Name: "Rated", Year: 2000})
	if err != nil {
		t.Fatalf("create title failed: %v", err)
	}
	unrated, err := service.CreateTitle(context.Background(), admin(), ports.NewTitle{Name: "Unrated", Year: 2001})
	if err != nil {
		t.Fatalf("create title failed: %v", err)
	}

	service.Ratings = fixedRatings{rated.TitleID: 8.5}

	got, err := service.GetTitle(context.Background(), rated.TitleID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Rating == nil || *got.Rating != 8.5 {
		t.Fatalf("expected rating 8.5, got %v", got.Rating)
	}

	got, err = service.GetTitle(context.Background(), unrated.TitleID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Rating != nil {
		t.Fatalf("expected nil rating, got %v", *got.Rating)
	}
}
