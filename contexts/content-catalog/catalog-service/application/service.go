package application

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	authzservices "ratehub/contexts/identity-access/authorization-service/domain/services"
	domainerrors "ratehub/contexts/content-catalog/catalog-service/domain/errors"
	"ratehub/contexts/content-catalog/catalog-service/ports"
)

const (
	maxNameLength = 256
	maxSlugLength = 50
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Service manages the catalog: categories, genres and titles. Reads are
// public; every write goes through the policy engine and requires the
// catalog-management capability. Ratings are derived at query time from
// the rating source, never stored.
type Service struct {
	Repo    ports.Repository
	Ratings ports.RatingSource
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func (s Service) ListCategories(ctx context.Context) ([]ports.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s Service) CreateCategory(ctx context.Context, requester authzentities.Requester, category ports.Category) (ports.Category, error) {
	if err := s.authorizeWrite(requester, authzentities.VerbCreate, authzentities.ResourceCategory); err != nil {
		return ports.Category{}, err
	}
	category.Name = strings.TrimSpace(category.Name)
	category.Slug = strings.TrimSpace(category.Slug)
	if err := validateName(category.Name); err != nil {
		return ports.Category{}, err
	}
	if err := validateSlug(category.Slug); err != nil {
		return ports.Category{}, err
	}
	return s.Repo.CreateCategory(ctx, category)
}

func (s Service) DeleteCategory(ctx context.Context, requester authzentities.Requester, slug string) error {
	if err := s.authorizeWrite(requester, authzentities.VerbDelete, authzentities.ResourceCategory); err != nil {
		return err
	}
	return s.Repo.DeleteCategory(ctx, strings.TrimSpace(slug))
}

func (s Service) ListGenres(ctx context.Context) ([]ports.Genre, error) {
	return s.Repo.ListGenres(ctx)
}

func (s Service) CreateGenre(ctx context.Context, requester authzentities.Requester, genre ports.Genre) (ports.Genre, error) {
	if err := s.authorizeWrite(requester, authzentities.VerbCreate, authzentities.ResourceGenre); err != nil {
		return ports.Genre{}, err
	}
	genre.Name = strings.TrimSpace(genre.Name)
	genre.Slug = strings.TrimSpace(genre.Slug)
	if err := validateName(genre.Name); err != nil {
		return ports.Genre{}, err
	}
	if err := validateSlug(genre.Slug); err != nil {
		return ports.Genre{}, err
	}
	return s.Repo.CreateGenre(ctx, genre)
}

func (s Service) DeleteGenre(ctx context.Context, requester authzentities.Requester, slug string) error {
	if err := s.authorizeWrite(requester, authzentities.VerbDelete, authzentities.ResourceGenre); err != nil {
		return err
	}
	return s.Repo.DeleteGenre(ctx, strings.TrimSpace(slug))
}

func (s Service) ListTitles(ctx context.Context, filter ports.TitleFilter) ([]ports.Title, error) {
	titles, err := s.Repo.ListTitles(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range titles {
		if err := s.attachRating(ctx, &titles[i]); err != nil {
			return nil, err
		}
	}
	return titles, nil
}

func (s Service) GetTitle(ctx context.Context, titleID string) (ports.Title, error) {
	title, found, err := s.Repo.GetTitle(ctx, strings.TrimSpace(titleID))
	if err != nil {
		return ports.Title{}, err
	}
	if !found {
		return ports.Title{}, domainerrors.ErrTitleNotFound
	}
	if err := s.attachRating(ctx, &title); err != nil {
		return ports.Title{}, err
	}
	return title, nil
}

func (s Service) CreateTitle(ctx context.Context, requester authzentities.Requester, input ports.NewTitle) (ports.Title, error) {
	if err := s.authorizeWrite(requester, authzentities.VerbCreate, authzentities.ResourceTitle); err != nil {
		return ports.Title{}, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := validateName(input.Name); err != nil {
		return ports.Title{}, err
	}
	if err := s.validateYear(input.Year); err != nil {
		return ports.Title{}, err
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Title{}, err
	}
	title, err := s.Repo.CreateTitle(ctx, id, input)
	if err != nil {
		return ports.Title{}, err
	}

	resolveLogger(s.Logger).Info("title created",
		"event", "catalog_title_created",
		"module", "content-catalog/catalog-service",
		"layer", "application",
		"title_id", title.TitleID,
		"name", title.Name,
	)
	return title, nil
}

func (s Service) UpdateTitle(ctx context.Context, requester authzentities.Requester, titleID string, patch ports.TitlePatch) (ports.Title, error) {
	if err := s.authorizeWrite(requester, authzentities.VerbUpdate, authzentities.ResourceTitle); err != nil {
		return ports.Title{}, err
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if err := validateName(trimmed); err != nil {
			return ports.Title{}, err
		}
		patch.Name = &trimmed
	}
	if patch.Year != nil {
		if err := s.validateYear(*patch.Year); err != nil {
			return ports.Title{}, err
		}
	}
	title, err := s.Repo.UpdateTitle(ctx, strings.TrimSpace(titleID), patch)
	if err != nil {
		return ports.Title{}, err
	}
	if err := s.attachRating(ctx, &title); err != nil {
		return ports.Title{}, err
	}
	return title, nil
}

func (s Service) DeleteTitle(ctx context.Context, requester authzentities.Requester, titleID string) error {
	if err := s.authorizeWrite(requester, authzentities.VerbDelete, authzentities.ResourceTitle); err != nil {
		return err
	}
	return s.Repo.DeleteTitle(ctx, strings.TrimSpace(titleID))
}

func (s Service) authorizeWrite(requester authzentities.Requester, verb authzentities.Verb, class authzentities.ResourceClass) error {
	return authzservices.Evaluate(requester, authzentities.Action{Verb: verb, Class: class}, authzentities.Resource{})
}

func (s Service) attachRating(ctx context.Context, title *ports.Title) error {
	if s.Ratings == nil {
		return nil
	}
	rating, err := s.Ratings.AverageScore(ctx, title.TitleID)
	if err != nil {
		return err
	}
	title.Rating = rating
	return nil
}

func (s Service) validateYear(year int) error {
	if year > s.now().Year() {
		return domainerrors.ErrInvalidYear
	}
	return nil
}

func validateName(name string) error {
	if name == "" || len(name) > maxNameLength {
		return domainerrors.ErrInvalidName
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" || len(slug) > maxSlugLength || !slugPattern.MatchString(slug) {
		return domainerrors.ErrInvalidSlug
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
