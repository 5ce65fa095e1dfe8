package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "ratehub/contexts/content-catalog/catalog-service/domain/errors"
	"ratehub/contexts/content-catalog/catalog-service/ports"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the repository, clock and id
// generator ports. Intended for tests and local development wiring.
type Store struct {
	mu         sync.RWMutex
	categories map[string]ports.Category // by slug
	genres     map[string]ports.Genre    // by slug
	titles     map[string]titleRow       // by title id
}

type titleRow struct {
	TitleID      string
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

func NewStore() *Store {
	return &Store{
		categories: make(map[string]ports.Category),
		genres:     make(map[string]ports.Genre),
		titles:     make(map[string]titleRow),
	}
}

func (s *Store) ListCategories(_ context.Context) ([]ports.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.Category, 0, len(s.categories))
	for _, category := range s.categories {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, category ports.Category) (ports.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.categories[category.Slug]; exists {
		return ports.Category{}, domainerrors.ErrSlugTaken
	}
	s.categories[category.Slug] = category
	return category, nil
}

func (s *Store) DeleteCategory(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.categories[slug]; !exists {
		return domainerrors.ErrCategoryNotFound
	}
	delete(s.categories, slug)
	// Titles keep existing with a cleared category, SET NULL semantics.
	for id, row := range s.titles {
		if row.CategorySlug == slug {
			row.CategorySlug = ""
			s.titles[id] = row
		}
	}
	return nil
}

func (s *Store) ListGenres(_ context.Context) ([]ports.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.Genre, 0, len(s.genres))
	for _, genre := range s.genres {
		out = append(out, genre)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateGenre(_ context.Context, genre ports.Genre) (ports.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.genres[genre.Slug]; exists {
		return ports.Genre{}, domainerrors.ErrSlugTaken
	}
	s.genres[genre.Slug] = genre
	return genre, nil
}

func (s *Store) DeleteGenre(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.genres[slug]; !exists {
		return domainerrors.ErrGenreNotFound
	}
	delete(s.genres, slug)
	return nil
}

func (s *Store) ListTitles(_ context.Context, filter ports.TitleFilter) ([]ports.Title, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.Title, 0, len(s.titles))
	for _, row := range s.titles {
		if !matchesFilter(row, filter) {
			continue
		}
		out = append(out, s.toTitle(row))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func matchesFilter(row titleRow, filter ports.TitleFilter) bool {
	if filter.CategorySlug != "" && row.CategorySlug != filter.CategorySlug {
		return false
	}
	if filter.GenreSlug != "" {
		linked := false
		for _, slug := range row.GenreSlugs {
			if slug == filter.GenreSlug {
				linked = true
				break
			}
		}
		if !linked {
			return false
		}
	}
	if filter.Name != "" && !strings.Contains(strings.ToLower(row.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if filter.Year != nil && row.Year != *filter.Year {
		return false
	}
	return true
}

func (s *Store) GetTitle(_ context.Context, titleID string) (ports.Title, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.titles[titleID]
	if !ok {
		return ports.Title{}, false, nil
	}
	return s.toTitle(row), true, nil
}

func (s *Store) CreateTitle(_ context.Context, titleID string, input ports.NewTitle) (ports.Title, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if input.CategorySlug != "" {
		if _, ok := s.categories[input.CategorySlug]; !ok {
			return ports.Title{}, domainerrors.ErrCategoryNotFound
		}
	}
	for _, slug := range input.GenreSlugs {
		if _, ok := s.genres[slug]; !ok {
			return ports.Title{}, domainerrors.ErrGenreNotFound
		}
	}
	row := titleRow{
		TitleID:      titleID,
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.CategorySlug,
		GenreSlugs:   append([]string(nil), input.GenreSlugs...),
	}
	s.titles[titleID] = row
	return s.toTitle(row), nil
}

func (s *Store) UpdateTitle(_ context.Context, titleID string, patch ports.TitlePatch) (ports.Title, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.titles[titleID]
	if !ok {
		return ports.Title{}, domainerrors.ErrTitleNotFound
	}
	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Year != nil {
		row.Year = *patch.Year
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.CategorySlug != nil {
		if *patch.CategorySlug != "" {
			if _, ok := s.categories[*patch.CategorySlug]; !ok {
				return ports.Title{}, domainerrors.ErrCategoryNotFound
			}
		}
		row.CategorySlug = *patch.CategorySlug
	}
	if patch.GenreSlugs != nil {
		for _, slug := range *patch.GenreSlugs {
			if _, ok := s.genres[slug]; !ok {
				return ports.Title{}, domainerrors.ErrGenreNotFound
			}
		}
		row.GenreSlugs = append([]string(nil), (*patch.GenreSlugs)...)
	}
	s.titles[titleID] = row
	return s.toTitle(row), nil
}

func (s *Store) DeleteTitle(_ context.Context, titleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.titles[titleID]; !ok {
		return domainerrors.ErrTitleNotFound
	}
	delete(s.titles, titleID)
	return nil
}

// TitleExists lets the review side verify a referenced title, structurally
// satisfying its title directory port.
func (s *Store) TitleExists(_ context.Context, titleID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.titles[titleID]
	return ok, nil
}

func (s *Store) toTitle(row titleRow) ports.Title {
	title := ports.Title{
		TitleID:     row.TitleID,
		Name:        row.Name,
		Year:        row.Year,
		Description: row.Description,
	}
	if row.CategorySlug != "" {
		if category, ok := s.categories[row.CategorySlug]; ok {
			title.Category = &category
		}
	}
	for _, slug := range row.GenreSlugs {
		if genre, ok := s.genres[slug]; ok {
			title.Genres = append(title.Genres, genre)
		}
	}
	return title
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
