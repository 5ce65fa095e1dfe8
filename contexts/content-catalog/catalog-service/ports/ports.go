package ports

import (
	"context"
	"time"
)

type Category struct {
	Name string
	Slug string
}

type Genre struct {
	Name string
	Slug string
}

// Title is a reviewable work. Category is optional; Genres may be empty.
// Rating is derived at query time and nil while the title has no reviews.
type Title struct {
	TitleID     string
	Name        string
	Year        int
	Description string
	Category    *Category
	Genres      []Genre
	Rating      *float64
}

type NewTitle struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

// TitlePatch carries partial updates; nil fields are left untouched.
type TitlePatch struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

// TitleFilter narrows a title listing. Zero-valued fields do not filter.
// Category and Genre match slugs exactly; Name is a case-insensitive
// substring match; Year is an exact match.
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, category Category) (Category, error)
	DeleteCategory(ctx context.Context, slug string) error

	ListGenres(ctx context.Context) ([]Genre, error)
	CreateGenre(ctx context.Context, genre Genre) (Genre, error)
	DeleteGenre(ctx context.Context, slug string) error

	ListTitles(ctx context.Context, filter TitleFilter) ([]Title, error)
	GetTitle(ctx context.Context, titleID string) (Title, bool, error)
	CreateTitle(ctx context.Context, titleID string, input NewTitle) (Title, error)
	UpdateTitle(ctx context.Context, titleID string, patch TitlePatch) (Title, error)
	DeleteTitle(ctx context.Context, titleID string) error
}

// RatingSource derives a title's aggregate rating from its review scores.
// nil means the title has no reviews yet; it is never reported as zero.
type RatingSource interface {
	AverageScore(ctx context.Context, titleID string) (*float64, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
