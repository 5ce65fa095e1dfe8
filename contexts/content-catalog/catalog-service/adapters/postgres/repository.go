package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainerrors "ratehub/contexts/content-catalog/catalog-service/domain/errors"
	"ratehub/contexts/content-catalog/catalog-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

type categoryModel struct {
	Slug string `gorm:"column:slug;primaryKey"`
	Name string `gorm:"column:name;uniqueIndex:categories_name_key"`
}

func (categoryModel) TableName() string { return "categories" }

type genreModel struct {
	Slug string `gorm:"column:slug;primaryKey"`
	Name string `gorm:"column:name"`
}

func (genreModel) TableName() string { return "genres" }

type titleModel struct {
	ID           string  `gorm:"column:id;primaryKey"`
	Name         string  `gorm:"column:name"`
	Year         int     `gorm:"column:year"`
	Description  string  `gorm:"column:description"`
	CategorySlug *string `gorm:"column:category_slug"`
}

func (titleModel) TableName() string { return "titles" }

type titleGenreModel struct {
	TitleID   string `gorm:"column:title_id;primaryKey"`
	GenreSlug string `gorm:"column:genre_slug;primaryKey"`
}

func (titleGenreModel) TableName() string { return "title_genres" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&categoryModel{}, &genreModel{}, &titleModel{}, &titleGenreModel{})
}

func (r *Repository) ListCategories(ctx context.Context) ([]ports.Category, error) {
	var rows []categoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("catalog_repo_list_categories_failed", err)
	}
	out := make([]ports.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.Category{Name: row.Name, Slug: row.Slug})
	}
	return out, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category ports.Category) (ports.Category, error) {
	row := categoryModel{Slug: category.Slug, Name: category.Name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.Category{}, domainerrors.ErrSlugTaken
		}
		return ports.Category{}, r.logError("catalog_repo_create_category_failed", err, "slug", category.Slug)
	}
	return category, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SET NULL keeps titles alive when their category goes away.
		if err := tx.Model(&titleModel{}).
			Where("category_slug = ?", slug).
			Update("category_slug", nil).Error; err != nil {
			return r.logError("catalog_repo_unlink_category_failed", err, "slug", slug)
		}
		del := tx.Where("slug = ?", slug).Delete(&categoryModel{})
		if del.Error != nil {
			return r.logError("catalog_repo_delete_category_failed", del.Error, "slug", slug)
		}
		if del.RowsAffected == 0 {
			return domainerrors.ErrCategoryNotFound
		}
		return nil
	})
}

func (r *Repository) ListGenres(ctx context.Context) ([]ports.Genre, error) {
	var rows []genreModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("catalog_repo_list_genres_failed", err)
	}
	out := make([]ports.Genre, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.Genre{Name: row.Name, Slug: row.Slug})
	}
	return out, nil
}

func (r *Repository) CreateGenre(ctx context.Context, genre ports.Genre) (ports.Genre, error) {
	row := genreModel{Slug: genre.Slug, Name: genre.Name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.Genre{}, domainerrors.ErrSlugTaken
		}
		return ports.Genre{}, r.logError("catalog_repo_create_genre_failed", err, "slug", genre.Slug)
	}
	return genre, nil
}

func (r *Repository) DeleteGenre(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_slug = ?", slug).Delete(&titleGenreModel{}).Error; err != nil {
			return r.logError("catalog_repo_unlink_genre_failed", err, "slug", slug)
		}
		del := tx.Where("slug = ?", slug).Delete(&genreModel{})
		if del.Error != nil {
			return r.logError("catalog_repo_delete_genre_failed", del.Error, "slug", slug)
		}
		if del.RowsAffected == 0 {
			return domainerrors.ErrGenreNotFound
		}
		return nil
	})
}

func (r *Repository) ListTitles(ctx context.Context, filter ports.TitleFilter) ([]ports.Title, error) {
	query := r.db.WithContext(ctx).Model(&titleModel{})
	if filter.CategorySlug != "" {
		query = query.Where("category_slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		query = query.Where("id IN (?)",
			r.db.Model(&titleGenreModel{}).Select("title_id").Where("genre_slug = ?", filter.GenreSlug))
	}
	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}
	var rows []titleModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("catalog_repo_list_titles_failed", err)
	}
	out := make([]ports.Title, 0, len(rows))
	for _, row := range rows {
		title, err := r.hydrate(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, title)
	}
	return out, nil
}

func (r *Repository) GetTitle(ctx context.Context, titleID string) (ports.Title, bool, error) {
	var row titleModel
	err := r.db.WithContext(ctx).Where("id = ?", titleID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Title{}, false, nil
		}
		return ports.Title{}, false, r.logError("catalog_repo_get_title_failed", err, "title_id", titleID)
	}
	title, err := r.hydrate(ctx, row)
	if err != nil {
		return ports.Title{}, false, err
	}
	return title, true, nil
}

func (r *Repository) CreateTitle(ctx context.Context, titleID string, input ports.NewTitle) (ports.Title, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := titleModel{
			ID:          titleID,
			Name:        input.Name,
			Year:        input.Year,
			Description: input.Description,
		}
		if input.CategorySlug != "" {
			if err := requireCategory(tx, input.CategorySlug); err != nil {
				return err
			}
			row.CategorySlug = &input.CategorySlug
		}
		if err := tx.Create(&row).Error; err != nil {
			return r.logError("catalog_repo_create_title_failed", err, "title_id", titleID)
		}
		return r.replaceGenres(tx, titleID, input.GenreSlugs)
	})
	if err != nil {
		return ports.Title{}, err
	}
	title, _, err := r.GetTitle(ctx, titleID)
	return title, err
}

func (r *Repository) UpdateTitle(ctx context.Context, titleID string, patch ports.TitlePatch) (ports.Title, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row titleModel
		if err := tx.Where("id = ?", titleID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrTitleNotFound
			}
			return r.logError("catalog_repo_update_title_failed", err, "title_id", titleID)
		}

		assignments := map[string]any{}
		if patch.Name != nil {
			assignments["name"] = *patch.Name
		}
		if patch.Year != nil {
			assignments["year"] = *patch.Year
		}
		if patch.Description != nil {
			assignments["description"] = *patch.Description
		}
		if patch.CategorySlug != nil {
			if *patch.CategorySlug == "" {
				assignments["category_slug"] = nil
			} else {
				if err := requireCategory(tx, *patch.CategorySlug); err != nil {
					return err
				}
				assignments["category_slug"] = *patch.CategorySlug
			}
		}
		if len(assignments) > 0 {
			if err := tx.Model(&titleModel{}).Where("id = ?", titleID).Updates(assignments).Error; err != nil {
				return r.logError("catalog_repo_update_title_failed", err, "title_id", titleID)
			}
		}
		if patch.GenreSlugs != nil {
			if err := tx.Where("title_id = ?", titleID).Delete(&titleGenreModel{}).Error; err != nil {
				return r.logError("catalog_repo_update_title_failed", err, "title_id", titleID)
			}
			return r.replaceGenres(tx, titleID, *patch.GenreSlugs)
		}
		return nil
	})
	if err != nil {
		return ports.Title{}, err
	}
	title, found, err := r.GetTitle(ctx, titleID)
	if err != nil {
		return ports.Title{}, err
	}
	if !found {
		return ports.Title{}, domainerrors.ErrTitleNotFound
	}
	return title, nil
}

func (r *Repository) DeleteTitle(ctx context.Context, titleID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("title_id = ?", titleID).Delete(&titleGenreModel{}).Error; err != nil {
			return r.logError("catalog_repo_delete_title_failed", err, "title_id", titleID)
		}
		del := tx.Where("id = ?", titleID).Delete(&titleModel{})
		if del.Error != nil {
			return r.logError("catalog_repo_delete_title_failed", del.Error, "title_id", titleID)
		}
		if del.RowsAffected == 0 {
			return domainerrors.ErrTitleNotFound
		}
		return nil
	})
}

// AverageScore derives the title rating from the reviews table at query
// time. NULL (no reviews) surfaces as nil, never zero.
func (r *Repository) AverageScore(ctx context.Context, titleID string) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Table("reviews").
		Where("title_id = ?", titleID).
		Select("AVG(score)").
		Scan(&avg).
		Error
	if err != nil {
		return nil, r.logError("catalog_repo_average_score_failed", err, "title_id", titleID)
	}
	return avg, nil
}

// TitleExists backs the review side's title directory port.
func (r *Repository) TitleExists(ctx context.Context, titleID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&titleModel{}).
		Where("id = ?", titleID).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("catalog_repo_title_exists_failed", err, "title_id", titleID)
	}
	return count > 0, nil
}

func (r *Repository) hydrate(ctx context.Context, row titleModel) (ports.Title, error) {
	title := ports.Title{
		TitleID:     row.ID,
		Name:        row.Name,
		Year:        row.Year,
		Description: row.Description,
	}
	if row.CategorySlug != nil {
		var category categoryModel
		err := r.db.WithContext(ctx).Where("slug = ?", *row.CategorySlug).First(&category).Error
		if err == nil {
			title.Category = &ports.Category{Name: category.Name, Slug: category.Slug}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Title{}, r.logError("catalog_repo_hydrate_failed", err, "title_id", row.ID)
		}
	}
	var genres []genreModel
	err := r.db.WithContext(ctx).
		Joins("JOIN title_genres ON title_genres.genre_slug = genres.slug").
		Where("title_genres.title_id = ?", row.ID).
		Order("genres.name ASC").
		Find(&genres).
		Error
	if err != nil {
		return ports.Title{}, r.logError("catalog_repo_hydrate_failed", err, "title_id", row.ID)
	}
	for _, genre := range genres {
		title.Genres = append(title.Genres, ports.Genre{Name: genre.Name, Slug: genre.Slug})
	}
	return title, nil
}

func (r *Repository) replaceGenres(tx *gorm.DB, titleID string, slugs []string) error {
	for _, slug := range slugs {
		if err := requireGenre(tx, slug); err != nil {
			return err
		}
		link := titleGenreModel{TitleID: titleID, GenreSlug: slug}
		if err := tx.Create(&link).Error; err != nil {
			return r.logError("catalog_repo_link_genre_failed", err, "title_id", titleID, "genre_slug", slug)
		}
	}
	return nil
}

func requireCategory(tx *gorm.DB, slug string) error {
	var count int64
	if err := tx.Model(&categoryModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrCategoryNotFound
	}
	return nil
}

func requireGenre(tx *gorm.DB, slug string) error {
	var count int64
	if err := tx.Model(&genreModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrGenreNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "content-catalog/catalog-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("catalog repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.RatingSource = (*Repository)(nil)
