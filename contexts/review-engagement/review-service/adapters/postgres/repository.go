package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainerrors "ratehub/contexts/review-engagement/review-service/domain/errors"
	"ratehub/contexts/review-engagement/review-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type reviewModel struct {
	ReviewID  string `gorm:"primaryKey;column:review_id"`
	TitleID   string `gorm:"column:title_id;uniqueIndex:reviews_title_author_key"`
	AuthorID  string `gorm:"column:author_id;uniqueIndex:reviews_title_author_key"`
	Text      string `gorm:"column:text"`
	Score     int    `gorm:"column:score"`
	CreatedAt time.Time
}

func (reviewModel) TableName() string { return "reviews" }

type commentModel struct {
	CommentID string `gorm:"primaryKey;column:comment_id"`
	ReviewID  string `gorm:"column:review_id;index"`
	AuthorID  string `gorm:"column:author_id"`
	Text      string `gorm:"column:text"`
	CreatedAt time.Time
}

func (commentModel) TableName() string { return "review_comments" }

// Repository persists reviews and comments in PostgreSQL via GORM. The
// composite unique index on (title_id, author_id) is the authoritative
// guard against duplicate reviews.
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

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&reviewModel{}, &commentModel{})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func (r *Repository) CreateReview(ctx context.Context, review ports.Review) (ports.Review, error) {
	model := reviewModel{
		ReviewID:  review.ReviewID,
		TitleID:   review.TitleID,
		AuthorID:  review.AuthorID,
		Text:      review.Text,
		Score:     review.Score,
		CreatedAt: review.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.Review{}, domainerrors.ErrDuplicateReview
		}
		return ports.Review{}, r.logError("review_insert_failed", err, "title_id", review.TitleID)
	}
	return review, nil
}

func (r *Repository) GetReview(ctx context.Context, titleID string, reviewID string) (ports.Review, bool, error) {
	var model reviewModel
	err := r.db.WithContext(ctx).
		Where("review_id = ? AND title_id = ?", reviewID, titleID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Review{}, false, nil
	}
	if err != nil {
		return ports.Review{}, false, err
	}
	return toReview(model), true, nil
}

func (r *Repository) ListReviewsByTitle(ctx context.Context, titleID string) ([]ports.Review, error) {
	var models []reviewModel
	err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	reviews := make([]ports.Review, 0, len(models))
	for _, model := range models {
		reviews = append(reviews, toReview(model))
	}
	return reviews, nil
}

func (r *Repository) HasReviewByAuthor(ctx context.Context, titleID string, authorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&reviewModel{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) UpdateReview(ctx context.Context, reviewID string, patch ports.ReviewPatch) (ports.Review, error) {
	assignments := map[string]any{}
	if patch.Text != nil {
		assignments["text"] = *patch.Text
	}
	if patch.Score != nil {
		assignments["score"] = *patch.Score
	}
	if len(assignments) > 0 {
		result := r.db.WithContext(ctx).Model(&reviewModel{}).
			Where("review_id = ?", reviewID).
			Updates(assignments)
		if result.Error != nil {
			return ports.Review{}, result.Error
		}
		if result.RowsAffected == 0 {
			return ports.Review{}, domainerrors.ErrReviewNotFound
		}
	}
	var model reviewModel
	err := r.db.WithContext(ctx).Where("review_id = ?", reviewID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Review{}, domainerrors.ErrReviewNotFound
	}
	if err != nil {
		return ports.Review{}, err
	}
	return toReview(model), nil
}

func (r *Repository) DeleteReview(ctx context.Context, reviewID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", reviewID).Delete(&commentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("review_id = ?", reviewID).Delete(&reviewModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrReviewNotFound
		}
		return nil
	})
}

// AverageScore is the rating source the catalog side reads. nil when the
// title has no reviews.
func (r *Repository) AverageScore(ctx context.Context, titleID string) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&reviewModel{}).
		Where("title_id = ?", titleID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}

func (r *Repository) CreateComment(ctx context.Context, comment ports.Comment) (ports.Comment, error) {
	model := commentModel{
		CommentID: comment.CommentID,
		ReviewID:  comment.ReviewID,
		AuthorID:  comment.AuthorID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return ports.Comment{}, err
	}
	return comment, nil
}

func (r *Repository) GetComment(ctx context.Context, reviewID string, commentID string) (ports.Comment, bool, error) {
	var model commentModel
	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND review_id = ?", commentID, reviewID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Comment{}, false, nil
	}
	if err != nil {
		return ports.Comment{}, false, err
	}
	return toComment(model), true, nil
}

func (r *Repository) ListComments(ctx context.Context, reviewID string) ([]ports.Comment, error) {
	var models []commentModel
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	comments := make([]ports.Comment, 0, len(models))
	for _, model := range models {
		comments = append(comments, toComment(model))
	}
	return comments, nil
}

func (r *Repository) UpdateComment(ctx context.Context, commentID string, text string) (ports.Comment, error) {
	result := r.db.WithContext(ctx).Model(&commentModel{}).
		Where("comment_id = ?", commentID).
		Update("text", text)
	if result.Error != nil {
		return ports.Comment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Comment{}, domainerrors.ErrCommentNotFound
	}
	var model commentModel
	if err := r.db.WithContext(ctx).Where("comment_id = ?", commentID).First(&model).Error; err != nil {
		return ports.Comment{}, err
	}
	return toComment(model), nil
}

func (r *Repository) DeleteComment(ctx context.Context, commentID string) error {
	result := r.db.WithContext(ctx).Where("comment_id = ?", commentID).Delete(&commentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCommentNotFound
	}
	return nil
}

func toReview(model reviewModel) ports.Review {
	return ports.Review{
		ReviewID:  model.ReviewID,
		TitleID:   model.TitleID,
		AuthorID:  model.AuthorID,
		Text:      model.Text,
		Score:     model.Score,
		CreatedAt: model.CreatedAt,
	}
}

func toComment(model commentModel) ports.Comment {
	return ports.Comment{
		CommentID: model.CommentID,
		ReviewID:  model.ReviewID,
		AuthorID:  model.AuthorID,
		Text:      model.Text,
		CreatedAt: model.CreatedAt,
	}
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "review-engagement/review-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("review repository operation failed", fields...)
	return err
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Repository)(nil)
