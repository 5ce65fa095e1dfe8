package ports

import (
	"context"
	"time"
)

// Review is one account's rating of one title. At most one review exists
// per (title, author) pair; the storage layer enforces the constraint.
type Review struct {
	ReviewID  string
	TitleID   string
	AuthorID  string
	Text      string
	Score     int
	CreatedAt time.Time
}

type Comment struct {
	CommentID string
	ReviewID  string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}

// ReviewPatch carries partial updates; nil fields are left untouched.
type ReviewPatch struct {
	Text  *string
	Score *int
}

type Repository interface {
	CreateReview(ctx context.Context, review Review) (Review, error)
	GetReview(ctx context.Context, titleID string, reviewID string) (Review, bool, error)
	ListReviewsByTitle(ctx context.Context, titleID string) ([]Review, error)
	HasReviewByAuthor(ctx context.Context, titleID string, authorID string) (bool, error)
	UpdateReview(ctx context.Context, reviewID string, patch ReviewPatch) (Review, error)
	DeleteReview(ctx context.Context, reviewID string) error

	CreateComment(ctx context.Context, comment Comment) (Comment, error)
	GetComment(ctx context.Context, reviewID string, commentID string) (Comment, bool, error)
	ListComments(ctx context.Context, reviewID string) ([]Comment, error)
	UpdateComment(ctx context.Context, commentID string, text string) (Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

// TitleDirectory verifies that a referenced title exists. Implemented by
// the catalog side; wired structurally at composition time.
type TitleDirectory interface {
	TitleExists(ctx context.Context, titleID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
