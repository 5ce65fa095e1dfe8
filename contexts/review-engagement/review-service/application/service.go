package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	authzservices "ratehub/contexts/identity-access/authorization-service/domain/services"
	domainerrors "ratehub/contexts/review-engagement/review-service/domain/errors"
	"ratehub/contexts/review-engagement/review-service/ports"
)

const (
	minScore       = 1
	maxScore       = 10
	maxCommentText = 256
)

// Service enforces review integrity: one review per (title, author),
// scores within 1..10, and author-or-moderator mutation policy. Comments
// hang off reviews with the same mutation policy and no uniqueness rule.
type Service struct {
	Repo   ports.Repository
	Titles ports.TitleDirectory
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) ListReviews(ctx context.Context, titleID string) ([]ports.Review, error) {
	titleID = strings.TrimSpace(titleID)
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	return s.Repo.ListReviewsByTitle(ctx, titleID)
}

func (s Service) GetReview(ctx context.Context, titleID string, reviewID string) (ports.Review, error) {
	review, found, err := s.Repo.GetReview(ctx, strings.TrimSpace(titleID), strings.TrimSpace(reviewID))
	if err != nil {
		return ports.Review{}, err
	}
	if !found {
		return ports.Review{}, domainerrors.ErrReviewNotFound
	}
	return review, nil
}

// CreateReview authorizes, pre-checks for an existing review by the same
// author, then inserts. The pre-check exists for a precise conflict
// message; the storage unique constraint on (title, author) remains the
// authoritative guard against concurrent duplicates.
func (s Service) CreateReview(ctx context.Context, requester authzentities.Requester, titleID string, text string, score int) (ports.Review, error) {
	err := authzservices.Evaluate(requester,
		authzentities.Action{Verb: authzentities.VerbCreate, Class: authzentities.ResourceReview},
		authzentities.Resource{})
	if err != nil {
		return ports.Review{}, err
	}

	titleID = strings.TrimSpace(titleID)
	if err := s.requireTitle(ctx, titleID); err != nil {
		return ports.Review{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ports.Review{}, domainerrors.ErrEmptyText
	}
	if score < minScore || score > maxScore {
		return ports.Review{}, domainerrors.ErrInvalidScore
	}

	exists, err := s.Repo.HasReviewByAuthor(ctx, titleID, requester.AccountID)
	if err != nil {
		return ports.Review{}, err
	}
	if exists {
		return ports.Review{}, domainerrors.ErrDuplicateReview
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Review{}, err
	}
	review, err := s.Repo.CreateReview(ctx, ports.Review{
		ReviewID:  id,
		TitleID:   titleID,
		AuthorID:  requester.AccountID,
		Text:      text,
		Score:     score,
		CreatedAt: s.now(),
	})
	if err != nil {
		return ports.Review{}, err
	}

	resolveLogger(s.Logger).Info("review created",
		"event", "review_created",
		"module", "review-engagement/review-service",
		"layer", "application",
		"review_id", review.ReviewID,
		"title_id", review.TitleID,
		"author_id", review.AuthorID,
		"score", review.Score,
	)
	return review, nil
}

func (s Service) UpdateReview(ctx context.Context, requester authzentities.Requester, titleID string, reviewID string, patch ports.ReviewPatch) (ports.Review, error) {
	review, err := s.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return ports.Review{}, err
	}

	err = authzservices.Evaluate(requester,
		authzentities.Action{Verb: authzentities.VerbUpdate, Class: authzentities.ResourceReview},
		authzentities.Resource{AuthorID: review.AuthorID})
	if err != nil {
		return ports.Review{}, err
	}

	if patch.Text != nil {
		trimmed := strings.TrimSpace(*patch.Text)
		if trimmed == "" {
			return ports.Review{}, domainerrors.ErrEmptyText
		}
		patch.Text = &trimmed
	}
	if patch.Score != nil && (*patch.Score < minScore || *patch.Score > maxScore) {
		return ports.Review{}, domainerrors.ErrInvalidScore
	}
	return s.Repo.UpdateReview(ctx, review.ReviewID, patch)
}

func (s Service) DeleteReview(ctx context.Context, requester authzentities.Requester, titleID string, reviewID string) error {
	review, err := s.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	err = authzservices.Evaluate(requester,
		authzentities.Action{Verb: authzentities.VerbDelete, Class: authzentities.ResourceReview},
		authzentities.Resource{AuthorID: review.AuthorID})
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteReview(ctx, review.ReviewID); err != nil {
		return err
	}
	resolveLogger(s.Logger).Info("review deleted",
		"event", "review_deleted",
		"module", "review-engagement/review-service",
		"layer", "application",
		"review_id", review.ReviewID,
		"title_id", review.TitleID,
	)
	return nil
}

func (s Service) ListComments(ctx context.Context, titleID string, reviewID string) ([]ports.Comment, error) {
	review, err := s.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListComments(ctx, review.ReviewID)
}

func (s Service) GetComment(ctx context.Context, titleID string, reviewID string, commentID string) (ports.Comment, error) {
	review, err := s.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return ports.Comment{}, err
	}
	comment, found, err := s.Repo.GetComment(ctx, review.ReviewID, strings.TrimSpace(commentID))
	if err != nil {
		return ports.Comment{}, err
	}
	if !found {
		return ports.Comment{}, domainerrors.ErrCommentNotFound
	}
	return comment, nil
}

func (s Service) CreateComment(ctx context.Context, requester authzentities.Requester, titleID string, reviewID string, text string) (ports.Comment, error) {
	err := authzservices.Evaluate(requester,
		authzentities.Action{Verb: authzentities.VerbCreate, Class: authzentities.ResourceComment},
		authzentities.Resource{})
	if err != nil {
		return ports.Comment{}, err
	}

	review, err := s.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return ports.Comment{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxCommentText {
		return ports.Comment{}, domainerrors.ErrEmptyText
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Comment{}, err
	}
	return s.Repo.CreateComment(ctx, ports.Comment{
		CommentID: id,
		ReviewID:  review.ReviewID,
		AuthorID:  requester.AccountID,
		Text:      text,
		CreatedAt: s.now(),
	})
}

func (s Service) UpdateComment(ctx context.Context, requester authzentities.Requester, titleID string, reviewID string, commentID string, text string) (ports.Comment, error) {
	comment, err := s.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return ports.Comment{}, err
	}

	err = authzservices.Evaluate(requester,
		authzentities.Action{Verb: authzentities.VerbUpdate, Class: authzentities.ResourceComment},
		authzentities.Resource{AuthorID: comment.AuthorID})
	if err != nil {
		return ports.Comment{}, err
	}

	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxCommentText {
		return ports.Comment{}, domainerrors.ErrEmptyText
	}
	return s.Repo.UpdateComment(ctx, comment.CommentID, text)
}

func (s Service) DeleteComment(ctx context.Context, requester authzentities.Requester, titleID string, reviewID string, commentID string) error {
	comment, err := s.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	err = authzservices.Evaluate(requester,
		authzentities.Action{Verb: authzentities.VerbDelete, Class: authzentities.ResourceComment},
		authzentities.Resource{AuthorID: comment.AuthorID})
	if err != nil {
		return err
	}
	return s.Repo.DeleteComment(ctx, comment.CommentID)
}

func (s Service) requireTitle(ctx context.Context, titleID string) error {
	if s.Titles == nil {
		return nil
	}
	exists, err := s.Titles.TitleExists(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return domainerrors.ErrTitleNotFound
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
