package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainerrors "ratehub/contexts/review-engagement/review-service/domain/errors"
	"ratehub/contexts/review-engagement/review-service/ports"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the repository, clock and id
// generator ports. The (title, author) uniqueness index mirrors the
// storage constraint the postgres adapter relies on.
type Store struct {
	mu            sync.RWMutex
	reviews       map[string]ports.Review  // by review id
	byTitleAuthor map[string]string        // titleID|authorID -> review id
	comments      map[string]ports.Comment // by comment id
}

func NewStore() *Store {
	return &Store{
		reviews:       make(map[string]ports.Review),
		byTitleAuthor: make(map[string]string),
		comments:      make(map[string]ports.Comment),
	}
}

func pairKey(titleID, authorID string) string {
	return titleID + "|" + authorID
}

func (s *Store) CreateReview(_ context.Context, review ports.Review) (ports.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(review.TitleID, review.AuthorID)
	if _, exists := s.byTitleAuthor[key]; exists {
		return ports.Review{}, domainerrors.ErrDuplicateReview
	}
	s.reviews[review.ReviewID] = review
	s.byTitleAuthor[key] = review.ReviewID
	return review, nil
}

func (s *Store) GetReview(_ context.Context, titleID string, reviewID string) (ports.Review, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	review, ok := s.reviews[reviewID]
	if !ok || review.TitleID != titleID {
		return ports.Review{}, false, nil
	}
	return review, true, nil
}

func (s *Store) ListReviewsByTitle(_ context.Context, titleID string) ([]ports.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ports.Review
	for _, review := range s.reviews {
		if review.TitleID == titleID {
			out = append(out, review)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) HasReviewByAuthor(_ context.Context, titleID string, authorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byTitleAuthor[pairKey(titleID, authorID)]
	return ok, nil
}

func (s *Store) UpdateReview(_ context.Context, reviewID string, patch ports.ReviewPatch) (ports.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	review, ok := s.reviews[reviewID]
	if !ok {
		return ports.Review{}, domainerrors.ErrReviewNotFound
	}
	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Score != nil {
		review.Score = *patch.Score
	}
	s.reviews[reviewID] = review
	return review, nil
}

func (s *Store) DeleteReview(_ context.Context, reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	review, ok := s.reviews[reviewID]
	if !ok {
		return domainerrors.ErrReviewNotFound
	}
	delete(s.reviews, reviewID)
	delete(s.byTitleAuthor, pairKey(review.TitleID, review.AuthorID))
	// Cascade: comments belong to their review for lifecycle.
	for id, comment := range s.comments {
		if comment.ReviewID == reviewID {
			delete(s.comments, id)
		}
	}
	return nil
}

// AverageScore derives the mean review score for a title, structurally
// satisfying the catalog side's rating source port. nil when no reviews.
func (s *Store) AverageScore(_ context.Context, titleID string) (*float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum, count int
	for _, review := range s.reviews {
		if review.TitleID == titleID {
			sum += review.Score
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(count)
	return &avg, nil
}

func (s *Store) CreateComment(_ context.Context, comment ports.Comment) (ports.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.CommentID] = comment
	return comment, nil
}

func (s *Store) GetComment(_ context.Context, reviewID string, commentID string) (ports.Comment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[commentID]
	if !ok || comment.ReviewID != reviewID {
		return ports.Comment{}, false, nil
	}
	return comment, true, nil
}

func (s *Store) ListComments(_ context.Context, reviewID string) ([]ports.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ports.Comment
	for _, comment := range s.comments {
		if comment.ReviewID == reviewID {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateComment(_ context.Context, commentID string, text string) (ports.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[commentID]
	if !ok {
		return ports.Comment{}, domainerrors.ErrCommentNotFound
	}
	comment.Text = text
	s.comments[commentID] = comment
	return comment, nil
}

func (s *Store) DeleteComment(_ context.Context, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[commentID]; !ok {
		return domainerrors.ErrCommentNotFound
	}
	delete(s.comments, commentID)
	return nil
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
