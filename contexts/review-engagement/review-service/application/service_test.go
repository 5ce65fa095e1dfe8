package application

import (
	"context"
	"errors"
	"testing"

	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	authzerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
	"ratehub/contexts/review-engagement/review-service/adapters/memory"
	domainerrors "ratehub/contexts/review-engagement/review-service/domain/errors"
	"ratehub/contexts/review-engagement/review-service/ports"
)

type titleSet map[string]bool

func (t titleSet) TitleExists(_ context.Context, titleID string) (bool, error) {
	return t[titleID], nil
}

func reader(id string) authzentities.Requester {
	return authzentities.Requester{AccountID: id, Username: id, Role: authzentities.RoleUser, Authenticated: true}
}

func moderator() authzentities.Requester {
	return authzentities.Requester{AccountID: "mod-1", Username: "mod", Role: authzentities.RoleModerator, Authenticated: true}
}

func newService(store *memory.Store, titles ports.TitleDirectory) Service {
	return Service{Repo: store, Titles: titles, Clock: store, IDGen: store}
}

func TestCreateReviewAndReadBack(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, titleSet{"t1": true})

	review, err := service.CreateReview(context.Background(), reader("u1"), "t1", "solid debut", 8)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if review.AuthorID != "u1" || review.Score != 8 {
		t.Fatalf("unexpected review: %+v", review)
	}

	got, err := service.GetReview(context.Background(), "t1", review.ReviewID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Text != "solid debut" {
		t.Fatalf("unexpected text %q", got.Text)
	}
}

func TestSecondReviewBySameAuthorConflicts(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, titleSet{"t1": true})

	if _, err := service.CreateReview(context.Background(), reader("u1"), "t1", "first take", 7); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err := service.CreateReview(context.Background(), reader("u1"), "t1", "second take", 9)
	if !errors.Is(err, domainerrors.ErrDuplicateReview) {
		t.Fatalf("expected duplicate review error, got %v", err)
	}

	// A different author on the same title is fine.
	if _, err := service.CreateReview(context.Background(), reader("u2"), "t1", "other view", 5); err != nil {
		t.Fatalf("second author rejected: %v", err)
	}
}

func TestScoreBoundsEnforced(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, titleSet{"t1": true})

	for _, score := range []int{0, 11, -3} {
		_, err := service.CreateReview(context.Background(), reader("u1"), "t1", "out of range", score)
		if !errors.Is(err, domainerrors.ErrInvalidScore) {
			t.Fatalf("score %d: expected invalid score error, got %v", score, err)
		}
	}
	for _, score := range []int{1, 10} {
		store := memory.NewStore()
		service := newService(store, titleSet{"t1": true})
		if _, err := service.CreateReview(context.Background(), reader("u1"), "t1", "boundary", score); err != nil {
			t.Fatalf("score %d rejected: %v", score, err)
		}
	}
}

func TestAnonymousCannotCreateReview(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, titleSet{"t1": true})

	_, err := service.CreateReview(context.Background(), authzentities.Requester{}, "t1", "drive-by", 5)
	if !errors.Is(err, authzerrors.ErrAuthenticationRequired) {
		t.Fatalf("expected authentication required, got %v", err)
	}
}

func TestReviewOnUnknownTitleRejected(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, titleSet{})

	_, err := service.CreateReview(context.Background(), reader("u1"), "ghost", "nothing here", 5)
	if !errors.Is(err, domainerrors.ErrTitleNotFound) {
		t.Fatalf("expected title not found, got %v", err)
	}
}

func TestOnlyAuthorOrModeratorMutatesReview(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, titleSet{"t1": true})

	review, err := service.CreateReview(context.Background(), reader("u1"), "t1", "mine", 6)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newScore := 9
	_, err = service.UpdateReview(context.Background(), reader("u2"), "t1", review.ReviewID, ports.ReviewPatch{Score: &newScore})
	if !errors.Is(err, authzerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}

	updated, err := service.UpdateReview(context.Background(), reader("u1"), "t1", review.ReviewID, ports.ReviewPatch{Score: &newScore})
	if err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	if updated.Score != 9 {
		t.Fatalf("expected score 9, got %d", updated.Score)
	}

	if err := service.DeleteReview(context.Background(), moderator(), "t1", review.ReviewID); err != nil {
		t.Fatalf("moderator delete failed: %v", err)
	}
	if _, err := service.GetReview(context.Background(), "t1", review.ReviewID); !errors.Is(err, domainerrors.ErrReviewNotFound) {
		t.Fatalf("expected review gone, got %v", err)
	}
}

func TestAverageScoreTracksReviews(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, titleSet{"t1": true, "t2": true})

	empty, err := store.AverageScore(context.Background(), "t2")
	if err != nil {
		t.Fatalf("average failed: %v", err)
	}
	if empty != nil {
		t.Fatalf("expected nil rating for unreviewed title, got %v", *empty)
	}

	for i, score := range []int{7, 8, 9} {
		author := reader(string(rune('a' + i)))
		if _, err := service.CreateReview(context.Background(), author, "t1", "graded", score); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}
	avg, err := store.AverageScore(context.Background(), "t1")
	if err != nil {
		t.Fatalf("average failed: %v", err)
	}
	if avg == nil || *avg != 8 {
		t.Fatalf("expected average 8, got %v", avg)
	}
}

func TestCommentLifecycle(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, titleSet{"t1": true})

	review, err := service.CreateReview(context.Background(), reader("u1"), "t1", "review", 7)
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	comment, err := service.CreateComment(context.Background(), reader("u2"), "t1", review.ReviewID, "agreed")
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	// Unlike reviews, a second comment by the same author is allowed.
	if _, err := service.CreateComment(context.Background(), reader("u2"), "t1", review.ReviewID, "still agreed"); err != nil {
		t.Fatalf("second comment rejected: %v", err)
	}

	_, err = service.UpdateComment(context.Background(), reader("u3"), "t1", review.ReviewID, comment.CommentID, "hijack")
	if !errors.Is(err, authzerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}

	if err := service.DeleteComment(context.Background(), moderator(), "t1", review.ReviewID, comment.CommentID); err != nil {
		t.Fatalf("moderator delete failed: %v", err)
	}
	comments, err := service.ListComments(context.Background(), "t1", review.ReviewID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected one remaining comment, got %d", len(comments))
	}
}

func TestCommentTextLimits(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, titleSet{"t1": true})

	review, err := service.CreateReview(context.Background(), reader("u1"), "t1", "review", 7)
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	long := make([]byte, maxCommentText+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = service.CreateComment(context.Background(), reader("u2"), "t1", review.ReviewID, string(long))
	if !errors.Is(err, domainerrors.ErrEmptyText) {
		t.Fatalf("expected text rejection, got %v", err)
	}
	_, err = service.CreateComment(context.Background(), reader("u2"), "t1", review.ReviewID, "   ")
	if !errors.Is(err, domainerrors.ErrEmptyText) {
		t.Fatalf("expected blank rejection, got %v", err)
	}
}

func TestDeletingReviewDropsItsComments(t *testing.T) {
	store := memory.NewStore()
	service := newService(store, titleSet{"t1": true})

	review, err := service.CreateReview(context.Background(), reader("u1"), "t1", "review", 7)
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if _, err := service.CreateComment(context.Background(), reader("u2"), "t1", review.ReviewID, "note"); err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	if err := service.DeleteReview(context.Background(), reader("u1"), "t1", review.ReviewID); err != nil {
		t.Fatalf("delete review failed: %v", err)
	}
	if _, err := service.ListComments(context.Background(), "t1", review.ReviewID); !errors.Is(err, domainerrors.ErrReviewNotFound) {
		t.Fatalf("expected review not found, got %v", err)
	}
}
