package errors

import "errors"

var (
	ErrDuplicateReview = errors.New("a review by this author already exists for this title")
	ErrReviewNotFound  = errors.New("review not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrTitleNotFound   = errors.New("title not found")
	ErrInvalidScore    = errors.New("score must be between 1 and 10")
	ErrEmptyText       = errors.New("text is required")
)
