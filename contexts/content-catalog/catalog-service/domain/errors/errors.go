package errors

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrSlugTaken        = errors.New("slug is already taken")
	ErrInvalidName      = errors.New("name is missing or too long")
	ErrInvalidSlug      = errors.New("slug is missing or malformed")
	ErrInvalidYear      = errors.New("year must not be in the future")
)
