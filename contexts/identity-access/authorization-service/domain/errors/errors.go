package errors

import "errors"

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrForbidden              = errors.New("forbidden")
	ErrUnknownRole            = errors.New("unknown role")
	ErrUnknownAction          = errors.New("unknown action")
)
