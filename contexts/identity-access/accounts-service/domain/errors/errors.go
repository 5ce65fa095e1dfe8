package errors

import "errors"

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrEmailTaken       = errors.New("email is already taken")
	ErrInvalidUsername  = errors.New("username contains forbidden characters")
	ErrReservedUsername = errors.New("username is reserved")
	ErrInvalidEmail     = errors.New("email is invalid")
	ErrUnknownRole      = errors.New("unknown role")
)
