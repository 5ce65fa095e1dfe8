package errors

import "errors"

var (
	ErrInvalidUsername         = errors.New("username contains forbidden characters")
	ErrReservedUsername        = errors.New("username is reserved")
	ErrInvalidEmail            = errors.New("email is invalid")
	ErrUsernameTaken           = errors.New("username is bound to a different email")
	ErrEmailTaken              = errors.New("email is bound to a different username")
	ErrAccountNotFound         = errors.New("account not found")
	ErrInvalidConfirmationCode = errors.New("confirmation code is invalid")
)
