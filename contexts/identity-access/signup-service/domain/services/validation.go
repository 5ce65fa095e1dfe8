package services

import (
	"net/mail"
	"regexp"
	"strings"

	domainerrors "ratehub/contexts/identity-access/signup-service/domain/errors"
)

const (
	maxUsernameLength = 150
	maxEmailLength    = 254
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidateUsername enforces the platform username rules: the restricted
// character set, the length cap, and the reserved literal "me" (the profile
// endpoint path segment), rejected in any letter case.
func ValidateUsername(username string) error {
	if username == "" || len(username) > maxUsernameLength {
		return domainerrors.ErrInvalidUsername
	}
	if !usernamePattern.MatchString(username) {
		return domainerrors.ErrInvalidUsername
	}
	if strings.EqualFold(username, "me") {
		return domainerrors.ErrReservedUsername
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" || len(email) > maxEmailLength {
		return domainerrors.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domainerrors.ErrInvalidEmail
	}
	return nil
}
