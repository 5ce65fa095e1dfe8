package services

import (
	"net/mail"
	"regexp"
	"strings"

	domainerrors "ratehub/contexts/identity-access/accounts-service/domain/errors"
)

const (
	maxUsernameLength = 150
	maxEmailLength    = 254
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidateUsername applies the same username rules the signup protocol
// enforces; admin-created accounts get no exemption.
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
