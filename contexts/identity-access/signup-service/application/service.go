package application

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	domainerrors "ratehub/contexts/identity-access/signup-service/domain/errors"
	"ratehub/contexts/identity-access/signup-service/domain/services"
	"ratehub/contexts/identity-access/signup-service/ports"
)

const defaultRole = "user"

// Service implements the two-step confirmation-code protocol.
//
// A confirmation code stays valid until the next signup for the same
// account overwrites it; a successful token exchange does not consume it.
type Service struct {
	Accounts ports.AccountDirectory
	Codes    ports.ConfirmationCodeStore
	CodeGen  ports.CodeGenerator
	Notifier ports.Notifier
	Tokens   ports.TokenIssuer
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// SignUp validates the pair, creates the account on first contact or
// re-uses the existing one when (username, email) match exactly, then
// issues a fresh confirmation code and hands it to the notifier. The code
// never appears in the returned account.
func (s Service) SignUp(ctx context.Context, username string, email string) (ports.Account, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := services.ValidateUsername(username); err != nil {
		return ports.Account{}, err
	}
	if err := services.ValidateEmail(email); err != nil {
		return ports.Account{}, err
	}

	byUsername, usernameExists, err := s.Accounts.FindByUsername(ctx, username)
	if err != nil {
		return ports.Account{}, err
	}
	_, emailExists, err := s.Accounts.FindByEmail(ctx, email)
	if err != nil {
		return ports.Account{}, err
	}

	var account ports.Account
	switch {
	case usernameExists && byUsername.Email == email:
		// Idempotent resend for the exact existing pair.
		account = byUsername
	case usernameExists:
		return ports.Account{}, domainerrors.ErrUsernameTaken
	case emailExists:
		return ports.Account{}, domainerrors.ErrEmailTaken
	default:
		id, err := s.IDGen.NewID(ctx)
		if err != nil {
			return ports.Account{}, err
		}
		account, err = s.Accounts.CreateAccount(ctx, ports.Account{
			AccountID: id,
			Username:  username,
			Email:     email,
			Role:      defaultRole,
			CreatedAt: s.now(),
		})
		if err != nil {
			return ports.Account{}, err
		}
	}

	code, err := s.CodeGen.NewCode()
	if err != nil {
		return ports.Account{}, err
	}
	if err := s.Codes.PutCode(ctx, ports.ConfirmationCode{
		AccountID: account.AccountID,
		Code:      code,
		IssuedAt:  s.now(),
	}); err != nil {
		return ports.Account{}, err
	}
	if err := s.Notifier.SendConfirmationCode(ctx, account.Email, account.Username, code); err != nil {
		return ports.Account{}, err
	}

	resolveLogger(s.Logger).Info("confirmation code issued",
		"event", "signup_confirmation_code_issued",
		"module", "identity-access/signup-service",
		"layer", "application",
		"account_id", account.AccountID,
		"username", account.Username,
	)
	return account, nil
}

// IssueToken exchanges (username, code) for an access token. The code is
// compared in constant time; a mismatch reports the same error whether the
// code is stale, wrong, or was never issued.
func (s Service) IssueToken(ctx context.Context, username string, code string) (ports.AccessToken, error) {
	username = strings.TrimSpace(username)
	if err := services.ValidateUsername(username); err != nil {
		return ports.AccessToken{}, err
	}
	if strings.TrimSpace(code) == "" {
		return ports.AccessToken{}, domainerrors.ErrInvalidConfirmationCode
	}

	account, found, err := s.Accounts.FindByUsername(ctx, username)
	if err != nil {
		return ports.AccessToken{}, err
	}
	if !found {
		return ports.AccessToken{}, domainerrors.ErrAccountNotFound
	}

	current, issued, err := s.Codes.GetCode(ctx, account.AccountID)
	if err != nil {
		return ports.AccessToken{}, err
	}
	if !issued || subtle.ConstantTimeCompare([]byte(current.Code), []byte(code)) != 1 {
		return ports.AccessToken{}, domainerrors.ErrInvalidConfirmationCode
	}

	token, err := s.Tokens.Issue(account, s.now())
	if err != nil {
		return ports.AccessToken{}, err
	}

	resolveLogger(s.Logger).Info("access token issued",
		"event", "signup_access_token_issued",
		"module", "identity-access/signup-service",
		"layer", "application",
		"account_id", account.AccountID,
		"username", account.Username,
	)
	return token, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
