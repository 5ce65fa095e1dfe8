package ports

import (
	"context"
	"time"
)

// Account is the identity record this service creates and authenticates.
type Account struct {
	AccountID string
	Username  string
	Email     string
	Role      string
	Superuser bool
	CreatedAt time.Time
}

type AccountDirectory interface {
	FindByUsername(ctx context.Context, username string) (Account, bool, error)
	FindByEmail(ctx context.Context, email string) (Account, bool, error)
	CreateAccount(ctx context.Context, account Account) (Account, error)
}

// ConfirmationCode binds the latest issued code to one account.
// Issuance is last-writer-wins: storing a new code replaces the old one.
type ConfirmationCode struct {
	AccountID string
	Code      string
	IssuedAt  time.Time
}

type ConfirmationCodeStore interface {
	PutCode(ctx context.Context, code ConfirmationCode) error
	GetCode(ctx context.Context, accountID string) (ConfirmationCode, bool, error)
}

type CodeGenerator interface {
	NewCode() (string, error)
}

// Notifier delivers the confirmation code to the signup email.
type Notifier interface {
	SendConfirmationCode(ctx context.Context, email string, username string, code string) error
}

type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenIssuer signs a time-scoped credential carrying the account's
// identity and role at issuance time.
type TokenIssuer interface {
	Issue(account Account, now time.Time) (AccessToken, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
