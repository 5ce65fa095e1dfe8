package ports

import (
	"context"
	"time"
)

type Account struct {
	AccountID string
	Username  string
	Email     string
	Role      string
	Superuser bool
	FirstName string
	LastName  string
	Bio       string
	CreatedAt time.Time
}

// AccountPatch carries partial updates; nil fields are left untouched.
type AccountPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

type Repository interface {
	ListAccounts(ctx context.Context) ([]Account, error)
	GetByUsername(ctx context.Context, username string) (Account, bool, error)
	CreateAccount(ctx context.Context, account Account) (Account, error)
	UpdateAccount(ctx context.Context, username string, patch AccountPatch) (Account, error)
	DeleteAccount(ctx context.Context, username string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
