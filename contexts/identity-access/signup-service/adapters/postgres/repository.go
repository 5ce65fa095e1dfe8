package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "ratehub/contexts/identity-access/signup-service/domain/errors"
	"ratehub/contexts/identity-access/signup-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

type accountModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Username  string    `gorm:"column:username;uniqueIndex:accounts_username_key"`
	Email     string    `gorm:"column:email;uniqueIndex:accounts_email_key"`
	Role      string    `gorm:"column:role"`
	Superuser bool      `gorm:"column:superuser"`
	Bio       string    `gorm:"column:bio"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (accountModel) TableName() string { return "accounts" }

type confirmationCodeModel struct {
	AccountID string    `gorm:"column:account_id;primaryKey"`
	Code      string    `gorm:"column:code"`
	IssuedAt  time.Time `gorm:"column:issued_at"`
}

func (confirmationCodeModel) TableName() string { return "confirmation_codes" }

// AutoMigrate covers only the codes table; the accounts table schema is
// owned by the accounts-service adapter.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&confirmationCodeModel{})
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (ports.Account, bool, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Account{}, false, nil
		}
		return ports.Account{}, false, r.logError("signup_repo_find_by_username_failed", err, "username", username)
	}
	return row.toAccount(), true, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (ports.Account, bool, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.TrimSpace(email)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Account{}, false, nil
		}
		return ports.Account{}, false, r.logError("signup_repo_find_by_email_failed", err, "email", email)
	}
	return row.toAccount(), true, nil
}

func (r *Repository) CreateAccount(ctx context.Context, account ports.Account) (ports.Account, error) {
	row := accountModel{
		ID:        account.AccountID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      account.Role,
		Superuser: account.Superuser,
		CreatedAt: account.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		// Concurrent signups can lose the race after the pre-check; the
		// unique constraints are authoritative.
		if pgErr := uniqueViolation(err); pgErr != nil {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return ports.Account{}, domainerrors.ErrEmailTaken
			}
			return ports.Account{}, domainerrors.ErrUsernameTaken
		}
		return ports.Account{}, r.logError("signup_repo_create_account_failed", err,
			"username", account.Username,
		)
	}
	return row.toAccount(), nil
}

func (r *Repository) PutCode(ctx context.Context, code ports.ConfirmationCode) error {
	row := confirmationCodeModel{
		AccountID: code.AccountID,
		Code:      code.Code,
		IssuedAt:  code.IssuedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"code":      row.Code,
			"issued_at": row.IssuedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("signup_repo_put_code_failed", err, "account_id", code.AccountID)
	}
	return nil
}

func (r *Repository) GetCode(ctx context.Context, accountID string) (ports.ConfirmationCode, bool, error) {
	var row confirmationCodeModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ConfirmationCode{}, false, nil
		}
		return ports.ConfirmationCode{}, false, r.logError("signup_repo_get_code_failed", err, "account_id", accountID)
	}
	return ports.ConfirmationCode{
		AccountID: row.AccountID,
		Code:      row.Code,
		IssuedAt:  row.IssuedAt,
	}, true, nil
}

// DeleteCodesIssuedBefore prunes codes older than the cutoff. Used by the
// worker janitor; a pruned code simply forces a fresh signup request.
func (r *Repository) DeleteCodesIssuedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("issued_at < ?", cutoff).
		Delete(&confirmationCodeModel{})
	if result.Error != nil {
		return 0, r.logError("signup_repo_prune_codes_failed", result.Error)
	}
	return result.RowsAffected, nil
}

func (m accountModel) toAccount() ports.Account {
	return ports.Account{
		AccountID: m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Role:      m.Role,
		Superuser: m.Superuser,
		CreatedAt: m.CreatedAt,
	}
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/signup-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("signup repository operation failed", fields...)
	return err
}

func uniqueViolation(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr
	}
	return nil
}

var _ ports.AccountDirectory = (*Repository)(nil)
var _ ports.ConfirmationCodeStore = (*Repository)(nil)
