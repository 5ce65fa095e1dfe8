package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "ratehub/contexts/identity-access/accounts-service/domain/errors"
	"ratehub/contexts/identity-access/accounts-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

// AutoMigrate owns the accounts table schema; the signup side writes to
// the same table through its narrower model.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&accountModel{})
}

func (r *Repository) ListAccounts(ctx context.Context) ([]ports.Account, error) {
	var rows []accountModel
	err := r.db.WithContext(ctx).Order("username ASC").Find(&rows).Error
	if err != nil {
		return nil, r.logError("accounts_repo_list_failed", err)
	}
	out := make([]ports.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toAccount())
	}
	return out, nil
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (ports.Account, bool, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Account{}, false, nil
		}
		return ports.Account{}, false, r.logError("accounts_repo_get_failed", err, "username", username)
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
		Bio:       account.Bio,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		CreatedAt: account.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if pgErr := uniqueViolation(err); pgErr != nil {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return ports.Account{}, domainerrors.ErrEmailTaken
			}
			return ports.Account{}, domainerrors.ErrUsernameTaken
		}
		return ports.Account{}, r.logError("accounts_repo_create_failed", err, "username", account.Username)
	}
	return row.toAccount(), nil
}

func (r *Repository) UpdateAccount(ctx context.Context, username string, patch ports.AccountPatch) (ports.Account, error) {
	assignments := map[string]any{}
	if patch.Email != nil {
		assignments["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		assignments["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		assignments["last_name"] = *patch.LastName
	}
	if patch.Bio != nil {
		assignments["bio"] = *patch.Bio
	}
	if patch.Role != nil {
		assignments["role"] = *patch.Role
	}

	if len(assignments) > 0 {
		update := r.db.WithContext(ctx).
			Model(&accountModel{}).
			Where("username = ?", strings.TrimSpace(username)).
			Updates(assignments)
		if update.Error != nil {
			if pgErr := uniqueViolation(update.Error); pgErr != nil {
				return ports.Account{}, domainerrors.ErrEmailTaken
			}
			return ports.Account{}, r.logError("accounts_repo_update_failed", update.Error, "username", username)
		}
		if update.RowsAffected == 0 {
			return ports.Account{}, domainerrors.ErrAccountNotFound
		}
	}

	account, found, err := r.GetByUsername(ctx, username)
	if err != nil {
		return ports.Account{}, err
	}
	if !found {
		return ports.Account{}, domainerrors.ErrAccountNotFound
	}
	return account, nil
}

func (r *Repository) DeleteAccount(ctx context.Context, username string) error {
	del := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		Delete(&accountModel{})
	if del.Error != nil {
		return r.logError("accounts_repo_delete_failed", del.Error, "username", username)
	}
	if del.RowsAffected == 0 {
		return domainerrors.ErrAccountNotFound
	}
	return nil
}

func (m accountModel) toAccount() ports.Account {
	return ports.Account{
		AccountID: m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Role:      m.Role,
		Superuser: m.Superuser,
		Bio:       m.Bio,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		CreatedAt: m.CreatedAt,
	}
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/accounts-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("accounts repository operation failed", fields...)
	return err
}

func uniqueViolation(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr
	}
	return nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Repository)(nil)
