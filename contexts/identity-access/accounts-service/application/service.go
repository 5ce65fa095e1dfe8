package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	authzservices "ratehub/contexts/identity-access/authorization-service/domain/services"
	domainerrors "ratehub/contexts/identity-access/accounts-service/domain/errors"
	"ratehub/contexts/identity-access/accounts-service/domain/services"
	"ratehub/contexts/identity-access/accounts-service/ports"
)

// Service manages account records: full admin management keyed by
// username, plus the requester's own profile. Every mutation passes
// through the policy engine; the role field is only writable with the
// account-management capability.
type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type NewAccount struct {
	Username  string
	Email     string
	Role      string
	FirstName string
	LastName  string
	Bio       string
}

func (s Service) ListAccounts(ctx context.Context, requester authzentities.Requester) ([]ports.Account, error) {
	err := authzservices.Evaluate(requester,
		authzentities.Action{Verb: authzentities.VerbRead, Class: authzentities.ResourceAccount},
		authzentities.Resource{})
	if err != nil {
		return nil, err
	}
	return s.Repo.ListAccounts(ctx)
}

func (s Service) GetAccount(ctx context.Context, requester authzentities.Requester, username string) (ports.Account, error) {
	username = strings.TrimSpace(username)
	err := authzservices.Evaluate(requester,
		authzentities.Action{Verb: authzentities.VerbRead, Class: authzentities.ResourceAccount},
		s.resourceFor(requester, username))
	if err != nil {
		return ports.Account{}, err
	}
	account, found, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return ports.Account{}, err
	}
	if !found {
		return ports.Account{}, domainerrors.ErrAccountNotFound
	}
	return account, nil
}

func (s Service) CreateAccount(ctx context.Context, requester authzentities.Requester, input NewAccount) (ports.Account, error) {
	err := authzservices.Evaluate(requester,
		authzentities.Action{Verb: authzentities.VerbCreate, Class: authzentities.ResourceAccount},
		authzentities.Resource{})
	if err != nil {
		return ports.Account{}, err
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if err := services.ValidateUsername(input.Username); err != nil {
		return ports.Account{}, err
	}
	if err := services.ValidateEmail(input.Email); err != nil {
		return ports.Account{}, err
	}
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = string(authzentities.RoleUser)
	}
	if _, err := authzentities.ParseRole(role); err != nil {
		return ports.Account{}, domainerrors.ErrUnknownRole
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Account{}, err
	}
	account, err := s.Repo.CreateAccount(ctx, ports.Account{
		AccountID: id,
		Username:  input.Username,
		Email:     input.Email,
		Role:      role,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		CreatedAt: s.now(),
	})
	if err != nil {
		return ports.Account{}, err
	}

	resolveLogger(s.Logger).Info("account created",
		"event", "accounts_account_created",
		"module", "identity-access/accounts-service",
		"layer", "application",
		"account_id", account.AccountID,
		"username", account.Username,
		"role", account.Role,
	)
	return account, nil
}

func (s Service) UpdateAccount(ctx context.Context, requester authzentities.Requester, username string, patch ports.AccountPatch) (ports.Account, error) {
	username = strings.TrimSpace(username)
	resource := s.resourceFor(requester, username)
	resource.RoleChange = patch.Role != nil
	err := authzservices.Evaluate(requester,
		authzentities.Action{Verb: authzentities.VerbUpdate, Class: authzentities.ResourceAccount},
		resource)
	if err != nil {
		return ports.Account{}, err
	}

	if patch.Email != nil {
		trimmed := strings.TrimSpace(*patch.Email)
		if err := services.ValidateEmail(trimmed); err != nil {
			return ports.Account{}, err
		}
		patch.Email = &trimmed
	}
	if patch.Role != nil {
		if _, err := authzentities.ParseRole(*patch.Role); err != nil {
			return ports.Account{}, domainerrors.ErrUnknownRole
		}
	}
	return s.Repo.UpdateAccount(ctx, username, patch)
}

func (s Service) DeleteAccount(ctx context.Context, requester authzentities.Requester, username string) error {
	username = strings.TrimSpace(username)
	err := authzservices.Evaluate(requester,
		authzentities.Action{Verb: authzentities.VerbDelete, Class: authzentities.ResourceAccount},
		s.resourceFor(requester, username))
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteAccount(ctx, username); err != nil {
		return err
	}
	resolveLogger(s.Logger).Info("account deleted",
		"event", "accounts_account_deleted",
		"module", "identity-access/accounts-service",
		"layer", "application",
		"username", username,
	)
	return nil
}

// GetSelf returns the requester's own profile.
func (s Service) GetSelf(ctx context.Context, requester authzentities.Requester) (ports.Account, error) {
	return s.GetAccount(ctx, requester, requester.Username)
}

// UpdateSelf patches the requester's non-role profile fields. Any role
// value in the patch is dropped before evaluation, so a plain user editing
// their profile is never denied for a field they cannot touch anyway.
func (s Service) UpdateSelf(ctx context.Context, requester authzentities.Requester, patch ports.AccountPatch) (ports.Account, error) {
	patch.Role = nil
	return s.UpdateAccount(ctx, requester, requester.Username, patch)
}

// resourceFor resolves the self case. Usernames key account records, so a
// requester targeting their own username always acts on their own record,
// whatever identifier their credential happens to carry.
func (s Service) resourceFor(requester authzentities.Requester, username string) authzentities.Resource {
	if requester.Authenticated && requester.Username == username {
		return authzentities.Resource{AccountID: requester.AccountID}
	}
	return authzentities.Resource{}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
