package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainerrors "ratehub/contexts/identity-access/accounts-service/domain/errors"
	"ratehub/contexts/identity-access/accounts-service/ports"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the repository, clock and id
// generator ports. Intended for tests and local development wiring.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]ports.Account // by username
}

func NewStore() *Store {
	return &Store{accounts: make(map[string]ports.Account)}
}

func (s *Store) ListAccounts(_ context.Context) ([]ports.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		out = append(out, account)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *Store) GetByUsername(_ context.Context, username string) (ports.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[username]
	return account, ok, nil
}

func (s *Store) CreateAccount(_ context.Context, account ports.Account) (ports.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.Username]; exists {
		return ports.Account{}, domainerrors.ErrUsernameTaken
	}
	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return ports.Account{}, domainerrors.ErrEmailTaken
		}
	}
	s.accounts[account.Username] = account
	return account, nil
}

func (s *Store) UpdateAccount(_ context.Context, username string, patch ports.AccountPatch) (ports.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[username]
	if !ok {
		return ports.Account{}, domainerrors.ErrAccountNotFound
	}
	if patch.Email != nil {
		for _, existing := range s.accounts {
			if existing.Username != username && existing.Email == *patch.Email {
				return ports.Account{}, domainerrors.ErrEmailTaken
			}
		}
		account.Email = *patch.Email
	}
	if patch.FirstName != nil {
		account.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		account.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		account.Bio = *patch.Bio
	}
	if patch.Role != nil {
		account.Role = *patch.Role
	}
	s.accounts[username] = account
	return account, nil
}

func (s *Store) DeleteAccount(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[username]; !ok {
		return domainerrors.ErrAccountNotFound
	}
	delete(s.accounts, username)
	return nil
}

// SeedAccount inserts an account directly. Test helper.
func (s *Store) SeedAccount(account ports.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Username] = account
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
