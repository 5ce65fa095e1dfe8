package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ratehub/contexts/identity-access/signup-service/ports"

	"github.com/google/uuid"
)

// Delivery is a recorded outbound confirmation email, exposed so tests can
// read the code the way a user would read their inbox.
type Delivery struct {
	Email    string
	Username string
	Code     string
}

// Store is an in-memory adapter implementing the directory, code store,
// notifier, clock, id and code generator ports. Intended for tests and
// local development wiring.
type Store struct {
	mu sync.RWMutex

	accounts   map[string]ports.Account          // by account id
	codes      map[string]ports.ConfirmationCode // by account id
	deliveries []Delivery
	codeSeq    int
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]ports.Account),
		codes:    make(map[string]ports.ConfirmationCode),
	}
}

func (s *Store) FindByUsername(_ context.Context, username string) (ports.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if account.Username == username {
			return account, true, nil
		}
	}
	return ports.Account{}, false, nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (ports.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if account.Email == email {
			return account, true, nil
		}
	}
	return ports.Account{}, false, nil
}

func (s *Store) CreateAccount(_ context.Context, account ports.Account) (ports.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountID] = account
	return account, nil
}

// SeedAccount inserts an account directly, bypassing the protocol. Test helper.
func (s *Store) SeedAccount(account ports.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountID] = account
}

func (s *Store) PutCode(_ context.Context, code ports.ConfirmationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code.AccountID] = code
	return nil
}

func (s *Store) GetCode(_ context.Context, accountID string) (ports.ConfirmationCode, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.codes[accountID]
	return code, ok, nil
}

func (s *Store) DeleteCodesIssuedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pruned int64
	for accountID, code := range s.codes {
		if code.IssuedAt.Before(cutoff) {
			delete(s.codes, accountID)
			pruned++
		}
	}
	return pruned, nil
}

func (s *Store) SendConfirmationCode(_ context.Context, email string, username string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, Delivery{Email: email, Username: username, Code: code})
	return nil
}

// LastDelivery returns the most recent recorded email for an address.
func (s *Store) LastDelivery(email string) (Delivery, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.deliveries) - 1; i >= 0; i-- {
		if s.deliveries[i].Email == email {
			return s.deliveries[i], true
		}
	}
	return Delivery{}, false
}

func (s *Store) DeliveryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deliveries)
}

func (s *Store) NewCode() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codeSeq++
	return fmt.Sprintf("code-%06d", s.codeSeq), nil
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.AccountDirectory = (*Store)(nil)
var _ ports.ConfirmationCodeStore = (*Store)(nil)
var _ ports.CodeGenerator = (*Store)(nil)
var _ ports.Notifier = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
