package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/dtroode/twofactor-server/internal/model"
)

type record struct {
	activated   bool
	credentials model.CredentialSet
	version     uint64
}

// Store keeps accounts in process memory. It is meant for development and tests.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]record
}

func NewStore() *Store {
	return &Store{accounts: make(map[string]record)}
}

// Create provisions an account. It fails with ErrAlreadyExists if the id is taken.
func (s *Store) Create(_ context.Context, id string, activated bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; ok {
		return fmt.Errorf("account %s: %w", id, model.ErrAlreadyExists)
	}
	s.accounts[id] = record{
		activated:   activated,
		credentials: model.Account{}.CredentialSet(),
		version:     1,
	}
	return nil
}

func (s *Store) Get(_ context.Context, id string) (model.Account, error) {
	s.mu.RLock()
	rec, ok := s.accounts[id]
	s.mu.RUnlock()
	if !ok {
		return model.Account{}, model.ErrNotFound
	}

	acc := model.Account{
		ID:        id,
		Activated: rec.activated,
		Version:   strconv.FormatUint(rec.version, 10),
	}
	if err := acc.SetCredentials(rec.credentials); err != nil {
		return model.Account{}, fmt.Errorf("failed to decode account %s: %w", id, err)
	}
	return acc, nil
}

func (s *Store) IsActivated(account model.Account) bool {
	return account.Activated
}

// Put replaces the account credentials if the stored version still matches.
func (s *Store) Put(_ context.Context, account model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.accounts[account.ID]
	if !ok {
		return model.ErrNotFound
	}
	if strconv.FormatUint(rec.version, 10) != account.Version {
		return model.ErrConflict
	}

	rec.credentials = account.CredentialSet()
	rec.version++
	s.accounts[account.ID] = rec
	return nil
}
