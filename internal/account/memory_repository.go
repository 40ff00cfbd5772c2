package account

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	accounts []Account
}

// NewMemoryRepository builds an in-memory account directory for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) FindByIdentifier(_ context.Context, identifier string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, acc := range r.accounts {
		if acc.Username == identifier || acc.Email == identifier {
			return acc, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *memoryRepository) Create(_ context.Context, acc Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Username == acc.Username || existing.Email == acc.Email {
			return ErrDuplicate
		}
	}
	r.accounts = append(r.accounts, acc)
	return nil
}
