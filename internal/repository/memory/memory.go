package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/splax/localvercel/accounts/internal/domain"
	"github.com/splax/localvercel/accounts/internal/repository"
)

// Repository keeps accounts in process memory.
type Repository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

// New returns an empty Repository.
func New() *Repository {
	return &Repository{accounts: make(map[string]domain.Account)}
}

var _ repository.AccountRepository = (*Repository)(nil)

// Add stores an account keyed by email.
func (r *Repository) Add(ctx context.Context, input domain.AddAccountInput) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[input.Email]; exists {
		return nil, repository.ErrDuplicateEmail
	}
	account := domain.Account{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		CreatedAt: time.Now().UTC(),
	}
	r.accounts[input.Email] = account
	return &account, nil
}

// GetAccountByEmail returns a copy of the stored account.
func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &account, nil
}

