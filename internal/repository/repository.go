package repository

import (
	"context"

	"github.com/splax/localvercel/accounts/internal/domain"
)

// AccountRepository persists accounts.
type AccountRepository interface {
	Add(ctx context.Context, input domain.AddAccountInput) (*domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
}
