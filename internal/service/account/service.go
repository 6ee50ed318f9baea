package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/splax/localvercel/accounts/internal/domain"
)

var errNoAccount = errors.New("account repository returned no account")

// Encrypter hashes plaintext secrets.
type Encrypter interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
}

// AddAccountRepository persists new accounts.
type AddAccountRepository interface {
	Add(ctx context.Context, input domain.AddAccountInput) (*domain.Account, error)
}

// Service creates accounts by hashing the password and persisting the result.
type Service struct {
	encrypter Encrypter
	accounts  AddAccountRepository
	logger    *slog.Logger
}

// New constructs a Service.
func New(encrypter Encrypter, accounts AddAccountRepository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return Service{encrypter: encrypter, accounts: accounts, logger: logger}
}

// Add hashes the password and stores the account. Collaborator errors are
// returned unchanged.
func (s Service) Add(ctx context.Context, input domain.AddAccountInput) (*domain.Account, error) {
	hash, err := s.encrypter.Encrypt(ctx, input.Password)
	if err != nil {
		return nil, err
	}
	input.Password = hash
	account, err := s.accounts.Add(ctx, input)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errNoAccount
	}
	s.logger.Info("account created", "account_id", account.ID)
	return account, nil
}
