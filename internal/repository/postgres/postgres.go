package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/splax/localvercel/accounts/internal/domain"
	"github.com/splax/localvercel/accounts/internal/repository"
)

const uniqueViolation = "23505"

// Repository implements account persistence on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool, now: func() time.Time { return time.Now().UTC() }}
}

var _ repository.AccountRepository = (*Repository)(nil)

// Add inserts an account and returns the stored record.
func (r *Repository) Add(ctx context.Context, input domain.AddAccountInput) (*domain.Account, error) {
	const query = `INSERT INTO accounts (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, created_at`
	row := r.pool.QueryRow(ctx, query, uuid.NewString(), input.Name, input.Email, input.Password, r.now())
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, err
	}
	return &a, nil
}

// GetAccountByEmail fetches an account by email.
func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `SELECT id, name, email, password_hash, created_at FROM accounts WHERE email = $1`
	row := r.pool.QueryRow(ctx, query, email)
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
