package migrate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/lock"
)

const commandTimeout = time.Minute

// Runner applies the accounts schema through a goose Provider sharing the
// service's pgx pool. A Postgres advisory lock keeps concurrent replicas from
// migrating at the same time.
type Runner struct {
	provider *goose.Provider
	log      *slog.Logger
}

// New builds a Runner over the SQL files in migrations. It does not touch the
// database until a command runs.
func New(pool *pgxpool.Pool, migrations fs.FS, log *slog.Logger) (*Runner, error) {
	if pool == nil {
		return nil, errors.New("nil pool provided")
	}
	if migrations == nil {
		return nil, errors.New("nil migrations filesystem")
	}
	if log == nil {
		log = slog.Default()
	}
	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return nil, fmt.Errorf("create migration lock: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, stdlib.OpenDBFromPool(pool), migrations,
		goose.WithSessionLocker(locker),
		goose.WithSlog(log),
	)
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	return &Runner{provider: provider, log: log}, nil
}

// Ensure applies pending migrations.
func (r *Runner) Ensure(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	results, err := r.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	r.log.Info("migrations applied", "count", len(results))
	return nil
}

// Status logs each known migration with its state.
func (r *Runner) Status(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	statuses, err := r.provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	for _, s := range statuses {
		attrs := []any{"version", s.Source.Version, "path", s.Source.Path, "state", string(s.State)}
		if !s.AppliedAt.IsZero() {
			attrs = append(attrs, "applied_at", s.AppliedAt)
		}
		r.log.Info("migration", attrs...)
	}
	return nil
}

// Down rolls back the latest migration, or every migration above
// targetVersion when it is positive.
func (r *Runner) Down(ctx context.Context, targetVersion int64) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	if targetVersion > 0 {
		results, err := r.provider.DownTo(ctx, targetVersion)
		if err != nil {
			return fmt.Errorf("rollback to version %d: %w", targetVersion, err)
		}
		r.log.Info("rollback complete", "target", targetVersion, "count", len(results))
		return nil
	}
	result, err := r.provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("rollback latest migration: %w", err)
	}
	r.log.Info("rollback complete", "version", result.Source.Version)
	return nil
}

// Close releases the database/sql handle. The pool stays open.
func (r *Runner) Close() error {
	return r.provider.Close()
}
