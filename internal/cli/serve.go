package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/splax/localvercel/accounts/internal/app/migrate"
	httpx "github.com/splax/localvercel/accounts/internal/http"
	"github.com/splax/localvercel/accounts/internal/repository/postgres"
	"github.com/splax/localvercel/accounts/pkg/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return RunServer(ctx, cfg, newLogger(cmd.OutOrStdout(), "accounts-api", cfg))
		},
	}
}

// RunServer connects to the database, wires the sign-up pipeline and serves
// HTTP until ctx is canceled.
func RunServer(ctx context.Context, cfg config.APIConfig, log *slog.Logger) error {
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		runner, err := migrate.New(pool, migrationsFS(cfg), log)
		if err != nil {
			return fmt.Errorf("configure migrations: %w", err)
		}
		err = runner.Ensure(ctx)
		_ = runner.Close()
		if err != nil {
			return err
		}
	}

	ctrl, err := NewSignupController(cfg, postgres.New(pool), log)
	if err != nil {
		return err
	}

	router := httpx.NewRouter(log, ctrl, newSignupLimiter(cfg, log), pool.Ping)
	defer router.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		log.Info("api server starting", "addr", cfg.Addr)
		errorCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		log.Info("api server stopped")
		return nil
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}

// newSignupLimiter prefers a Redis-backed limiter shared across replicas and
// falls back to a process-local one. A non-positive limit disables limiting.
func newSignupLimiter(cfg config.APIConfig, log *slog.Logger) httpx.SignupLimiter {
	if cfg.SignupRateLimit <= 0 {
		return nil
	}
	if addr := strings.TrimSpace(cfg.RateLimitRedisAddr); addr != "" {
		limiter, err := httpx.NewRedisSignupLimiter(addr, cfg.RateLimitRedisPass, cfg.RateLimitRedisDB, cfg.SignupRateLimit, log)
		if err == nil {
			return limiter
		}
		log.Warn("redis signup limiter unavailable, limiting per process", "error", err)
	}
	return httpx.NewMemorySignupLimiter(cfg.SignupRateLimit)
}
