package cli

import (
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/splax/localvercel/accounts/db/migrations"
	"github.com/splax/localvercel/accounts/internal/controller/signup"
	"github.com/splax/localvercel/accounts/internal/service/account"
	"github.com/splax/localvercel/accounts/pkg/config"
	"github.com/splax/localvercel/accounts/pkg/crypto"
	"github.com/splax/localvercel/accounts/pkg/logger"
	"github.com/splax/localvercel/accounts/pkg/validate"
)

func loadConfig(opts *rootOptions) (config.APIConfig, error) {
	return config.LoadAPIConfigFile(opts.configPath)
}

func newLogger(w io.Writer, service string, cfg config.APIConfig) *slog.Logger {
	return logger.NewWithWriter(w, service, logger.ParseLevel(cfg.LogLevel))
}

// migrationsFS returns the embedded schema unless a directory override is set.
func migrationsFS(cfg config.APIConfig) fs.FS {
	if cfg.MigrationsDir == "" {
		return migrations.FS
	}
	return os.DirFS(cfg.MigrationsDir)
}

// NewSignupController wires the sign-up controller over the given repository.
func NewSignupController(cfg config.APIConfig, repo account.AddAccountRepository, log *slog.Logger) (*signup.Controller, error) {
	encrypter, err := crypto.NewBcryptEncrypter(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	svc := account.New(encrypter, repo, log)
	return signup.New(validate.NewEmailValidator(), svc, log), nil
}
