package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/splax/localvercel/accounts/internal/controller"
	httpx "github.com/splax/localvercel/accounts/internal/http"
	"github.com/splax/localvercel/accounts/internal/repository"
	"github.com/splax/localvercel/accounts/internal/repository/memory"
	"github.com/splax/localvercel/accounts/internal/repository/postgres"
	"github.com/splax/localvercel/accounts/pkg/crypto"
)

// signupFlags maps request fields to their flag names.
var signupFlags = []struct{ field, flag, usage string }{
	{"name", "name", "account holder name"},
	{"email", "email", "account email"},
	{"password", "password", "account password"},
	{"passwordConfirmation", "password-confirmation", "password repeated"},
}

type envelope struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body"`
}

func newSignupCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool
	values := make(map[string]*string, len(signupFlags))
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register an account",
		Long: "Runs the sign-up pipeline for the given fields and prints the response envelope as JSON on stdout. " +
			"Omitted flags are sent as missing fields. Logs go to stderr.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), "accountctl", cfg)
			ctx := cmd.Context()

			var repo repository.AccountRepository
			if dryRun {
				repo = memory.New()
			} else {
				pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
				if err != nil {
					return fmt.Errorf("connect database: %w", err)
				}
				defer pool.Close()
				repo = postgres.New(pool)
			}

			ctrl, err := NewSignupController(cfg, repo, log)
			if err != nil {
				return err
			}

			body := make(map[string]any, len(signupFlags))
			for _, f := range signupFlags {
				if cmd.Flags().Changed(f.flag) {
					body[f.field] = *values[f.field]
				}
			}
			res := ctrl.Handle(ctx, controller.Request{Body: body})

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(envelope{StatusCode: res.StatusCode, Body: httpx.MarshalBody(res.Body)}); err != nil {
				return err
			}
			if res.StatusCode != http.StatusOK {
				return fmt.Errorf("signup failed with status %d", res.StatusCode)
			}
			if err := verifyStored(ctx, repo, *values["email"], *values["password"]); err != nil {
				return err
			}
			log.Info("stored account verified", "email", *values["email"])
			return nil
		},
	}
	for _, f := range signupFlags {
		values[f.field] = cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "use an in-memory store instead of the database")
	return cmd
}

// verifyStored reads the account back and checks the stored hash matches the
// submitted password.
func verifyStored(ctx context.Context, repo repository.AccountRepository, email, password string) error {
	stored, err := repo.GetAccountByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("read back account: %w", err)
	}
	if err := crypto.ComparePassword(stored.Password, password); err != nil {
		return fmt.Errorf("stored password hash does not match: %w", err)
	}
	return nil
}
