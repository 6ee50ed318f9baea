package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splax/localvercel/accounts/internal/app/migrate"
	"github.com/splax/localvercel/accounts/internal/repository/postgres"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var target int64
	cmd := &cobra.Command{
		Use:       "migrate [up|status|down]",
		Short:     "Manage the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "status", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), "migrate", cfg)
			ctx := cmd.Context()

			pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer pool.Close()
			runner, err := migrate.New(pool, migrationsFS(cfg), log)
			if err != nil {
				return fmt.Errorf("configure migration runner: %w", err)
			}
			defer runner.Close()

			switch args[0] {
			case "up":
				err = runner.Ensure(ctx)
			case "status":
				err = runner.Status(ctx)
			case "down":
				err = runner.Down(ctx, target)
			}
			if err != nil {
				return err
			}
			log.Info("migration command completed", "command", args[0])
			return nil
		},
	}
	cmd.Flags().Int64Var(&target, "target", 0, "target version for down (optional)")
	return cmd
}
