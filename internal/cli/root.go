package cli

import "github.com/spf13/cobra"

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "accountctl",
		Short:         "Manage the accounts sign-up service",
		Long:          "accountctl runs the accounts HTTP API, registers accounts from the command line and manages the database schema.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file overlaid on environment settings")
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newSignupCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
