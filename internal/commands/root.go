// Package commands wires the bankbook CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankbook-dev/bankbook/internal/buildinfo"
	"github.com/bankbook-dev/bankbook/internal/config"
	"github.com/bankbook-dev/bankbook/internal/ledger"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bankbook",
		Short:   "Bank-export reconciliation ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newTaxCommand())
	rootCmd.AddCommand(newClearCommand())
	rootCmd.AddCommand(newNotifyCommand())

	return rootCmd
}

// openStore loads config, opens the ledger store, and initializes the
// schema. The caller owns the returned store.
func openStore(configPath string) (*config.Config, *ledger.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	store, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Initialize(); err != nil {
		store.Close()
		return nil, nil, err
	}
	return cfg, store, nil
}
