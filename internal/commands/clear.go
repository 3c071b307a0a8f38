package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCommand() *cobra.Command {
	var configPath string
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Wipe all stored transactions and balance history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("clear wipes all stored data; re-run with --yes to confirm")
			}

			_, store, err := openStore(configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			// A wipe the user asked for must not fail silently.
			if err := store.ClearAll(); err != nil {
				return fmt.Errorf("wiping ledger: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Ledger wiped.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "bankbook.yaml", "config file")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")

	return cmd
}
