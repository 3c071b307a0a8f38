package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Read back stored ledger data",
	}
	reportCmd.AddCommand(newReportTransactionsCommand())
	reportCmd.AddCommand(newReportBalancesCommand())
	return reportCmd
}

func newReportTransactionsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List all stored transactions, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.ListAllTransactions()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, rec := range records {
				fmt.Fprintf(out, "%s  %10s  %-24s  %-16s  %s\n",
					rec.Date, rec.Amount.StringFixed(2), rec.Account, rec.Category, rec.Description)
			}
			fmt.Fprintf(out, "%d transactions\n", len(records))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "bankbook.yaml", "config file")
	return cmd
}

func newReportBalancesCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "List balance snapshots, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			snaps, err := store.ListBalanceHistory()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, snap := range snaps {
				fmt.Fprintf(out, "%s  %-24s  %s\n", snap.Date, snap.Account, snap.Balance.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "bankbook.yaml", "config file")
	return cmd
}
