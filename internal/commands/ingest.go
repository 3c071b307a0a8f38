package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bankbook-dev/bankbook/internal/aggregator"
	"github.com/bankbook-dev/bankbook/internal/logger"
	"github.com/bankbook-dev/bankbook/internal/model"
)

func newIngestCommand() *cobra.Command {
	var configPath string
	var importRoot string
	var reset bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest configured CSV exports into the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, configPath, importRoot, reset, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "bankbook.yaml", "config file")
	cmd.Flags().StringVar(&importRoot, "import-root", "", "also ingest CSVs from <root>/import/, one account per file")
	cmd.Flags().BoolVar(&reset, "reset", false, "wipe all stored data before ingesting (requires --yes)")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm destructive operations")

	return cmd
}

func runIngest(cmd *cobra.Command, configPath, importRoot string, reset, yes bool) error {
	cfg, store, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if reset {
		if !yes {
			return fmt.Errorf("--reset wipes all stored data; re-run with --yes to confirm")
		}
		if err := store.ClearAll(); err != nil {
			return fmt.Errorf("wiping ledger: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Ledger wiped.")
	}

	var sources []aggregator.Source
	for _, acc := range cfg.Accounts {
		sources = append(sources, aggregator.Source{
			Name: acc.Name,
			Type: acc.AccountType(),
			Path: acc.CSV,
			Goal: acc.Goal,
		})
	}

	var processed []string
	if importRoot != "" {
		files, err := aggregator.ScanImportDir(importRoot)
		if err != nil {
			return err
		}
		for _, f := range files {
			sources = append(sources, aggregator.Source{
				Name: f.AccountName(),
				Type: model.AccountTypeChecking,
				Path: f.Path,
			})
			processed = append(processed, f.Name)
		}
	}

	agg := aggregator.New(store, logger.New())
	view := agg.Ingest(sources)

	for _, name := range processed {
		if err := aggregator.MarkProcessed(importRoot, name); err != nil {
			return err
		}
	}

	printView(cmd, view)
	return nil
}

func printView(cmd *cobra.Command, view *model.View) {
	out := cmd.OutOrStdout()
	for _, name := range view.Names {
		data := view.Accounts[name]
		switch {
		case data.Degraded != "":
			fmt.Fprintf(out, "%-24s  unreadable: %s\n", name, data.Degraded)
		case data.Placeholder:
			fmt.Fprintf(out, "%-24s  no data\n", name)
		default:
			fmt.Fprintf(out, "%-24s  $%s  %d transactions\n", name, data.Balance.StringFixed(2), len(data.Transactions))
		}
	}

	if degraded := view.DegradedAccounts(); len(degraded) > 0 {
		fmt.Fprintf(out, "\nPartial ingestion: %s could not be read.\n", strings.Join(degraded, ", "))
	}
}
