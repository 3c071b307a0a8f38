package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bankbook-dev/bankbook/internal/aggregator"
	"github.com/bankbook-dev/bankbook/internal/logger"
	"github.com/bankbook-dev/bankbook/internal/notify"
)

func newNotifyCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Ingest and push an account report to Telegram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotify(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "bankbook.yaml", "config file")
	return cmd
}

func runNotify(cmd *cobra.Command, configPath string) error {
	tg := notify.NewTelegram(os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"))
	if !tg.Configured() {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set")
	}

	cfg, store, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var sources []aggregator.Source
	for _, acc := range cfg.Accounts {
		sources = append(sources, aggregator.Source{
			Name: acc.Name,
			Type: acc.AccountType(),
			Path: acc.CSV,
			Goal: acc.Goal,
		})
	}

	view := aggregator.New(store, logger.New()).Ingest(sources)
	text := notify.FormatReport(view, "", nil)

	if err := tg.Send(cmd.Context(), text); err != nil {
		return fmt.Errorf("sending report: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Report sent.")
	return nil
}
