package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bankbook-dev/bankbook/internal/finmath"
)

func newTaxCommand() *cobra.Command {
	var gross string
	var rate float64

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Split a gross deposit into tax reserve and disposable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := decimal.NewFromString(gross)
			if err != nil {
				return fmt.Errorf("parsing --gross %q: %w", gross, err)
			}

			r := finmath.DefaultReserveRate
			if cmd.Flags().Changed("rate") {
				r = decimal.NewFromFloat(rate)
			}

			split := finmath.ContractorNet(g, r)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Gross:       $%s\n", split.Gross.StringFixed(2))
			fmt.Fprintf(out, "Tax reserve: $%s\n", split.TaxReserve.StringFixed(2))
			fmt.Fprintf(out, "Disposable:  $%s\n", split.Disposable.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&gross, "gross", "", "gross deposit amount (required)")
	_ = cmd.MarkFlagRequired("gross")
	cmd.Flags().Float64Var(&rate, "rate", 0.30, "reserve rate")

	return cmd
}
