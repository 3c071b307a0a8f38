package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankbook-dev/bankbook/internal/amount"
	"github.com/bankbook-dev/bankbook/internal/columns"
)

// ReconcileSign produces one signed amount for a row, in the canonical
// convention: negative = outflow, positive = inflow. Banks encode the same
// economic event with opposite raw signs or with split debit/credit
// columns, so the policy is tiered, with later, more specific signals
// overriding earlier, more generic ones:
//
//  1. a single amount column is the baseline
//  2. a non-zero debit column forces -abs(value)
//  3. a non-zero credit column forces +abs(value)
//  4. a transaction type containing "debit" flips a still-positive amount
func ReconcileSign(row Row, roles columns.Roles) decimal.Decimal {
	var amt decimal.Decimal

	if roles.Amount != "" {
		amt = amount.Normalize(row[roles.Amount])
	}

	if roles.Debit != "" && strings.TrimSpace(row[roles.Debit]) != "" {
		if v := amount.Normalize(row[roles.Debit]); !v.IsZero() {
			amt = v.Abs().Neg()
		}
	}

	if roles.Credit != "" && strings.TrimSpace(row[roles.Credit]) != "" {
		if v := amount.Normalize(row[roles.Credit]); !v.IsZero() {
			amt = v.Abs()
		}
	}

	if roles.Type != "" && amt.IsPositive() {
		if strings.Contains(strings.ToLower(row[roles.Type]), "debit") {
			amt = amt.Neg()
		}
	}

	return amt
}
