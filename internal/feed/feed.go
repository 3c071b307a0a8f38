// Package feed merges a normalized transaction feed from an external
// aggregation API into the canonical ledger schema. The network client
// itself lives outside the core behind the Source interface; this package
// only reshapes its output.
package feed

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankbook-dev/bankbook/internal/model"
)

// Transaction is one row as the aggregation feed reports it. The feed's
// sign convention is the inverse of the canonical one: positive = outflow,
// negative = refund/deposit.
type Transaction struct {
	Date      string
	Name      string
	Merchant  string
	Amount    decimal.Decimal
	Category  string
	AccountID string
}

// Source fetches recent transactions from the external aggregation API.
type Source interface {
	FetchTransactions(ctx context.Context, daysBack int) ([]Transaction, error)
}

// Result is the outcome of normalizing a batch of feed transactions.
type Result struct {
	// ByAccount maps canonical account names to records in declared-map
	// order of arrival.
	ByAccount map[string][]model.TransactionRecord

	// Skipped counts rows dropped because their feed account had no entry
	// in the configured account map, plus zero-amount noise.
	Skipped int
}

// Normalize converts feed transactions into canonical records. accountMap
// translates feed account IDs to canonical account names; it is explicit
// configuration, not a guess — rows for unmapped accounts are counted and
// skipped rather than attributed to a default account.
func Normalize(txs []Transaction, accountMap map[string]string) Result {
	res := Result{ByAccount: make(map[string][]model.TransactionRecord)}

	for _, tx := range txs {
		account, ok := accountMap[tx.AccountID]
		if !ok || tx.Amount.IsZero() {
			res.Skipped++
			continue
		}

		desc := strings.TrimSpace(tx.Merchant)
		if desc == "" {
			desc = strings.TrimSpace(tx.Name)
		}
		if desc == "" {
			desc = "Unknown"
		}

		category := tx.Category
		if category == "" {
			category = "Uncategorized"
		}

		res.ByAccount[account] = append(res.ByAccount[account], model.TransactionRecord{
			Date:        tx.Date,
			Description: desc,
			Amount:      tx.Amount.Neg(), // invert into negative = outflow
			Category:    category,
			Account:     account,
		})
	}
	return res
}
