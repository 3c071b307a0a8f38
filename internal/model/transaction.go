package model

import (
	"github.com/shopspring/decimal"
)

// TransactionRecord is one canonical ledger row. Records are immutable once
// persisted; the store keys them by a content hash of their normalized
// fields, so re-ingesting the same row is a no-op.
type TransactionRecord struct {
	ID          string
	Date        string // YYYY-MM-DD where the source allowed it, raw text otherwise
	Description string
	Amount      decimal.Decimal // negative = outflow, positive = inflow
	Category    string
	Account     string
}

// BalanceSnapshot is a point-in-time balance reading for one account.
// At most one snapshot per (account, date) is retained.
type BalanceSnapshot struct {
	Date    string
	Account string
	Balance decimal.Decimal
}
