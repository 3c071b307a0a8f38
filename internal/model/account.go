package model

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies logical accounts.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCredit   AccountType = "credit"
)

// AccountData is the per-account slice of a View.
type AccountData struct {
	Balance      decimal.Decimal
	Type         AccountType
	Transactions []TransactionRecord

	// Degraded carries the reason when the account's source existed but
	// could not be parsed. Empty for healthy accounts and for declared
	// accounts that simply have no source.
	Degraded string

	// Placeholder is true when a declared source yielded no data (missing
	// or unreadable file). Goal-only accounts are not placeholders; having
	// no source is their normal state.
	Placeholder bool
}

// View is the in-memory projection handed to reporting and advisory
// consumers. It is rebuilt fully on every ingestion run; the ledger store
// remains the source of truth. Names preserves caller-declared order.
type View struct {
	Names    []string
	Accounts map[string]*AccountData
}

// NewView returns an empty View.
func NewView() *View {
	return &View{Accounts: make(map[string]*AccountData)}
}

// Put adds an account, keeping declaration order.
func (v *View) Put(name string, data *AccountData) {
	if _, seen := v.Accounts[name]; !seen {
		v.Names = append(v.Names, name)
	}
	v.Accounts[name] = data
}

// DegradedAccounts returns the names of accounts that resolved to
// placeholders because their source was present but unreadable. Callers use
// this to tell "no data" apart from "ingestion partially failed".
func (v *View) DegradedAccounts() []string {
	var names []string
	for _, name := range v.Names {
		if v.Accounts[name].Degraded != "" {
			names = append(names, name)
		}
	}
	return names
}
