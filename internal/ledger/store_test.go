package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankbook-dev/bankbook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	require.NoError(t, s.Initialize())
	t.Cleanup(func() { s.Close() })
	return s
}

func coffee() model.TransactionRecord {
	return model.TransactionRecord{
		Date:        "2025-01-01",
		Description: "Coffee Shop",
		Amount:      dec("-4.50"),
		Category:    "Uncategorized",
		Account:     "PNC Checking",
	}
}

func TestInitializeIdempotent(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Initialize())
	require.NoError(t, s.Initialize())
}

func TestSaveTransactionDedup(t *testing.T) {
	s := openStore(t)

	fresh, err := s.SaveTransaction(coffee())
	require.NoError(t, err)
	assert.True(t, fresh)

	dup, err := s.SaveTransaction(coffee())
	require.NoError(t, err)
	assert.False(t, dup, "second save of identical content must report not-new")

	all, err := s.ListAllTransactions()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSaveTransactionDescriptionDrift(t *testing.T) {
	s := openStore(t)

	_, err := s.SaveTransaction(coffee())
	require.NoError(t, err)

	drifted := coffee()
	drifted.Description = "  COFFEE SHOP "
	fresh, err := s.SaveTransaction(drifted)
	require.NoError(t, err)
	assert.False(t, fresh, "casing/whitespace drift must dedupe")

	sameTextOtherAmount := coffee()
	sameTextOtherAmount.Amount = dec("-5.00")
	fresh, err = s.SaveTransaction(sameTextOtherAmount)
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestSaveTransactionAmountRendering(t *testing.T) {
	s := openStore(t)

	rec := coffee()
	rec.Amount = dec("-4.5")
	_, err := s.SaveTransaction(rec)
	require.NoError(t, err)

	rec.Amount = dec("-4.50")
	fresh, err := s.SaveTransaction(rec)
	require.NoError(t, err)
	assert.False(t, fresh, "textual variants of the same amount must dedupe")
}

func TestSaveTransactionAcrossAccounts(t *testing.T) {
	s := openStore(t)

	_, err := s.SaveTransaction(coffee())
	require.NoError(t, err)

	other := coffee()
	other.Account = "Capital One Checking"
	fresh, err := s.SaveTransaction(other)
	require.NoError(t, err)
	assert.True(t, fresh, "same row in a different account is a distinct record")
}

func TestSnapshotFirstOfDayWins(t *testing.T) {
	s := openStore(t)

	fresh, err := s.SaveBalanceSnapshot("PNC Checking", dec("1000.00"))
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = s.SaveBalanceSnapshot("PNC Checking", dec("2000.00"))
	require.NoError(t, err)
	assert.False(t, fresh)

	hist, err := s.ListBalanceHistory()
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "1000.00", hist[0].Balance.StringFixed(2))
}

func TestSnapshotPerAccountPerDay(t *testing.T) {
	s := openStore(t)

	_, err := s.SaveBalanceSnapshot("PNC Checking", dec("1000.00"))
	require.NoError(t, err)
	fresh, err := s.SaveBalanceSnapshot("Ally Savings", dec("4000.00"))
	require.NoError(t, err)
	assert.True(t, fresh, "different account on the same day gets its own snapshot")

	// A new calendar day allows a fresh snapshot for the same account.
	s.now = func() time.Time { return time.Now().AddDate(0, 0, 1) }
	fresh, err = s.SaveBalanceSnapshot("PNC Checking", dec("1500.00"))
	require.NoError(t, err)
	assert.True(t, fresh)

	hist, err := s.ListBalanceHistory()
	require.NoError(t, err)
	assert.Len(t, hist, 3)
	// Oldest first.
	assert.Equal(t, "1000.00", hist[0].Balance.StringFixed(2))
}

func TestListAllTransactionsOrder(t *testing.T) {
	s := openStore(t)

	older := coffee()
	newer := coffee()
	newer.Date = "2025-01-02"
	newer.Description = "Paycheck"
	newer.Amount = dec("2500.00")

	_, err := s.SaveTransaction(older)
	require.NoError(t, err)
	_, err = s.SaveTransaction(newer)
	require.NoError(t, err)

	all, err := s.ListAllTransactions()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Paycheck", all[0].Description, "most recent date first")
	assert.Equal(t, "Coffee Shop", all[1].Description)
}

func TestClearAll(t *testing.T) {
	s := openStore(t)

	_, err := s.SaveTransaction(coffee())
	require.NoError(t, err)
	_, err = s.SaveBalanceSnapshot("PNC Checking", dec("1000.00"))
	require.NoError(t, err)

	require.NoError(t, s.ClearAll())

	all, err := s.ListAllTransactions()
	require.NoError(t, err)
	assert.Empty(t, all)

	hist, err := s.ListBalanceHistory()
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestDurableAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Initialize())
	_, err = s.SaveTransaction(coffee())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Initialize())

	all, err := reopened.ListAllTransactions()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Coffee Shop", all[0].Description)
}

func TestContentID(t *testing.T) {
	a := ContentID(coffee())
	b := ContentID(coffee())
	assert.Equal(t, a, b)

	other := coffee()
	other.Date = "2025-01-02"
	assert.NotEqual(t, a, ContentID(other))

	// Category does not participate in identity.
	recat := coffee()
	recat.Category = "Dining"
	assert.Equal(t, a, ContentID(recat))
}
