package aggregator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankbook-dev/bankbook/internal/feed"
	"github.com/bankbook-dev/bankbook/internal/ledger"
	"github.com/bankbook-dev/bankbook/internal/logger"
	"github.com/bankbook-dev/bankbook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newAggregator(t *testing.T) (*Aggregator, *ledger.Store) {
	t.Helper()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { store.Close() })
	return New(store, logger.Nop()), store
}

func writeCSV(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const twoRowExport = "Date,Description,Amount,Balance\n" +
	"01/01/2025,Coffee Shop,-4.50,1000.00\n" +
	"01/02/2025,Paycheck,2500.00,3500.00\n"

func TestIngestEndToEnd(t *testing.T) {
	agg, store := newAggregator(t)
	path := writeCSV(t, "pnc.csv", twoRowExport)

	sources := []Source{
		{Name: "PNC Checking", Type: model.AccountTypeChecking, Path: path},
		{Name: "Ally Savings", Type: model.AccountTypeSavings, Goal: true},
	}

	view := agg.Ingest(sources)

	// Declared order is preserved, goal account included.
	require.Equal(t, []string{"PNC Checking", "Ally Savings"}, view.Names)

	pnc := view.Accounts["PNC Checking"]
	assert.Equal(t, "1000.00", pnc.Balance.StringFixed(2))
	require.Len(t, pnc.Transactions, 2)
	assert.Equal(t, "-4.50", pnc.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "2500.00", pnc.Transactions[1].Amount.StringFixed(2))

	ally := view.Accounts["Ally Savings"]
	assert.True(t, ally.Balance.IsZero())
	assert.Empty(t, ally.Transactions)
	assert.False(t, ally.Placeholder)

	// One snapshot, first row's balance, dated today.
	hist, err := store.ListBalanceHistory()
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "1000.00", hist[0].Balance.StringFixed(2))
	assert.Equal(t, time.Now().Format("2006-01-02"), hist[0].Date)

	// Two stored transactions, most recent first.
	all, err := store.ListAllTransactions()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Paycheck", all[0].Description)
}

func TestIngestRerunIsNoOp(t *testing.T) {
	agg, store := newAggregator(t)
	path := writeCSV(t, "pnc.csv", twoRowExport)
	sources := []Source{{Name: "PNC Checking", Type: model.AccountTypeChecking, Path: path}}

	agg.Ingest(sources)
	view := agg.Ingest(sources)

	// The view still reflects everything seen in this run.
	assert.Len(t, view.Accounts["PNC Checking"].Transactions, 2)

	// The store added nothing on the second pass.
	all, err := store.ListAllTransactions()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hist, err := store.ListBalanceHistory()
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestIngestMissingSource(t *testing.T) {
	agg, store := newAggregator(t)

	view := agg.Ingest([]Source{{
		Name: "Capital One Checking",
		Type: model.AccountTypeChecking,
		Path: filepath.Join(t.TempDir(), "missing.csv"),
	}})

	capone := view.Accounts["Capital One Checking"]
	assert.True(t, capone.Placeholder)
	assert.Empty(t, capone.Degraded, "a missing file is not a failure")
	assert.True(t, capone.Balance.IsZero())
	assert.Empty(t, capone.Transactions)

	all, err := store.ListAllTransactions()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIngestUnreadableSourceIsIsolated(t *testing.T) {
	agg, _ := newAggregator(t)
	bad := writeCSV(t, "bad.csv", "")
	good := writeCSV(t, "good.csv", twoRowExport)

	view := agg.Ingest([]Source{
		{Name: "Broken Bank", Type: model.AccountTypeChecking, Path: bad},
		{Name: "PNC Checking", Type: model.AccountTypeChecking, Path: good},
	})

	broken := view.Accounts["Broken Bank"]
	assert.True(t, broken.Placeholder)
	assert.NotEmpty(t, broken.Degraded)
	assert.Equal(t, []string{"Broken Bank"}, view.DegradedAccounts())

	// The good source is unaffected.
	assert.Len(t, view.Accounts["PNC Checking"].Transactions, 2)
}

func TestMergeFeed(t *testing.T) {
	agg, store := newAggregator(t)
	view := agg.Ingest([]Source{{Name: "PNC Checking", Type: model.AccountTypeChecking}})

	txs := []feed.Transaction{
		{Date: "2025-01-07", Merchant: "Starbucks", Amount: dec("4.50"), AccountID: "acc-1"},
		{Date: "2025-01-07", Name: "Elsewhere", Amount: dec("9.00"), AccountID: "not-mapped"},
	}
	agg.MergeFeed(view, txs, map[string]string{"acc-1": "PNC Checking"})

	pnc := view.Accounts["PNC Checking"]
	require.Len(t, pnc.Transactions, 1)
	assert.Equal(t, "-4.50", pnc.Transactions[0].Amount.StringFixed(2))

	all, err := store.ListAllTransactions()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Starbucks", all[0].Description)
}

func TestScanImportDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "import"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "import", "pnc-checking.csv"), []byte(twoRowExport), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "import", "notes.txt"), []byte("skip"), 0o644))

	files, err := ScanImportDir(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "pnc-checking.csv", files[0].Name)
	assert.Equal(t, "pnc checking", files[0].AccountName())

	require.NoError(t, MarkProcessed(root, "pnc-checking.csv"))
	files, err = ScanImportDir(root)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = os.Stat(filepath.Join(root, "import", "processed", "pnc-checking.csv"))
	require.NoError(t, err)
}

func TestScanImportDirMissing(t *testing.T) {
	files, err := ScanImportDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}
