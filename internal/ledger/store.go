// Package ledger is the durable, append-only transaction store. It is the
// sole stateful component of the ingestion core and the system's source of
// truth: writes are content-keyed insert-or-skip, so re-ingesting the same
// data is always a no-op.
package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/bankbook-dev/bankbook/internal/model"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		description TEXT NOT NULL,
		amount TEXT NOT NULL,
		category TEXT NOT NULL,
		account TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS balance_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		account TEXT NOT NULL,
		balance TEXT NOT NULL
	)`,
}

const dateFormat = "2006-01-02"

// Store persists transactions and balance snapshots in a local SQLite file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the SQLite database at path. Callers must invoke
// Initialize before the first write; opening alone has no side effects on
// shared state.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Initialize idempotently creates the schema.
func (s *Store) Initialize() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating ledger schema: %w", err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTransaction inserts a record keyed by its content hash. It returns
// true for a fresh insert and false for a duplicate; duplicates are
// expected and are not errors.
func (s *Store) SaveTransaction(rec model.TransactionRecord) (bool, error) {
	rec.ID = ContentID(rec)

	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO transactions (id, date, description, amount, category, account)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Date, rec.Description, rec.Amount.StringFixed(2), rec.Category, rec.Account,
	)
	if err != nil {
		return false, fmt.Errorf("inserting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking insert result: %w", err)
	}
	return n == 1, nil
}

// SaveBalanceSnapshot records the account balance for today, keeping the
// trend history to one reading per account per day. The first snapshot of
// the day wins; later same-day attempts are no-ops and return false.
func (s *Store) SaveBalanceSnapshot(account string, balance decimal.Decimal) (bool, error) {
	today := s.now().Format(dateFormat)

	var exists int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM balance_history WHERE date = ? AND account = ?`,
		today, account,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking balance snapshot: %w", err)
	}
	if exists > 0 {
		return false, nil
	}

	_, err = s.db.Exec(
		`INSERT INTO balance_history (date, account, balance) VALUES (?, ?, ?)`,
		today, account, balance.StringFixed(2),
	)
	if err != nil {
		return false, fmt.Errorf("inserting balance snapshot: %w", err)
	}
	return true, nil
}

// ListAllTransactions returns every stored transaction, most recent date
// first.
func (s *Store) ListAllTransactions() ([]model.TransactionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, date, description, amount, category, account
		 FROM transactions ORDER BY date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var records []model.TransactionRecord
	for rows.Next() {
		var rec model.TransactionRecord
		var amt string
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Description, &amt, &rec.Category, &rec.Account); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		rec.Amount, err = decimal.NewFromString(amt)
		if err != nil {
			return nil, fmt.Errorf("parsing stored amount %q: %w", amt, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListBalanceHistory returns all balance snapshots, oldest first, for trend
// reporting.
func (s *Store) ListBalanceHistory() ([]model.BalanceSnapshot, error) {
	rows, err := s.db.Query(
		`SELECT date, account, balance FROM balance_history ORDER BY date ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying balance history: %w", err)
	}
	defer rows.Close()

	var snaps []model.BalanceSnapshot
	for rows.Next() {
		var snap model.BalanceSnapshot
		var bal string
		if err := rows.Scan(&snap.Date, &snap.Account, &bal); err != nil {
			return nil, fmt.Errorf("scanning balance snapshot: %w", err)
		}
		snap.Balance, err = decimal.NewFromString(bal)
		if err != nil {
			return nil, fmt.Errorf("parsing stored balance %q: %w", bal, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// ClearAll wipes both tables. It is destructive and must only be reached
// from an explicit, user-confirmed action; failures are reported loudly
// rather than swallowed.
func (s *Store) ClearAll() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting wipe: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("wiping transactions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM balance_history`); err != nil {
		return fmt.Errorf("wiping balance history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing wipe: %w", err)
	}
	return nil
}
