// Package parser turns one bank-export CSV into candidate transaction
// records in the canonical schema. It is stateless and restartable: parsing
// the same bytes twice yields the same records, and deduplication is left
// entirely to the ledger store.
package parser

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/bankbook-dev/bankbook/internal/amount"
	"github.com/bankbook-dev/bankbook/internal/columns"
	"github.com/bankbook-dev/bankbook/internal/model"
)

// Defaults substituted when a role has no matching column or the cell is
// empty.
const (
	DefaultDescription = "Unknown"
	DefaultCategory    = "Uncategorized"
)

const dateFormat = "2006-01-02"

// Row is one CSV data row keyed by normalized header.
type Row map[string]string

// Result is the typed outcome of parsing one file. A malformed file is not
// an error: it degrades to zero records plus a reason, so one bad file
// never aborts ingestion of the others.
type Result struct {
	Records []model.TransactionRecord

	// Balance is taken from the balance column of the first data row only;
	// the most recent balance is assumed to appear first. Known limitation:
	// exports ordered oldest-first report a stale balance.
	Balance    decimal.Decimal
	HasBalance bool

	// Degraded carries the failure reason for an unusable file.
	Degraded string
}

// OK reports whether the file parsed cleanly.
func (r Result) OK() bool { return r.Degraded == "" }

// ParseFile opens and parses one CSV file.
func ParseFile(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{Degraded: "opening file: " + err.Error()}
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a CSV export and extracts canonical transaction records.
// Rows whose reconciled amount is exactly zero are dropped as noise.
func Parse(r io.Reader) Result {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Result{Degraded: "reading file: " + err.Error()}
	}

	cr := csv.NewReader(strings.NewReader(decode(raw)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Result{Degraded: "reading CSV: " + err.Error()}
	}
	if len(records) == 0 {
		return Result{Degraded: "missing header row"}
	}

	headers := columns.Normalize(records[0])
	roles := columns.Infer(headers)
	ingestDate := time.Now().Format(dateFormat)

	var result Result
	for i, rec := range records[1:] {
		row := makeRow(headers, rec)

		if i == 0 && roles.Balance != "" {
			if b := amount.Normalize(row[roles.Balance]); !b.IsZero() {
				result.Balance = b
				result.HasBalance = true
			}
		}

		amt := ReconcileSign(row, roles)
		if amt.IsZero() {
			continue
		}

		result.Records = append(result.Records, model.TransactionRecord{
			Date:        rowDate(row, roles, ingestDate),
			Description: rowDescription(row, roles),
			Amount:      amt,
			Category:    rowCategory(row, roles),
		})
	}
	return result
}

// decode tolerantly converts raw file bytes to text: a leading byte-order
// marker is stripped and undecodable byte sequences are replaced rather
// than rejected.
func decode(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}

func makeRow(headers []string, rec []string) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		if h == "" || i >= len(rec) {
			continue
		}
		row[h] = rec[i]
	}
	return row
}

func rowDescription(row Row, roles columns.Roles) string {
	if roles.Description == "" {
		return DefaultDescription
	}
	desc := strings.TrimSpace(row[roles.Description])
	if desc == "" {
		return DefaultDescription
	}
	return desc
}

func rowCategory(row Row, roles columns.Roles) string {
	if roles.Category == "" {
		return DefaultCategory
	}
	cat := strings.TrimSpace(row[roles.Category])
	if cat == "" {
		return DefaultCategory
	}
	return cat
}

func rowDate(row Row, roles columns.Roles, ingestDate string) string {
	if roles.Date == "" {
		return ingestDate
	}
	raw := strings.TrimSpace(row[roles.Date])
	if raw == "" {
		return ingestDate
	}
	return canonicalDate(raw)
}

// Date layouts banks commonly use, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"2006/01/02",
	"Jan 2, 2006",
}

// canonicalDate re-renders a recognized date as YYYY-MM-DD so read-back
// ordering and content hashing are stable across source formats. An
// unrecognized value is kept as-is rather than discarded.
func canonicalDate(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateFormat)
		}
	}
	return raw
}
