package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/bankbook-dev/bankbook/internal/model"
)

// ContentID derives the deduplication key for a transaction from its
// normalized content. Description is trimmed and lower-cased so casing and
// whitespace drift between exports of the same row still collide; the
// amount is rendered with two fixed decimals so "50" and "50.00" do too.
func ContentID(rec model.TransactionRecord) string {
	key := strings.Join([]string{
		rec.Date,
		strings.ToLower(strings.TrimSpace(rec.Description)),
		rec.Amount.StringFixed(2),
		rec.Account,
	}, "|")
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
