// Package amount normalizes arbitrary currency-formatted strings into
// signed decimals.
package amount

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// symbols removed before numeric parsing. Only the dot-decimal,
// comma-thousands convention is supported.
var stripper = strings.NewReplacer("$", "", ",", "", "+", "", "USD", "")

// Normalize parses a currency string into a signed decimal. It strips
// currency symbols, thousands separators, explicit plus signs, a USD
// currency code, and whitespace, and converts the accounting-negative form
// "(50.00)" to -50.00. Input with no numeric interpretation yields zero;
// Normalize never fails, it is a best-effort cleaner, not a validator.
func Normalize(raw string) decimal.Decimal {
	clean := stripper.Replace(raw)
	clean = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, clean)

	if strings.Contains(clean, "(") && strings.Contains(clean, ")") {
		clean = "-" + strings.NewReplacer("(", "", ")", "").Replace(clean)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d
}
