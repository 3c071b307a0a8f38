// Package columns infers which CSV header plays which role in a bank
// export. Matching is heuristic: banks disagree on header names, so each
// role has a ranked rule list evaluated in a fixed declared order, making
// the mapping a pure, reproducible function of the header set.
package columns

import (
	"strings"
)

// Roles maps each recognized role to the normalized (lower-cased, trimmed)
// header that matched, or "" when no header matched. Absence of any role
// except amount is routine; downstream substitutes defaults.
type Roles struct {
	Amount      string
	Debit       string
	Credit      string
	Type        string
	Balance     string
	Description string
	Date        string
	Category    string
}

// Exact-match ladders, highest priority first.
var (
	amountCandidates = []string{"amount", "transaction amount", "amt"}
	descCandidates   = []string{"description", "merchant", "transaction description", "payee"}
	dateCandidates   = []string{"date", "transaction date", "posted date"}
)

// Infer identifies column roles from a header row. Headers are case-folded
// and trimmed before matching; the returned Roles carry the normalized
// names so row lookups normalized the same way line up.
func Infer(headers []string) Roles {
	norm := Normalize(headers)

	return Roles{
		Amount:      firstExact(norm, amountCandidates),
		Debit:       firstContaining(norm, "debit"),
		Credit:      firstContaining(norm, "credit"),
		Type:        firstTransactionType(norm),
		Balance:     firstContaining(norm, "balance"),
		Description: firstExact(norm, descCandidates),
		Date:        firstExact(norm, dateCandidates),
		Category:    firstExact(norm, []string{"category"}),
	}
}

// Normalize lower-cases and trims a header row.
func Normalize(headers []string) []string {
	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return norm
}

func firstExact(headers []string, candidates []string) string {
	for _, cand := range candidates {
		for _, h := range headers {
			if h == cand {
				return h
			}
		}
	}
	return ""
}

func firstContaining(headers []string, sub string) string {
	for _, h := range headers {
		if strings.Contains(h, sub) {
			return h
		}
	}
	return ""
}

// firstTransactionType finds a header naming the bank's transaction type,
// e.g. "Transaction Type". Requiring both words keeps plain "Type" columns
// (card type, account type) from matching.
func firstTransactionType(headers []string) string {
	for _, h := range headers {
		if strings.Contains(h, "type") && strings.Contains(h, "transaction") {
			return h
		}
	}
	return ""
}
