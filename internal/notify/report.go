package notify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankbook-dev/bankbook/internal/model"
)

// Transfer is one proposed movement of funds, as emitted by the advisory
// layer.
type Transfer struct {
	Amount decimal.Decimal
	From   string
	To     string
}

// FormatReport renders an account view plus advisory output as the plain
// text pushed to the notification channel.
func FormatReport(view *model.View, analysis string, actions []Transfer) string {
	var b strings.Builder

	b.WriteString("FINANCIAL REPORT\n\n")

	b.WriteString("ACCOUNTS:\n")
	for _, name := range view.Names {
		data := view.Accounts[name]
		fmt.Fprintf(&b, "- %s: $%s", name, data.Balance.StringFixed(2))
		if data.Degraded != "" {
			b.WriteString(" (source unreadable)")
		} else if data.Placeholder {
			b.WriteString(" (no data)")
		}
		b.WriteByte('\n')
	}

	if analysis != "" {
		b.WriteString("\nSTRATEGY:\n")
		b.WriteString(strings.TrimSpace(analysis))
		b.WriteByte('\n')
	}

	if len(actions) > 0 {
		b.WriteString("\nACTION ITEMS:\n")
		for _, act := range actions {
			fmt.Fprintf(&b, "- Move $%s from %s to %s\n", act.Amount.StringFixed(2), act.From, act.To)
		}
	} else {
		b.WriteString("\nNo transfers needed today.\n")
	}

	return b.String()
}
