package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferSimpleExport(t *testing.T) {
	roles := Infer([]string{"Date", "Description", "Amount", "Balance"})

	assert.Equal(t, "amount", roles.Amount)
	assert.Equal(t, "description", roles.Description)
	assert.Equal(t, "date", roles.Date)
	assert.Equal(t, "balance", roles.Balance)
	assert.Empty(t, roles.Debit)
	assert.Empty(t, roles.Credit)
	assert.Empty(t, roles.Type)
	assert.Empty(t, roles.Category)
}

func TestInferDebitCreditExport(t *testing.T) {
	roles := Infer([]string{"Transaction Date", "Posted Date", "Payee", "Transaction Type", "Debit Amount", "Credit Amount"})

	assert.Equal(t, "debit amount", roles.Debit)
	assert.Equal(t, "credit amount", roles.Credit)
	assert.Equal(t, "transaction type", roles.Type)
	// "transaction date" outranks "posted date".
	assert.Equal(t, "transaction date", roles.Date)
	assert.Equal(t, "payee", roles.Description)
	assert.Empty(t, roles.Amount, "debit/credit exports have no single amount column")
}

func TestInferAmountPriority(t *testing.T) {
	// "amount" wins over "transaction amount" regardless of header order.
	roles := Infer([]string{"Transaction Amount", "Amount"})
	assert.Equal(t, "amount", roles.Amount)

	roles = Infer([]string{"Amt"})
	assert.Equal(t, "amt", roles.Amount)
}

func TestInferDescriptionPriority(t *testing.T) {
	roles := Infer([]string{"Merchant", "Description"})
	assert.Equal(t, "description", roles.Description)

	roles = Infer([]string{"Merchant", "Payee"})
	assert.Equal(t, "merchant", roles.Description)
}

func TestInferCaseAndWhitespace(t *testing.T) {
	roles := Infer([]string{"  DATE ", " AMOUNT", "Category "})

	assert.Equal(t, "date", roles.Date)
	assert.Equal(t, "amount", roles.Amount)
	assert.Equal(t, "category", roles.Category)
}

func TestInferPlainTypeDoesNotMatch(t *testing.T) {
	roles := Infer([]string{"Date", "Amount", "Card Type"})
	assert.Empty(t, roles.Type)
}

func TestInferNothingMatches(t *testing.T) {
	roles := Infer([]string{"foo", "bar"})
	assert.Equal(t, Roles{}, roles)
}
