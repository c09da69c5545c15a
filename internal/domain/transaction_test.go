// internal/domain/transaction_test.go
package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/util"
)

func TestParseTransactionType(t *testing.T) {
	typ, err := ParseTransactionType("INCOME")
	require.NoError(t, err)
	assert.Equal(t, TransactionTypeIncome, typ)

	_, err = ParseTransactionType("refund")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestNewTransactionIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tx := NewTransaction(TransactionTypeExpense, dec("1"), "x", nil, time.Now())
		require.False(t, seen[tx.ID], "duplicate id %s", tx.ID)
		seen[tx.ID] = true
	}
}

// Records written by older clients store amounts as plain JSON numbers.
func TestTransactionDecodesNumericAmount(t *testing.T) {
	raw := `{"id":"1718000000000","type":"income","amount":500,"category":"Salary","date":"2024-06-10T08:00:00.000Z"}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))
	assert.True(t, tx.Amount.Equal(dec("500")))
	assert.Equal(t, TransactionTypeIncome, tx.Type)
	assert.Nil(t, tx.Note)
	assert.Equal(t, 2024, tx.Date.Year())
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString("   "))
	require.NotNil(t, OptionalString(" lunch "))
	assert.Equal(t, "lunch", *OptionalString(" lunch "))
}
