// internal/domain/transaction.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations

	"fintrack/internal/util"
)

// TransactionType defines the direction of a ledger transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ParseTransactionType converts user input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown transaction type %q", util.ErrInvalidInput, s)
	}
	return t, nil
}

// Transaction represents a single income or expense record.
// It is immutable once created; it can only be deleted.
type Transaction struct {
	ID       string          `json:"id"`             // Unique within the transaction list
	Type     TransactionType `json:"type"`           // income or expense
	Amount   decimal.Decimal `json:"amount"`         // Always positive
	Category string          `json:"category"`       // Free-form category label
	Note     *string         `json:"note,omitempty"` // Optional note
	Date     time.Time       `json:"date"`           // When the transaction happened
}

// NewTransaction creates a new Transaction with a fresh id.
// A zero date is replaced by the current time.
func NewTransaction(txType TransactionType, amount decimal.Decimal, category string, note *string, date time.Time) *Transaction {
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return &Transaction{
		ID:       NewID(),
		Type:     txType,
		Amount:   amount,
		Category: category,
		Note:     cloneString(note),
		Date:     date,
	}
}

// Clone returns a copy of t that shares no memory with it.
func (t Transaction) Clone() Transaction {
	t.Note = cloneString(t.Note)
	return t
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// OptionalString returns nil for a blank string, a pointer to the trimmed value otherwise.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
