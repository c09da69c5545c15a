// internal/domain/debt.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/util"
)

// DebtType tells which side of a peer-to-peer debt the user is on.
type DebtType string

const (
	DebtTypeLent     DebtType = "lent"     // Someone owes the user
	DebtTypeBorrowed DebtType = "borrowed" // The user owes someone
)

// Valid reports whether t is one of the known debt types.
func (t DebtType) Valid() bool {
	return t == DebtTypeLent || t == DebtTypeBorrowed
}

// ParseDebtType converts user input into a DebtType.
func ParseDebtType(s string) (DebtType, error) {
	t := DebtType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown debt type %q", util.ErrInvalidInput, s)
	}
	return t, nil
}

// DebtStatus is derived from the remaining amount: paid iff nothing is left.
type DebtStatus string

const (
	DebtStatusActive DebtStatus = "active"
	DebtStatusPaid   DebtStatus = "paid"
)

// StatusFor returns the status implied by a remaining amount.
func StatusFor(remaining decimal.Decimal) DebtStatus {
	if remaining.LessThanOrEqual(decimal.Zero) {
		return DebtStatusPaid
	}
	return DebtStatusActive
}

// DebtRepayment is a partial or full payment recorded against a Debt.
// It only exists inside its Debt's history.
type DebtRepayment struct {
	ID     string          `json:"id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Note   *string         `json:"note,omitempty"`
}

// NewRepayment creates a repayment dated now with a fresh id.
func NewRepayment(amount decimal.Decimal, note *string) DebtRepayment {
	return DebtRepayment{
		ID:     NewID(),
		Date:   time.Now().UTC(),
		Amount: amount,
		Note:   cloneString(note),
	}
}

// Debt is money lent to or borrowed from a person, together with its repayment history.
type Debt struct {
	ID              string          `json:"id"`
	Type            DebtType        `json:"type"`
	PersonName      string          `json:"personName"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`     // Fixed at creation
	RemainingAmount decimal.Decimal `json:"remainingAmount"` // TotalAmount minus all repayments
	Date            time.Time       `json:"date"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Note            *string         `json:"note,omitempty"`
	Status          DebtStatus      `json:"status"`
	History         []DebtRepayment `json:"history"` // Newest first
}

// NewDebt creates an active Debt with nothing repaid yet.
// A zero date is replaced by the current time.
func NewDebt(debtType DebtType, totalAmount decimal.Decimal, personName string, note *string, date time.Time, dueDate *time.Time) *Debt {
	if date.IsZero() {
		date = time.Now().UTC()
	}
	var due *time.Time
	if dueDate != nil {
		d := *dueDate
		due = &d
	}
	return &Debt{
		ID:              NewID(),
		Type:            debtType,
		PersonName:      personName,
		TotalAmount:     totalAmount,
		RemainingAmount: totalAmount,
		Date:            date,
		DueDate:         due,
		Note:            cloneString(note),
		Status:          DebtStatusActive,
		History:         []DebtRepayment{},
	}
}

// ValidateRepayment checks that amount can be applied to d: 0 < amount <= remaining.
// Callers run it before ApplyRepayment, which does not re-check.
func (d *Debt) ValidateRepayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: repayment amount must be positive", util.ErrInvalidInput)
	}
	if amount.GreaterThan(d.RemainingAmount) {
		return fmt.Errorf("%w: %s > %s", util.ErrRepaymentExceedsBalance, amount, d.RemainingAmount)
	}
	return nil
}

// ApplyRepayment records r as the newest history entry, lowers the remaining
// amount and recomputes the status. The amount is applied unconditionally.
func (d *Debt) ApplyRepayment(r DebtRepayment) {
	history := make([]DebtRepayment, 0, len(d.History)+1)
	history = append(history, r)
	d.History = append(history, d.History...)
	d.RemainingAmount = d.RemainingAmount.Sub(r.Amount)
	d.Status = StatusFor(d.RemainingAmount)
}

// Repaid returns the sum of all repayments in the history.
func (d *Debt) Repaid() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range d.History {
		sum = sum.Add(r.Amount)
	}
	return sum
}

// CheckInvariants verifies remaining = total - repaid and the status rule.
func (d *Debt) CheckInvariants() error {
	want := d.TotalAmount.Sub(d.Repaid())
	if !d.RemainingAmount.Equal(want) {
		return fmt.Errorf("debt %s: remaining %s, expected %s", d.ID, d.RemainingAmount, want)
	}
	if d.Status != StatusFor(d.RemainingAmount) {
		return fmt.Errorf("debt %s: status %q does not match remaining %s", d.ID, d.Status, d.RemainingAmount)
	}
	return nil
}

// Clone returns a deep copy of d.
func (d Debt) Clone() Debt {
	if d.DueDate != nil {
		due := *d.DueDate
		d.DueDate = &due
	}
	d.Note = cloneString(d.Note)
	history := make([]DebtRepayment, len(d.History))
	for i, r := range d.History {
		r.Note = cloneString(r.Note)
		history[i] = r
	}
	d.History = history
	return d
}
