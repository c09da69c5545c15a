// internal/domain/money.go
package domain

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for display when no currency is configured.
const DefaultCurrency = "USD"

// FormatCurrency renders amount in the given ISO 4217 currency, e.g. "$1,234.50".
// Amounts are rounded half-up to the currency's minor unit.
func FormatCurrency(amount decimal.Decimal, code string) string {
	if code == "" {
		code = DefaultCurrency
	}
	// money.New never returns a nil currency, unknown codes get a generic one.
	cur := money.New(0, code).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// IsKnownCurrency reports whether code is an ISO 4217 currency known to go-money.
func IsKnownCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}

// FormatDate renders a ledger date for display, e.g. "Mar 4, 2025".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
