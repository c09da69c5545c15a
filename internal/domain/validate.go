// internal/domain/validate.go
package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/util"
)

// ValidateAmount checks that a user-entered amount is strictly positive.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", util.ErrInvalidInput)
	}
	return nil
}

// ParseAmount parses a user-entered decimal amount and validates it.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", util.ErrInvalidInput, s)
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ValidateRequired checks that a required text field is not blank.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", util.ErrInvalidInput, field)
	}
	return nil
}
