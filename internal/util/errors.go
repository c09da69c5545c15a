// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound                = errors.New("resource not found")
	ErrInvalidInput            = errors.New("invalid input provided")
	ErrRepaymentExceedsBalance = errors.New("amount exceeds remaining balance")
	ErrNotLoggedIn             = errors.New("no user is logged in")
	ErrUnsupportedDriver       = errors.New("unsupported storage driver")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
