// internal/domain/ids.go
package domain

import "github.com/rs/xid"

// NewID returns a fresh, globally unique identifier for a ledger entity.
// Ids sort by creation time and are never reused.
func NewID() string {
	return xid.New().String()
}
