// internal/domain/user.go
package domain

// User represents the single logged-in account on this device.
// There are no credentials: the record only exists to restore the session.
type User struct {
	ID                     string `json:"id"`
	Username               string `json:"username"`
	HasCompletedOnboarding bool   `json:"hasCompletedOnboarding"`
}

// NewUser creates a new User instance with a fresh id.
func NewUser(username string) *User {
	return &User{
		ID:                     NewID(),
		Username:               username,
		HasCompletedOnboarding: true,
	}
}
