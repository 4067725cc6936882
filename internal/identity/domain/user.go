// Package domain holds the identity model: the authenticated user and
// the error taxonomy of the auth boundary.
package domain

import "time"

// User is the account as the backend reports it. The ID is opaque:
// the backend owns its format.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// DisplayName returns the name when set, the email otherwise.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
