// Package entities contains core business entities.
package entities

import "time"

// RefreshToken is an opaque long-lived credential persisted server-side and
// rotated on every use.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its lifetime at the given instant.
func (t RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
