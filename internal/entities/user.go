// Package entities contains core business entities.
package entities

import "time"

// User is a registered account. Email is the login identity; Username is
// generated once at creation when absent and never rewritten afterwards.
type User struct {
	ID           string
	Email        string
	Name         string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
