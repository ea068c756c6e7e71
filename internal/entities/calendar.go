// Package entities contains core business entities.
package entities

import "time"

// CalendarEvent mirrors an event in the external calendar. Start/End are in
// UTC; the external system is the source of truth for everything else.
type CalendarEvent struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	HTMLLink    string
}

// AuthResult bundles the authenticated user with a fresh token pair.
type AuthResult struct {
	User         User
	AccessToken  string
	RefreshToken string
}
