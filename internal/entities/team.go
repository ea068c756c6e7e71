// Package entities contains core business entities.
package entities

import "time"

// Team aggregates members under a team name. Members are always materialized.
type Team struct {
	ID        int64
	Name      string
	Members   []User
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamUpdate carries mutable team fields; nil means "leave unchanged".
type TeamUpdate struct {
	Name      *string
	MemberIDs *[]string
}

// HasMember reports whether the user is in the materialized member list.
func (t Team) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
