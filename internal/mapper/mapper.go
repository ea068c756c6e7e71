// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"time"

	"github.com/draganvukman/task-management/internal/api"
	"github.com/draganvukman/task-management/internal/entities"
)

const dateLayout = "2006-01-02"

// ToAPIUser maps entities.User to transport model.
func ToAPIUser(u entities.User) api.User {
	return api.User{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Name:     u.Name,
	}
}

// ToAPIUserList maps a user slice to transport models.
func ToAPIUserList(users []entities.User) []api.User {
	out := make([]api.User, 0, len(users))
	for _, u := range users {
		out = append(out, ToAPIUser(u))
	}
	return out
}

// ToAPITeam maps entities.Team to transport model with materialized members.
func ToAPITeam(t entities.Team) api.Team {
	return api.Team{
		ID:        t.ID,
		Name:      t.Name,
		Members:   ToAPIUserList(t.Members),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToAPITeamList maps a team slice to transport models.
func ToAPITeamList(teams []entities.Team) []api.Team {
	out := make([]api.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, ToAPITeam(t))
	}
	return out
}

// ToAPITask maps entities.Task to transport model.
func ToAPITask(t entities.Task) api.Task {
	var due *string
	if t.DueDate != nil {
		s := t.DueDate.Format(dateLayout)
		due = &s
	}

	var team *api.Team
	if t.Team != nil {
		mapped := ToAPITeam(*t.Team)
		team = &mapped
	}

	return api.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     due,
		CreatedBy:   ToAPIUser(t.CreatedBy),
		Team:        team,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToAPITaskList maps a task slice to transport models.
func ToAPITaskList(tasks []entities.Task) []api.Task {
	out := make([]api.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToAPITask(t))
	}
	return out
}

// ToAPICalendarEvent maps an external event to its transport model.
func ToAPICalendarEvent(e entities.CalendarEvent) api.CalendarEvent {
	return api.CalendarEvent{
		ID:          e.ID,
		Summary:     e.Summary,
		Description: e.Description,
		Start:       e.Start.Format(time.RFC3339),
		End:         e.End.Format(time.RFC3339),
		HTMLLink:    e.HTMLLink,
	}
}

// ToAPICalendarEventList maps an event slice to transport models.
func ToAPICalendarEventList(events []entities.CalendarEvent) []api.CalendarEvent {
	out := make([]api.CalendarEvent, 0, len(events))
	for _, e := range events {
		out = append(out, ToAPICalendarEvent(e))
	}
	return out
}

// ParseDate parses the wire due-date format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
