// Package domain contains application usecases orchestrating domain logic for the calendar bridge.
package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/draganvukman/task-management/internal/entities"
)

const upcomingEventsLimit = 10

// UpcomingEvents fetches the next events from the external calendar. A bridge
// failure surfaces to the caller and touches no local state.
func (u *Usecase) UpcomingEvents(ctx context.Context) ([]entities.CalendarEvent, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	events, err := u.calendar.UpcomingEvents(ctx, upcomingEventsLimit)
	if err != nil {
		u.log.Errorw("failed to fetch calendar events", "error", err.Error())
		return nil, fmt.Errorf("%w: %s", entities.ErrCalendar, err.Error())
	}
	return events, nil
}

// SyncTask mirrors a task to the external calendar as a one-hour event
// starting at the due date. No retry on failure.
func (u *Usecase) SyncTask(ctx context.Context, title, description string, dueDate time.Time) (*entities.CalendarEvent, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if title == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrInvalidArgument)
	}

	event := entities.CalendarEvent{
		Summary:     title,
		Description: description,
		Start:       dueDate.UTC(),
		End:         dueDate.UTC().Add(time.Hour),
	}

	created, err := u.calendar.CreateEvent(ctx, event)
	if err != nil {
		u.log.Errorw("failed to sync task to calendar", "error", err.Error(), "title", title)
		return nil, fmt.Errorf("%w: %s", entities.ErrCalendar, err.Error())
	}
	return created, nil
}
