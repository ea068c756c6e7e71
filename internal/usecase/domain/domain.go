// Package domain contains application usecases orchestrating domain logic.
package domain

import (
	"context"
	"time"

	"github.com/draganvukman/task-management/internal/auth"
	"github.com/draganvukman/task-management/internal/entities"
	"github.com/draganvukman/task-management/internal/repository"

	"go.uber.org/zap"
)

// CalendarClient is the outbound contract for the external calendar.
type CalendarClient interface {
	UpcomingEvents(ctx context.Context, maxResults int) ([]entities.CalendarEvent, error)
	CreateEvent(ctx context.Context, event entities.CalendarEvent) (*entities.CalendarEvent, error)
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx      context.Context
	log      *zap.SugaredLogger
	repo     repository.Repository
	tokens   *auth.TokenManager
	calendar CalendarClient
	timeout  time.Duration
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	tokens *auth.TokenManager,
	calendar CalendarClient,
	timeout time.Duration,
) *Usecase {
	return &Usecase{
		ctx:      ctx,
		log:      log,
		repo:     repo,
		tokens:   tokens,
		calendar: calendar,
		timeout:  timeout,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
