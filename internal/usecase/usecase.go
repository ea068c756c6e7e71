package usecase

import (
	"context"
	"time"

	"github.com/draganvukman/task-management/internal/auth"
	"github.com/draganvukman/task-management/internal/repository"
	"github.com/draganvukman/task-management/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	AuthUsecaseInterface
	TeamUsecaseInterface
	TaskUsecaseInterface
	CalendarUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	tokens *auth.TokenManager,
	calendar CalendarClient,
	timeout time.Duration,
) InterfaceUsecase {
	return domain.New(log, ctx, repo, tokens, calendar, timeout)
}
