// Package domain contains application usecases orchestrating domain logic by team.
package domain

import (
	"context"
	"fmt"

	"github.com/draganvukman/task-management/internal/entities"
)

// CreateTeam creates a team; the creator always ends up in the member list.
func (u *Usecase) CreateTeam(ctx context.Context, callerID, name string, memberIDs []string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if name == "" {
		u.log.Errorw("failed to create team: missing name")
		return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	}
	return u.repo.CreateTeam(ctx, name, callerID, memberIDs)
}

// Team returns a team visible to the caller. Non-members see not-found.
func (u *Usecase) Team(ctx context.Context, teamID int64, callerID string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id is required", entities.ErrInvalidArgument)
	}
	return u.repo.TeamForMember(ctx, teamID, callerID)
}

// Teams lists the caller's teams.
func (u *Usecase) Teams(ctx context.Context, callerID string) ([]entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListTeams(ctx, callerID)
}

// UpdateTeam applies field updates for a member caller.
func (u *Usecase) UpdateTeam(ctx context.Context, teamID int64, callerID string, upd entities.TeamUpdate) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id is required", entities.ErrInvalidArgument)
	}
	if upd.Name != nil && *upd.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", entities.ErrInvalidArgument)
	}
	return u.repo.UpdateTeam(ctx, teamID, callerID, upd)
}

// DeleteTeam removes the team; its tasks survive with the reference cleared.
func (u *Usecase) DeleteTeam(ctx context.Context, teamID int64, callerID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if teamID <= 0 {
		return fmt.Errorf("%w: team id is required", entities.ErrInvalidArgument)
	}
	return u.repo.DeleteTeam(ctx, teamID, callerID)
}
