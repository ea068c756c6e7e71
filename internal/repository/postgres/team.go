package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/draganvukman/task-management/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertTeamQuery = `INSERT INTO teams(name) VALUES($1) RETURNING id, created_at, updated_at`
	addMemberQuery  = `
INSERT INTO team_members(team_id, user_id) VALUES ($1, $2)
ON CONFLICT (team_id, user_id) DO NOTHING`
	selectTeamForMemberQuery = `
SELECT t.id, t.name, t.created_at, t.updated_at
FROM teams t
JOIN team_members tm ON tm.team_id = t.id
WHERE t.id = $1 AND tm.user_id = $2`
	selectMemberTeamsQuery = `
SELECT t.id, t.name, t.created_at, t.updated_at
FROM teams t
JOIN team_members tm ON tm.team_id = t.id
WHERE tm.user_id = $1
ORDER BY t.created_at`
	selectTeamMembersQuery = `
SELECT u.id, u.email, u.name, u.username
FROM team_members tm
JOIN users u ON u.id = tm.user_id
WHERE tm.team_id = $1
ORDER BY u.username`
	memberExistsQuery     = `SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id=$1 AND user_id=$2)`
	updateTeamNameQuery   = `UPDATE teams SET name=$2, updated_at=now() WHERE id=$1`
	touchTeamQuery        = `UPDATE teams SET updated_at=now() WHERE id=$1`
	clearTeamMembersQuery = `DELETE FROM team_members WHERE team_id=$1`
	deleteTeamQuery       = `DELETE FROM teams WHERE id=$1`
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (p *Postgres) teamMembers(ctx context.Context, q querier, teamID int64) ([]entities.User, error) {
	rows, err := q.Query(ctx, selectTeamMembersQuery, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team members: %w", err)
	}
	defer rows.Close()

	members := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Username); err != nil {
			return nil, fmt.Errorf("scan members: %w", err)
		}
		members = append(members, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	return members, nil
}

// CreateTeam inserts a team and its initial member links. The creator is
// always a member regardless of the provided member list.
func (p *Postgres) CreateTeam(ctx context.Context, name, creatorID string, memberIDs []string) (*entities.Team, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var team entities.Team
	team.Name = name
	if err := tx.QueryRow(ctx, insertTeamQuery, name).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert team: %w", err)
	}

	for _, id := range append([]string{creatorID}, memberIDs...) {
		if _, err := tx.Exec(ctx, addMemberQuery, team.ID, id); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return nil, entities.ErrUserNotFound
			}
			return nil, fmt.Errorf("add member: %w", err)
		}
	}

	members, err := p.teamMembers(ctx, tx, team.ID)
	if err != nil {
		return nil, err
	}
	team.Members = members

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("team created", "team_id", team.ID, "members", len(team.Members))
	return &team, nil
}

// TeamForMember fetches a team with members, visible only to its members.
// Non-members get ErrTeamNotFound rather than a permission error.
func (p *Postgres) TeamForMember(ctx context.Context, teamID int64, userID string) (*entities.Team, error) {
	var team entities.Team
	err := p.db.QueryRow(ctx, selectTeamForMemberQuery, teamID, userID).
		Scan(&team.ID, &team.Name, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}

	members, err := p.teamMembers(ctx, p.db, team.ID)
	if err != nil {
		return nil, err
	}
	team.Members = members

	return &team, nil
}

// ListTeams returns all teams the user belongs to, members materialized.
func (p *Postgres) ListTeams(ctx context.Context, userID string) ([]entities.Team, error) {
	rows, err := p.db.Query(ctx, selectMemberTeamsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		var t entities.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan teams: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}

	for i := range teams {
		members, err := p.teamMembers(ctx, p.db, teams[i].ID)
		if err != nil {
			return nil, err
		}
		teams[i].Members = members
	}

	return teams, nil
}

// UpdateTeam applies field updates for a member caller. If the new member list
// would drop the caller, they are re-added in the same transaction.
func (p *Postgres) UpdateTeam(ctx context.Context, teamID int64, callerID string, upd entities.TeamUpdate) (*entities.Team, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var isMember bool
	if err := tx.QueryRow(ctx, memberExistsQuery, teamID, callerID).Scan(&isMember); err != nil {
		return nil, fmt.Errorf("membership check: %w", err)
	}
	if !isMember {
		return nil, entities.ErrTeamNotFound
	}

	if upd.Name != nil {
		if _, err := tx.Exec(ctx, updateTeamNameQuery, teamID, *upd.Name); err != nil {
			return nil, fmt.Errorf("update team name: %w", err)
		}
	} else {
		if _, err := tx.Exec(ctx, touchTeamQuery, teamID); err != nil {
			return nil, fmt.Errorf("touch team: %w", err)
		}
	}

	if upd.MemberIDs != nil {
		if _, err := tx.Exec(ctx, clearTeamMembersQuery, teamID); err != nil {
			return nil, fmt.Errorf("clear members: %w", err)
		}
		for _, id := range *upd.MemberIDs {
			if _, err := tx.Exec(ctx, addMemberQuery, teamID, id); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23503" {
					return nil, entities.ErrUserNotFound
				}
				return nil, fmt.Errorf("add member: %w", err)
			}
		}
	}

	// Any update call leaves the caller a member, not only membership edits.
	if _, err := tx.Exec(ctx, addMemberQuery, teamID, callerID); err != nil {
		return nil, fmt.Errorf("re-add caller: %w", err)
	}

	var team entities.Team
	if err := tx.QueryRow(ctx, selectTeamForMemberQuery, teamID, callerID).
		Scan(&team.ID, &team.Name, &team.CreatedAt, &team.UpdatedAt); err != nil {
		return nil, fmt.Errorf("reload team: %w", err)
	}

	members, err := p.teamMembers(ctx, tx, teamID)
	if err != nil {
		return nil, err
	}
	team.Members = members

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("team updated", "team_id", teamID, "members", len(team.Members))
	return &team, nil
}

// DeleteTeam removes a team for a member caller. Member links are cascaded
// away and tasks referencing the team get their reference nulled by the
// schema's ON DELETE actions; tasks themselves survive.
func (p *Postgres) DeleteTeam(ctx context.Context, teamID int64, callerID string) error {
	var isMember bool
	if err := p.db.QueryRow(ctx, memberExistsQuery, teamID, callerID).Scan(&isMember); err != nil {
		return fmt.Errorf("membership check: %w", err)
	}
	if !isMember {
		return entities.ErrTeamNotFound
	}

	tag, err := p.db.Exec(ctx, deleteTeamQuery, teamID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTeamNotFound
	}

	p.log.Infow("team deleted", "team_id", teamID)
	return nil
}
