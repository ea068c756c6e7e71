package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/draganvukman/task-management/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// visibleTaskPredicate is the one access rule for tasks: the caller created
// the task or belongs to its team. Evaluated as a single predicate so the
// result set needs no de-duplication pass. $1 is always the caller id.
const visibleTaskPredicate = `
(t.created_by = $1 OR EXISTS (
    SELECT 1 FROM team_members tm WHERE tm.team_id = t.team_id AND tm.user_id = $1
))`

const selectTaskColumns = `
SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
       t.created_at, t.updated_at,
       u.id, u.email, u.name, u.username,
       tt.id, tt.name, tt.created_at, tt.updated_at
FROM tasks t
JOIN users u ON u.id = t.created_by
LEFT JOIN teams tt ON tt.id = t.team_id`

const insertTaskQuery = `
INSERT INTO tasks(title, description, status, priority, due_date, created_by, team_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
RETURNING id`

const deleteTaskQuery = `DELETE FROM tasks t WHERE t.id = $2 AND ` + visibleTaskPredicate

func scanTask(rows pgx.Rows) (*entities.Task, error) {
	var (
		t           entities.Task
		description *string
		due         *time.Time
		teamID      *int64
		teamName    *string
		teamCreated *time.Time
		teamUpdated *time.Time
	)

	err := rows.Scan(
		&t.ID, &t.Title, &description, &t.Status, &t.Priority, &due,
		&t.CreatedAt, &t.UpdatedAt,
		&t.CreatedBy.ID, &t.CreatedBy.Email, &t.CreatedBy.Name, &t.CreatedBy.Username,
		&teamID, &teamName, &teamCreated, &teamUpdated,
	)
	if err != nil {
		return nil, err
	}

	if description != nil {
		t.Description = *description
	}
	t.DueDate = due
	if teamID != nil {
		t.Team = &entities.Team{
			ID:        *teamID,
			Name:      *teamName,
			CreatedAt: *teamCreated,
			UpdatedAt: *teamUpdated,
		}
	}

	return &t, nil
}

// CreateTask inserts a task. The creator must already be forced to the caller
// by the usecase layer; team membership is intentionally not checked here.
func (p *Postgres) CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error) {
	var description *string
	if task.Description != "" {
		description = &task.Description
	}
	var teamID *int64
	if task.Team != nil {
		teamID = &task.Team.ID
	}

	var id int64
	err := p.db.QueryRow(ctx, insertTaskQuery,
		task.Title, description, task.Status, task.Priority, task.DueDate, task.CreatedBy.ID, teamID).
		Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("insert task: %w", err)
	}

	p.log.Infow("task created", "task_id", id, "created_by", task.CreatedBy.ID)
	return p.TaskForUser(ctx, id, task.CreatedBy.ID)
}

// TaskForUser fetches a single task under the visibility rule. Tasks outside
// the caller's visible set report ErrTaskNotFound, deliberately
// indistinguishable from a missing row.
func (p *Postgres) TaskForUser(ctx context.Context, taskID int64, userID string) (*entities.Task, error) {
	query := selectTaskColumns + ` WHERE t.id = $2 AND ` + visibleTaskPredicate

	rows, err := p.db.Query(ctx, query, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get task: %w", err)
		}
		return nil, entities.ErrTaskNotFound
	}

	task, err := scanTask(rows)
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	rows.Close()

	if err := p.attachTeamMembers(ctx, []*entities.Task{task}); err != nil {
		return nil, err
	}

	return task, nil
}

// ListTasks returns the caller's visible tasks narrowed by the filter, newest
// first with ties in insertion order.
func (p *Postgres) ListTasks(ctx context.Context, userID string, filter entities.TaskFilter) ([]entities.Task, error) {
	query, args := buildTaskListQuery(userID, filter)

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entities.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tasks: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	refs := make([]*entities.Task, len(tasks))
	for i := range tasks {
		refs[i] = &tasks[i]
	}
	if err := p.attachTeamMembers(ctx, refs); err != nil {
		return nil, err
	}

	return tasks, nil
}

func buildTaskListQuery(userID string, filter entities.TaskFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(selectTaskColumns)
	b.WriteString(" WHERE ")
	b.WriteString(visibleTaskPredicate)

	args := []any{userID}
	add := func(clause string, value any) {
		args = append(args, value)
		fmt.Fprintf(&b, " AND %s$%d", clause, len(args))
	}

	if filter.Status != "" {
		add("t.status = ", string(filter.Status))
	}
	if filter.Priority != "" {
		add("t.priority = ", string(filter.Priority))
	}
	if filter.TeamID != 0 {
		add("t.team_id = ", filter.TeamID)
	}
	if filter.DueDate != nil {
		add("t.due_date = ", *filter.DueDate)
	}
	if filter.DueDateGTE != nil {
		add("t.due_date >= ", *filter.DueDateGTE)
	}
	if filter.DueDateLTE != nil {
		add("t.due_date <= ", *filter.DueDateLTE)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		fmt.Fprintf(&b, " AND (t.title ILIKE $%d OR t.description ILIKE $%d)", len(args), len(args))
	}

	b.WriteString(" ORDER BY t.created_at DESC, t.id ASC")
	return b.String(), args
}

// UpdateTask applies field updates under the visibility rule. Zero affected
// rows means the task is missing or hidden, reported identically.
func (p *Postgres) UpdateTask(ctx context.Context, taskID int64, callerID string, upd entities.TaskUpdate) (*entities.Task, error) {
	set := []string{"updated_at = now()"}
	args := []any{callerID, taskID}
	assign := func(col string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Title != nil {
		assign("title", *upd.Title)
	}
	if upd.Description != nil {
		assign("description", *upd.Description)
	}
	if upd.Status != nil {
		assign("status", string(*upd.Status))
	}
	if upd.Priority != nil {
		assign("priority", string(*upd.Priority))
	}
	if upd.ClearDue {
		set = append(set, "due_date = NULL")
	} else if upd.DueDate != nil {
		assign("due_date", *upd.DueDate)
	}
	if upd.SetTeam {
		if upd.TeamID == nil {
			set = append(set, "team_id = NULL")
		} else {
			assign("team_id", *upd.TeamID)
		}
	}

	query := fmt.Sprintf("UPDATE tasks t SET %s WHERE t.id = $2 AND %s",
		strings.Join(set, ", "), visibleTaskPredicate)

	tag, err := p.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, entities.ErrTaskNotFound
	}

	p.log.Infow("task updated", "task_id", taskID, "caller", callerID)

	// Access was already enforced by the UPDATE; reload by id so a caller who
	// just reassigned the task out of their own visible set still gets the
	// updated row back.
	return p.taskByID(ctx, taskID)
}

func (p *Postgres) taskByID(ctx context.Context, taskID int64) (*entities.Task, error) {
	rows, err := p.db.Query(ctx, selectTaskColumns+` WHERE t.id = $1`, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get task: %w", err)
		}
		return nil, entities.ErrTaskNotFound
	}

	task, err := scanTask(rows)
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	rows.Close()

	if err := p.attachTeamMembers(ctx, []*entities.Task{task}); err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask hard-deletes a task under the visibility rule.
func (p *Postgres) DeleteTask(ctx context.Context, taskID int64, callerID string) error {
	tag, err := p.db.Exec(ctx, deleteTaskQuery, callerID, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTaskNotFound
	}

	p.log.Infow("task deleted", "task_id", taskID, "caller", callerID)
	return nil
}

// attachTeamMembers materializes member lists for the distinct teams among the
// given tasks, one query per team.
func (p *Postgres) attachTeamMembers(ctx context.Context, tasks []*entities.Task) error {
	cache := make(map[int64][]entities.User)
	for _, t := range tasks {
		if t.Team == nil {
			continue
		}
		members, ok := cache[t.Team.ID]
		if !ok {
			var err error
			members, err = p.teamMembers(ctx, p.db, t.Team.ID)
			if err != nil {
				return err
			}
			cache[t.Team.ID] = members
		}
		t.Team.Members = members
	}
	return nil
}
