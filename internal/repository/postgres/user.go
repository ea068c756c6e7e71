package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/draganvukman/task-management/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertUserQuery = `
INSERT INTO users(id, email, name, username, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
RETURNING id, email, name, username, password_hash, created_at, updated_at`
	selectUserByIDQuery    = `SELECT id, email, name, username, password_hash, created_at, updated_at FROM users WHERE id=$1`
	selectUserByEmailQuery = `SELECT id, email, name, username, password_hash, created_at, updated_at FROM users WHERE email=$1`
	updateUserNameQuery    = `
UPDATE users SET name=$2, updated_at=now()
WHERE id=$1
RETURNING id, email, name, username, password_hash, created_at, updated_at`
	listUsersQuery = `SELECT id, email, name, username, password_hash, created_at, updated_at FROM users ORDER BY created_at`
)

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new account. Unique violations on email and username
// are mapped to their domain errors so registration can report which field
// collided.
func (p *Postgres) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	created, err := scanUser(p.db.QueryRow(ctx, insertUserQuery,
		user.ID, user.Email, user.Name, user.Username, user.PasswordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, entities.ErrUsernameTaken
			}
			return nil, entities.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	p.log.Infow("user created", "user_id", created.ID, "email", created.Email)
	return created, nil
}

// UserByID fetches an account by id.
func (p *Postgres) UserByID(ctx context.Context, id string) (*entities.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, selectUserByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UserByEmail fetches an account by its login identity.
func (p *Postgres) UserByEmail(ctx context.Context, email string) (*entities.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, selectUserByEmailQuery, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// UpdateUserName updates the display name. The generated username is never
// rewritten here.
func (p *Postgres) UpdateUserName(ctx context.Context, id, name string) (*entities.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, updateUserNameQuery, id, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user name: %w", err)
	}
	return u, nil
}

// ListUsers returns all registered accounts.
func (p *Postgres) ListUsers(ctx context.Context) ([]entities.User, error) {
	rows, err := p.db.Query(ctx, listUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan users: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}
