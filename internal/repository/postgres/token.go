package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/draganvukman/task-management/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	insertRefreshTokenQuery = `
INSERT INTO refresh_tokens(token, user_id, expires_at, created_at)
VALUES ($1, $2, $3, now())`
	selectRefreshTokenQuery = `SELECT token, user_id, expires_at, created_at FROM refresh_tokens WHERE token=$1`
	deleteRefreshTokenQuery = `DELETE FROM refresh_tokens WHERE token=$1`
)

// StoreRefreshToken persists an issued refresh token.
func (p *Postgres) StoreRefreshToken(ctx context.Context, token entities.RefreshToken) error {
	if _, err := p.db.Exec(ctx, insertRefreshTokenQuery, token.Token, token.UserID, token.ExpiresAt); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// RefreshTokenByValue looks up a stored refresh token.
func (p *Postgres) RefreshTokenByValue(ctx context.Context, token string) (*entities.RefreshToken, error) {
	var t entities.RefreshToken
	err := p.db.QueryRow(ctx, selectRefreshTokenQuery, token).
		Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrInvalidToken
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &t, nil
}

// DeleteRefreshToken revokes a refresh token. Deleting an unknown token is a no-op.
func (p *Postgres) DeleteRefreshToken(ctx context.Context, token string) error {
	if _, err := p.db.Exec(ctx, deleteRefreshTokenQuery, token); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
