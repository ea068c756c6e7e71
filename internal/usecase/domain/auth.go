// Package domain contains application usecases orchestrating domain logic for auth.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/draganvukman/task-management/internal/auth"
	"github.com/draganvukman/task-management/internal/entities"
)

// Register validates registration input, creates the account and issues a
// token pair. The username is generated here, exactly once.
func (u *Usecase) Register(ctx context.Context, params entities.RegisterParams) (*entities.AuthResult, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if params.Email == "" || params.Name == "" || params.Password == "" {
		return nil, fmt.Errorf("%w: email, name and password are required", entities.ErrInvalidArgument)
	}
	if !auth.ValidEmail(params.Email) {
		return nil, fmt.Errorf("%w: malformed email", entities.ErrInvalidArgument)
	}
	if params.Password != params.Password2 {
		return nil, entities.ErrPasswordMismatch
	}
	if err := auth.ValidatePasswordStrength(params.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		ID:           auth.NewUserID(),
		Email:        params.Email,
		Name:         params.Name,
		Username:     auth.GenerateUsername(),
		PasswordHash: hash,
	}

	created, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		u.log.Errorw("failed to create user", "error", err.Error(), "email", params.Email)
		return nil, err
	}

	return u.issueTokens(ctx, *created)
}

// Login authenticates by email and password. The generated username is not a
// login identity.
func (u *Usecase) Login(ctx context.Context, email, password string) (*entities.AuthResult, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", entities.ErrInvalidArgument)
	}

	user, err := u.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		u.log.Infow("login rejected", "email", email)
		return nil, entities.ErrInvalidCredentials
	}

	return u.issueTokens(ctx, *user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Unknown and expired tokens are both rejected as invalid.
func (u *Usecase) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResult, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if refreshToken == "" {
		return nil, entities.ErrInvalidToken
	}

	stored, err := u.repo.RefreshTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored.Expired(time.Now()) {
		_ = u.repo.DeleteRefreshToken(ctx, refreshToken)
		return nil, entities.ErrInvalidToken
	}

	user, err := u.repo.UserByID(ctx, stored.UserID)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	if err := u.repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, *user)
}

// Authenticate resolves a bearer access token to its user.
func (u *Usecase) Authenticate(ctx context.Context, accessToken string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	userID, err := u.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := u.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	return user, nil
}

// Profile returns the caller's own account.
func (u *Usecase) Profile(ctx context.Context, userID string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.UserByID(ctx, userID)
}

// UpdateProfile changes the display name.
func (u *Usecase) UpdateProfile(ctx context.Context, userID, name string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	}

	return u.repo.UpdateUserName(ctx, userID, name)
}

// Users lists all registered accounts, used for picking team members.
func (u *Usecase) Users(ctx context.Context) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListUsers(ctx)
}

func (u *Usecase) issueTokens(ctx context.Context, user entities.User) (*entities.AuthResult, error) {
	access, err := u.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refresh := u.tokens.GenerateRefreshToken(user.ID)
	if err := u.repo.StoreRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return &entities.AuthResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh.Token,
	}, nil
}
