package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/draganvukman/task-management/config"
	"github.com/draganvukman/task-management/internal/entities"

	"github.com/stretchr/testify/require"
)

func testManager(accessTTL time.Duration) *TokenManager {
	return NewTokenManager(config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager(time.Minute)

	token, err := m.GenerateAccessToken(entities.User{ID: "u1", Email: "alice@example.com"})
	require.NoError(t, err)

	userID, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", userID)
}

func TestAccessTokenExpired(t *testing.T) {
	m := testManager(-time.Minute)

	token, err := m.GenerateAccessToken(entities.User{ID: "u1"})
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	require.ErrorIs(t, err, entities.ErrInvalidToken)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := testManager(time.Minute).GenerateAccessToken(entities.User{ID: "u1"})
	require.NoError(t, err)

	other := NewTokenManager(config.AuthConfig{JWTSecret: "other-secret", AccessTokenTTL: time.Minute})
	_, err = other.ValidateAccessToken(token)
	require.ErrorIs(t, err, entities.ErrInvalidToken)
}

func TestAccessTokenGarbage(t *testing.T) {
	_, err := testManager(time.Minute).ValidateAccessToken("not.a.jwt")
	require.ErrorIs(t, err, entities.ErrInvalidToken)
}

func TestGenerateRefreshToken(t *testing.T) {
	m := testManager(time.Minute)

	rt := m.GenerateRefreshToken("u1")
	require.Len(t, rt.Token, 64)
	require.Equal(t, "u1", rt.UserID)
	require.True(t, rt.ExpiresAt.After(time.Now()))

	require.NotEqual(t, rt.Token, m.GenerateRefreshToken("u1").Token)
}

func TestGenerateUsername(t *testing.T) {
	name := GenerateUsername()
	require.True(t, strings.HasPrefix(name, "user_"))
	require.Len(t, name, len("user_")+10)

	require.NotEqual(t, name, GenerateUsername())
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{name: "short", password: "Ab1!", ok: false},
		{name: "one_class", password: "abcdefgh", ok: false},
		{name: "two_classes", password: "abcdefg1", ok: false},
		{name: "three_classes", password: "Abcdefg1", ok: true},
		{name: "four_classes", password: "Abcdef1!", ok: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, entities.ErrWeakPassword)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!pass")
	require.NoError(t, err)
	require.NotEqual(t, "Str0ng!pass", hash)

	require.True(t, CheckPassword(hash, "Str0ng!pass"))
	require.False(t, CheckPassword(hash, "Str0ng!other"))
}

func TestValidEmail(t *testing.T) {
	require.True(t, ValidEmail("alice@example.com"))
	require.True(t, ValidEmail("a.b+tag@sub.example.co"))
	require.False(t, ValidEmail("alice"))
	require.False(t, ValidEmail("alice@"))
	require.False(t, ValidEmail("@example.com"))
}
