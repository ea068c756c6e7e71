package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/draganvukman/task-management/config"
	"github.com/draganvukman/task-management/internal/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "task-management"

// TokenManager issues and validates access tokens and mints refresh tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken signs a short-lived HS256 JWT for the user.
func (m *TokenManager) GenerateAccessToken(user entities.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iss":   issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(m.accessTTL).Unix(),
		"type":  "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken parses a bearer token and returns the subject user id.
// Any parse, signature or expiry failure maps to ErrInvalidToken.
func (m *TokenManager) ValidateAccessToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", entities.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", entities.ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != "access" {
		return "", entities.ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", entities.ErrInvalidToken
	}

	return sub, nil
}

// GenerateRefreshToken mints an opaque random refresh token record.
func (m *TokenManager) GenerateRefreshToken(userID string) entities.RefreshToken {
	return entities.RefreshToken{
		Token:     randomString(64),
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.refreshTTL),
	}
}

// GenerateUsername derives the fallback username used when registration does
// not supply one: "user_" plus ten hex characters.
func GenerateUsername() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "user_" + hex[:10]
}

// NewUserID returns a fresh user identifier.
func NewUserID() string {
	return uuid.NewString()
}

func randomString(length int) string {
	const letters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	b := make([]byte, length)
	for i := range b {
		idx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		b[i] = letters[idx.Int64()]
	}
	return string(b)
}
