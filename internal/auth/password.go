// Package auth implements credential hashing and token issuing.
package auth

import (
	"fmt"
	"regexp"

	"github.com/draganvukman/task-management/internal/entities"

	"golang.org/x/crypto/bcrypt"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// ValidEmail reports whether the string looks like an email address.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePasswordStrength enforces the registration password policy: at
// least 8 characters combining 3 of the 4 character classes.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters", entities.ErrWeakPassword)
	}

	classes := 0
	for _, re := range []*regexp.Regexp{upperRegex, lowerRegex, digitRegex, specialRegex} {
		if re.MatchString(password) {
			classes++
		}
	}
	if classes < 3 {
		return fmt.Errorf("%w: must combine at least 3 of upper, lower, digit, special", entities.ErrWeakPassword)
	}

	return nil
}

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
