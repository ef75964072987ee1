// Package local implements password credential handling for school
// accounts.
package local

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrPasswordTooWeak  = errors.New("password does not meet requirements")
)

const (
	// DefaultBcryptCost is the bcrypt cost factor used in production.
	DefaultBcryptCost = 10

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8
)

// PasswordService hashes and verifies account passwords.
type PasswordService struct {
	bcryptCost int
}

// NewPasswordService creates a password service with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{bcryptCost: DefaultBcryptCost}
}

// NewPasswordServiceWithCost creates a password service with a custom
// bcrypt cost, clamped to the valid range. Tests use the minimum cost.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordService{bcryptCost: cost}
}

// Hash hashes a password with bcrypt. Passwords over bcrypt's 72-byte
// limit are pre-hashed with SHA-256 so no input is silently truncated.
func (s *PasswordService) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword(preparePassword(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares a password against a stored hash.
func (s *PasswordService) Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrPasswordMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), preparePassword(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

// preparePassword pre-hashes inputs over bcrypt's 72-byte limit with
// SHA-256 (base64-encoded, 44 bytes).
func preparePassword(password string) []byte {
	passwordBytes := []byte(password)
	if len(passwordBytes) <= 72 {
		return passwordBytes
	}
	hash := sha256.Sum256(passwordBytes)
	return []byte(base64.StdEncoding.EncodeToString(hash[:]))
}

// CheckStrength checks minimum length and requires at least three of the
// four character classes.
func (s *PasswordService) CheckStrength(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooWeak
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	count := 0
	for _, has := range []bool{hasUpper, hasLower, hasNumber, hasSpecial} {
		if has {
			count++
		}
	}
	if count < 3 {
		return ErrPasswordTooWeak
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address. Account lookups
// always go through this so login is case-insensitive even though the
// policy engine's self comparison is not.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
