// pkg/auth/password.go
package auth

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWeakPassword     = errors.New("password does not meet requirements")
	ErrPasswordMismatch = errors.New("password does not match")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// PasswordManager handles password hashing and validation
type PasswordManager struct {
	cost      int
	minLength int
}

// NewPasswordManager creates a password manager. A cost outside bcrypt's
// accepted range falls back to bcrypt.DefaultCost.
func NewPasswordManager(cost, minLength int) *PasswordManager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if minLength < 1 {
		minLength = 1
	}
	return &PasswordManager{
		cost:      cost,
		minLength: minLength,
	}
}

// HashPassword validates and hashes a password using bcrypt
func (pm *PasswordManager) HashPassword(password string) (string, error) {
	if err := pm.ValidatePassword(password); err != nil {
		return "", err
	}
	return pm.hash(password)
}

// HashFixedPassword hashes a password the application chose itself, such as
// a demo account's. The length policy does not apply.
func (pm *PasswordManager) HashFixedPassword(password string) (string, error) {
	return pm.hash(password)
}

func (pm *PasswordManager) hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), pm.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// ComparePassword compares a password with a hash
func (pm *PasswordManager) ComparePassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// ValidatePassword checks the minimum length. bcrypt ignores bytes past 72,
// so longer passwords are rejected too.
func (pm *PasswordManager) ValidatePassword(password string) error {
	if len(password) < pm.minLength {
		return fmt.Errorf("%w: minimum length is %d characters", ErrWeakPassword, pm.minLength)
	}
	if len(password) > 72 {
		return fmt.Errorf("%w: maximum length is 72 bytes", ErrWeakPassword)
	}
	return nil
}

// ValidateEmail validates an email address format
func ValidateEmail(email string) error {
	if len(email) > 255 {
		return errors.New("email address too long")
	}

	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}

	return nil
}
