// internal/service/validation.go
package service

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gurkanbulca/teamflow/pkg/auth"
)

// ValidationConfig holds input limits for signup and task forms
type ValidationConfig struct {
	MaxNameLength        int
	MaxRoleLength        int
	MaxTitleLength       int
	MaxDescriptionLength int
}

// DefaultValidationConfig returns default validation configuration
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{
		MaxNameLength:        100,
		MaxRoleLength:        50,
		MaxTitleLength:       200,
		MaxDescriptionLength: 5000,
	}
}

// validateRegisterInput reports every problem with a signup form at once.
// Password strength is checked by the password manager.
func (v *ValidationConfig) validateRegisterInput(input RegisterInput) error {
	var errors []string

	name := strings.TrimSpace(input.Name)
	if name == "" {
		errors = append(errors, "name is required")
	} else if utf8.RuneCountInString(name) > v.MaxNameLength {
		errors = append(errors, fmt.Sprintf("name too long (max %d characters)", v.MaxNameLength))
	}
	if hasControlChars(input.Name) {
		errors = append(errors, "name contains control characters")
	}

	if err := auth.ValidateEmail(input.Email); err != nil {
		errors = append(errors, err.Error())
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		errors = append(errors, "role is required")
	} else if utf8.RuneCountInString(role) > v.MaxRoleLength {
		errors = append(errors, fmt.Sprintf("role too long (max %d characters)", v.MaxRoleLength))
	}

	return joinValidationErrors(errors)
}

// validateCreateTaskInput reports every problem with a new-task form at once.
func (v *ValidationConfig) validateCreateTaskInput(input CreateTaskInput) error {
	var errors []string

	title := strings.TrimSpace(input.Title)
	if title == "" {
		errors = append(errors, "title is required")
	} else if utf8.RuneCountInString(title) > v.MaxTitleLength {
		errors = append(errors, fmt.Sprintf("title too long (max %d characters)", v.MaxTitleLength))
	}
	if hasControlChars(input.Title) {
		errors = append(errors, "title contains control characters")
	}

	if utf8.RuneCountInString(input.Description) > v.MaxDescriptionLength {
		errors = append(errors, fmt.Sprintf("description too long (max %d characters)", v.MaxDescriptionLength))
	}

	if input.Deadline.IsZero() {
		errors = append(errors, "deadline is required")
	}

	if !input.Priority.Valid() {
		errors = append(errors, fmt.Sprintf("unknown priority %q", input.Priority))
	}

	return joinValidationErrors(errors)
}

// hasControlChars reports line breaks and other control runes. Titles and
// names end up in mail headers.
func hasControlChars(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

func joinValidationErrors(errors []string) error {
	if len(errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(errors, "; "))
}
