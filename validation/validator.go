// Package validation provides a small fluent validator producing
// client-facing AppError values. Checks run in order and Validate reports
// the first failure, so callers control the message the client sees.
package validation

import (
	"regexp"
	"strings"

	"github.com/skillsenselab/authd/errors"
)

// EmailPattern is the address shape accepted at registration.
var EmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// FieldError records a failed check for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects validation failures in check order.
type Validator struct {
	errors []FieldError
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{errors: make([]FieldError, 0)}
}

// AddError records a failure for a field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all recorded failures.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns a Validation AppError carrying the first failure's
// message, or nil if every check passed.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	return errors.Validation(v.errors[0].Message)
}

// Required checks that a string is non-empty after trimming.
func (v *Validator) Required(field, value, message string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, message)
	}
	return v
}

// Email checks that a non-empty string looks like an email address.
// Surrounding whitespace is ignored, matching how addresses are stored.
// Empty values are skipped; pair with Required to reject them.
func (v *Validator) Email(field, value, message string) *Validator {
	value = strings.TrimSpace(value)
	if value == "" {
		return v
	}
	if !EmailPattern.MatchString(value) {
		v.AddError(field, message)
	}
	return v
}

// MinLength checks that a string has at least minLen bytes.
func (v *Validator) MinLength(field, value string, minLen int, message string) *Validator {
	if len(value) < minLen {
		v.AddError(field, message)
	}
	return v
}

// MaxLength checks that a string has at most maxLen bytes.
func (v *Validator) MaxLength(field, value string, maxLen int, message string) *Validator {
	if len(value) > maxLen {
		v.AddError(field, message)
	}
	return v
}
