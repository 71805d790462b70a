package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Zalotleh/wellness-hub-sub004/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// ValidationError names the offending field so callers can fix their input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StateConflictError is returned for illegal recommendation transitions and
// carries the current status so the caller can decide whether the outcome it
// wanted is already satisfied.
type StateConflictError struct {
	Current models.RecommendationStatus
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("recommendation already %s", strings.ToLower(string(e.Current)))
}
