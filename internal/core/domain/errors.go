package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized access")
)

// ValidationError reports malformed input rejected at the boundary.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateClientID accepts only canonical UUIDs for IDs generated by offline clients.
func ValidateClientID(field, id string) error {
	if len(id) != 36 {
		return &ValidationError{Field: field, Value: id, Reason: "must be a UUID"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return &ValidationError{Field: field, Value: id, Reason: "must be a UUID"}
	}
	return nil
}
