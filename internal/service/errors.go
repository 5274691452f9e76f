package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound marks a lookup for an article that does not exist, distinct
// from invalid input.
var ErrNotFound = errors.New("article not found")

// ErrNoPreferences marks a personalized-feed request from a user who has
// never saved preferences. Callers surface it as an explicit "no preferences
// set" result, not as an empty article list.
var ErrNoPreferences = errors.New("no preferences set")

// ValidationError reports malformed filter or preference input, field by
// field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}
