package eventtype

import (
	"errors"
	"strings"
)

// EventType is reference data: a named category of club events (rally, ODE,
// show jumping, clinic...). Imported rows carry free-text type values that are
// matched against this list case-insensitively.
type EventType struct {
	ID   string
	Name string
}

// Validate checks the event type's invariants.
func (t *EventType) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("event type name cannot be empty")
	}
	return nil
}

// MatchName returns true when the free-text value names this type,
// ignoring case and surrounding whitespace.
func (t *EventType) MatchName(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), t.Name)
}
