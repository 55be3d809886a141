package event

import (
	"errors"
	"strings"
	"time"
)

// Source constants describe how an event entered the system.
const (
	SourceManual   = "manual"
	SourceImported = "imported"
	SourceRequest  = "request"
)

// Max length constants.
const (
	MaxNameLength     = 200
	MaxLocationLength = 200
	MaxNotesLength    = 2000
)

// Domain errors.
var (
	ErrEmptyName      = errors.New("event name cannot be empty")
	ErrMissingStart   = errors.New("event start date is required")
	ErrEndBeforeStart = errors.New("event end date cannot be before start date")
)

// Event is a club calendar event.
// INVARIANT: EndDate >= StartDate when EndDate is set.
type Event struct {
	ID              string
	ClubID          string
	ZoneID          string
	Name            string
	EventType       string // references an EventType name, free text for imports
	Location        string
	Notes           string
	CoordinatorName string
	StartDate       time.Time
	EndDate         time.Time // zero value means single-day event
	Source          string    // manual, imported, request
	ImportBatchID   string    // set when Source == imported, for rollback tracing
	CreatedBy       string    // account ID
	CreatedAt       time.Time
}

// Validate checks the event's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if len(e.Name) > MaxNameLength {
		return errors.New("event name cannot exceed 200 characters")
	}
	if e.StartDate.IsZero() {
		return ErrMissingStart
	}
	if !e.EndDate.IsZero() && e.EndDate.Before(e.StartDate) {
		return ErrEndBeforeStart
	}
	if len(e.Location) > MaxLocationLength {
		return errors.New("event location cannot exceed 200 characters")
	}
	if len(e.Notes) > MaxNotesLength {
		return errors.New("event notes cannot exceed 2000 characters")
	}
	switch e.Source {
	case SourceManual, SourceImported, SourceRequest:
	default:
		return errors.New("event source must be 'manual', 'imported' or 'request'")
	}
	return nil
}

// IsMultiDay returns true if the event spans more than one calendar day.
// PRE: none
// POST: returns true if EndDate is set and on a different calendar day than StartDate
func (e *Event) IsMultiDay() bool {
	if e.EndDate.IsZero() {
		return false
	}
	return e.EndDate.After(e.StartDate) &&
		e.EndDate.Format("2006-01-02") != e.StartDate.Format("2006-01-02")
}
