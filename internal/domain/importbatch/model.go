package importbatch

import (
	"errors"
	"time"
)

// Event status constants.
const (
	EventPending   = "pending"
	EventMatched   = "matched"
	EventUnmatched = "unmatched"
	EventError     = "error"
)

// Batch status constants.
const (
	StatusDraft      = "draft"
	StatusReviewing  = "reviewing"
	StatusReady      = "ready"
	StatusImporting  = "importing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusRolledBack = "rolled_back"
)

// Max length constants.
const (
	MaxFileNameLength = 255
	MaxEventsPerBatch = 2000
)

// Domain errors.
var (
	ErrEmptyFileName      = errors.New("batch file name is required")
	ErrNoEvents           = errors.New("batch contains no events")
	ErrTooManyEvents      = errors.New("batch exceeds the maximum number of events")
	ErrInvalidStatus      = errors.New("invalid batch status")
	ErrInvalidTransition  = errors.New("invalid batch status transition")
	ErrUnmatchedEvents    = errors.New("batch has events with unmatched clubs")
	ErrNotRollbackable    = errors.New("only completed batches can be rolled back")
	ErrNoImportedEvents   = errors.New("batch has no imported event IDs to roll back")
	ErrEventNotFound      = errors.New("event not found in batch")
	ErrBatchNotReviewable = errors.New("batch is no longer open for review")
)

// ImportedEvent is one logical calendar entry extracted from an uploaded
// document, carrying the outcome of club matching and validation.
// INVARIANT: EndDate >= StartDate when both are set.
// INVARIANT: MatchConfidence > 0 only when Status is "matched".
type ImportedEvent struct {
	ID               string
	OriginalData     []string // source row, kept for audit
	Name             string
	ClubName         string
	EventType        string
	Location         string
	Notes            string
	CoordinatorName  string
	StartDate        time.Time
	EndDate          time.Time
	ClubID           string // set only when a club match was found
	Status           string
	MatchConfidence  int // 0-100, present only when matched
	ValidationErrors []string
	SplitEvents      []ImportedEvent // per-day copies for multi-day spans
}

// IsMultiDay reports whether the source row spanned more than one calendar day.
// PRE: none
// POST: returns true when the event was split into more than one per-day record
func (e *ImportedEvent) IsMultiDay() bool {
	return len(e.SplitEvents) > 1
}

// HasValidationErrors reports whether the event failed row validation.
func (e *ImportedEvent) HasValidationErrors() bool {
	return len(e.ValidationErrors) > 0
}

// Summary holds derived counts over a batch's event list. It is a cache: it
// must always equal CalculateSummary of the current event list.
type Summary struct {
	TotalEvents      int
	MatchedClubs     int
	UnmatchedClubs   int
	MultiDayEvents   int
	ValidationErrors int
}

// CalculateSummary computes batch counts as a pure function of the event list.
// PRE: none
// POST: same input always yields the same Summary; no fields of events are mutated
func CalculateSummary(events []ImportedEvent) Summary {
	s := Summary{TotalEvents: len(events)}
	for i := range events {
		switch events[i].Status {
		case EventMatched:
			s.MatchedClubs++
		case EventUnmatched:
			s.UnmatchedClubs++
		}
		if events[i].IsMultiDay() {
			s.MultiDayEvents++
		}
		if events[i].HasValidationErrors() {
			s.ValidationErrors++
		}
	}
	return s
}

// Batch is a named, reviewable collection of imported events with a lifecycle.
// INVARIANT: Summary always equals CalculateSummary(Events).
// INVARIANT: ImportedEventIDs records every event created once execute
// begins; a failed execute keeps the IDs created before the failure so they
// can be cleaned up.
type Batch struct {
	ID               string
	FileName         string
	FileSize         int64
	Status           string
	Events           []ImportedEvent
	Summary          Summary
	ImportedEventIDs []string
	ErrorMessage     string // last execute/rollback failure, empty otherwise
	CreatedBy        string // account ID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// transitions is the authoritative batch lifecycle graph. Rollback is only
// reachable from completed; failed is terminal.
var transitions = map[string][]string{
	StatusDraft:      {StatusReviewing},
	StatusReviewing:  {StatusReady, StatusImporting},
	StatusReady:      {StatusReviewing, StatusImporting},
	StatusImporting:  {StatusCompleted, StatusFailed},
	StatusCompleted:  {StatusRolledBack},
	StatusFailed:     {},
	StatusRolledBack: {},
}

// ValidStatus reports whether s is a known batch status.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// Validate checks the batch's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (b *Batch) Validate() error {
	if b.FileName == "" {
		return ErrEmptyFileName
	}
	if len(b.FileName) > MaxFileNameLength {
		return errors.New("batch file name cannot exceed 255 characters")
	}
	if !ValidStatus(b.Status) {
		return ErrInvalidStatus
	}
	if len(b.Events) == 0 {
		return ErrNoEvents
	}
	if len(b.Events) > MaxEventsPerBatch {
		return ErrTooManyEvents
	}
	return nil
}

// CanTransitionTo reports whether moving to next is a legal lifecycle step.
// PRE: b.Status is a valid status
// POST: pure; no state is mutated
func (b *Batch) CanTransitionTo(next string) bool {
	for _, s := range transitions[b.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the batch to the next lifecycle state.
// PRE: none
// POST: Status is updated on success; ErrInvalidTransition otherwise and the
// batch is unchanged
func (b *Batch) TransitionTo(next string) error {
	if !b.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.Status = next
	return nil
}

// IsReviewable reports whether review edits (update/delete/assign club) are
// still allowed.
func (b *Batch) IsReviewable() bool {
	return b.Status == StatusDraft || b.Status == StatusReviewing || b.Status == StatusReady
}

// CanExecute checks the execution gate. Any unmatched event blocks the whole
// batch; validation errors are advisory and do not block.
// PRE: none
// POST: returns nil when execution may proceed, a domain error otherwise
func (b *Batch) CanExecute() error {
	if b.Status != StatusReviewing && b.Status != StatusReady {
		return ErrInvalidTransition
	}
	if len(b.Events) == 0 {
		return ErrNoEvents
	}
	for i := range b.Events {
		if b.Events[i].Status == EventUnmatched {
			return ErrUnmatchedEvents
		}
	}
	return nil
}

// CanRollback checks the rollback precondition.
// PRE: none
// POST: returns nil only for a completed batch with recorded imported event IDs
func (b *Batch) CanRollback() error {
	if b.Status != StatusCompleted {
		return ErrNotRollbackable
	}
	if len(b.ImportedEventIDs) == 0 {
		return ErrNoImportedEvents
	}
	return nil
}

// RecomputeSummary refreshes the cached summary from the current event list.
// Call after every mutation of Events.
func (b *Batch) RecomputeSummary() {
	b.Summary = CalculateSummary(b.Events)
}

// FindEvent returns the index of the event with the given ID, or -1.
func (b *Batch) FindEvent(id string) int {
	for i := range b.Events {
		if b.Events[i].ID == id {
			return i
		}
	}
	return -1
}
