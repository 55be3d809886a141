package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"zonehub/internal/domain/event"
)

// EventCrudStore defines the event store interface for manual CRUD.
type EventCrudStore interface {
	Save(ctx context.Context, e event.Event) error
	GetByID(ctx context.Context, id string) (event.Event, error)
	Delete(ctx context.Context, id string) error
}

// CreateEventInput carries a manually entered calendar event.
type CreateEventInput struct {
	ClubID          string
	ZoneID          string
	Name            string
	EventType       string
	Location        string
	Notes           string
	CoordinatorName string
	StartDate       time.Time
	EndDate         time.Time
	CreatedBy       string // account ID
}

// ManageEventDeps holds dependencies for the manual event operations.
type ManageEventDeps struct {
	EventStore EventCrudStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateEvent adds a manually entered event to the calendar.
// PRE: input has a name and start date
// POST: Event is persisted with Source "manual"
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps ManageEventDeps) (event.Event, error) {
	e := event.Event{
		ID:              deps.GenerateID(),
		ClubID:          input.ClubID,
		ZoneID:          input.ZoneID,
		Name:            input.Name,
		EventType:       input.EventType,
		Location:        input.Location,
		Notes:           input.Notes,
		CoordinatorName: input.CoordinatorName,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Source:          event.SourceManual,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       deps.Now(),
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("calendar_event", "event", "event_created", "event_id", e.ID, "name", e.Name, "club_id", e.ClubID)
	return e, nil
}

// UpdateEventInput carries edits to an existing event. Nil pointers leave the
// corresponding field unchanged.
type UpdateEventInput struct {
	EventID         string
	Name            *string
	EventType       *string
	Location        *string
	Notes           *string
	CoordinatorName *string
	StartDate       *time.Time
	EndDate         *time.Time
	ClubID          *string
}

// ExecuteUpdateEvent applies edits to an existing event.
// PRE: event exists; the result still validates
// POST: Event is persisted with the edits applied
func ExecuteUpdateEvent(ctx context.Context, input UpdateEventInput, deps ManageEventDeps) (event.Event, error) {
	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return event.Event{}, err
	}

	if input.Name != nil {
		e.Name = *input.Name
	}
	if input.EventType != nil {
		e.EventType = *input.EventType
	}
	if input.Location != nil {
		e.Location = *input.Location
	}
	if input.Notes != nil {
		e.Notes = *input.Notes
	}
	if input.CoordinatorName != nil {
		e.CoordinatorName = *input.CoordinatorName
	}
	if input.StartDate != nil {
		e.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		e.EndDate = *input.EndDate
	}
	if input.ClubID != nil {
		e.ClubID = *input.ClubID
	}

	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("calendar_event", "event", "event_updated", "event_id", e.ID)
	return e, nil
}

// DeleteEventInput identifies the event to remove.
type DeleteEventInput struct {
	EventID string
}

// ExecuteDeleteEvent removes an event from the calendar.
// PRE: event exists
// POST: Event is removed from storage
func ExecuteDeleteEvent(ctx context.Context, input DeleteEventInput, deps ManageEventDeps) error {
	if _, err := deps.EventStore.GetByID(ctx, input.EventID); err != nil {
		return err
	}
	if err := deps.EventStore.Delete(ctx, input.EventID); err != nil {
		return err
	}
	slog.Info("calendar_event", "event", "event_deleted", "event_id", input.EventID)
	return nil
}
