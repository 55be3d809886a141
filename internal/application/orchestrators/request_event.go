package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"zonehub/internal/domain/event"
	"zonehub/internal/domain/eventrequest"
)

// RequestStore defines the event request store interface.
type RequestStore interface {
	Save(ctx context.Context, r eventrequest.Request) error
	GetByID(ctx context.Context, id string) (eventrequest.Request, error)
}

// SubmitEventRequestInput carries a club's event application.
type SubmitEventRequestInput struct {
	ClubID          string
	Name            string
	EventType       string
	Location        string
	Notes           string
	CoordinatorName string
	StartDate       time.Time
	EndDate         time.Time
	SubmittedBy     string // account ID
}

// SubmitEventRequestDeps holds dependencies for SubmitEventRequest.
type SubmitEventRequestDeps struct {
	RequestStore RequestStore
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSubmitEventRequest creates and submits an event request in one step.
// PRE: input names a club and an event with a start date
// POST: Request is persisted in submitted status awaiting a decision
func ExecuteSubmitEventRequest(ctx context.Context, input SubmitEventRequestInput, deps SubmitEventRequestDeps) (eventrequest.Request, error) {
	r := eventrequest.Request{
		ID:              deps.GenerateID(),
		ClubID:          input.ClubID,
		Name:            input.Name,
		EventType:       input.EventType,
		Location:        input.Location,
		Notes:           input.Notes,
		CoordinatorName: input.CoordinatorName,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Status:          eventrequest.StatusDraft,
		SubmittedBy:     input.SubmittedBy,
		CreatedAt:       deps.Now(),
	}
	if err := r.Validate(); err != nil {
		return eventrequest.Request{}, err
	}
	if err := r.Submit(); err != nil {
		return eventrequest.Request{}, err
	}
	if err := deps.RequestStore.Save(ctx, r); err != nil {
		return eventrequest.Request{}, err
	}

	slog.Info("request_event", "event", "request_submitted", "request_id", r.ID, "club_id", r.ClubID, "name", r.Name)
	return r, nil
}

// DecideEventRequestInput carries an approval or rejection decision.
type DecideEventRequestInput struct {
	RequestID string
	DecidedBy string // account ID
	Reason    string // required for rejection
}

// DecideEventRequestDeps holds dependencies for the decision orchestrators.
type DecideEventRequestDeps struct {
	RequestStore RequestStore
	EventStore   EventWriteStore
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteApproveEventRequest approves a submitted request and creates the
// real calendar event from it.
// PRE: request is in submitted status
// POST: Request is approved and a calendar event with Source "request" exists
func ExecuteApproveEventRequest(ctx context.Context, input DecideEventRequestInput, deps DecideEventRequestDeps) (eventrequest.Request, error) {
	r, err := deps.RequestStore.GetByID(ctx, input.RequestID)
	if err != nil {
		return eventrequest.Request{}, err
	}
	if err := r.Approve(input.DecidedBy, deps.Now()); err != nil {
		return eventrequest.Request{}, err
	}

	e := event.Event{
		ID:              deps.GenerateID(),
		ClubID:          r.ClubID,
		Name:            r.Name,
		EventType:       r.EventType,
		Location:        r.Location,
		Notes:           r.Notes,
		CoordinatorName: r.CoordinatorName,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Source:          event.SourceRequest,
		CreatedBy:       input.DecidedBy,
		CreatedAt:       deps.Now(),
	}
	if err := e.Validate(); err != nil {
		return eventrequest.Request{}, err
	}
	if err := deps.EventStore.Save(ctx, e); err != nil {
		return eventrequest.Request{}, err
	}
	if err := deps.RequestStore.Save(ctx, r); err != nil {
		return eventrequest.Request{}, err
	}

	slog.Info("request_event", "event", "request_approved", "request_id", r.ID, "event_id", e.ID, "decided_by", input.DecidedBy)
	return r, nil
}

// ExecuteRejectEventRequest rejects a submitted request with a reason.
// PRE: request is in submitted status and Reason is non-empty
// POST: Request is rejected; no calendar event is created
func ExecuteRejectEventRequest(ctx context.Context, input DecideEventRequestInput, deps DecideEventRequestDeps) (eventrequest.Request, error) {
	r, err := deps.RequestStore.GetByID(ctx, input.RequestID)
	if err != nil {
		return eventrequest.Request{}, err
	}
	if err := r.Reject(input.DecidedBy, input.Reason, deps.Now()); err != nil {
		return eventrequest.Request{}, err
	}
	if err := deps.RequestStore.Save(ctx, r); err != nil {
		return eventrequest.Request{}, err
	}

	slog.Info("request_event", "event", "request_rejected", "request_id", r.ID, "decided_by", input.DecidedBy)
	return r, nil
}
