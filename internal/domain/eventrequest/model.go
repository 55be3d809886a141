package eventrequest

import (
	"errors"
	"strings"
	"time"
)

// Status constants for the request lifecycle.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// Max length constants.
const (
	MaxNameLength   = 200
	MaxReasonLength = 1000
)

// Domain errors.
var (
	ErrEmptyName     = errors.New("request event name cannot be empty")
	ErrEmptyClubID   = errors.New("request must name a club")
	ErrMissingStart  = errors.New("request start date is required")
	ErrNotSubmitted  = errors.New("request is not in submitted status")
	ErrNotDraft      = errors.New("request is not in draft status")
	ErrEmptyReason   = errors.New("a rejection reason is required")
	ErrAlreadyClosed = errors.New("request has already been decided")
)

// Request is a club's application to hold an event, pending zone approval.
// Approval creates the real calendar event; the request records who decided
// and when.
type Request struct {
	ID              string
	ClubID          string
	Name            string
	EventType       string
	Location        string
	Notes           string
	CoordinatorName string
	StartDate       time.Time
	EndDate         time.Time
	Status          string
	RejectReason    string
	SubmittedBy     string // account ID
	DecidedBy       string // account ID of the approver/rejecter
	DecidedAt       time.Time
	CreatedAt       time.Time
}

// Validate checks the request's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if len(r.Name) > MaxNameLength {
		return errors.New("request event name cannot exceed 200 characters")
	}
	if r.ClubID == "" {
		return ErrEmptyClubID
	}
	if r.StartDate.IsZero() {
		return ErrMissingStart
	}
	if !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return errors.New("request end date cannot be before start date")
	}
	switch r.Status {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
	default:
		return errors.New("request status must be draft, submitted, approved or rejected")
	}
	return nil
}

// Submit moves a draft request into the submitted state.
// PRE: request is in draft status
// POST: Status is submitted
func (r *Request) Submit() error {
	if r.Status != StatusDraft {
		return ErrNotDraft
	}
	r.Status = StatusSubmitted
	return nil
}

// Approve marks a submitted request as approved.
// PRE: request is in submitted status
// POST: Status is approved, decision fields are recorded
func (r *Request) Approve(decidedBy string, at time.Time) error {
	if r.Status != StatusSubmitted {
		return ErrNotSubmitted
	}
	r.Status = StatusApproved
	r.DecidedBy = decidedBy
	r.DecidedAt = at
	return nil
}

// Reject marks a submitted request as rejected with a reason.
// PRE: request is in submitted status, reason is non-empty
// POST: Status is rejected, reason and decision fields are recorded
func (r *Request) Reject(decidedBy, reason string, at time.Time) error {
	if r.Status != StatusSubmitted {
		return ErrNotSubmitted
	}
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyReason
	}
	if len(reason) > MaxReasonLength {
		return errors.New("rejection reason cannot exceed 1000 characters")
	}
	r.Status = StatusRejected
	r.RejectReason = reason
	r.DecidedBy = decidedBy
	r.DecidedAt = at
	return nil
}
