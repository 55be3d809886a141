package email

import (
	"errors"
	"strings"
	"time"
)

// Status constants for email lifecycle.
const (
	StatusDraft     = "draft"
	StatusQueued    = "queued"
	StatusSent      = "sent"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Domain errors.
var (
	ErrEmptySubject   = errors.New("email subject is required")
	ErrEmptyBody      = errors.New("email body is required")
	ErrEmptySenderID  = errors.New("sender ID is required")
	ErrNoRecipients   = errors.New("at least one recipient is required")
	ErrNotDraft       = errors.New("email is not in draft status")
	ErrNotQueued      = errors.New("email is not in queued status")
	ErrNotCancellable = errors.New("email cannot be cancelled in its current status")
	ErrEmptyTemplate  = errors.New("template name and body are required")
)

// Email is a queued message to one or more club contacts. Bodies are stored
// as Markdown and rendered to HTML at send time.
type Email struct {
	ID                string
	Subject           string
	Body              string // Markdown source
	SenderID          string // account ID of the composer
	TemplateID        string // template the body was built from, if any
	Status            string
	QueuedAt          time.Time
	SentAt            time.Time
	CreatedAt         time.Time
	ProviderMessageID string // delivery provider's ID for tracking
	ErrorMessage      string // last send failure, empty otherwise
}

// Recipient links an email to a club contact address.
type Recipient struct {
	EmailID  string
	ClubID   string
	ClubName string // denormalized for display
	Address  string
}

// Template is a reusable Markdown email body with {{placeholders}} expanded
// at compose time.
type Template struct {
	ID        string
	Name      string
	Subject   string
	Body      string // Markdown with {{club_name}}, {{event_name}}, ... placeholders
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks that the Email has valid data.
// PRE: Email struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Email) Validate() error {
	if e.Subject == "" {
		return ErrEmptySubject
	}
	if e.Body == "" {
		return ErrEmptyBody
	}
	if e.SenderID == "" {
		return ErrEmptySenderID
	}
	if e.CreatedAt.IsZero() {
		return errors.New("created_at must be set")
	}
	return nil
}

// MarkQueued transitions the email to queued status for the next send pass.
// PRE: Email is in draft status
// POST: Status is queued, QueuedAt is set
func (e *Email) MarkQueued(at time.Time) error {
	if e.Status != StatusDraft {
		return ErrNotDraft
	}
	e.Status = StatusQueued
	e.QueuedAt = at
	return nil
}

// MarkSent records that the email was accepted by the delivery provider.
// PRE: Email is in queued status
// POST: Status is sent, SentAt and provider ID are set
func (e *Email) MarkSent(sentAt time.Time, providerID string) error {
	if e.Status != StatusQueued {
		return ErrNotQueued
	}
	e.Status = StatusSent
	e.SentAt = sentAt
	e.ProviderMessageID = providerID
	e.ErrorMessage = ""
	return nil
}

// MarkFailed records that sending failed.
// PRE: Email is in queued status
// POST: Status is failed, ErrorMessage is set
func (e *Email) MarkFailed(err error) {
	e.Status = StatusFailed
	if err != nil {
		e.ErrorMessage = err.Error()
	}
}

// Cancel cancels a draft or queued email before it is sent.
// PRE: Email is in draft or queued status
// POST: Status is cancelled
func (e *Email) Cancel() error {
	if e.Status != StatusDraft && e.Status != StatusQueued {
		return ErrNotCancellable
	}
	e.Status = StatusCancelled
	return nil
}

// Validate checks that the Template has valid data.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.Body) == "" {
		return ErrEmptyTemplate
	}
	return nil
}

// Render expands {{placeholder}} markers in the template body and subject.
// Unknown placeholders are left in place so reviewers can spot them.
// PRE: none
// POST: pure; template fields are not mutated
func (t *Template) Render(values map[string]string) (subject, body string) {
	subject = t.Subject
	body = t.Body
	for key, value := range values {
		marker := "{{" + key + "}}"
		subject = strings.ReplaceAll(subject, marker, value)
		body = strings.ReplaceAll(body, marker, value)
	}
	return subject, body
}
