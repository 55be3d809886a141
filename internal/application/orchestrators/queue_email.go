package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"zonehub/internal/domain/club"
	emailDomain "zonehub/internal/domain/email"
)

// EmailStoreForOrchestrator defines the store interface needed by email orchestrators.
type EmailStoreForOrchestrator interface {
	Save(ctx context.Context, e emailDomain.Email, recipients []emailDomain.Recipient) error
	GetByID(ctx context.Context, id string) (emailDomain.Email, []emailDomain.Recipient, error)
	ListByStatus(ctx context.Context, status string) ([]emailDomain.Email, error)
}

// TemplateStoreForCompose defines the template store interface for composing.
type TemplateStoreForCompose interface {
	GetByID(ctx context.Context, id string) (emailDomain.Template, error)
}

// ClubLookupStore defines the club store interface for recipient resolution.
type ClubLookupStore interface {
	GetByID(ctx context.Context, id string) (club.Club, error)
}

// ComposeEmailInput carries input for composing an email to club contacts.
// When TemplateID is set the subject and body come from the rendered template
// and the literal Subject/Body fields are ignored.
type ComposeEmailInput struct {
	Subject        string
	Body           string // Markdown source
	SenderID       string
	TemplateID     string
	TemplateValues map[string]string // {{placeholder}} expansions
	ClubIDs        []string
}

// ComposeEmailDeps holds dependencies for ComposeEmail.
type ComposeEmailDeps struct {
	EmailStore    EmailStoreForOrchestrator
	TemplateStore TemplateStoreForCompose
	ClubStore     ClubLookupStore
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteComposeEmail creates an email draft addressed to club contacts.
// Clubs without a contact address are skipped with a warning rather than
// failing the whole compose.
// PRE: SenderID is non-empty; at least one club resolves to an address
// POST: Email saved as draft with its recipient list
func ExecuteComposeEmail(ctx context.Context, input ComposeEmailInput, deps ComposeEmailDeps) (emailDomain.Email, error) {
	if input.SenderID == "" {
		return emailDomain.Email{}, emailDomain.ErrEmptySenderID
	}

	subject, body := input.Subject, input.Body
	if input.TemplateID != "" {
		tpl, err := deps.TemplateStore.GetByID(ctx, input.TemplateID)
		if err != nil {
			return emailDomain.Email{}, err
		}
		subject, body = tpl.Render(input.TemplateValues)
	}

	em := emailDomain.Email{
		ID:         deps.GenerateID(),
		Subject:    subject,
		Body:       body,
		SenderID:   input.SenderID,
		TemplateID: input.TemplateID,
		Status:     emailDomain.StatusDraft,
		CreatedAt:  deps.Now(),
	}
	if err := em.Validate(); err != nil {
		return emailDomain.Email{}, err
	}

	var recipients []emailDomain.Recipient
	for _, clubID := range input.ClubIDs {
		c, err := deps.ClubStore.GetByID(ctx, clubID)
		if err != nil {
			slog.Warn("email_recipient_lookup_failed", "club_id", clubID, "error", err)
			continue
		}
		if c.ContactEmail == "" {
			slog.Warn("email_recipient_no_address", "club_id", clubID, "club_name", c.Name)
			continue
		}
		recipients = append(recipients, emailDomain.Recipient{
			EmailID:  em.ID,
			ClubID:   c.ID,
			ClubName: c.Name,
			Address:  c.ContactEmail,
		})
	}
	if len(recipients) == 0 {
		return emailDomain.Email{}, emailDomain.ErrNoRecipients
	}

	if err := deps.EmailStore.Save(ctx, em, recipients); err != nil {
		return emailDomain.Email{}, err
	}

	slog.Info("email_event", "event", "email_draft_saved", "email_id", em.ID, "sender_id", em.SenderID, "recipient_count", len(recipients))
	return em, nil
}

// QueueEmailInput identifies the draft to queue.
type QueueEmailInput struct {
	EmailID string
}

// QueueEmailDeps holds dependencies for QueueEmail.
type QueueEmailDeps struct {
	EmailStore EmailStoreForOrchestrator
	Now        func() time.Time
}

// ExecuteQueueEmail moves a draft into the send queue.
// PRE: EmailID exists and is in draft status with recipients
// POST: Email status is queued with QueuedAt set
func ExecuteQueueEmail(ctx context.Context, input QueueEmailInput, deps QueueEmailDeps) (emailDomain.Email, error) {
	if input.EmailID == "" {
		return emailDomain.Email{}, errors.New("email ID is required")
	}

	em, recipients, err := deps.EmailStore.GetByID(ctx, input.EmailID)
	if err != nil {
		return emailDomain.Email{}, err
	}
	if len(recipients) == 0 {
		return emailDomain.Email{}, emailDomain.ErrNoRecipients
	}
	if err := em.MarkQueued(deps.Now()); err != nil {
		return emailDomain.Email{}, err
	}
	if err := deps.EmailStore.Save(ctx, em, recipients); err != nil {
		return emailDomain.Email{}, err
	}

	slog.Info("email_event", "event", "email_queued", "email_id", em.ID, "recipient_count", len(recipients))
	return em, nil
}

// CancelEmailInput identifies the email to cancel.
type CancelEmailInput struct {
	EmailID string
}

// ExecuteCancelEmail cancels a draft or queued email before it is sent.
// PRE: EmailID exists and is in draft or queued status
// POST: Email status set to cancelled
func ExecuteCancelEmail(ctx context.Context, input CancelEmailInput, deps QueueEmailDeps) (emailDomain.Email, error) {
	if input.EmailID == "" {
		return emailDomain.Email{}, errors.New("email ID is required")
	}

	em, recipients, err := deps.EmailStore.GetByID(ctx, input.EmailID)
	if err != nil {
		return emailDomain.Email{}, err
	}
	if err := em.Cancel(); err != nil {
		return emailDomain.Email{}, err
	}
	if err := deps.EmailStore.Save(ctx, em, recipients); err != nil {
		return emailDomain.Email{}, err
	}

	slog.Info("email_event", "event", "email_cancelled", "email_id", em.ID)
	return em, nil
}
