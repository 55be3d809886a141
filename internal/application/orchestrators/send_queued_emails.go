package orchestrators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	emailAdapter "zonehub/internal/adapters/email"
	emailDomain "zonehub/internal/domain/email"
	outboxDomain "zonehub/internal/domain/outbox"
)

// OutboxWriteStore defines the outbox store interface for recording failures.
type OutboxWriteStore interface {
	Save(ctx context.Context, e outboxDomain.Entry) error
}

// SendQueuedEmailsDeps holds dependencies for the send pass.
type SendQueuedEmailsDeps struct {
	EmailStore  EmailStoreForOrchestrator
	OutboxStore OutboxWriteStore
	EmailSender emailAdapter.Sender
	Now         func() time.Time
	FromAddress string
	ReplyTo     string
}

// SendQueuedEmailsResult reports the outcome of one send pass.
type SendQueuedEmailsResult struct {
	Sent   int
	Failed int
}

// EmailRetryPayload is the JSON shape stored in the outbox for failed sends.
// Only the email ID is recorded; the retry executor re-reads the current
// email and recipients so edits made before the retry are honored.
type EmailRetryPayload struct {
	EmailID string `json:"emailId"`
}

// ExecuteSendQueuedEmails delivers every queued email, one at a time in queue
// order. Markdown bodies are rendered to HTML at send time. A failed send
// marks the email failed and records an outbox entry for the retry worker;
// it does not stop the pass.
// PRE: EmailSender is configured
// POST: every queued email ends up sent or failed-with-outbox-entry
func ExecuteSendQueuedEmails(ctx context.Context, deps SendQueuedEmailsDeps) (SendQueuedEmailsResult, error) {
	queued, err := deps.EmailStore.ListByStatus(ctx, emailDomain.StatusQueued)
	if err != nil {
		return SendQueuedEmailsResult{}, err
	}

	var result SendQueuedEmailsResult
	for _, em := range queued {
		if err := sendOneEmail(ctx, em.ID, deps); err != nil {
			result.Failed++
		} else {
			result.Sent++
		}
	}

	if result.Sent > 0 || result.Failed > 0 {
		slog.Info("email_event", "event", "send_pass_complete", "sent", result.Sent, "failed", result.Failed)
	}
	return result, nil
}

// sendOneEmail delivers a single queued email to all its recipients.
func sendOneEmail(ctx context.Context, emailID string, deps SendQueuedEmailsDeps) error {
	em, recipients, err := deps.EmailStore.GetByID(ctx, emailID)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		em.MarkFailed(emailDomain.ErrNoRecipients)
		_ = deps.EmailStore.Save(ctx, em, recipients)
		return emailDomain.ErrNoRecipients
	}

	htmlBody, err := RenderMarkdown(em.Body)
	if err != nil {
		em.MarkFailed(err)
		_ = deps.EmailStore.Save(ctx, em, recipients)
		return err
	}

	// One request per recipient so each club gets an individual delivery.
	reqs := make([]emailAdapter.SendRequest, 0, len(recipients))
	for _, r := range recipients {
		reqs = append(reqs, emailAdapter.SendRequest{
			To:      []string{r.Address},
			From:    deps.FromAddress,
			Subject: em.Subject,
			HTML:    htmlBody,
			ReplyTo: deps.ReplyTo,
		})
	}

	results, err := deps.EmailSender.SendBatch(ctx, reqs)
	if err != nil {
		em.MarkFailed(err)
		if saveErr := deps.EmailStore.Save(ctx, em, recipients); saveErr != nil {
			slog.Error("email_event", "event", "email_fail_record_error", "email_id", em.ID, "error", saveErr)
		}
		recordEmailFailure(ctx, em.ID, err, deps)
		return err
	}

	providerID := ""
	if len(results) > 0 {
		providerID = results[0].MessageID
	}
	if err := em.MarkSent(deps.Now(), providerID); err != nil {
		return err
	}
	if err := deps.EmailStore.Save(ctx, em, recipients); err != nil {
		return err
	}

	slog.Info("email_event", "event", "email_sent", "email_id", em.ID, "recipient_count", len(recipients), "provider_id", providerID)
	return nil
}

// recordEmailFailure writes an outbox entry so the retry worker picks the
// failed email up later.
func recordEmailFailure(ctx context.Context, emailID string, cause error, deps SendQueuedEmailsDeps) {
	payload, err := json.Marshal(EmailRetryPayload{EmailID: emailID})
	if err != nil {
		slog.Error("email_event", "event", "outbox_payload_marshal_failed", "email_id", emailID, "error", err)
		return
	}
	entry := outboxDomain.Entry{
		ID:           uuid.New().String(),
		ActionType:   outboxDomain.ActionTypeEmail,
		Payload:      string(payload),
		Status:       outboxDomain.StatusPending,
		MaxAttempts:  5,
		CreatedAt:    deps.Now(),
		ErrorMessage: cause.Error(),
	}
	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		slog.Error("email_event", "event", "outbox_record_failed", "email_id", emailID, "error", err)
		return
	}
	slog.Warn("email_event", "event", "email_send_deferred", "email_id", emailID, "outbox_id", entry.ID, "error", cause)
}

// RenderMarkdown converts a Markdown email body to HTML.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown render failed: %w", err)
	}
	return buf.String(), nil
}
