package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "zonehub/internal/adapters/email"
	emailDomain "zonehub/internal/domain/email"
	domain "zonehub/internal/domain/outbox"
)

// OutboxRetryStore defines the outbox store interface used by the processor.
type OutboxRetryStore interface {
	Save(ctx context.Context, e domain.Entry) error
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	ListRetryable(ctx context.Context) ([]domain.Entry, error)
}

// ActionExecutor executes a specific type of external action.
type ActionExecutor interface {
	// Execute runs the external action with the given payload.
	// Returns the external ID (e.g. provider message ID) and any error.
	Execute(ctx context.Context, payload string) (string, error)
}

// OutboxProcessor retries failed external integration actions with
// exponential backoff.
type OutboxProcessor struct {
	store     OutboxRetryStore
	executors map[string]ActionExecutor
	baseDelay time.Duration
	maxDelay  time.Duration
}

// NewOutboxProcessor creates a new outbox processor.
func NewOutboxProcessor(store OutboxRetryStore, executors map[string]ActionExecutor) *OutboxProcessor {
	return &OutboxProcessor{
		store:     store,
		executors: executors,
		baseDelay: 30 * time.Second,
		maxDelay:  1 * time.Hour,
	}
}

// ProcessPending processes retryable outbox entries that are past their
// backoff window.
// PRE: Context is valid
// POST: Eligible entries are attempted; outcomes are persisted
func (p *OutboxProcessor) ProcessPending(ctx context.Context) error {
	entries, err := p.store.ListRetryable(ctx)
	if err != nil {
		return fmt.Errorf("list retryable outbox entries: %w", err)
	}

	for _, entry := range entries {
		if err := p.processEntry(ctx, entry); err != nil {
			slog.Error("outbox_process_failed", "entry_id", entry.ID, "action_type", entry.ActionType, "error", err.Error())
		}
	}

	return nil
}

// processEntry processes a single outbox entry.
func (p *OutboxProcessor) processEntry(ctx context.Context, entry domain.Entry) error {
	// Respect the backoff window between attempts
	if !entry.LastAttemptedAt.IsZero() {
		delay := entry.NextRetryDelay(p.baseDelay, p.maxDelay)
		if time.Since(entry.LastAttemptedAt) < delay {
			return nil // Not ready to retry yet
		}
	}

	executor, ok := p.executors[entry.ActionType]
	if !ok {
		entry.MarkFailed(fmt.Errorf("no executor registered for action type: %s", entry.ActionType))
		return p.store.Save(ctx, entry)
	}

	entry.MarkAttempt()
	externalID, err := executor.Execute(ctx, entry.Payload)
	if err != nil {
		entry.MarkFailed(err)
		slog.Warn("outbox_action_failed", "entry_id", entry.ID, "attempt", entry.Attempts, "error", err.Error())
	} else {
		entry.MarkSuccess(externalID)
		slog.Info("outbox_action_succeeded", "entry_id", entry.ID, "action_type", entry.ActionType, "external_id", externalID)
	}

	return p.store.Save(ctx, entry)
}

// ProcessSingle manually processes a single outbox entry (for admin retry).
// The backoff window is bypassed.
// PRE: entryID is non-empty
// POST: Entry is attempted, status updated
func (p *OutboxProcessor) ProcessSingle(ctx context.Context, entryID string) error {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}

	if entry.IsTerminal() {
		return fmt.Errorf("entry %s is in terminal state and cannot be retried", entryID)
	}

	executor, ok := p.executors[entry.ActionType]
	if !ok {
		return fmt.Errorf("no executor registered for action type: %s", entry.ActionType)
	}

	entry.MarkAttempt()
	externalID, err := executor.Execute(ctx, entry.Payload)
	if err != nil {
		entry.MarkFailed(err)
	} else {
		entry.MarkSuccess(externalID)
	}

	return p.store.Save(ctx, entry)
}

// AbandonEntry marks an entry as abandoned by admin.
// PRE: entryID is non-empty
// POST: Entry status set to abandoned
func (p *OutboxProcessor) AbandonEntry(ctx context.Context, entryID string) error {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}

	entry.MarkAbandoned()
	return p.store.Save(ctx, entry)
}

// --- Email Executor ---

// EmailRetryExecutor re-delivers a failed email. The payload names only the
// email ID; current recipients and body are re-read from the store so edits
// made between attempts are honored.
type EmailRetryExecutor struct {
	EmailStore  EmailStoreForOrchestrator
	EmailSender emailAdapter.Sender
	Now         func() time.Time
	FromAddress string
	ReplyTo     string
}

// Execute re-sends the failed email named in the payload.
// PRE: payload is valid JSON matching EmailRetryPayload
// POST: on success the email is marked sent; returns the provider message ID
func (e *EmailRetryExecutor) Execute(ctx context.Context, payload string) (string, error) {
	var p EmailRetryPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return "", fmt.Errorf("unmarshal email payload: %w", err)
	}

	em, recipients, err := e.EmailStore.GetByID(ctx, p.EmailID)
	if err != nil {
		return "", err
	}
	if em.Status == emailDomain.StatusSent {
		return em.ProviderMessageID, nil // already delivered by another path
	}
	if em.Status == emailDomain.StatusCancelled {
		return "", nil // cancelled while waiting for retry
	}
	if len(recipients) == 0 {
		return "", emailDomain.ErrNoRecipients
	}

	htmlBody, err := RenderMarkdown(em.Body)
	if err != nil {
		return "", err
	}

	reqs := make([]emailAdapter.SendRequest, 0, len(recipients))
	for _, r := range recipients {
		reqs = append(reqs, emailAdapter.SendRequest{
			To:      []string{r.Address},
			From:    e.FromAddress,
			Subject: em.Subject,
			HTML:    htmlBody,
			ReplyTo: e.ReplyTo,
		})
	}

	results, err := e.EmailSender.SendBatch(ctx, reqs)
	if err != nil {
		return "", err
	}

	providerID := ""
	if len(results) > 0 {
		providerID = results[0].MessageID
	}
	em.Status = emailDomain.StatusQueued // re-enter queued so MarkSent's guard holds
	if err := em.MarkSent(e.Now(), providerID); err != nil {
		return "", err
	}
	if err := e.EmailStore.Save(ctx, em, recipients); err != nil {
		return "", err
	}
	return providerID, nil
}

// --- Background Worker ---

// StartBackgroundWorker starts a background goroutine that periodically
// processes retryable outbox entries.
// PRE: stopCh is provided to signal shutdown
// POST: Worker runs until stopCh is closed
func StartBackgroundWorker(processor *OutboxProcessor, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if err := processor.ProcessPending(ctx); err != nil {
					slog.Error("outbox_background_process_failed", "error", err.Error())
				}
				cancel()
			case <-stopCh:
				slog.Info("outbox_background_worker_stopped")
				return
			}
		}
	}()
}
