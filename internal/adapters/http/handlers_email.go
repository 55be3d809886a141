package web

import (
	"net/http"

	"zonehub/internal/adapters/storage"
	"zonehub/internal/application/orchestrators"
	emailDomain "zonehub/internal/domain/email"
	outboxDomain "zonehub/internal/domain/outbox"
)

// handleEmails handles the zone email queue. Routes:
//
//	GET  /api/admin/emails             list (?status= filters)
//	POST /api/admin/emails             compose a draft to club contacts
//	POST /api/admin/emails/send        run one send pass over the queue
//	GET  /api/admin/emails/:id         fetch with recipients
//	POST /api/admin/emails/:id/queue   move a draft into the queue
//	POST /api/admin/emails/:id/cancel  cancel before sending
func handleEmails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	parts := pathParts(r) // ["api", "admin", "emails", :id?, action?]
	var id, action string
	if len(parts) > 3 {
		id = parts[3]
	}
	if len(parts) > 4 {
		action = parts[4]
	}

	queueDeps := orchestrators.QueueEmailDeps{
		EmailStore: stores.EmailStore,
		Now:        timeNow,
	}

	switch {
	case id == "" && r.Method == "GET":
		var emails []emailDomain.Email
		var err error
		if status := r.URL.Query().Get("status"); status != "" {
			emails, err = stores.EmailStore.ListByStatus(ctx, status)
		} else {
			emails, err = stores.EmailStore.List(ctx)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		if emails == nil {
			emails = []emailDomain.Email{}
		}
		writeJSON(w, http.StatusOK, emails)

	case id == "" && r.Method == "POST":
		var input struct {
			Subject        string            `json:"subject"`
			Body           string            `json:"body"`
			TemplateID     string            `json:"templateId"`
			TemplateValues map[string]string `json:"templateValues"`
			ClubIDs        []string          `json:"clubIds"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		em, err := orchestrators.ExecuteComposeEmail(ctx, orchestrators.ComposeEmailInput{
			Subject:        input.Subject,
			Body:           input.Body,
			SenderID:       sess.AccountID,
			TemplateID:     input.TemplateID,
			TemplateValues: input.TemplateValues,
			ClubIDs:        input.ClubIDs,
		}, orchestrators.ComposeEmailDeps{
			EmailStore:    stores.EmailStore,
			TemplateStore: stores.EmailTemplateStore,
			ClubStore:     stores.ClubStore,
			GenerateID:    generateID,
			Now:           timeNow,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, em)

	case id == "send" && r.Method == "POST":
		if emailSender == nil {
			http.Error(w, "email sending is not configured", http.StatusServiceUnavailable)
			return
		}
		result, err := orchestrators.ExecuteSendQueuedEmails(ctx, orchestrators.SendQueuedEmailsDeps{
			EmailStore:  stores.EmailStore,
			OutboxStore: stores.OutboxStore,
			EmailSender: emailSender,
			Now:         timeNow,
			FromAddress: emailFromAddress,
			ReplyTo:     emailReplyTo,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)

	case action == "" && r.Method == "GET":
		em, recipients, err := stores.EmailStore.GetByID(ctx, id)
		if err != nil {
			if err == storage.ErrNotFound {
				http.Error(w, "email not found", http.StatusNotFound)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"email":      em,
			"recipients": recipients,
		})

	case action == "queue" && r.Method == "POST":
		em, err := orchestrators.ExecuteQueueEmail(ctx, orchestrators.QueueEmailInput{EmailID: id}, queueDeps)
		if err != nil {
			emailError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, em)

	case action == "cancel" && r.Method == "POST":
		em, err := orchestrators.ExecuteCancelEmail(ctx, orchestrators.CancelEmailInput{EmailID: id}, queueDeps)
		if err != nil {
			emailError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, em)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// emailError maps email lifecycle errors onto HTTP statuses.
func emailError(w http.ResponseWriter, err error) {
	switch err {
	case storage.ErrNotFound:
		http.Error(w, "email not found", http.StatusNotFound)
	case emailDomain.ErrNotDraft, emailDomain.ErrNotCancellable:
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// handleEmailTemplates handles GET/POST /api/admin/email-templates and
// GET/PUT/DELETE /api/admin/email-templates/:id.
func handleEmailTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	parts := pathParts(r)
	id := ""
	if len(parts) > 3 {
		id = parts[3]
	}

	switch {
	case r.Method == "GET" && id == "":
		templates, err := stores.EmailTemplateStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		if templates == nil {
			templates = []emailDomain.Template{}
		}
		writeJSON(w, http.StatusOK, templates)

	case r.Method == "GET":
		tpl, err := stores.EmailTemplateStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, tpl)

	case r.Method == "POST" && id == "":
		var input struct {
			Name    string `json:"name"`
			Subject string `json:"subject"`
			Body    string `json:"body"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		tpl := emailDomain.Template{
			ID:        generateID(),
			Name:      input.Name,
			Subject:   input.Subject,
			Body:      input.Body,
			CreatedBy: sess.AccountID,
			CreatedAt: timeNow(),
			UpdatedAt: timeNow(),
		}
		if err := tpl.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.EmailTemplateStore.Save(ctx, tpl); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, tpl)

	case r.Method == "PUT" && id != "":
		tpl, err := stores.EmailTemplateStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		var input struct {
			Name    *string `json:"name"`
			Subject *string `json:"subject"`
			Body    *string `json:"body"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if input.Name != nil {
			tpl.Name = *input.Name
		}
		if input.Subject != nil {
			tpl.Subject = *input.Subject
		}
		if input.Body != nil {
			tpl.Body = *input.Body
		}
		tpl.UpdatedAt = timeNow()
		if err := tpl.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.EmailTemplateStore.Save(ctx, tpl); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tpl)

	case r.Method == "DELETE" && id != "":
		if err := stores.EmailTemplateStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminOutbox handles admin endpoints for managing outbox entries.
// Routes: GET /api/admin/outbox (list retryable), POST /api/admin/outbox/:id/retry,
// POST /api/admin/outbox/:id/abandon.
func handleAdminOutbox(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	switch r.Method {
	case "GET":
		var entries []outboxDomain.Entry
		var err error
		if r.URL.Query().Get("status") == "all" {
			entries, err = stores.OutboxStore.List(ctx)
		} else {
			entries, err = stores.OutboxStore.ListRetryable(ctx)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		if entries == nil {
			entries = []outboxDomain.Entry{}
		}
		writeJSON(w, http.StatusOK, entries)

	case "POST":
		parts := pathParts(r) // ["api", "admin", "outbox", :id, action]
		if len(parts) < 5 {
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}
		entryID := parts[3]
		action := parts[4]

		processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
			outboxDomain.ActionTypeEmail: &orchestrators.EmailRetryExecutor{
				EmailStore:  stores.EmailStore,
				EmailSender: emailSender,
				Now:         timeNow,
				FromAddress: emailFromAddress,
				ReplyTo:     emailReplyTo,
			},
		})

		switch action {
		case "retry":
			if err := processor.ProcessSingle(ctx, entryID); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "retry triggered"})

		case "abandon":
			if err := processor.AbandonEntry(ctx, entryID); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})

		default:
			http.Error(w, "unknown action", http.StatusBadRequest)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
