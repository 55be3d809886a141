package email

import (
	"errors"
	"testing"
	"time"
)

var fixedTime = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

// TestEmail_Validate_Valid tests that a well-formed email passes validation.
func TestEmail_Validate_Valid(t *testing.T) {
	e := Email{
		ID:        "email-1",
		Subject:   "Schedule Change",
		Body:      "The rally is moving to the Riverton grounds.",
		SenderID:  "admin-1",
		Status:    StatusDraft,
		CreatedAt: fixedTime,
	}
	if err := e.Validate(); err != nil {
		t.Errorf("expected valid email, got: %v", err)
	}
}

// TestEmail_Validate_MissingSubject tests that empty subject is rejected.
func TestEmail_Validate_MissingSubject(t *testing.T) {
	e := Email{Body: "body", SenderID: "a", CreatedAt: fixedTime}
	if err := e.Validate(); err != ErrEmptySubject {
		t.Errorf("expected ErrEmptySubject, got: %v", err)
	}
}

// TestEmail_Validate_MissingBody tests that empty body is rejected.
func TestEmail_Validate_MissingBody(t *testing.T) {
	e := Email{Subject: "sub", SenderID: "a", CreatedAt: fixedTime}
	if err := e.Validate(); err != ErrEmptyBody {
		t.Errorf("expected ErrEmptyBody, got: %v", err)
	}
}

// TestEmail_Validate_MissingSender tests that empty sender is rejected.
func TestEmail_Validate_MissingSender(t *testing.T) {
	e := Email{Subject: "sub", Body: "body", CreatedAt: fixedTime}
	if err := e.Validate(); err != ErrEmptySenderID {
		t.Errorf("expected ErrEmptySenderID, got: %v", err)
	}
}

// TestEmail_Validate_MissingCreatedAt tests that a zero CreatedAt is rejected.
func TestEmail_Validate_MissingCreatedAt(t *testing.T) {
	e := Email{Subject: "sub", Body: "body", SenderID: "a"}
	if err := e.Validate(); err == nil {
		t.Error("expected error for zero CreatedAt")
	}
}

// TestEmail_MarkQueued_FromDraft tests the draft to queued transition.
func TestEmail_MarkQueued_FromDraft(t *testing.T) {
	e := Email{Status: StatusDraft}
	if err := e.MarkQueued(fixedTime); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if e.Status != StatusQueued {
		t.Errorf("expected queued, got %s", e.Status)
	}
	if !e.QueuedAt.Equal(fixedTime) {
		t.Errorf("QueuedAt = %v, want %v", e.QueuedAt, fixedTime)
	}
}

// TestEmail_MarkQueued_FromSent tests that sent emails cannot be re-queued.
func TestEmail_MarkQueued_FromSent(t *testing.T) {
	e := Email{Status: StatusSent}
	if err := e.MarkQueued(fixedTime); err != ErrNotDraft {
		t.Errorf("expected ErrNotDraft, got: %v", err)
	}
}

// TestEmail_MarkSent tests the queued to sent transition.
func TestEmail_MarkSent(t *testing.T) {
	e := Email{Status: StatusQueued, ErrorMessage: "stale"}
	if err := e.MarkSent(fixedTime, "msg-123"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if e.Status != StatusSent {
		t.Errorf("expected sent, got %s", e.Status)
	}
	if e.ProviderMessageID != "msg-123" {
		t.Errorf("ProviderMessageID = %q, want msg-123", e.ProviderMessageID)
	}
	if !e.SentAt.Equal(fixedTime) {
		t.Errorf("SentAt = %v, want %v", e.SentAt, fixedTime)
	}
	if e.ErrorMessage != "" {
		t.Errorf("ErrorMessage should be cleared, got %q", e.ErrorMessage)
	}
}

// TestEmail_MarkSent_FromDraft tests that drafts cannot jump straight to sent.
func TestEmail_MarkSent_FromDraft(t *testing.T) {
	e := Email{Status: StatusDraft}
	if err := e.MarkSent(fixedTime, "msg-123"); err != ErrNotQueued {
		t.Errorf("expected ErrNotQueued, got: %v", err)
	}
}

// TestEmail_MarkFailed tests that a send failure records the error.
func TestEmail_MarkFailed(t *testing.T) {
	e := Email{Status: StatusQueued}
	e.MarkFailed(errors.New("provider unavailable"))
	if e.Status != StatusFailed {
		t.Errorf("expected failed, got %s", e.Status)
	}
	if e.ErrorMessage != "provider unavailable" {
		t.Errorf("ErrorMessage = %q", e.ErrorMessage)
	}
}

// TestEmail_MarkFailed_NilError tests that a nil error leaves the message empty.
func TestEmail_MarkFailed_NilError(t *testing.T) {
	e := Email{Status: StatusQueued}
	e.MarkFailed(nil)
	if e.Status != StatusFailed {
		t.Errorf("expected failed, got %s", e.Status)
	}
	if e.ErrorMessage != "" {
		t.Errorf("ErrorMessage = %q, want empty", e.ErrorMessage)
	}
}

// TestEmail_Cancel_Draft tests cancelling a draft email.
func TestEmail_Cancel_Draft(t *testing.T) {
	e := Email{Status: StatusDraft}
	if err := e.Cancel(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if e.Status != StatusCancelled {
		t.Errorf("expected cancelled, got %s", e.Status)
	}
}

// TestEmail_Cancel_Queued tests cancelling a queued email before the send pass.
func TestEmail_Cancel_Queued(t *testing.T) {
	e := Email{Status: StatusQueued}
	if err := e.Cancel(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if e.Status != StatusCancelled {
		t.Errorf("expected cancelled, got %s", e.Status)
	}
}

// TestEmail_Cancel_Sent tests that sent emails cannot be cancelled.
func TestEmail_Cancel_Sent(t *testing.T) {
	e := Email{Status: StatusSent}
	if err := e.Cancel(); err != ErrNotCancellable {
		t.Errorf("expected ErrNotCancellable, got: %v", err)
	}
}

// TestTemplate_Validate tests template validation.
func TestTemplate_Validate(t *testing.T) {
	tpl := Template{Name: "Rally Notice", Body: "Hello {{club_name}}"}
	if err := tpl.Validate(); err != nil {
		t.Errorf("expected valid template, got: %v", err)
	}

	cases := []struct {
		name string
		tpl  Template
	}{
		{"missing name", Template{Body: "body"}},
		{"missing body", Template{Name: "name"}},
		{"whitespace only", Template{Name: "  ", Body: "\t"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.tpl.Validate(); err != ErrEmptyTemplate {
				t.Errorf("expected ErrEmptyTemplate, got: %v", err)
			}
		})
	}
}

// TestTemplate_Render tests placeholder expansion in subject and body.
func TestTemplate_Render(t *testing.T) {
	tpl := Template{
		Subject: "{{event_name}} update",
		Body:    "Dear {{club_name}}, the {{event_name}} schedule has changed.",
	}
	subject, body := tpl.Render(map[string]string{
		"club_name":  "Springfield Pony Club",
		"event_name": "Spring Rally",
	})
	if subject != "Spring Rally update" {
		t.Errorf("subject = %q", subject)
	}
	want := "Dear Springfield Pony Club, the Spring Rally schedule has changed."
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
	// Template fields are not mutated
	if tpl.Body != "Dear {{club_name}}, the {{event_name}} schedule has changed." {
		t.Errorf("template body mutated: %q", tpl.Body)
	}
}

// TestTemplate_Render_UnknownPlaceholder tests that unknown markers survive.
func TestTemplate_Render_UnknownPlaceholder(t *testing.T) {
	tpl := Template{Subject: "Hi", Body: "See you at {{venue}}"}
	_, body := tpl.Render(map[string]string{"club_name": "Riverton"})
	if body != "See you at {{venue}}" {
		t.Errorf("body = %q, unknown placeholder should be left in place", body)
	}
}
