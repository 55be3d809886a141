package email

import (
	"context"
	"time"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/email"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
// PRE: db is a valid, open database connection with the schema applied
// POST: store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const emailColumns = `id, subject, body, sender_id, template_id, status,
	queued_at, sent_at, created_at, provider_message_id, error_message`

// Save inserts or updates an email together with its recipient list.
// The recipient list replaces the stored one in full.
// PRE: e is a valid Email (Validate() returns nil)
// POST: email and recipients are persisted
func (s *SQLiteStore) Save(ctx context.Context, e domain.Email, recipients []domain.Recipient) error {
	queuedAt := ""
	if !e.QueuedAt.IsZero() {
		queuedAt = e.QueuedAt.Format(time.RFC3339)
	}
	sentAt := ""
	if !e.SentAt.IsZero() {
		sentAt = e.SentAt.Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO email (`+emailColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   subject=excluded.subject, body=excluded.body, status=excluded.status,
		   queued_at=excluded.queued_at, sent_at=excluded.sent_at,
		   provider_message_id=excluded.provider_message_id, error_message=excluded.error_message`,
		e.ID, e.Subject, e.Body, e.SenderID, e.TemplateID, e.Status,
		queuedAt, sentAt, e.CreatedAt.Format(time.RFC3339), e.ProviderMessageID, e.ErrorMessage,
	)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM email_recipient WHERE email_id = ?`, e.ID); err != nil {
		return err
	}
	for _, r := range recipients {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO email_recipient (email_id, club_id, club_name, address) VALUES (?, ?, ?, ?)`,
			e.ID, r.ClubID, r.ClubName, r.Address,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves an email and its recipients by ID.
// PRE: id is non-empty
// POST: returns the email and recipients or error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Email, []domain.Recipient, error) {
	emails, err := s.list(ctx, `SELECT `+emailColumns+` FROM email WHERE id = ?`, id)
	if err != nil {
		return domain.Email{}, nil, err
	}
	if len(emails) == 0 {
		return domain.Email{}, nil, storage.ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT email_id, club_id, club_name, address FROM email_recipient
		 WHERE email_id = ? ORDER BY club_name ASC`, id)
	if err != nil {
		return domain.Email{}, nil, err
	}
	defer rows.Close()

	var recipients []domain.Recipient
	for rows.Next() {
		var r domain.Recipient
		if err := rows.Scan(&r.EmailID, &r.ClubID, &r.ClubName, &r.Address); err != nil {
			return domain.Email{}, nil, err
		}
		recipients = append(recipients, r)
	}
	return emails[0], recipients, rows.Err()
}

// List returns all emails, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Email, error) {
	return s.list(ctx, `SELECT `+emailColumns+` FROM email ORDER BY created_at DESC`)
}

// ListByStatus returns emails in one status, oldest first so the send pass
// works through the queue in submission order.
// PRE: status is a valid email status
func (s *SQLiteStore) ListByStatus(ctx context.Context, status string) ([]domain.Email, error) {
	return s.list(ctx,
		`SELECT `+emailColumns+` FROM email WHERE status = ? ORDER BY queued_at ASC, created_at ASC`, status)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Email, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []domain.Email
	for rows.Next() {
		var e domain.Email
		var templateID, queuedStr, sentStr *string
		var createdStr string
		if err := rows.Scan(&e.ID, &e.Subject, &e.Body, &e.SenderID, &templateID, &e.Status,
			&queuedStr, &sentStr, &createdStr, &e.ProviderMessageID, &e.ErrorMessage); err != nil {
			return nil, err
		}
		if templateID != nil {
			e.TemplateID = *templateID
		}
		if queuedStr != nil && *queuedStr != "" {
			e.QueuedAt, _ = time.Parse(time.RFC3339, *queuedStr)
		}
		if sentStr != nil && *sentStr != "" {
			e.SentAt, _ = time.Parse(time.RFC3339, *sentStr)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
