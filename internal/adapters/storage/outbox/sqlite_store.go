package outbox

import (
	"context"
	"time"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/outbox"
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

const entryColumns = `id, action_type, payload, status, attempts, max_attempts,
	last_attempted_at, created_at, external_id, error_message`

// Save inserts or updates an outbox entry.
// PRE: e is a valid Entry (Validate() returns nil)
// POST: entry is persisted
func (s *SQLiteStore) Save(ctx context.Context, e domain.Entry) error {
	lastAttempted := ""
	if !e.LastAttemptedAt.IsZero() {
		lastAttempted = e.LastAttemptedAt.Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outbox (`+entryColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   status=excluded.status, attempts=excluded.attempts,
		   last_attempted_at=excluded.last_attempted_at,
		   external_id=excluded.external_id, error_message=excluded.error_message`,
		e.ID, e.ActionType, e.Payload, e.Status, e.Attempts, e.MaxAttempts,
		lastAttempted, e.CreatedAt.Format(time.RFC3339), e.ExternalID, e.ErrorMessage,
	)
	return err
}

// GetByID retrieves an entry by ID.
// PRE: id is non-empty
// POST: returns the entry or error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	entries, err := s.list(ctx, `SELECT `+entryColumns+` FROM outbox WHERE id = ?`, id)
	if err != nil {
		return domain.Entry{}, err
	}
	if len(entries) == 0 {
		return domain.Entry{}, storage.ErrNotFound
	}
	return entries[0], nil
}

// List returns all entries, oldest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Entry, error) {
	return s.list(ctx, `SELECT `+entryColumns+` FROM outbox ORDER BY created_at ASC`)
}

// ListRetryable returns entries still eligible for a retry pass, oldest first.
// POST: every returned entry satisfies CanRetry
func (s *SQLiteStore) ListRetryable(ctx context.Context) ([]domain.Entry, error) {
	return s.list(ctx,
		`SELECT `+entryColumns+` FROM outbox
		 WHERE status IN (?, ?, ?) AND attempts < max_attempts
		 ORDER BY created_at ASC`,
		domain.StatusPending, domain.StatusRetrying, domain.StatusFailed)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var lastStr *string
		var createdStr string
		if err := rows.Scan(&e.ID, &e.ActionType, &e.Payload, &e.Status, &e.Attempts,
			&e.MaxAttempts, &lastStr, &createdStr, &e.ExternalID, &e.ErrorMessage); err != nil {
			return nil, err
		}
		if lastStr != nil && *lastStr != "" {
			e.LastAttemptedAt, _ = time.Parse(time.RFC3339, *lastStr)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
