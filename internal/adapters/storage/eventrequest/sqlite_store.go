package eventrequest

import (
	"context"
	"time"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/eventrequest"
)

const dateLayout = "2006-01-02"

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

const requestColumns = `id, club_id, name, event_type, location, notes, coordinator_name,
	start_date, end_date, status, reject_reason, submitted_by, decided_by, decided_at, created_at`

// Save inserts or updates a request.
// PRE: r is a valid Request (Validate() returns nil)
// POST: request is persisted
func (s *SQLiteStore) Save(ctx context.Context, r domain.Request) error {
	endDate := ""
	if !r.EndDate.IsZero() {
		endDate = r.EndDate.Format(dateLayout)
	}
	decidedAt := ""
	if !r.DecidedAt.IsZero() {
		decidedAt = r.DecidedAt.Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event_request (`+requestColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   club_id=excluded.club_id, name=excluded.name, event_type=excluded.event_type,
		   location=excluded.location, notes=excluded.notes,
		   coordinator_name=excluded.coordinator_name, start_date=excluded.start_date,
		   end_date=excluded.end_date, status=excluded.status,
		   reject_reason=excluded.reject_reason, decided_by=excluded.decided_by,
		   decided_at=excluded.decided_at`,
		r.ID, r.ClubID, r.Name, r.EventType, r.Location, r.Notes, r.CoordinatorName,
		r.StartDate.Format(dateLayout), endDate, r.Status, r.RejectReason,
		r.SubmittedBy, r.DecidedBy, decidedAt, r.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetByID retrieves a request by ID.
// PRE: id is non-empty
// POST: returns the request or error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Request, error) {
	requests, err := s.list(ctx, `SELECT `+requestColumns+` FROM event_request WHERE id = ?`, id)
	if err != nil {
		return domain.Request{}, err
	}
	if len(requests) == 0 {
		return domain.Request{}, storage.ErrNotFound
	}
	return requests[0], nil
}

// List returns all requests, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Request, error) {
	return s.list(ctx, `SELECT `+requestColumns+` FROM event_request ORDER BY created_at DESC`)
}

// ListByStatus returns requests in one status, newest first.
// PRE: status is a valid request status
func (s *SQLiteStore) ListByStatus(ctx context.Context, status string) ([]domain.Request, error) {
	return s.list(ctx,
		`SELECT `+requestColumns+` FROM event_request WHERE status = ? ORDER BY created_at DESC`, status)
}

// ListByClub returns requests submitted by one club, newest first.
// PRE: clubID is non-empty
func (s *SQLiteStore) ListByClub(ctx context.Context, clubID string) ([]domain.Request, error) {
	return s.list(ctx,
		`SELECT `+requestColumns+` FROM event_request WHERE club_id = ? ORDER BY created_at DESC`, clubID)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Request, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		var r domain.Request
		var endStr, submittedBy, decidedBy, decidedStr *string
		var startStr, createdStr string
		if err := rows.Scan(&r.ID, &r.ClubID, &r.Name, &r.EventType, &r.Location, &r.Notes,
			&r.CoordinatorName, &startStr, &endStr, &r.Status, &r.RejectReason,
			&submittedBy, &decidedBy, &decidedStr, &createdStr); err != nil {
			return nil, err
		}
		if submittedBy != nil {
			r.SubmittedBy = *submittedBy
		}
		if decidedBy != nil {
			r.DecidedBy = *decidedBy
		}
		r.StartDate, _ = time.Parse(dateLayout, startStr)
		if endStr != nil && *endStr != "" {
			r.EndDate, _ = time.Parse(dateLayout, *endStr)
		}
		if decidedStr != nil && *decidedStr != "" {
			r.DecidedAt, _ = time.Parse(time.RFC3339, *decidedStr)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
