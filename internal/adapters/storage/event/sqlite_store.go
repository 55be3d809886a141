package event

import (
	"context"
	"time"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/event"
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

const eventColumns = `id, club_id, zone_id, name, event_type, location, notes,
	coordinator_name, start_date, end_date, source, import_batch_id, created_by, created_at`

// Save inserts or updates an event.
// PRE: e is a valid Event (Validate() returns nil)
// POST: event is persisted
func (s *SQLiteStore) Save(ctx context.Context, e domain.Event) error {
	endDate := ""
	if !e.EndDate.IsZero() {
		endDate = e.EndDate.Format(dateLayout)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event (`+eventColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   club_id=excluded.club_id, zone_id=excluded.zone_id, name=excluded.name,
		   event_type=excluded.event_type, location=excluded.location, notes=excluded.notes,
		   coordinator_name=excluded.coordinator_name, start_date=excluded.start_date,
		   end_date=excluded.end_date, source=excluded.source,
		   import_batch_id=excluded.import_batch_id`,
		e.ID, e.ClubID, e.ZoneID, e.Name, e.EventType, e.Location, e.Notes,
		e.CoordinatorName, e.StartDate.Format(dateLayout), endDate, e.Source,
		e.ImportBatchID, e.CreatedBy, e.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetByID retrieves an event by ID.
// PRE: id is non-empty
// POST: returns the event or error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	events, err := s.list(ctx, `SELECT `+eventColumns+` FROM event WHERE id = ?`, id)
	if err != nil {
		return domain.Event{}, err
	}
	if len(events) == 0 {
		return domain.Event{}, storage.ErrNotFound
	}
	return events[0], nil
}

// List returns all events sorted by start date.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Event, error) {
	return s.list(ctx, `SELECT `+eventColumns+` FROM event ORDER BY start_date ASC, name ASC`)
}

// ListByClub returns the events belonging to one club sorted by start date.
// PRE: clubID is non-empty
func (s *SQLiteStore) ListByClub(ctx context.Context, clubID string) ([]domain.Event, error) {
	return s.list(ctx,
		`SELECT `+eventColumns+` FROM event WHERE club_id = ? ORDER BY start_date ASC, name ASC`, clubID)
}

// ListByDateRange returns events whose start date falls within [from, to] inclusive.
// PRE: from and to are non-zero, from <= to
func (s *SQLiteStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	return s.list(ctx,
		`SELECT `+eventColumns+` FROM event
		 WHERE start_date >= ? AND start_date <= ? ORDER BY start_date ASC, name ASC`,
		from.Format(dateLayout), to.Format(dateLayout))
}

// ListByImportBatch returns events created by one import batch.
// PRE: batchID is non-empty
func (s *SQLiteStore) ListByImportBatch(ctx context.Context, batchID string) ([]domain.Event, error) {
	return s.list(ctx,
		`SELECT `+eventColumns+` FROM event WHERE import_batch_id = ? ORDER BY start_date ASC`, batchID)
}

// Delete removes an event by ID.
// PRE: id is non-empty
// POST: event is removed from storage
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM event WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var clubID, zoneID, endStr, batchID, createdBy *string
		var startStr, createdStr string
		if err := rows.Scan(&e.ID, &clubID, &zoneID, &e.Name, &e.EventType, &e.Location, &e.Notes,
			&e.CoordinatorName, &startStr, &endStr, &e.Source, &batchID, &createdBy, &createdStr); err != nil {
			return nil, err
		}
		if clubID != nil {
			e.ClubID = *clubID
		}
		if zoneID != nil {
			e.ZoneID = *zoneID
		}
		if batchID != nil {
			e.ImportBatchID = *batchID
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		e.StartDate, _ = time.Parse(dateLayout, startStr)
		if endStr != nil && *endStr != "" {
			e.EndDate, _ = time.Parse(dateLayout, *endStr)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		events = append(events, e)
	}
	return events, rows.Err()
}
