package importbatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/importbatch"
)

const dateLayout = "2006-01-02"

// SQLiteStore implements Store using SQLite. The event list is stored as a
// JSON document in a single column; the summary counts are denormalized into
// their own columns so batch listings never parse the document.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
// PRE: db is a valid, open database connection with the schema applied
// POST: store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// eventRecord is the JSON shape of one imported event. Dates are date-only
// strings so the document stays stable across timezones.
type eventRecord struct {
	ID               string        `json:"id"`
	OriginalData     []string      `json:"originalData,omitempty"`
	Name             string        `json:"name"`
	ClubName         string        `json:"clubName,omitempty"`
	EventType        string        `json:"eventType,omitempty"`
	Location         string        `json:"location,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	CoordinatorName  string        `json:"coordinatorName,omitempty"`
	StartDate        string        `json:"startDate,omitempty"`
	EndDate          string        `json:"endDate,omitempty"`
	ClubID           string        `json:"clubId,omitempty"`
	Status           string        `json:"status"`
	MatchConfidence  int           `json:"matchConfidence,omitempty"`
	ValidationErrors []string      `json:"validationErrors,omitempty"`
	SplitEvents      []eventRecord `json:"splitEvents,omitempty"`
}

func toRecord(e domain.ImportedEvent) eventRecord {
	r := eventRecord{
		ID:               e.ID,
		OriginalData:     e.OriginalData,
		Name:             e.Name,
		ClubName:         e.ClubName,
		EventType:        e.EventType,
		Location:         e.Location,
		Notes:            e.Notes,
		CoordinatorName:  e.CoordinatorName,
		ClubID:           e.ClubID,
		Status:           e.Status,
		MatchConfidence:  e.MatchConfidence,
		ValidationErrors: e.ValidationErrors,
	}
	if !e.StartDate.IsZero() {
		r.StartDate = e.StartDate.Format(dateLayout)
	}
	if !e.EndDate.IsZero() {
		r.EndDate = e.EndDate.Format(dateLayout)
	}
	for _, split := range e.SplitEvents {
		r.SplitEvents = append(r.SplitEvents, toRecord(split))
	}
	return r
}

func fromRecord(r eventRecord) domain.ImportedEvent {
	e := domain.ImportedEvent{
		ID:               r.ID,
		OriginalData:     r.OriginalData,
		Name:             r.Name,
		ClubName:         r.ClubName,
		EventType:        r.EventType,
		Location:         r.Location,
		Notes:            r.Notes,
		CoordinatorName:  r.CoordinatorName,
		ClubID:           r.ClubID,
		Status:           r.Status,
		MatchConfidence:  r.MatchConfidence,
		ValidationErrors: r.ValidationErrors,
	}
	if r.StartDate != "" {
		e.StartDate, _ = time.Parse(dateLayout, r.StartDate)
	}
	if r.EndDate != "" {
		e.EndDate, _ = time.Parse(dateLayout, r.EndDate)
	}
	for _, split := range r.SplitEvents {
		e.SplitEvents = append(e.SplitEvents, fromRecord(split))
	}
	return e
}

const batchColumns = `id, file_name, file_size, status, events, imported_event_ids,
	total_events, matched_clubs, unmatched_clubs, multi_day_events, validation_errors,
	error_message, created_by, created_at, updated_at`

// Save inserts or updates a batch, serializing the event list to JSON.
// PRE: b is a valid Batch (Validate() returns nil)
// POST: batch is persisted with summary columns matching b.Summary
func (s *SQLiteStore) Save(ctx context.Context, b domain.Batch) error {
	records := make([]eventRecord, 0, len(b.Events))
	for _, e := range b.Events {
		records = append(records, toRecord(e))
	}
	eventsJSON, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal batch events: %w", err)
	}
	ids := b.ImportedEventIDs
	if ids == nil {
		ids = []string{}
	}
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal imported event ids: %w", err)
	}
	updatedAt := ""
	if !b.UpdatedAt.IsZero() {
		updatedAt = b.UpdatedAt.Format(time.RFC3339)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO import_batch (`+batchColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   file_name=excluded.file_name, file_size=excluded.file_size, status=excluded.status,
		   events=excluded.events, imported_event_ids=excluded.imported_event_ids,
		   total_events=excluded.total_events, matched_clubs=excluded.matched_clubs,
		   unmatched_clubs=excluded.unmatched_clubs, multi_day_events=excluded.multi_day_events,
		   validation_errors=excluded.validation_errors, error_message=excluded.error_message,
		   updated_at=excluded.updated_at`,
		b.ID, b.FileName, b.FileSize, b.Status, string(eventsJSON), string(idsJSON),
		b.Summary.TotalEvents, b.Summary.MatchedClubs, b.Summary.UnmatchedClubs,
		b.Summary.MultiDayEvents, b.Summary.ValidationErrors,
		b.ErrorMessage, b.CreatedBy, b.CreatedAt.Format(time.RFC3339), updatedAt,
	)
	return err
}

// GetByID retrieves a batch by ID with its full event list.
// PRE: id is non-empty
// POST: returns the batch or error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Batch, error) {
	batches, err := s.list(ctx, `SELECT `+batchColumns+` FROM import_batch WHERE id = ?`, id)
	if err != nil {
		return domain.Batch{}, err
	}
	if len(batches) == 0 {
		return domain.Batch{}, storage.ErrNotFound
	}
	return batches[0], nil
}

// List returns all batches, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Batch, error) {
	return s.list(ctx, `SELECT `+batchColumns+` FROM import_batch ORDER BY created_at DESC`)
}

// Delete removes a batch by ID.
// PRE: id is non-empty
// POST: batch is removed from storage
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM import_batch WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Batch, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []domain.Batch
	for rows.Next() {
		var b domain.Batch
		var eventsJSON, idsJSON, createdStr string
		var createdBy, updatedStr *string
		if err := rows.Scan(&b.ID, &b.FileName, &b.FileSize, &b.Status, &eventsJSON, &idsJSON,
			&b.Summary.TotalEvents, &b.Summary.MatchedClubs, &b.Summary.UnmatchedClubs,
			&b.Summary.MultiDayEvents, &b.Summary.ValidationErrors,
			&b.ErrorMessage, &createdBy, &createdStr, &updatedStr); err != nil {
			return nil, err
		}
		var records []eventRecord
		if err := json.Unmarshal([]byte(eventsJSON), &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal events for batch %s: %w", b.ID, err)
		}
		for _, r := range records {
			b.Events = append(b.Events, fromRecord(r))
		}
		if err := json.Unmarshal([]byte(idsJSON), &b.ImportedEventIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal imported event ids for batch %s: %w", b.ID, err)
		}
		if createdBy != nil {
			b.CreatedBy = *createdBy
		}
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		if updatedStr != nil && *updatedStr != "" {
			b.UpdatedAt, _ = time.Parse(time.RFC3339, *updatedStr)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
