package eventtype

import (
	"context"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/eventtype"
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

// Save inserts or updates an event type.
// PRE: t is a valid EventType (Validate() returns nil)
// POST: event type is persisted
func (s *SQLiteStore) Save(ctx context.Context, t domain.EventType) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event_type (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name`,
		t.ID, t.Name,
	)
	return err
}

// List returns all event types sorted by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.EventType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM event_type ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.EventType
	for rows.Next() {
		var t domain.EventType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// Delete removes an event type by ID.
// PRE: id is non-empty
// POST: event type is removed from storage
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM event_type WHERE id = ?`, id)
	return err
}
