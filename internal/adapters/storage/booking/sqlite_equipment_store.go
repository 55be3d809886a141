package booking

import (
	"context"
	"time"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/booking"
)

// SQLiteEquipmentStore implements EquipmentStore using SQLite.
type SQLiteEquipmentStore struct {
	db storage.SQLDB
}

// NewSQLiteEquipmentStore creates a new SQLiteEquipmentStore.
// PRE: db is a valid, open database connection with the schema applied
// POST: store is ready for use
func NewSQLiteEquipmentStore(db storage.SQLDB) *SQLiteEquipmentStore {
	return &SQLiteEquipmentStore{db: db}
}

// Save inserts or updates a piece of equipment.
// PRE: e is valid Equipment (Validate() returns nil)
// POST: equipment is persisted
func (s *SQLiteEquipmentStore) Save(ctx context.Context, e domain.Equipment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO equipment (id, name, description, status, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, description=excluded.description, status=excluded.status`,
		e.ID, e.Name, e.Description, e.Status, e.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetByID retrieves equipment by ID.
// PRE: id is non-empty
// POST: returns the equipment or error if not found
func (s *SQLiteEquipmentStore) GetByID(ctx context.Context, id string) (domain.Equipment, error) {
	var e domain.Equipment
	var createdStr string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, status, created_at FROM equipment WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.Description, &e.Status, &createdStr)
	if err != nil {
		return e, err
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return e, nil
}

// List returns all equipment sorted by name.
func (s *SQLiteEquipmentStore) List(ctx context.Context) ([]domain.Equipment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, status, created_at FROM equipment ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		var createdStr string
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Status, &createdStr); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		items = append(items, e)
	}
	return items, rows.Err()
}
