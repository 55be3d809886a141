package zone

import (
	"context"
	"time"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/zone"
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

// Save inserts or updates a zone.
// PRE: z is a valid Zone (Validate() returns nil)
// POST: zone is persisted
func (s *SQLiteStore) Save(ctx context.Context, z domain.Zone) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO zone (id, name, secretary_name, secretary_email, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, secretary_name=excluded.secretary_name,
		   secretary_email=excluded.secretary_email`,
		z.ID, z.Name, z.SecretaryName, z.SecretaryEmail, z.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetByID retrieves a zone by ID.
// PRE: id is non-empty
// POST: returns the zone or error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Zone, error) {
	var z domain.Zone
	var createdStr string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, secretary_name, secretary_email, created_at FROM zone WHERE id = ?`, id,
	).Scan(&z.ID, &z.Name, &z.SecretaryName, &z.SecretaryEmail, &createdStr)
	if err != nil {
		return z, err
	}
	z.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return z, nil
}

// List returns all zones sorted by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Zone, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, secretary_name, secretary_email, created_at FROM zone ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []domain.Zone
	for rows.Next() {
		var z domain.Zone
		var createdStr string
		if err := rows.Scan(&z.ID, &z.Name, &z.SecretaryName, &z.SecretaryEmail, &createdStr); err != nil {
			return nil, err
		}
		z.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// Delete removes a zone by ID.
// PRE: id is non-empty
// POST: zone is removed from storage
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM zone WHERE id = ?`, id)
	return err
}
