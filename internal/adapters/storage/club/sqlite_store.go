package club

import (
	"context"
	"database/sql"
	"time"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/club"
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

// Save inserts or updates a club.
// PRE: c is a valid Club (Validate() returns nil)
// POST: club is persisted
func (s *SQLiteStore) Save(ctx context.Context, c domain.Club) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO club (id, zone_id, name, contact_email, address, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   zone_id=excluded.zone_id, name=excluded.name, contact_email=excluded.contact_email,
		   address=excluded.address, status=excluded.status`,
		c.ID, c.ZoneID, c.Name, c.ContactEmail, c.Address, c.Status, c.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetByID retrieves a club by ID.
// PRE: id is non-empty
// POST: returns the club or error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Club, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, zone_id, name, contact_email, address, status, created_at FROM club WHERE id = ?`, id)
	return scanClub(row)
}

// List returns all clubs sorted by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Club, error) {
	return s.list(ctx,
		`SELECT id, zone_id, name, contact_email, address, status, created_at FROM club ORDER BY name ASC`)
}

// ListByZone returns the clubs in one zone sorted by name.
// PRE: zoneID is non-empty
func (s *SQLiteStore) ListByZone(ctx context.Context, zoneID string) ([]domain.Club, error) {
	return s.list(ctx,
		`SELECT id, zone_id, name, contact_email, address, status, created_at
		 FROM club WHERE zone_id = ? ORDER BY name ASC`, zoneID)
}

// Delete removes a club by ID.
// PRE: id is non-empty
// POST: club is removed from storage
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM club WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Club, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []domain.Club
	for rows.Next() {
		var c domain.Club
		var createdStr string
		if err := rows.Scan(&c.ID, &c.ZoneID, &c.Name, &c.ContactEmail, &c.Address, &c.Status, &createdStr); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

func scanClub(row *sql.Row) (domain.Club, error) {
	var c domain.Club
	var createdStr string
	err := row.Scan(&c.ID, &c.ZoneID, &c.Name, &c.ContactEmail, &c.Address, &c.Status, &createdStr)
	if err != nil {
		return c, err
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return c, nil
}
