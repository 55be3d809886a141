package booking

import (
	"context"
	"time"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/booking"
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

const bookingColumns = `id, equipment_id, club_id, event_id, contact_name, contact_phone,
	start_date, end_date, status, notes, created_at`

// Save inserts or updates a booking.
// PRE: b is a valid Booking (Validate() returns nil)
// POST: booking is persisted
func (s *SQLiteStore) Save(ctx context.Context, b domain.Booking) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO booking (`+bookingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   equipment_id=excluded.equipment_id, club_id=excluded.club_id,
		   event_id=excluded.event_id, contact_name=excluded.contact_name,
		   contact_phone=excluded.contact_phone, start_date=excluded.start_date,
		   end_date=excluded.end_date, status=excluded.status, notes=excluded.notes`,
		b.ID, b.EquipmentID, b.ClubID, b.EventID, b.ContactName, b.ContactPhone,
		b.StartDate.Format(dateLayout), b.EndDate.Format(dateLayout),
		b.Status, b.Notes, b.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetByID retrieves a booking by ID.
// PRE: id is non-empty
// POST: returns the booking or error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	bookings, err := s.list(ctx, `SELECT `+bookingColumns+` FROM booking WHERE id = ?`, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if len(bookings) == 0 {
		return domain.Booking{}, storage.ErrNotFound
	}
	return bookings[0], nil
}

// List returns all bookings sorted by start date.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Booking, error) {
	return s.list(ctx, `SELECT `+bookingColumns+` FROM booking ORDER BY start_date ASC`)
}

// ListByEquipment returns bookings for one piece of equipment sorted by start
// date, which is the handover chain order.
// PRE: equipmentID is non-empty
func (s *SQLiteStore) ListByEquipment(ctx context.Context, equipmentID string) ([]domain.Booking, error) {
	return s.list(ctx,
		`SELECT `+bookingColumns+` FROM booking WHERE equipment_id = ? ORDER BY start_date ASC`,
		equipmentID)
}

// ListByClub returns bookings made by one club sorted by start date.
// PRE: clubID is non-empty
func (s *SQLiteStore) ListByClub(ctx context.Context, clubID string) ([]domain.Booking, error) {
	return s.list(ctx,
		`SELECT `+bookingColumns+` FROM booking WHERE club_id = ? ORDER BY start_date ASC`, clubID)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var eventID *string
		var startStr, endStr, createdStr string
		if err := rows.Scan(&b.ID, &b.EquipmentID, &b.ClubID, &eventID, &b.ContactName,
			&b.ContactPhone, &startStr, &endStr, &b.Status, &b.Notes, &createdStr); err != nil {
			return nil, err
		}
		if eventID != nil {
			b.EventID = *eventID
		}
		b.StartDate, _ = time.Parse(dateLayout, startStr)
		b.EndDate, _ = time.Parse(dateLayout, endStr)
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
