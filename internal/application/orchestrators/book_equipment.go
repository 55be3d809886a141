package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"zonehub/internal/domain/booking"
)

// BookingStore defines the booking store interface.
type BookingStore interface {
	Save(ctx context.Context, b booking.Booking) error
	GetByID(ctx context.Context, id string) (booking.Booking, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]booking.Booking, error)
}

// EquipmentLookupStore defines the equipment store interface.
type EquipmentLookupStore interface {
	GetByID(ctx context.Context, id string) (booking.Equipment, error)
}

// Booking errors.
var (
	ErrEquipmentRetired = errors.New("equipment is retired and cannot be booked")
	ErrBookingConflict  = errors.New("equipment is already booked for part of that date range")
)

// BookEquipmentInput carries a club's equipment reservation.
type BookEquipmentInput struct {
	EquipmentID  string
	ClubID       string
	EventID      string
	ContactName  string
	ContactPhone string
	StartDate    time.Time
	EndDate      time.Time
	Notes        string
}

// BookEquipmentDeps holds dependencies for BookEquipment.
type BookEquipmentDeps struct {
	BookingStore   BookingStore
	EquipmentStore EquipmentLookupStore
	GenerateID     func() string
	Now            func() time.Time
}

// ExecuteBookEquipment reserves equipment for a club, rejecting any overlap
// with an existing confirmed booking.
// PRE: equipment exists and is available
// POST: Booking is persisted in confirmed status with no overlapping peer
func ExecuteBookEquipment(ctx context.Context, input BookEquipmentInput, deps BookEquipmentDeps) (booking.Booking, error) {
	eq, err := deps.EquipmentStore.GetByID(ctx, input.EquipmentID)
	if err != nil {
		return booking.Booking{}, err
	}
	if eq.Status == booking.EquipmentRetired {
		return booking.Booking{}, ErrEquipmentRetired
	}

	b := booking.Booking{
		ID:           deps.GenerateID(),
		EquipmentID:  input.EquipmentID,
		ClubID:       input.ClubID,
		EventID:      input.EventID,
		ContactName:  input.ContactName,
		ContactPhone: input.ContactPhone,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       booking.StatusConfirmed,
		Notes:        input.Notes,
		CreatedAt:    deps.Now(),
	}
	if err := b.Validate(); err != nil {
		return booking.Booking{}, err
	}

	existing, err := deps.BookingStore.ListByEquipment(ctx, input.EquipmentID)
	if err != nil {
		return booking.Booking{}, err
	}
	for i := range existing {
		if existing[i].Status != booking.StatusConfirmed {
			continue
		}
		if b.Overlaps(&existing[i]) {
			return booking.Booking{}, ErrBookingConflict
		}
	}

	if err := deps.BookingStore.Save(ctx, b); err != nil {
		return booking.Booking{}, err
	}

	slog.Info("booking_event", "event", "equipment_booked", "booking_id", b.ID,
		"equipment_id", b.EquipmentID, "club_id", b.ClubID,
		"start", b.StartDate.Format("2006-01-02"), "end", b.EndDate.Format("2006-01-02"))
	return b, nil
}

// CancelBookingInput identifies the booking to cancel.
type CancelBookingInput struct {
	BookingID string
}

// ExecuteCancelBooking cancels a confirmed booking, freeing its dates.
// PRE: booking exists
// POST: Booking status is cancelled
func ExecuteCancelBooking(ctx context.Context, input CancelBookingInput, deps BookEquipmentDeps) (booking.Booking, error) {
	b, err := deps.BookingStore.GetByID(ctx, input.BookingID)
	if err != nil {
		return booking.Booking{}, err
	}
	b.Status = booking.StatusCancelled
	if err := deps.BookingStore.Save(ctx, b); err != nil {
		return booking.Booking{}, err
	}

	slog.Info("booking_event", "event", "booking_cancelled", "booking_id", b.ID)
	return b, nil
}
