package booking

import (
	"errors"
	"strings"
	"time"
)

// Equipment status constants.
const (
	EquipmentAvailable = "available"
	EquipmentRetired   = "retired"
)

// Booking status constants.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Domain errors.
var (
	ErrEmptyEquipmentName = errors.New("equipment name cannot be empty")
	ErrEmptyEquipmentID   = errors.New("booking must name a piece of equipment")
	ErrEmptyClubID        = errors.New("booking must name a club")
	ErrMissingDates       = errors.New("booking start and end dates are required")
	ErrEndBeforeStart     = errors.New("booking end date cannot be before start date")
)

// Equipment is a shared piece of zone equipment (jumps, timing gear, PA
// system) that clubs book for events.
type Equipment struct {
	ID          string
	Name        string
	Description string
	Status      string
	CreatedAt   time.Time
}

// Validate checks the equipment's invariants.
func (e *Equipment) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyEquipmentName
	}
	if e.Status != EquipmentAvailable && e.Status != EquipmentRetired {
		return errors.New("equipment status must be 'available' or 'retired'")
	}
	return nil
}

// Booking reserves a piece of equipment for a club over a date range. The
// handover chain orders confirmed bookings per equipment by start date so
// each club knows who to collect from and deliver to.
// INVARIANT: EndDate >= StartDate.
type Booking struct {
	ID           string
	EquipmentID  string
	ClubID       string
	EventID      string // optional link to the event the gear is for
	ContactName  string
	ContactPhone string
	StartDate    time.Time
	EndDate      time.Time
	Status       string
	Notes        string
	CreatedAt    time.Time
}

// Validate checks the booking's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (b *Booking) Validate() error {
	if b.EquipmentID == "" {
		return ErrEmptyEquipmentID
	}
	if b.ClubID == "" {
		return ErrEmptyClubID
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return ErrMissingDates
	}
	if b.EndDate.Before(b.StartDate) {
		return ErrEndBeforeStart
	}
	if b.Status != StatusConfirmed && b.Status != StatusCancelled {
		return errors.New("booking status must be 'confirmed' or 'cancelled'")
	}
	return nil
}

// Overlaps reports whether two bookings' date ranges intersect.
// PRE: both bookings have valid date ranges
// POST: pure; returns true when the inclusive ranges share at least one day
func (b *Booking) Overlaps(other *Booking) bool {
	return !b.StartDate.After(other.EndDate) && !other.StartDate.After(b.EndDate)
}
