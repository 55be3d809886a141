package booking

import (
	"context"

	domain "zonehub/internal/domain/booking"
)

// EquipmentStore persists Equipment reference data.
type EquipmentStore interface {
	Save(ctx context.Context, e domain.Equipment) error
	GetByID(ctx context.Context, id string) (domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
}

// Store persists Booking state.
type Store interface {
	Save(ctx context.Context, b domain.Booking) error
	GetByID(ctx context.Context, id string) (domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]domain.Booking, error)
	ListByClub(ctx context.Context, clubID string) ([]domain.Booking, error)
}
