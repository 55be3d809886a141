package club

import (
	"context"

	domain "zonehub/internal/domain/club"
)

// Store persists Club state.
type Store interface {
	Save(ctx context.Context, c domain.Club) error
	GetByID(ctx context.Context, id string) (domain.Club, error)
	List(ctx context.Context) ([]domain.Club, error)
	ListByZone(ctx context.Context, zoneID string) ([]domain.Club, error)
	Delete(ctx context.Context, id string) error
}
