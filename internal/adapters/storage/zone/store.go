package zone

import (
	"context"

	domain "zonehub/internal/domain/zone"
)

// Store persists Zone state.
type Store interface {
	Save(ctx context.Context, z domain.Zone) error
	GetByID(ctx context.Context, id string) (domain.Zone, error)
	List(ctx context.Context) ([]domain.Zone, error)
	Delete(ctx context.Context, id string) error
}
