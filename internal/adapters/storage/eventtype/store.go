package eventtype

import (
	"context"

	domain "zonehub/internal/domain/eventtype"
)

// Store persists EventType reference data.
type Store interface {
	Save(ctx context.Context, t domain.EventType) error
	List(ctx context.Context) ([]domain.EventType, error)
	Delete(ctx context.Context, id string) error
}
