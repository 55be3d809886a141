package outbox

import (
	"context"

	domain "zonehub/internal/domain/outbox"
)

// Store persists outbox Entry state.
type Store interface {
	Save(ctx context.Context, e domain.Entry) error
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	List(ctx context.Context) ([]domain.Entry, error)
	ListRetryable(ctx context.Context) ([]domain.Entry, error)
}
