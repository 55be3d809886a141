package importbatch

import (
	"context"

	domain "zonehub/internal/domain/importbatch"
)

// Store persists import Batch state, including the full reviewed event list.
type Store interface {
	Save(ctx context.Context, b domain.Batch) error
	GetByID(ctx context.Context, id string) (domain.Batch, error)
	List(ctx context.Context) ([]domain.Batch, error)
	Delete(ctx context.Context, id string) error
}
