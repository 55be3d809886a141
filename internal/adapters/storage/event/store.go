package event

import (
	"context"
	"time"

	domain "zonehub/internal/domain/event"
)

// Store persists Event state.
type Store interface {
	Save(ctx context.Context, e domain.Event) error
	GetByID(ctx context.Context, id string) (domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListByClub(ctx context.Context, clubID string) ([]domain.Event, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Event, error)
	ListByImportBatch(ctx context.Context, batchID string) ([]domain.Event, error)
	Delete(ctx context.Context, id string) error
}
