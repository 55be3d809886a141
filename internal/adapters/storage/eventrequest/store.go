package eventrequest

import (
	"context"

	domain "zonehub/internal/domain/eventrequest"
)

// Store persists event Request state.
type Store interface {
	Save(ctx context.Context, r domain.Request) error
	GetByID(ctx context.Context, id string) (domain.Request, error)
	List(ctx context.Context) ([]domain.Request, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Request, error)
	ListByClub(ctx context.Context, clubID string) ([]domain.Request, error)
}
