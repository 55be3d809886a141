package account

import (
	"context"

	domain "zonehub/internal/domain/account"
)

// Store persists Account state.
type Store interface {
	Save(ctx context.Context, a domain.Account) error
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Count(ctx context.Context) (int, error)
}
