package email

import (
	"context"

	domain "zonehub/internal/domain/email"
)

// Store persists Email state with its recipient list.
type Store interface {
	Save(ctx context.Context, e domain.Email, recipients []domain.Recipient) error
	GetByID(ctx context.Context, id string) (domain.Email, []domain.Recipient, error)
	List(ctx context.Context) ([]domain.Email, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Email, error)
}

// TemplateStore persists reusable email templates.
type TemplateStore interface {
	Save(ctx context.Context, t domain.Template) error
	GetByID(ctx context.Context, id string) (domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
	Delete(ctx context.Context, id string) error
}
