package email

import (
	"context"
	"time"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/email"
)

// SQLiteTemplateStore implements TemplateStore using SQLite.
type SQLiteTemplateStore struct {
	db storage.SQLDB
}

// NewSQLiteTemplateStore creates a new SQLiteTemplateStore.
// PRE: db is a valid, open database connection with the schema applied
// POST: store is ready for use
func NewSQLiteTemplateStore(db storage.SQLDB) *SQLiteTemplateStore {
	return &SQLiteTemplateStore{db: db}
}

// Save inserts or updates a template.
// PRE: t is a valid Template (Validate() returns nil)
// POST: template is persisted
func (s *SQLiteTemplateStore) Save(ctx context.Context, t domain.Template) error {
	updatedAt := ""
	if !t.UpdatedAt.IsZero() {
		updatedAt = t.UpdatedAt.Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO email_template (id, name, subject, body, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, subject=excluded.subject, body=excluded.body,
		   updated_at=excluded.updated_at`,
		t.ID, t.Name, t.Subject, t.Body, t.CreatedBy, t.CreatedAt.Format(time.RFC3339), updatedAt,
	)
	return err
}

// GetByID retrieves a template by ID.
// PRE: id is non-empty
// POST: returns the template or error if not found
func (s *SQLiteTemplateStore) GetByID(ctx context.Context, id string) (domain.Template, error) {
	templates, err := s.list(ctx,
		`SELECT id, name, subject, body, created_by, created_at, updated_at
		 FROM email_template WHERE id = ?`, id)
	if err != nil {
		return domain.Template{}, err
	}
	if len(templates) == 0 {
		return domain.Template{}, storage.ErrNotFound
	}
	return templates[0], nil
}

// List returns all templates sorted by name.
func (s *SQLiteTemplateStore) List(ctx context.Context) ([]domain.Template, error) {
	return s.list(ctx,
		`SELECT id, name, subject, body, created_by, created_at, updated_at
		 FROM email_template ORDER BY name ASC`)
}

// Delete removes a template by ID.
// PRE: id is non-empty
// POST: template is removed from storage
func (s *SQLiteTemplateStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM email_template WHERE id = ?`, id)
	return err
}

func (s *SQLiteTemplateStore) list(ctx context.Context, query string, args ...any) ([]domain.Template, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		var t domain.Template
		var createdBy, updatedStr *string
		var createdStr string
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &createdBy, &createdStr, &updatedStr); err != nil {
			return nil, err
		}
		if createdBy != nil {
			t.CreatedBy = *createdBy
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		if updatedStr != nil && *updatedStr != "" {
			t.UpdatedAt, _ = time.Parse(time.RFC3339, *updatedStr)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}
