package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"zonehub/internal/application/importer"
	"zonehub/internal/domain/club"
	"zonehub/internal/domain/importbatch"
)

// BatchStore defines the import batch store interface used by the import
// orchestrators.
type BatchStore interface {
	Save(ctx context.Context, b importbatch.Batch) error
	GetByID(ctx context.Context, id string) (importbatch.Batch, error)
	Delete(ctx context.Context, id string) error
}

// ClubListStore defines the club store interface needed for matching.
type ClubListStore interface {
	List(ctx context.Context) ([]club.Club, error)
}

// CreateImportBatchInput carries the uploaded calendar document.
type CreateImportBatchInput struct {
	FileName  string
	Data      []byte
	CreatedBy string // account ID
}

// CreateImportBatchDeps holds dependencies for CreateImportBatch.
type CreateImportBatchDeps struct {
	BatchStore BatchStore
	ClubStore  ClubListStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateImportBatch parses an uploaded document, matches clubs and
// stores the batch ready for review. Parsing never rejects a supported file:
// unreadable content degrades to placeholder rows flagged for manual review.
// PRE: FileName has a supported extension
// POST: Batch is persisted in reviewing status with a consistent summary
func ExecuteCreateImportBatch(ctx context.Context, input CreateImportBatchInput, deps CreateImportBatchDeps) (importbatch.Batch, error) {
	if input.FileName == "" {
		return importbatch.Batch{}, importbatch.ErrEmptyFileName
	}
	if !importer.Accepted(input.FileName) {
		return importbatch.Batch{}, fmt.Errorf("unsupported file type: %s", input.FileName)
	}
	if len(input.Data) == 0 {
		return importbatch.Batch{}, errors.New("uploaded file is empty")
	}

	clubs, err := deps.ClubStore.List(ctx)
	if err != nil {
		return importbatch.Batch{}, err
	}
	refs := make([]importer.ClubRef, 0, len(clubs))
	for _, c := range clubs {
		refs = append(refs, importer.ClubRef{ID: c.ID, Name: c.Name})
	}

	grid := importer.ParseFile(input.FileName, input.Data)
	events := importer.BuildEvents(grid, refs, deps.GenerateID)
	if len(events) > importbatch.MaxEventsPerBatch {
		return importbatch.Batch{}, importbatch.ErrTooManyEvents
	}

	now := deps.Now()
	b := importbatch.Batch{
		ID:        deps.GenerateID(),
		FileName:  input.FileName,
		FileSize:  int64(len(input.Data)),
		Status:    importbatch.StatusDraft,
		Events:    events,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.RecomputeSummary()

	if err := b.Validate(); err != nil {
		return importbatch.Batch{}, err
	}
	// The review screen opens immediately after upload.
	if err := b.TransitionTo(importbatch.StatusReviewing); err != nil {
		return importbatch.Batch{}, err
	}

	if err := deps.BatchStore.Save(ctx, b); err != nil {
		return importbatch.Batch{}, err
	}

	slog.Info("import_event", "event", "batch_created", "batch_id", b.ID,
		"file_name", b.FileName, "total", b.Summary.TotalEvents,
		"matched", b.Summary.MatchedClubs, "unmatched", b.Summary.UnmatchedClubs)
	return b, nil
}
