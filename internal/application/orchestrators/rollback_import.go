package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"zonehub/internal/domain/importbatch"
)

// RollbackImportInput identifies the completed batch to undo.
type RollbackImportInput struct {
	BatchID      string
	RolledBackBy string // account ID
}

// RollbackImportDeps holds dependencies for RollbackImport.
type RollbackImportDeps struct {
	BatchStore BatchStore
	EventStore EventWriteStore
	Now        func() time.Time
}

// ExecuteRollbackImport deletes every event a completed batch created and
// marks the batch rolled back. The recorded event IDs are kept for audit.
// PRE: batch is completed with recorded imported event IDs
// POST: all imported events are deleted; batch status is rolled_back
func ExecuteRollbackImport(ctx context.Context, input RollbackImportInput, deps RollbackImportDeps) (importbatch.Batch, error) {
	b, err := deps.BatchStore.GetByID(ctx, input.BatchID)
	if err != nil {
		return importbatch.Batch{}, err
	}
	if err := b.CanRollback(); err != nil {
		return importbatch.Batch{}, err
	}

	for _, id := range b.ImportedEventIDs {
		if err := deps.EventStore.Delete(ctx, id); err != nil {
			b.ErrorMessage = err.Error()
			if saveErr := deps.BatchStore.Save(ctx, b); saveErr != nil {
				slog.Error("import_event", "event", "rollback_record_error", "batch_id", b.ID, "error", saveErr)
			}
			slog.Error("import_event", "event", "batch_rollback_failed", "batch_id", b.ID, "event_id", id, "error", err)
			return b, err
		}
	}

	b.ErrorMessage = ""
	if err := b.TransitionTo(importbatch.StatusRolledBack); err != nil {
		return importbatch.Batch{}, err
	}
	b.UpdatedAt = deps.Now()
	if err := deps.BatchStore.Save(ctx, b); err != nil {
		return importbatch.Batch{}, err
	}

	slog.Info("import_event", "event", "batch_rolled_back", "batch_id", b.ID,
		"events_deleted", len(b.ImportedEventIDs), "rolled_back_by", input.RolledBackBy)
	return b, nil
}
