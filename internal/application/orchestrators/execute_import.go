package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"zonehub/internal/domain/event"
	"zonehub/internal/domain/importbatch"
)

// EventWriteStore defines the event store interface used by execute/rollback.
type EventWriteStore interface {
	Save(ctx context.Context, e event.Event) error
	Delete(ctx context.Context, id string) error
}

// ExecuteImportInput identifies the batch to import.
type ExecuteImportInput struct {
	BatchID    string
	ExecutedBy string // account ID
}

// ExecuteImportDeps holds dependencies for ExecuteImport.
type ExecuteImportDeps struct {
	BatchStore BatchStore
	EventStore EventWriteStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteImport turns a fully reviewed batch into real calendar events. The
// gate is all-or-nothing on review state: a single unmatched event blocks the
// whole batch, while validation errors are advisory and do not. Multi-day
// events import as their per-day splits.
// PRE: batch is in reviewing or ready status with no unmatched events
// POST: on success the batch is completed and records every created event ID;
// on a mid-import failure the batch is failed and records the IDs created so
// far, which stay in the calendar for manual cleanup
func ExecuteImport(ctx context.Context, input ExecuteImportInput, deps ExecuteImportDeps) (importbatch.Batch, error) {
	b, err := deps.BatchStore.GetByID(ctx, input.BatchID)
	if err != nil {
		return importbatch.Batch{}, err
	}
	if err := b.CanExecute(); err != nil {
		return importbatch.Batch{}, err
	}

	if err := b.TransitionTo(importbatch.StatusImporting); err != nil {
		return importbatch.Batch{}, err
	}
	b.UpdatedAt = deps.Now()
	if err := deps.BatchStore.Save(ctx, b); err != nil {
		return importbatch.Batch{}, err
	}

	var createdIDs []string
	for i := range b.Events {
		for _, ev := range eventsToImport(b.Events[i]) {
			e := event.Event{
				ID:              deps.GenerateID(),
				ClubID:          ev.ClubID,
				Name:            ev.Name,
				EventType:       ev.EventType,
				Location:        ev.Location,
				Notes:           ev.Notes,
				CoordinatorName: ev.CoordinatorName,
				StartDate:       ev.StartDate,
				EndDate:         ev.EndDate,
				Source:          event.SourceImported,
				ImportBatchID:   b.ID,
				CreatedBy:       input.ExecutedBy,
				CreatedAt:       deps.Now(),
			}
			if e.ClubID == "" {
				e.ClubID = b.Events[i].ClubID
			}
			if saveErr := deps.EventStore.Save(ctx, e); saveErr != nil {
				return failImport(ctx, b, createdIDs, saveErr, deps)
			}
			createdIDs = append(createdIDs, e.ID)
		}
	}

	b.ImportedEventIDs = createdIDs
	b.ErrorMessage = ""
	if err := b.TransitionTo(importbatch.StatusCompleted); err != nil {
		return importbatch.Batch{}, err
	}
	b.UpdatedAt = deps.Now()
	if err := deps.BatchStore.Save(ctx, b); err != nil {
		return importbatch.Batch{}, err
	}

	slog.Info("import_event", "event", "batch_imported", "batch_id", b.ID,
		"events_created", len(createdIDs), "executed_by", input.ExecutedBy)
	return b, nil
}

// eventsToImport returns the per-day splits for multi-day events, or the event
// itself for single-day ones.
func eventsToImport(ev importbatch.ImportedEvent) []importbatch.ImportedEvent {
	if ev.IsMultiDay() {
		return ev.SplitEvents
	}
	return []importbatch.ImportedEvent{ev}
}

// failImport records a mid-import failure. Events created before the failure
// are kept and their IDs recorded so an admin can clean up by hand.
func failImport(ctx context.Context, b importbatch.Batch, createdIDs []string, cause error, deps ExecuteImportDeps) (importbatch.Batch, error) {
	b.ImportedEventIDs = createdIDs
	b.ErrorMessage = cause.Error()
	if err := b.TransitionTo(importbatch.StatusFailed); err != nil {
		return importbatch.Batch{}, err
	}
	b.UpdatedAt = deps.Now()
	if err := deps.BatchStore.Save(ctx, b); err != nil {
		slog.Error("import_event", "event", "batch_fail_record_error", "batch_id", b.ID, "error", err)
	}
	slog.Error("import_event", "event", "batch_import_failed", "batch_id", b.ID,
		"events_created", len(createdIDs), "error", cause)
	return b, cause
}
