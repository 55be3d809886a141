package orchestrators

import (
	"context"
	"errors"
	"testing"

	"zonehub/internal/domain/event"
	"zonehub/internal/domain/importbatch"
)

// completedBatch seeds a completed batch whose three events exist in the
// event store.
func completedBatch(batchStore *mockBatchStore, eventStore *mockEventStore) importbatch.Batch {
	b := reviewableBatch(batchStore)
	b.Status = importbatch.StatusCompleted
	b.ImportedEventIDs = []string{"id-1", "id-2", "id-3"}
	batchStore.batches[b.ID] = b
	for _, id := range b.ImportedEventIDs {
		eventStore.events[id] = event.Event{ID: id, Name: "Imported", Source: event.SourceImported, ImportBatchID: b.ID}
	}
	return b
}

// TestExecuteRollbackImport verifies rollback deletes every imported event
// and marks the batch rolled back, keeping the IDs for audit.
func TestExecuteRollbackImport(t *testing.T) {
	batchStore := newMockBatchStore()
	eventStore := newMockEventStore()
	completedBatch(batchStore, eventStore)

	got, err := ExecuteRollbackImport(context.Background(), RollbackImportInput{
		BatchID: "b1", RolledBackBy: "admin-001",
	}, RollbackImportDeps{
		BatchStore: batchStore,
		EventStore: eventStore,
		Now:        fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Status != importbatch.StatusRolledBack {
		t.Errorf("status = %q, want rolled_back", got.Status)
	}
	if len(eventStore.events) != 0 {
		t.Errorf("events remaining = %d, want 0", len(eventStore.events))
	}
	if len(got.ImportedEventIDs) != 3 {
		t.Errorf("audit ids = %d, want 3 kept", len(got.ImportedEventIDs))
	}
	// rolled_back is terminal
	if got.CanTransitionTo(importbatch.StatusCompleted) {
		t.Error("rolled back batch must be terminal")
	}
}

// TestExecuteRollbackImport_OnlyCompleted verifies the precondition.
func TestExecuteRollbackImport_OnlyCompleted(t *testing.T) {
	batchStore := newMockBatchStore()
	reviewableBatch(batchStore)

	_, err := ExecuteRollbackImport(context.Background(), RollbackImportInput{BatchID: "b1"}, RollbackImportDeps{
		BatchStore: batchStore,
		EventStore: newMockEventStore(),
		Now:        fixedNow,
	})
	if err != importbatch.ErrNotRollbackable {
		t.Errorf("err = %v, want ErrNotRollbackable", err)
	}
}

// TestExecuteRollbackImport_NoRecordedIDs verifies a completed batch without
// recorded IDs cannot roll back.
func TestExecuteRollbackImport_NoRecordedIDs(t *testing.T) {
	batchStore := newMockBatchStore()
	b := reviewableBatch(batchStore)
	b.Status = importbatch.StatusCompleted
	batchStore.batches[b.ID] = b

	_, err := ExecuteRollbackImport(context.Background(), RollbackImportInput{BatchID: "b1"}, RollbackImportDeps{
		BatchStore: batchStore,
		EventStore: newMockEventStore(),
		Now:        fixedNow,
	})
	if err != importbatch.ErrNoImportedEvents {
		t.Errorf("err = %v, want ErrNoImportedEvents", err)
	}
}

// TestExecuteRollbackImport_DeleteFailure verifies a delete error keeps the
// batch completed with the cause recorded.
func TestExecuteRollbackImport_DeleteFailure(t *testing.T) {
	batchStore := newMockBatchStore()
	eventStore := newMockEventStore()
	completedBatch(batchStore, eventStore)
	eventStore.deleteErr = errors.New("db locked")

	_, err := ExecuteRollbackImport(context.Background(), RollbackImportInput{BatchID: "b1"}, RollbackImportDeps{
		BatchStore: batchStore,
		EventStore: eventStore,
		Now:        fixedNow,
	})
	if err == nil {
		t.Fatal("expected the delete failure to surface")
	}

	stored := batchStore.batches["b1"]
	if stored.Status != importbatch.StatusCompleted {
		t.Errorf("status = %q, want completed (rollback can be retried)", stored.Status)
	}
	if stored.ErrorMessage == "" {
		t.Error("expected the failure cause to be recorded")
	}
}
