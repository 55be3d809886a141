package orchestrators

import (
	"context"
	"testing"
	"time"

	"zonehub/internal/domain/importbatch"
)

// reviewableBatch seeds a store with a two-event reviewing batch: one matched
// multi-day rally, one unmatched clinic.
func reviewableBatch(store *mockBatchStore) importbatch.Batch {
	start := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	b := importbatch.Batch{
		ID:       "b1",
		FileName: "term1.csv",
		Status:   importbatch.StatusReviewing,
		Events: []importbatch.ImportedEvent{
			{
				ID: "ev1", Name: "Spring Rally", ClubName: "Springfield Pony Club",
				StartDate: start, EndDate: start.AddDate(0, 0, 2),
				ClubID: "c1", Status: importbatch.EventMatched, MatchConfidence: 100,
				SplitEvents: []importbatch.ImportedEvent{
					{ID: "ev1_day_1", StartDate: start, EndDate: start},
					{ID: "ev1_day_2", StartDate: start.AddDate(0, 0, 1), EndDate: start.AddDate(0, 0, 1)},
					{ID: "ev1_day_3", StartDate: start.AddDate(0, 0, 2), EndDate: start.AddDate(0, 0, 2)},
				},
			},
			{
				ID: "ev2", Name: "Winter Clinic", ClubName: "Unknown Riders",
				StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				Status:    importbatch.EventUnmatched,
			},
		},
		CreatedAt: fixedTime,
	}
	b.RecomputeSummary()
	store.batches[b.ID] = b
	return b
}

// TestExecuteAssignClub verifies manual assignment flips unmatched to matched
// at full confidence and updates the summary.
func TestExecuteAssignClub(t *testing.T) {
	store := newMockBatchStore()
	reviewableBatch(store)
	deps := ReviewImportBatchDeps{BatchStore: store, ClubStore: testClubs(), Now: fixedNow}

	b, err := ExecuteAssignClub(context.Background(), AssignClubInput{
		BatchID: "b1", EventID: "ev2", ClubID: "c2", ClubName: "Riverton Pony Club",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev := b.Events[1]
	if ev.Status != importbatch.EventMatched || ev.ClubID != "c2" {
		t.Errorf("event = %s/%s, want matched/c2", ev.Status, ev.ClubID)
	}
	if ev.MatchConfidence != 100 {
		t.Errorf("confidence = %d, want 100", ev.MatchConfidence)
	}
	if b.Summary.UnmatchedClubs != 0 || b.Summary.MatchedClubs != 2 {
		t.Errorf("summary = %+v", b.Summary)
	}
	if err := b.CanExecute(); err != nil {
		t.Errorf("batch should be executable after assignment: %v", err)
	}
}

// TestExecuteUpdateImportedEvent_DatesRebuildSplits verifies a date edit
// rebuilds the per-day splits and the summary.
func TestExecuteUpdateImportedEvent_DatesRebuildSplits(t *testing.T) {
	store := newMockBatchStore()
	reviewableBatch(store)
	deps := ReviewImportBatchDeps{BatchStore: store, ClubStore: testClubs(), Now: fixedNow}

	end := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	b, err := ExecuteUpdateImportedEvent(context.Background(), UpdateImportedEventInput{
		BatchID: "b1", EventID: "ev2", EndDate: &end,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev := b.Events[1]
	if len(ev.SplitEvents) != 2 {
		t.Fatalf("splits = %d, want 2", len(ev.SplitEvents))
	}
	if b.Summary.MultiDayEvents != 2 {
		t.Errorf("multi-day count = %d, want 2", b.Summary.MultiDayEvents)
	}

	// Shrinking back to one day clears the splits.
	oneDay := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	b, err = ExecuteUpdateImportedEvent(context.Background(), UpdateImportedEventInput{
		BatchID: "b1", EventID: "ev2", EndDate: &oneDay,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Events[1].SplitEvents) != 0 {
		t.Errorf("splits = %d, want 0 after shrink", len(b.Events[1].SplitEvents))
	}
}

// TestExecuteUpdateImportedEvent_ValidationOrthogonal verifies clearing the
// name records a validation error without touching match status.
func TestExecuteUpdateImportedEvent_ValidationOrthogonal(t *testing.T) {
	store := newMockBatchStore()
	reviewableBatch(store)
	deps := ReviewImportBatchDeps{BatchStore: store, ClubStore: testClubs(), Now: fixedNow}

	empty := ""
	b, err := ExecuteUpdateImportedEvent(context.Background(), UpdateImportedEventInput{
		BatchID: "b1", EventID: "ev1", Name: &empty,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev := b.Events[0]
	if len(ev.ValidationErrors) == 0 {
		t.Error("expected a validation error for the empty name")
	}
	if ev.Status != importbatch.EventMatched {
		t.Errorf("status = %q, validation must not affect matching", ev.Status)
	}
	if b.Summary.ValidationErrors != 1 {
		t.Errorf("summary validation errors = %d, want 1", b.Summary.ValidationErrors)
	}
}

// TestExecuteDeleteImportedEvent verifies removal updates the summary.
func TestExecuteDeleteImportedEvent(t *testing.T) {
	store := newMockBatchStore()
	reviewableBatch(store)
	deps := ReviewImportBatchDeps{BatchStore: store, ClubStore: testClubs(), Now: fixedNow}

	b, err := ExecuteDeleteImportedEvent(context.Background(), DeleteImportedEventInput{
		BatchID: "b1", EventID: "ev2",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(b.Events))
	}
	if b.Summary.TotalEvents != 1 || b.Summary.UnmatchedClubs != 0 {
		t.Errorf("summary = %+v", b.Summary)
	}
}

// TestReviewOperations_ClosedBatch verifies edits are refused once the batch
// has left the review states.
func TestReviewOperations_ClosedBatch(t *testing.T) {
	store := newMockBatchStore()
	b := reviewableBatch(store)
	b.Status = importbatch.StatusCompleted
	store.batches[b.ID] = b
	deps := ReviewImportBatchDeps{BatchStore: store, ClubStore: testClubs(), Now: fixedNow}

	if _, err := ExecuteAssignClub(context.Background(), AssignClubInput{BatchID: "b1", EventID: "ev2", ClubID: "c2"}, deps); err != importbatch.ErrBatchNotReviewable {
		t.Errorf("assign err = %v, want ErrBatchNotReviewable", err)
	}
	if _, err := ExecuteDeleteImportedEvent(context.Background(), DeleteImportedEventInput{BatchID: "b1", EventID: "ev2"}, deps); err != importbatch.ErrBatchNotReviewable {
		t.Errorf("delete err = %v, want ErrBatchNotReviewable", err)
	}
	if err := ExecuteDeleteImportBatch(context.Background(), DeleteImportBatchInput{BatchID: "b1"}, deps); err != importbatch.ErrBatchNotReviewable {
		t.Errorf("delete batch err = %v, want ErrBatchNotReviewable", err)
	}
}

// TestExecuteSuggestClubs verifies ranked candidates come back for an
// unmatched event.
func TestExecuteSuggestClubs(t *testing.T) {
	store := newMockBatchStore()
	b := reviewableBatch(store)
	b.Events[1].ClubName = "Riverton"
	store.batches[b.ID] = b
	deps := ReviewImportBatchDeps{BatchStore: store, ClubStore: testClubs(), Now: fixedNow}

	suggestions, err := ExecuteSuggestClubs(context.Background(), SuggestClubsInput{
		BatchID: "b1", EventID: "ev2", Limit: 3,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	if suggestions[0].ClubID != "c2" {
		t.Errorf("top suggestion = %s, want c2 (Riverton Pony Club)", suggestions[0].ClubID)
	}
}
