package importbatch

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"zonehub/internal/adapters/storage"
	domain "zonehub/internal/domain/importbatch"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return NewSQLiteStore(db)
}

func testBatch() domain.Batch {
	start, _ := time.Parse("2006-01-02", "2026-03-14")
	end, _ := time.Parse("2006-01-02", "2026-03-16")
	b := domain.Batch{
		ID:       "b1",
		FileName: "term1.csv",
		FileSize: 2048,
		Status:   domain.StatusReviewing,
		Events: []domain.ImportedEvent{
			{
				ID:              "ev1",
				OriginalData:    []string{"Spring Rally", "14/03/2026", "16/03/2026", "Springfield"},
				Name:            "Spring Rally",
				ClubName:        "Springfield",
				StartDate:       start,
				EndDate:         end,
				ClubID:          "c1",
				Status:          domain.EventMatched,
				MatchConfidence: 100,
				SplitEvents: []domain.ImportedEvent{
					{ID: "ev1_day_1", Name: "Spring Rally (Day 1)", StartDate: start, EndDate: start},
					{ID: "ev1_day_2", Name: "Spring Rally (Day 2)", StartDate: start.AddDate(0, 0, 1), EndDate: start.AddDate(0, 0, 1)},
					{ID: "ev1_day_3", Name: "Spring Rally (Day 3)", StartDate: end, EndDate: end},
				},
			},
			{
				ID:               "ev2",
				Name:             "Winter Clinic",
				ClubName:         "Nowhere",
				StartDate:        start,
				Status:           domain.EventUnmatched,
				ValidationErrors: []string{"Event name is required"},
			},
		},
		CreatedBy: "a1",
		CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	b.RecomputeSummary()
	return b
}

// TestSQLiteStore_RoundTrip verifies the full event list survives the JSON
// column, including nested split events and validation errors.
func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	want := testBatch()

	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.GetByID(ctx, "b1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if got.FileName != want.FileName || got.Status != want.Status {
		t.Errorf("batch = %q/%q, want %q/%q", got.FileName, got.Status, want.FileName, want.Status)
	}
	if len(got.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(got.Events))
	}
	ev := got.Events[0]
	if ev.Name != "Spring Rally" || ev.ClubID != "c1" || ev.MatchConfidence != 100 {
		t.Errorf("event 0 = %+v", ev)
	}
	if len(ev.SplitEvents) != 3 {
		t.Fatalf("split events = %d, want 3", len(ev.SplitEvents))
	}
	if ev.SplitEvents[1].ID != "ev1_day_2" {
		t.Errorf("split[1].ID = %q, want ev1_day_2", ev.SplitEvents[1].ID)
	}
	if !ev.StartDate.Equal(want.Events[0].StartDate) || !ev.EndDate.Equal(want.Events[0].EndDate) {
		t.Errorf("dates = %v..%v, want %v..%v", ev.StartDate, ev.EndDate, want.Events[0].StartDate, want.Events[0].EndDate)
	}
	if len(got.Events[1].ValidationErrors) != 1 {
		t.Errorf("validation errors = %v, want one entry", got.Events[1].ValidationErrors)
	}
	if got.Summary != want.Summary {
		t.Errorf("summary = %+v, want %+v", got.Summary, want.Summary)
	}
}

// TestSQLiteStore_UpdatePreservesIdentity verifies a second Save updates in
// place rather than inserting.
func TestSQLiteStore_UpdatePreservesIdentity(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	b := testBatch()

	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	b.Status = domain.StatusCompleted
	b.ImportedEventIDs = []string{"e1", "e2", "e3"}
	b.UpdatedAt = time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("batches = %d, want 1", len(all))
	}
	if all[0].Status != domain.StatusCompleted {
		t.Errorf("status = %q, want completed", all[0].Status)
	}
	if len(all[0].ImportedEventIDs) != 3 {
		t.Errorf("imported ids = %v, want 3 entries", all[0].ImportedEventIDs)
	}
}

// TestSQLiteStore_GetMissing verifies the not-found error.
func TestSQLiteStore_GetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetByID(context.Background(), "nope")
	if err != storage.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
