package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"zonehub/internal/domain/club"
	"zonehub/internal/domain/event"
	"zonehub/internal/domain/importbatch"
)

// --- shared test fixtures ---

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// seqID returns a deterministic ID generator: id-1, id-2, ...
func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// mockBatchStore implements BatchStore for testing.
type mockBatchStore struct {
	batches map[string]importbatch.Batch
	saveErr error
}

func newMockBatchStore() *mockBatchStore {
	return &mockBatchStore{batches: make(map[string]importbatch.Batch)}
}

func (m *mockBatchStore) Save(_ context.Context, b importbatch.Batch) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.batches[b.ID] = b
	return nil
}

func (m *mockBatchStore) GetByID(_ context.Context, id string) (importbatch.Batch, error) {
	b, ok := m.batches[id]
	if !ok {
		return importbatch.Batch{}, errors.New("batch not found")
	}
	return b, nil
}

func (m *mockBatchStore) Delete(_ context.Context, id string) error {
	delete(m.batches, id)
	return nil
}

// mockClubList implements ClubListStore for testing.
type mockClubList struct {
	clubs []club.Club
}

func (m *mockClubList) List(_ context.Context) ([]club.Club, error) {
	return m.clubs, nil
}

func (m *mockClubList) GetByID(_ context.Context, id string) (club.Club, error) {
	for _, c := range m.clubs {
		if c.ID == id {
			return c, nil
		}
	}
	return club.Club{}, errors.New("club not found")
}

func testClubs() *mockClubList {
	return &mockClubList{clubs: []club.Club{
		{ID: "c1", Name: "Springfield Pony Club", ZoneID: "z1", Status: club.StatusActive, ContactEmail: "springfield@example.org"},
		{ID: "c2", Name: "Riverton Pony Club", ZoneID: "z1", Status: club.StatusActive, ContactEmail: "riverton@example.org"},
		{ID: "c3", Name: "Hillview", ZoneID: "z1", Status: club.StatusActive},
	}}
}

// mockEventStore implements EventWriteStore for testing. failAfter > 0 makes
// Save fail once that many events have been stored.
type mockEventStore struct {
	events    map[string]event.Event
	saveCalls int
	failAfter int
	deleteErr error
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{events: make(map[string]event.Event)}
}

func (m *mockEventStore) Save(_ context.Context, e event.Event) error {
	m.saveCalls++
	if m.failAfter > 0 && m.saveCalls > m.failAfter {
		return errors.New("disk full")
	}
	m.events[e.ID] = e
	return nil
}

func (m *mockEventStore) GetByID(_ context.Context, id string) (event.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, errors.New("event not found")
	}
	return e, nil
}

func (m *mockEventStore) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.events, id)
	return nil
}

// --- ExecuteCreateImportBatch tests ---

const sampleCSV = `Event Name,Start Date,End Date,Club Name,Location,Event Type,Notes,Coordinator
Spring Rally,14/03/2026,16/03/2026,Springfield Pony Club,Showgrounds,Rally,Bring gear,Jo Smith
Winter Clinic,01/06/2026,,Unknown Riders,Indoor Arena,Clinic,,
`

// TestExecuteCreateImportBatch_CSV verifies a clean CSV upload produces a
// reviewing batch with matching and summary applied.
func TestExecuteCreateImportBatch_CSV(t *testing.T) {
	store := newMockBatchStore()
	b, err := ExecuteCreateImportBatch(context.Background(), CreateImportBatchInput{
		FileName:  "term1.csv",
		Data:      []byte(sampleCSV),
		CreatedBy: "admin-001",
	}, CreateImportBatchDeps{
		BatchStore: store,
		ClubStore:  testClubs(),
		GenerateID: seqID(),
		Now:        fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Status != importbatch.StatusReviewing {
		t.Errorf("status = %q, want reviewing", b.Status)
	}
	if len(b.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(b.Events))
	}

	rally := b.Events[0]
	if rally.Status != importbatch.EventMatched || rally.ClubID != "c1" {
		t.Errorf("rally = %s/%s, want matched/c1", rally.Status, rally.ClubID)
	}
	if rally.MatchConfidence != 100 {
		t.Errorf("rally confidence = %d, want 100", rally.MatchConfidence)
	}
	if len(rally.SplitEvents) != 3 {
		t.Errorf("rally splits = %d, want 3", len(rally.SplitEvents))
	}

	clinic := b.Events[1]
	if clinic.Status != importbatch.EventUnmatched {
		t.Errorf("clinic status = %q, want unmatched", clinic.Status)
	}
	if clinic.EndDate.IsZero() || !clinic.EndDate.Equal(clinic.StartDate) {
		t.Errorf("clinic end date should default to start, got %v", clinic.EndDate)
	}

	if b.Summary.TotalEvents != 2 || b.Summary.MatchedClubs != 1 || b.Summary.UnmatchedClubs != 1 || b.Summary.MultiDayEvents != 1 {
		t.Errorf("summary = %+v", b.Summary)
	}
	if _, ok := store.batches[b.ID]; !ok {
		t.Error("expected batch to be persisted")
	}
}

// TestExecuteCreateImportBatch_UnsupportedExtension verifies rejection of
// unknown file types.
func TestExecuteCreateImportBatch_UnsupportedExtension(t *testing.T) {
	_, err := ExecuteCreateImportBatch(context.Background(), CreateImportBatchInput{
		FileName: "calendar.png",
		Data:     []byte("x"),
	}, CreateImportBatchDeps{
		BatchStore: newMockBatchStore(),
		ClubStore:  testClubs(),
		GenerateID: seqID(),
		Now:        fixedNow,
	})
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

// TestExecuteCreateImportBatch_GarbageDegrades verifies unreadable content in
// a supported format degrades to a manual-review placeholder, never an error.
func TestExecuteCreateImportBatch_GarbageDegrades(t *testing.T) {
	b, err := ExecuteCreateImportBatch(context.Background(), CreateImportBatchInput{
		FileName: "scan.pdf",
		Data:     []byte{0x00, 0x01, 0x02, 0xff},
	}, CreateImportBatchDeps{
		BatchStore: newMockBatchStore(),
		ClubStore:  testClubs(),
		GenerateID: seqID(),
		Now:        fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Events) != 1 {
		t.Fatalf("events = %d, want 1 placeholder", len(b.Events))
	}
	ev := b.Events[0]
	if !strings.Contains(ev.Name, "Manual Review Required") {
		t.Errorf("placeholder name = %q", ev.Name)
	}
	if ev.Status != importbatch.EventUnmatched {
		t.Errorf("placeholder status = %q, want unmatched", ev.Status)
	}
}

// TestExecuteCreateImportBatch_EmptyUpload verifies empty payloads are rejected.
func TestExecuteCreateImportBatch_EmptyUpload(t *testing.T) {
	_, err := ExecuteCreateImportBatch(context.Background(), CreateImportBatchInput{
		FileName: "term1.csv",
		Data:     nil,
	}, CreateImportBatchDeps{
		BatchStore: newMockBatchStore(),
		ClubStore:  testClubs(),
		GenerateID: seqID(),
		Now:        fixedNow,
	})
	if err == nil {
		t.Fatal("expected error for empty upload")
	}
}
