package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"zonehub/internal/application/importer"
	"zonehub/internal/domain/importbatch"
)

// UpdateImportedEventInput carries review-screen edits to one event.
// Nil pointers leave the corresponding field unchanged.
type UpdateImportedEventInput struct {
	BatchID   string
	EventID   string
	Name      *string
	EventType *string
	Location  *string
	Notes     *string
	StartDate *time.Time
	EndDate   *time.Time
}

// ReviewImportBatchDeps holds dependencies for the review operations.
type ReviewImportBatchDeps struct {
	BatchStore BatchStore
	ClubStore  ClubListStore
	Now        func() time.Time
}

// ExecuteUpdateImportedEvent applies review edits to one event in a batch.
// Validation is re-run and split events are rebuilt when dates change.
// PRE: batch exists and is still reviewable
// POST: event and summary reflect the edits; batch is persisted
func ExecuteUpdateImportedEvent(ctx context.Context, input UpdateImportedEventInput, deps ReviewImportBatchDeps) (importbatch.Batch, error) {
	b, err := deps.BatchStore.GetByID(ctx, input.BatchID)
	if err != nil {
		return importbatch.Batch{}, err
	}
	if !b.IsReviewable() {
		return importbatch.Batch{}, importbatch.ErrBatchNotReviewable
	}
	i := b.FindEvent(input.EventID)
	if i < 0 {
		return importbatch.Batch{}, importbatch.ErrEventNotFound
	}

	ev := &b.Events[i]
	if input.Name != nil {
		ev.Name = *input.Name
	}
	if input.EventType != nil {
		ev.EventType = *input.EventType
	}
	if input.Location != nil {
		ev.Location = *input.Location
	}
	if input.Notes != nil {
		ev.Notes = *input.Notes
	}
	if input.StartDate != nil {
		ev.StartDate = importer.DateOnly(*input.StartDate)
		if ev.EndDate.Before(ev.StartDate) {
			ev.EndDate = ev.StartDate
		}
	}
	if input.EndDate != nil {
		ev.EndDate = importer.DateOnly(*input.EndDate)
	}

	revalidateEvent(ev)
	if !ev.StartDate.IsZero() && ev.EndDate.After(ev.StartDate) {
		ev.SplitEvents = importer.CreateSplitEvents(*ev)
	} else {
		ev.SplitEvents = nil
	}

	b.RecomputeSummary()
	b.UpdatedAt = deps.Now()
	if err := deps.BatchStore.Save(ctx, b); err != nil {
		return importbatch.Batch{}, err
	}

	slog.Info("import_event", "event", "imported_event_updated", "batch_id", b.ID, "event_id", input.EventID)
	return b, nil
}

// AssignClubInput carries a manual club assignment from the review screen.
type AssignClubInput struct {
	BatchID  string
	EventID  string
	ClubID   string
	ClubName string
}

// ExecuteAssignClub resolves an unmatched event by hand. Manual assignment is
// authoritative: the event becomes matched at full confidence.
// PRE: batch exists and is still reviewable; ClubID is non-empty
// POST: event is matched; summary is recomputed; batch is persisted
func ExecuteAssignClub(ctx context.Context, input AssignClubInput, deps ReviewImportBatchDeps) (importbatch.Batch, error) {
	b, err := deps.BatchStore.GetByID(ctx, input.BatchID)
	if err != nil {
		return importbatch.Batch{}, err
	}
	if !b.IsReviewable() {
		return importbatch.Batch{}, importbatch.ErrBatchNotReviewable
	}
	i := b.FindEvent(input.EventID)
	if i < 0 {
		return importbatch.Batch{}, importbatch.ErrEventNotFound
	}

	ev := &b.Events[i]
	ev.ClubID = input.ClubID
	if input.ClubName != "" {
		ev.ClubName = input.ClubName
	}
	ev.Status = importbatch.EventMatched
	ev.MatchConfidence = importer.ConfidenceExact
	revalidateEvent(ev)

	b.RecomputeSummary()
	b.UpdatedAt = deps.Now()
	if err := deps.BatchStore.Save(ctx, b); err != nil {
		return importbatch.Batch{}, err
	}

	slog.Info("import_event", "event", "club_assigned", "batch_id", b.ID, "event_id", input.EventID, "club_id", input.ClubID)
	return b, nil
}

// DeleteImportedEventInput identifies one event to drop from a batch.
type DeleteImportedEventInput struct {
	BatchID string
	EventID string
}

// ExecuteDeleteImportedEvent removes one event from a reviewable batch.
// PRE: batch exists and is still reviewable
// POST: event is gone; summary is recomputed; batch is persisted
func ExecuteDeleteImportedEvent(ctx context.Context, input DeleteImportedEventInput, deps ReviewImportBatchDeps) (importbatch.Batch, error) {
	b, err := deps.BatchStore.GetByID(ctx, input.BatchID)
	if err != nil {
		return importbatch.Batch{}, err
	}
	if !b.IsReviewable() {
		return importbatch.Batch{}, importbatch.ErrBatchNotReviewable
	}
	i := b.FindEvent(input.EventID)
	if i < 0 {
		return importbatch.Batch{}, importbatch.ErrEventNotFound
	}

	b.Events = append(b.Events[:i], b.Events[i+1:]...)
	b.RecomputeSummary()
	b.UpdatedAt = deps.Now()
	if err := deps.BatchStore.Save(ctx, b); err != nil {
		return importbatch.Batch{}, err
	}

	slog.Info("import_event", "event", "imported_event_deleted", "batch_id", b.ID, "event_id", input.EventID)
	return b, nil
}

// SuggestClubsInput asks for match candidates for one unmatched event.
type SuggestClubsInput struct {
	BatchID string
	EventID string
	Limit   int
}

// ExecuteSuggestClubs returns ranked club candidates for the review screen's
// assignment dropdown.
// PRE: batch and event exist
// POST: pure; nothing is persisted
func ExecuteSuggestClubs(ctx context.Context, input SuggestClubsInput, deps ReviewImportBatchDeps) ([]importer.Suggestion, error) {
	b, err := deps.BatchStore.GetByID(ctx, input.BatchID)
	if err != nil {
		return nil, err
	}
	i := b.FindEvent(input.EventID)
	if i < 0 {
		return nil, importbatch.ErrEventNotFound
	}
	clubs, err := deps.ClubStore.List(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]importer.ClubRef, 0, len(clubs))
	for _, c := range clubs {
		refs = append(refs, importer.ClubRef{ID: c.ID, Name: c.Name})
	}
	if input.Limit <= 0 {
		input.Limit = 5
	}
	return importer.SuggestClubs(b.Events[i].ClubName, refs, input.Limit), nil
}

// DeleteImportBatchInput identifies a batch to discard.
type DeleteImportBatchInput struct {
	BatchID string
}

// ExecuteDeleteImportBatch discards a batch that was never executed.
// PRE: batch exists and has not imported anything
// POST: batch is removed from storage
func ExecuteDeleteImportBatch(ctx context.Context, input DeleteImportBatchInput, deps ReviewImportBatchDeps) error {
	b, err := deps.BatchStore.GetByID(ctx, input.BatchID)
	if err != nil {
		return err
	}
	if !b.IsReviewable() {
		return importbatch.ErrBatchNotReviewable
	}
	if err := deps.BatchStore.Delete(ctx, b.ID); err != nil {
		return err
	}
	slog.Info("import_event", "event", "batch_deleted", "batch_id", b.ID, "file_name", b.FileName)
	return nil
}

// revalidateEvent recomputes the validation error list after an edit.
// Matching status is untouched: validation and matching are orthogonal.
func revalidateEvent(ev *importbatch.ImportedEvent) {
	var errs []string
	if ev.Name == "" {
		errs = append(errs, importer.MsgNameRequired)
	}
	if ev.StartDate.IsZero() {
		errs = append(errs, importer.MsgStartUnparsed)
	}
	if ev.ClubName == "" && ev.ClubID == "" {
		errs = append(errs, importer.MsgClubRequired)
	}
	if !ev.StartDate.IsZero() && !ev.EndDate.IsZero() && ev.EndDate.Before(ev.StartDate) {
		errs = append(errs, importer.MsgEndBeforeStart)
	}
	ev.ValidationErrors = errs
}
