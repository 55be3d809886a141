package projections

import (
	"context"
	"time"

	"zonehub/internal/domain/club"
	"zonehub/internal/domain/email"
	"zonehub/internal/domain/event"
	"zonehub/internal/domain/eventrequest"
	"zonehub/internal/domain/importbatch"
)

// DashboardClubStore defines the club store interface needed by the dashboard projection.
type DashboardClubStore interface {
	List(ctx context.Context) ([]club.Club, error)
}

// DashboardEventStore defines the event store interface needed by the dashboard projection.
type DashboardEventStore interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]event.Event, error)
}

// DashboardRequestStore defines the event request store interface needed by the dashboard projection.
type DashboardRequestStore interface {
	ListByStatus(ctx context.Context, status string) ([]eventrequest.Request, error)
}

// DashboardEmailStore defines the email store interface needed by the dashboard projection.
type DashboardEmailStore interface {
	ListByStatus(ctx context.Context, status string) ([]email.Email, error)
}

// DashboardBatchStore defines the import batch store interface needed by the dashboard projection.
type DashboardBatchStore interface {
	List(ctx context.Context) ([]importbatch.Batch, error)
}

// UpcomingWindowDays is how far ahead the dashboard looks for events.
const UpcomingWindowDays = 30

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	ClubStore    DashboardClubStore
	EventStore   DashboardEventStore
	RequestStore DashboardRequestStore
	EmailStore   DashboardEmailStore
	BatchStore   DashboardBatchStore
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	ClubCount       int
	UpcomingEvents  []event.Event
	PendingRequests int
	QueuedEmails    int
	FailedEmails    int
	OpenBatches     int // batches still in draft, reviewing or ready
}

// QueryGetDashboard aggregates the zone admin landing page. Each lookup
// degrades to a zero count on error so one broken store does not blank the
// whole page.
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps, now time.Time) (DashboardResult, error) {
	result := DashboardResult{}

	if clubs, err := deps.ClubStore.List(ctx); err == nil {
		result.ClubCount = len(clubs)
	}

	from := now.Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, UpcomingWindowDays)
	if events, err := deps.EventStore.ListByDateRange(ctx, from, to); err == nil {
		result.UpcomingEvents = events
	}

	if pending, err := deps.RequestStore.ListByStatus(ctx, eventrequest.StatusSubmitted); err == nil {
		result.PendingRequests = len(pending)
	}

	if queued, err := deps.EmailStore.ListByStatus(ctx, email.StatusQueued); err == nil {
		result.QueuedEmails = len(queued)
	}
	if failed, err := deps.EmailStore.ListByStatus(ctx, email.StatusFailed); err == nil {
		result.FailedEmails = len(failed)
	}

	if batches, err := deps.BatchStore.List(ctx); err == nil {
		for i := range batches {
			switch batches[i].Status {
			case importbatch.StatusDraft, importbatch.StatusReviewing, importbatch.StatusReady:
				result.OpenBatches++
			}
		}
	}

	return result, nil
}
