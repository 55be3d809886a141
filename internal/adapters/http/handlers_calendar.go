package web

import (
	"net/http"

	ical "github.com/arran4/golang-ical"
)

// handleCalendarFeed handles GET /api/calendar.ics: the zone calendar as an
// ICS feed that clubs can subscribe to. No auth: calendar apps cannot send
// cookies.
func handleCalendarFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	events, err := stores.EventStore.List(ctx)
	if err != nil {
		internalError(w, err)
		return
	}

	clubNames := map[string]string{}
	if clubs, err := stores.ClubStore.List(ctx); err == nil {
		for _, c := range clubs {
			clubNames[c.ID] = c.Name
		}
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//zonehub//calendar//EN")
	cal.SetName("Zone Calendar")

	for _, e := range events {
		ve := cal.AddEvent(e.ID + "@zonehub")
		ve.SetSummary(e.Name)
		ve.SetDtStampTime(e.CreatedAt)
		// All-day events: DTEND is exclusive, so the feed adds a day.
		ve.SetAllDayStartAt(e.StartDate)
		end := e.StartDate
		if !e.EndDate.IsZero() {
			end = e.EndDate
		}
		ve.SetAllDayEndAt(end.AddDate(0, 0, 1))
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		description := e.Notes
		if name := clubNames[e.ClubID]; name != "" {
			if description != "" {
				description = name + ": " + description
			} else {
				description = name
			}
		}
		if description != "" {
			ve.SetDescription(description)
		}
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Cache-Control", "max-age=300")
	_ = cal.SerializeTo(w)
}
