package web

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"zonehub/internal/adapters/storage"
	"zonehub/internal/application/listutil"
	"zonehub/internal/application/orchestrators"
	eventDomain "zonehub/internal/domain/event"
)

// handleEvents handles GET/POST /api/events and GET/PUT/DELETE /api/events/:id.
// GET filters: ?clubId=..., ?from=YYYY-MM-DD&to=YYYY-MM-DD, ?batchId=...
// Lists sort by start date and paginate with ?page= and ?per_page=.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	parts := pathParts(r) // ["api", "events", :id?]
	id := ""
	if len(parts) > 2 {
		id = parts[2]
	}

	switch {
	case r.Method == "GET" && id == "":
		q := r.URL.Query()
		var events []eventDomain.Event
		var err error
		switch {
		case q.Get("clubId") != "":
			events, err = stores.EventStore.ListByClub(ctx, q.Get("clubId"))
		case q.Get("batchId") != "":
			events, err = stores.EventStore.ListByImportBatch(ctx, q.Get("batchId"))
		case q.Get("from") != "" && q.Get("to") != "":
			var from, to time.Time
			var ok1, ok2 bool
			from, ok1 = parseDate(q.Get("from"))
			to, ok2 = parseDate(q.Get("to"))
			if !ok1 || !ok2 {
				http.Error(w, "invalid date format (use YYYY-MM-DD)", http.StatusBadRequest)
				return
			}
			events, err = stores.EventStore.ListByDateRange(ctx, from, to)
		default:
			events, err = stores.EventStore.List(ctx)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		if events == nil {
			events = []eventDomain.Event{}
		}
		sort.Slice(events, func(i, j int) bool {
			return events[i].StartDate.Before(events[j].StartDate)
		})
		page, info := listutil.Paginate(events, listutil.ParsePageParams(q))
		w.Header().Set("X-Total-Count", strconv.Itoa(info.Total))
		w.Header().Set("X-Total-Pages", strconv.Itoa(info.TotalPages))
		writeJSON(w, http.StatusOK, page)

	case r.Method == "GET":
		e, err := stores.EventStore.GetByID(ctx, id)
		if err != nil {
			if err == storage.ErrNotFound {
				http.Error(w, "event not found", http.StatusNotFound)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)

	case r.Method == "POST" && id == "":
		var input struct {
			ClubID          string `json:"clubId"`
			ZoneID          string `json:"zoneId"`
			Name            string `json:"name"`
			EventType       string `json:"eventType"`
			Location        string `json:"location"`
			Notes           string `json:"notes"`
			CoordinatorName string `json:"coordinatorName"`
			StartDate       string `json:"startDate"`
			EndDate         string `json:"endDate"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		// Secretaries only create events for their own club.
		if sess.Role == "secretary" && input.ClubID != sess.ClubID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if sess.Role == "viewer" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		start, ok := parseDate(input.StartDate)
		if !ok {
			http.Error(w, "invalid startDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		var end time.Time
		if input.EndDate != "" {
			end, ok = parseDate(input.EndDate)
			if !ok {
				http.Error(w, "invalid endDate format (use YYYY-MM-DD)", http.StatusBadRequest)
				return
			}
		}

		e, err := orchestrators.ExecuteCreateEvent(ctx, orchestrators.CreateEventInput{
			ClubID:          input.ClubID,
			ZoneID:          input.ZoneID,
			Name:            input.Name,
			EventType:       input.EventType,
			Location:        input.Location,
			Notes:           input.Notes,
			CoordinatorName: input.CoordinatorName,
			StartDate:       start,
			EndDate:         end,
			CreatedBy:       sess.AccountID,
		}, manageEventDeps())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, e)

	case r.Method == "PUT" && id != "":
		if sess.Role == "viewer" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		existing, err := stores.EventStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		if sess.Role == "secretary" && existing.ClubID != sess.ClubID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var input struct {
			Name            *string `json:"name"`
			EventType       *string `json:"eventType"`
			Location        *string `json:"location"`
			Notes           *string `json:"notes"`
			CoordinatorName *string `json:"coordinatorName"`
			StartDate       *string `json:"startDate"`
			EndDate         *string `json:"endDate"`
			ClubID          *string `json:"clubId"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		update := orchestrators.UpdateEventInput{
			EventID:         id,
			Name:            input.Name,
			EventType:       input.EventType,
			Location:        input.Location,
			Notes:           input.Notes,
			CoordinatorName: input.CoordinatorName,
			ClubID:          input.ClubID,
		}
		if input.StartDate != nil {
			start, ok := parseDate(*input.StartDate)
			if !ok {
				http.Error(w, "invalid startDate format (use YYYY-MM-DD)", http.StatusBadRequest)
				return
			}
			update.StartDate = &start
		}
		if input.EndDate != nil {
			var end time.Time
			if *input.EndDate != "" {
				var ok bool
				end, ok = parseDate(*input.EndDate)
				if !ok {
					http.Error(w, "invalid endDate format (use YYYY-MM-DD)", http.StatusBadRequest)
					return
				}
			}
			update.EndDate = &end
		}

		e, err := orchestrators.ExecuteUpdateEvent(ctx, update, manageEventDeps())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, e)

	case r.Method == "DELETE" && id != "":
		if sess.Role == "viewer" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		existing, err := stores.EventStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		if sess.Role == "secretary" && existing.ClubID != sess.ClubID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if err := orchestrators.ExecuteDeleteEvent(ctx, orchestrators.DeleteEventInput{EventID: id}, manageEventDeps()); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func manageEventDeps() orchestrators.ManageEventDeps {
	return orchestrators.ManageEventDeps{
		EventStore: stores.EventStore,
		GenerateID: generateID,
		Now:        timeNow,
	}
}
