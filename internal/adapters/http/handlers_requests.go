package web

import (
	"errors"
	"net/http"
	"time"

	"zonehub/internal/adapters/storage"
	"zonehub/internal/application/orchestrators"
	eventRequestDomain "zonehub/internal/domain/eventrequest"
)

// handleEventRequests handles the club event request workflow. Routes:
//
//	GET  /api/event-requests              list (admins all, secretaries own club)
//	POST /api/event-requests              submit an application
//	GET  /api/event-requests/:id          fetch
//	POST /api/event-requests/:id/approve  create the calendar event (admin)
//	POST /api/event-requests/:id/reject   record a reason (admin)
func handleEventRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	parts := pathParts(r) // ["api", "event-requests", :id?, action?]
	var id, action string
	if len(parts) > 2 {
		id = parts[2]
	}
	if len(parts) > 3 {
		action = parts[3]
	}

	decideDeps := orchestrators.DecideEventRequestDeps{
		RequestStore: stores.EventRequestStore,
		EventStore:   stores.EventStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}

	switch {
	case id == "" && r.Method == "GET":
		var requests []eventRequestDomain.Request
		var err error
		if sess.Role == "secretary" {
			requests, err = stores.EventRequestStore.ListByClub(ctx, sess.ClubID)
		} else if status := r.URL.Query().Get("status"); status != "" {
			requests, err = stores.EventRequestStore.ListByStatus(ctx, status)
		} else {
			requests, err = stores.EventRequestStore.List(ctx)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		if requests == nil {
			requests = []eventRequestDomain.Request{}
		}
		writeJSON(w, http.StatusOK, requests)

	case id == "" && r.Method == "POST":
		var input struct {
			ClubID          string `json:"clubId"`
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
		if sess.Role == "secretary" {
			input.ClubID = sess.ClubID
		} else if sess.Role == "viewer" {
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

		req, err := orchestrators.ExecuteSubmitEventRequest(ctx, orchestrators.SubmitEventRequestInput{
			ClubID:          input.ClubID,
			Name:            input.Name,
			EventType:       input.EventType,
			Location:        input.Location,
			Notes:           input.Notes,
			CoordinatorName: input.CoordinatorName,
			StartDate:       start,
			EndDate:         end,
			SubmittedBy:     sess.AccountID,
		}, orchestrators.SubmitEventRequestDeps{
			RequestStore: stores.EventRequestStore,
			GenerateID:   generateID,
			Now:          timeNow,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, req)

	case action == "" && r.Method == "GET":
		req, err := stores.EventRequestStore.GetByID(ctx, id)
		if err != nil {
			if err == storage.ErrNotFound {
				http.Error(w, "request not found", http.StatusNotFound)
				return
			}
			internalError(w, err)
			return
		}
		if sess.Role == "secretary" && req.ClubID != sess.ClubID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, req)

	case action == "approve" && r.Method == "POST":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		req, err := orchestrators.ExecuteApproveEventRequest(ctx, orchestrators.DecideEventRequestInput{
			RequestID: id,
			DecidedBy: sess.AccountID,
		}, decideDeps)
		if err != nil {
			eventRequestError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, req)

	case action == "reject" && r.Method == "POST":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var input struct {
			Reason string `json:"reason"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		req, err := orchestrators.ExecuteRejectEventRequest(ctx, orchestrators.DecideEventRequestInput{
			RequestID: id,
			DecidedBy: sess.AccountID,
			Reason:    input.Reason,
		}, decideDeps)
		if err != nil {
			eventRequestError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, req)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// eventRequestError maps request workflow errors onto HTTP statuses.
func eventRequestError(w http.ResponseWriter, err error) {
	switch {
	case err == storage.ErrNotFound:
		http.Error(w, "request not found", http.StatusNotFound)
	case errors.Is(err, eventRequestDomain.ErrNotSubmitted),
		errors.Is(err, eventRequestDomain.ErrAlreadyClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
