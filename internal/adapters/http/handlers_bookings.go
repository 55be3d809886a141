package web

import (
	"net/http"

	"zonehub/internal/adapters/storage"
	"zonehub/internal/application/orchestrators"
	"zonehub/internal/application/projections"
	bookingDomain "zonehub/internal/domain/booking"
)

// handleEquipment handles the zone equipment pool. Routes:
//
//	GET  /api/equipment               list
//	POST /api/equipment               add (admin)
//	GET  /api/equipment/:id           fetch
//	PUT  /api/equipment/:id           edit or retire (admin)
//	GET  /api/equipment/:id/handover  the booking chain, ?format=html for the report
func handleEquipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requireSession(w, r); !ok {
		return
	}

	parts := pathParts(r) // ["api", "equipment", :id?, sub?]
	var id, sub string
	if len(parts) > 2 {
		id = parts[2]
	}
	if len(parts) > 3 {
		sub = parts[3]
	}

	switch {
	case r.Method == "GET" && id == "":
		items, err := stores.EquipmentStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		if items == nil {
			items = []bookingDomain.Equipment{}
		}
		writeJSON(w, http.StatusOK, items)

	case r.Method == "GET" && sub == "handover":
		handleHandoverChain(w, r, id)

	case r.Method == "GET" && sub == "":
		eq, err := stores.EquipmentStore.GetByID(ctx, id)
		if err != nil {
			if err == storage.ErrNotFound {
				http.Error(w, "equipment not found", http.StatusNotFound)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, eq)

	case r.Method == "POST" && id == "":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var input struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		eq := bookingDomain.Equipment{
			ID:          generateID(),
			Name:        input.Name,
			Description: input.Description,
			Status:      bookingDomain.EquipmentAvailable,
			CreatedAt:   timeNow(),
		}
		if err := eq.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.EquipmentStore.Save(ctx, eq); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, eq)

	case r.Method == "PUT" && id != "" && sub == "":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		eq, err := stores.EquipmentStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "equipment not found", http.StatusNotFound)
			return
		}
		var input struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			Status      *string `json:"status"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if input.Name != nil {
			eq.Name = *input.Name
		}
		if input.Description != nil {
			eq.Description = *input.Description
		}
		if input.Status != nil {
			eq.Status = *input.Status
		}
		if err := eq.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.EquipmentStore.Save(ctx, eq); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, eq)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleHandoverChain serves the handover chain as JSON, or as a printable
// HTML report with ?format=html.
func handleHandoverChain(w http.ResponseWriter, r *http.Request, equipmentID string) {
	result, err := projections.QueryGetHandoverChain(r.Context(), equipmentID, projections.GetHandoverChainDeps{
		BookingStore:   stores.BookingStore,
		EquipmentStore: stores.EquipmentStore,
		ClubStore:      stores.ClubStore,
	})
	if err != nil {
		if err == storage.ErrNotFound {
			http.Error(w, "equipment not found", http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := projections.RenderHandoverReport(w, result); err != nil {
			internalError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleBookings handles equipment reservations. Routes:
//
//	GET  /api/bookings             list (?equipmentId= or ?clubId= filters)
//	POST /api/bookings             reserve equipment
//	GET  /api/bookings/:id         fetch
//	POST /api/bookings/:id/cancel  free the dates
func handleBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	parts := pathParts(r) // ["api", "bookings", :id?, action?]
	var id, action string
	if len(parts) > 2 {
		id = parts[2]
	}
	if len(parts) > 3 {
		action = parts[3]
	}

	bookDeps := orchestrators.BookEquipmentDeps{
		BookingStore:   stores.BookingStore,
		EquipmentStore: stores.EquipmentStore,
		GenerateID:     generateID,
		Now:            timeNow,
	}

	switch {
	case id == "" && r.Method == "GET":
		q := r.URL.Query()
		var bookings []bookingDomain.Booking
		var err error
		switch {
		case q.Get("equipmentId") != "":
			bookings, err = stores.BookingStore.ListByEquipment(ctx, q.Get("equipmentId"))
		case q.Get("clubId") != "":
			bookings, err = stores.BookingStore.ListByClub(ctx, q.Get("clubId"))
		default:
			bookings, err = stores.BookingStore.List(ctx)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		if bookings == nil {
			bookings = []bookingDomain.Booking{}
		}
		writeJSON(w, http.StatusOK, bookings)

	case id == "" && r.Method == "POST":
		var input struct {
			EquipmentID  string `json:"equipmentId"`
			ClubID       string `json:"clubId"`
			EventID      string `json:"eventId"`
			ContactName  string `json:"contactName"`
			ContactPhone string `json:"contactPhone"`
			StartDate    string `json:"startDate"`
			EndDate      string `json:"endDate"`
			Notes        string `json:"notes"`
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
		end, ok := parseDate(input.EndDate)
		if !ok {
			http.Error(w, "invalid endDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}

		b, err := orchestrators.ExecuteBookEquipment(ctx, orchestrators.BookEquipmentInput{
			EquipmentID:  input.EquipmentID,
			ClubID:       input.ClubID,
			EventID:      input.EventID,
			ContactName:  input.ContactName,
			ContactPhone: input.ContactPhone,
			StartDate:    start,
			EndDate:      end,
			Notes:        input.Notes,
		}, bookDeps)
		if err != nil {
			switch err {
			case orchestrators.ErrBookingConflict:
				http.Error(w, err.Error(), http.StatusConflict)
			case orchestrators.ErrEquipmentRetired:
				http.Error(w, err.Error(), http.StatusConflict)
			case storage.ErrNotFound:
				http.Error(w, "equipment not found", http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}
		writeJSON(w, http.StatusCreated, b)

	case action == "" && r.Method == "GET":
		b, err := stores.BookingStore.GetByID(ctx, id)
		if err != nil {
			if err == storage.ErrNotFound {
				http.Error(w, "booking not found", http.StatusNotFound)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)

	case action == "cancel" && r.Method == "POST":
		existing, err := stores.BookingStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "booking not found", http.StatusNotFound)
			return
		}
		if sess.Role == "secretary" && existing.ClubID != sess.ClubID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if sess.Role == "viewer" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		b, err := orchestrators.ExecuteCancelBooking(ctx, orchestrators.CancelBookingInput{BookingID: id}, bookDeps)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
