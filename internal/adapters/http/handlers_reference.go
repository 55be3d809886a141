package web

import (
	"net/http"

	"zonehub/internal/adapters/storage"
	clubDomain "zonehub/internal/domain/club"
	eventTypeDomain "zonehub/internal/domain/eventtype"
	zoneDomain "zonehub/internal/domain/zone"
)

// handleZones handles GET/POST /api/zones and GET/PUT/DELETE /api/zones/:id.
func handleZones(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requireSession(w, r); !ok {
		return
	}

	parts := pathParts(r) // ["api", "zones", :id?]
	id := ""
	if len(parts) > 2 {
		id = parts[2]
	}

	switch {
	case r.Method == "GET" && id == "":
		zones, err := stores.ZoneStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		if zones == nil {
			zones = []zoneDomain.Zone{}
		}
		writeJSON(w, http.StatusOK, zones)

	case r.Method == "GET":
		z, err := stores.ZoneStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "zone not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, z)

	case r.Method == "POST" && id == "":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var input struct {
			Name           string `json:"name"`
			SecretaryName  string `json:"secretaryName"`
			SecretaryEmail string `json:"secretaryEmail"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		z := zoneDomain.Zone{
			ID:             generateID(),
			Name:           input.Name,
			SecretaryName:  input.SecretaryName,
			SecretaryEmail: input.SecretaryEmail,
			CreatedAt:      timeNow(),
		}
		if err := z.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.ZoneStore.Save(ctx, z); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, z)

	case r.Method == "PUT" && id != "":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		z, err := stores.ZoneStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "zone not found", http.StatusNotFound)
			return
		}
		var input struct {
			Name           *string `json:"name"`
			SecretaryName  *string `json:"secretaryName"`
			SecretaryEmail *string `json:"secretaryEmail"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if input.Name != nil {
			z.Name = *input.Name
		}
		if input.SecretaryName != nil {
			z.SecretaryName = *input.SecretaryName
		}
		if input.SecretaryEmail != nil {
			z.SecretaryEmail = *input.SecretaryEmail
		}
		if err := z.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.ZoneStore.Save(ctx, z); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, z)

	case r.Method == "DELETE" && id != "":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		if err := stores.ZoneStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleClubs handles GET/POST /api/clubs and GET/PUT/DELETE /api/clubs/:id.
// GET /api/clubs?zoneId=... filters by zone.
func handleClubs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requireSession(w, r); !ok {
		return
	}

	parts := pathParts(r)
	id := ""
	if len(parts) > 2 {
		id = parts[2]
	}

	switch {
	case r.Method == "GET" && id == "":
		var clubs []clubDomain.Club
		var err error
		if zoneID := r.URL.Query().Get("zoneId"); zoneID != "" {
			clubs, err = stores.ClubStore.ListByZone(ctx, zoneID)
		} else {
			clubs, err = stores.ClubStore.List(ctx)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		if clubs == nil {
			clubs = []clubDomain.Club{}
		}
		writeJSON(w, http.StatusOK, clubs)

	case r.Method == "GET":
		c, err := stores.ClubStore.GetByID(ctx, id)
		if err != nil {
			if err == storage.ErrNotFound {
				http.Error(w, "club not found", http.StatusNotFound)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)

	case r.Method == "POST" && id == "":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var input struct {
			ZoneID       string `json:"zoneId"`
			Name         string `json:"name"`
			ContactEmail string `json:"contactEmail"`
			Address      string `json:"address"`
			Status       string `json:"status"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if input.Status == "" {
			input.Status = clubDomain.StatusActive
		}
		c := clubDomain.Club{
			ID:           generateID(),
			ZoneID:       input.ZoneID,
			Name:         input.Name,
			ContactEmail: input.ContactEmail,
			Address:      input.Address,
			Status:       input.Status,
			CreatedAt:    timeNow(),
		}
		if err := c.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.ClubStore.Save(ctx, c); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)

	case r.Method == "PUT" && id != "":
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		// Admins edit any club; secretaries only their own.
		if sess.Role != "admin" && !(sess.Role == "secretary" && sess.ClubID == id) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		c, err := stores.ClubStore.GetByID(ctx, id)
		if err != nil {
			http.Error(w, "club not found", http.StatusNotFound)
			return
		}
		var input struct {
			ZoneID       *string `json:"zoneId"`
			Name         *string `json:"name"`
			ContactEmail *string `json:"contactEmail"`
			Address      *string `json:"address"`
			Status       *string `json:"status"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if input.ZoneID != nil {
			c.ZoneID = *input.ZoneID
		}
		if input.Name != nil {
			c.Name = *input.Name
		}
		if input.ContactEmail != nil {
			c.ContactEmail = *input.ContactEmail
		}
		if input.Address != nil {
			c.Address = *input.Address
		}
		if input.Status != nil {
			c.Status = *input.Status
		}
		if err := c.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.ClubStore.Save(ctx, c); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)

	case r.Method == "DELETE" && id != "":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		if err := stores.ClubStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleEventTypes handles GET/POST /api/event-types and DELETE /api/event-types/:id.
func handleEventTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requireSession(w, r); !ok {
		return
	}

	parts := pathParts(r)
	id := ""
	if len(parts) > 2 {
		id = parts[2]
	}

	switch {
	case r.Method == "GET":
		types, err := stores.EventTypeStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		if types == nil {
			types = []eventTypeDomain.EventType{}
		}
		writeJSON(w, http.StatusOK, types)

	case r.Method == "POST" && id == "":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var input struct {
			Name string `json:"name"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		t := eventTypeDomain.EventType{ID: generateID(), Name: input.Name}
		if err := t.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.EventTypeStore.Save(ctx, t); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)

	case r.Method == "DELETE" && id != "":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		if err := stores.EventTypeStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
