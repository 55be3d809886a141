package web

import (
	"net/http"

	"zonehub/internal/application/projections"
)

// handleDashboard handles GET /api/dashboard: the admin landing page counts.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{
		ClubStore:    stores.ClubStore,
		EventStore:   stores.EventStore,
		RequestStore: stores.EventRequestStore,
		EmailStore:   stores.EmailStore,
		BatchStore:   stores.ImportBatchStore,
	}, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
