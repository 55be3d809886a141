package web

import "net/http"

// registerRoutes wires every API endpoint onto the mux. Auth is enforced
// inside the handlers so unauthenticated JSON requests get a clean 401.
func registerRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/api/me", handleMe)
	mux.HandleFunc("/api/admin/accounts", handleAccounts)

	// Reference data
	mux.HandleFunc("/api/zones", handleZones)
	mux.HandleFunc("/api/zones/", handleZones)
	mux.HandleFunc("/api/clubs", handleClubs)
	mux.HandleFunc("/api/clubs/", handleClubs)
	mux.HandleFunc("/api/event-types", handleEventTypes)
	mux.HandleFunc("/api/event-types/", handleEventTypes)

	// Calendar events
	mux.HandleFunc("/api/events", handleEvents)
	mux.HandleFunc("/api/events/", handleEvents)
	mux.HandleFunc("/api/calendar.ics", handleCalendarFeed)

	// Event requests
	mux.HandleFunc("/api/event-requests", handleEventRequests)
	mux.HandleFunc("/api/event-requests/", handleEventRequests)

	// Calendar import pipeline (admin)
	mux.HandleFunc("/api/admin/import-batches", handleImportBatches)
	mux.HandleFunc("/api/admin/import-batches/", handleImportBatches)

	// Email (admin)
	mux.HandleFunc("/api/admin/emails", handleEmails)
	mux.HandleFunc("/api/admin/emails/", handleEmails)
	mux.HandleFunc("/api/admin/email-templates", handleEmailTemplates)
	mux.HandleFunc("/api/admin/email-templates/", handleEmailTemplates)
	mux.HandleFunc("/api/admin/outbox", handleAdminOutbox)
	mux.HandleFunc("/api/admin/outbox/", handleAdminOutbox)

	// Equipment bookings
	mux.HandleFunc("/api/equipment", handleEquipment)
	mux.HandleFunc("/api/equipment/", handleEquipment)
	mux.HandleFunc("/api/bookings", handleBookings)
	mux.HandleFunc("/api/bookings/", handleBookings)

	// Dashboard
	mux.HandleFunc("/api/dashboard", handleDashboard)
}
