package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"zonehub/internal/adapters/storage"
	"zonehub/internal/application/orchestrators"
	importBatchDomain "zonehub/internal/domain/importbatch"
)

// maxUploadBytes bounds calendar document uploads (10 MB).
const maxUploadBytes = 10 << 20

// handleImportBatches handles the calendar import pipeline under
// /api/admin/import-batches. Routes:
//
//	GET    /api/admin/import-batches                                 list
//	POST   /api/admin/import-batches                                 upload a document
//	GET    /api/admin/import-batches/:id                             fetch for review
//	DELETE /api/admin/import-batches/:id                             discard
//	POST   /api/admin/import-batches/:id/execute                     import reviewed events
//	POST   /api/admin/import-batches/:id/rollback                    delete imported events
//	PUT    /api/admin/import-batches/:id/events/:eventId             edit a reviewed event
//	DELETE /api/admin/import-batches/:id/events/:eventId             drop a reviewed event
//	POST   /api/admin/import-batches/:id/events/:eventId/assign-club resolve a match by hand
//	GET    /api/admin/import-batches/:id/events/:eventId/suggestions ranked club candidates
func handleImportBatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	parts := pathParts(r) // ["api", "admin", "import-batches", :id?, ...]
	var batchID, sub, eventID, eventSub string
	if len(parts) > 3 {
		batchID = parts[3]
	}
	if len(parts) > 4 {
		sub = parts[4]
	}
	if len(parts) > 5 {
		eventID = parts[5]
	}
	if len(parts) > 6 {
		eventSub = parts[6]
	}

	reviewDeps := orchestrators.ReviewImportBatchDeps{
		BatchStore: stores.ImportBatchStore,
		ClubStore:  stores.ClubStore,
		Now:        timeNow,
	}

	switch {
	case batchID == "" && r.Method == "GET":
		batches, err := stores.ImportBatchStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		if batches == nil {
			batches = []importBatchDomain.Batch{}
		}
		writeJSON(w, http.StatusOK, batches)

	case batchID == "" && r.Method == "POST":
		handleUploadImportBatch(w, r, sess.AccountID)

	case sub == "" && r.Method == "GET":
		b, err := stores.ImportBatchStore.GetByID(ctx, batchID)
		if err != nil {
			if err == storage.ErrNotFound {
				http.Error(w, "batch not found", http.StatusNotFound)
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)

	case sub == "" && r.Method == "DELETE":
		err := orchestrators.ExecuteDeleteImportBatch(ctx, orchestrators.DeleteImportBatchInput{BatchID: batchID}, reviewDeps)
		if err != nil {
			importBatchError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case sub == "execute" && r.Method == "POST":
		b, err := orchestrators.ExecuteImport(ctx, orchestrators.ExecuteImportInput{
			BatchID:    batchID,
			ExecutedBy: sess.AccountID,
		}, orchestrators.ExecuteImportDeps{
			BatchStore: stores.ImportBatchStore,
			EventStore: stores.EventStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			importBatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)

	case sub == "rollback" && r.Method == "POST":
		b, err := orchestrators.ExecuteRollbackImport(ctx, orchestrators.RollbackImportInput{
			BatchID:      batchID,
			RolledBackBy: sess.AccountID,
		}, orchestrators.RollbackImportDeps{
			BatchStore: stores.ImportBatchStore,
			EventStore: stores.EventStore,
			Now:        timeNow,
		})
		if err != nil {
			importBatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)

	case sub == "events" && eventID != "" && eventSub == "" && r.Method == "PUT":
		handleUpdateImportedEvent(w, r, batchID, eventID, reviewDeps)

	case sub == "events" && eventID != "" && eventSub == "" && r.Method == "DELETE":
		b, err := orchestrators.ExecuteDeleteImportedEvent(ctx, orchestrators.DeleteImportedEventInput{
			BatchID: batchID,
			EventID: eventID,
		}, reviewDeps)
		if err != nil {
			importBatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)

	case sub == "events" && eventSub == "assign-club" && r.Method == "POST":
		var input struct {
			ClubID   string `json:"clubId"`
			ClubName string `json:"clubName"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		b, err := orchestrators.ExecuteAssignClub(ctx, orchestrators.AssignClubInput{
			BatchID:  batchID,
			EventID:  eventID,
			ClubID:   input.ClubID,
			ClubName: input.ClubName,
		}, reviewDeps)
		if err != nil {
			importBatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)

	case sub == "events" && eventSub == "suggestions" && r.Method == "GET":
		limit := 0
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				limit = n
			}
		}
		suggestions, err := orchestrators.ExecuteSuggestClubs(ctx, orchestrators.SuggestClubsInput{
			BatchID: batchID,
			EventID: eventID,
			Limit:   limit,
		}, reviewDeps)
		if err != nil {
			importBatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, suggestions)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleUploadImportBatch accepts a multipart calendar document upload.
func handleUploadImportBatch(w http.ResponseWriter, r *http.Request, accountID string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		internalError(w, err)
		return
	}

	b, err := orchestrators.ExecuteCreateImportBatch(r.Context(), orchestrators.CreateImportBatchInput{
		FileName:  header.Filename,
		Data:      data,
		CreatedBy: accountID,
	}, orchestrators.CreateImportBatchDeps{
		BatchStore: stores.ImportBatchStore,
		ClubStore:  stores.ClubStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// handleUpdateImportedEvent applies review edits to one event in a batch.
func handleUpdateImportedEvent(w http.ResponseWriter, r *http.Request, batchID, eventID string, deps orchestrators.ReviewImportBatchDeps) {
	var input struct {
		Name      *string `json:"name"`
		EventType *string `json:"eventType"`
		Location  *string `json:"location"`
		Notes     *string `json:"notes"`
		StartDate *string `json:"startDate"`
		EndDate   *string `json:"endDate"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	update := orchestrators.UpdateImportedEventInput{
		BatchID:   batchID,
		EventID:   eventID,
		Name:      input.Name,
		EventType: input.EventType,
		Location:  input.Location,
		Notes:     input.Notes,
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
		end, ok := parseDate(*input.EndDate)
		if !ok {
			http.Error(w, "invalid endDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		update.EndDate = &end
	}

	b, err := orchestrators.ExecuteUpdateImportedEvent(r.Context(), update, deps)
	if err != nil {
		importBatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// importBatchError maps import pipeline errors onto HTTP statuses.
func importBatchError(w http.ResponseWriter, err error) {
	switch {
	case err == storage.ErrNotFound:
		http.Error(w, "batch not found", http.StatusNotFound)
	case errors.Is(err, importBatchDomain.ErrEventNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, importBatchDomain.ErrBatchNotReviewable),
		errors.Is(err, importBatchDomain.ErrUnmatchedEvents),
		errors.Is(err, importBatchDomain.ErrInvalidTransition),
		errors.Is(err, importBatchDomain.ErrNotRollbackable),
		errors.Is(err, importBatchDomain.ErrNoImportedEvents):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		internalError(w, err)
	}
}
