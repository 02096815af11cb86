package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JeanBsh/LocaTrack/internal/export"
	"github.com/JeanBsh/LocaTrack/internal/models"
	"github.com/JeanBsh/LocaTrack/internal/queue"
	"github.com/JeanBsh/LocaTrack/internal/session"
	"github.com/JeanBsh/LocaTrack/internal/storage"
)

// ExportHandler manages background exports for batches too large to render
// inside one request.
type ExportHandler struct {
	store      *export.Store
	qc         *queue.Client
	storage    storage.Storage
	maxTenants int
}

func NewExportHandler(store *export.Store, qc *queue.Client, storageSvc storage.Storage, maxTenants int) *ExportHandler {
	return &ExportHandler{store: store, qc: qc, storage: storageSvc, maxTenants: maxTenants}
}

func (h *ExportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body exportRequest
	if !decodeValid(w, r, &body) {
		return
	}
	if !body.Receipt && !body.Certificate && !body.Contract {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "select at least one document type"})
		return
	}
	if len(body.TenantIDs) > h.maxTenants {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("export limited to %d tenants per run", h.maxTenants)})
		return
	}
	if body.Receipt {
		if _, err := time.Parse("2006-01", body.Period); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "period must be formatted yyyy-MM"})
			return
		}
	}

	req := &export.Request{Receipt: body.Receipt, Certificate: body.Certificate, Contract: body.Contract}
	userID := session.UserIDFromContext(r.Context())

	job, err := h.store.Create(r.Context(), userID, body.TenantIDs, req.Kinds(), body.Period)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if err := h.qc.EnqueueBulkExport(queue.BulkExportPayload{
		ExportID: job.ID.String(),
		UserID:   userID.String(),
	}); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, job)
}

func (h *ExportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid export ID"})
		return
	}

	userID := session.UserIDFromContext(r.Context())
	job, err := h.store.GetByID(r.Context(), userID, id)
	if errors.Is(err, export.ErrJobNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "export not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	resp := map[string]interface{}{"export": job}
	if job.Status == models.ExportStatusDone && job.ObjectKey != "" {
		url, err := h.storage.PresignGet(r.Context(), job.ObjectKey, time.Hour)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		resp["downloadUrl"] = url
	}
	writeJSON(w, http.StatusOK, resp)
}
