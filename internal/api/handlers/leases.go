package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JeanBsh/LocaTrack/internal/lease"
	"github.com/JeanBsh/LocaTrack/internal/models"
)

type LeaseHandler struct {
	svc *lease.Service
}

func NewLeaseHandler(svc *lease.Service) *LeaseHandler {
	return &LeaseHandler{svc: svc}
}

func (h *LeaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req lease.CreateRequest
	if !decodeValid(w, r, &req) {
		return
	}

	l, err := h.svc.Create(r.Context(), req)
	if errors.Is(err, lease.ErrBadReference) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *LeaseHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter lease.ListFilter
	if v := r.URL.Query().Get("tenantId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenantId filter"})
			return
		}
		filter.TenantID = id
	}
	if v := r.URL.Query().Get("propertyId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid propertyId filter"})
			return
		}
		filter.PropertyID = id
	}

	leases, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if leases == nil {
		leases = []models.Lease{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leases": leases, "count": len(leases)})
}

func (h *LeaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lease ID"})
		return
	}

	l, err := h.svc.GetByID(r.Context(), id)
	if errors.Is(err, lease.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "lease not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *LeaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lease ID"})
		return
	}

	var req lease.CreateRequest
	if !decodeValid(w, r, &req) {
		return
	}

	l, err := h.svc.Update(r.Context(), id, req)
	if errors.Is(err, lease.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "lease not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *LeaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lease ID"})
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, lease.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "lease not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
