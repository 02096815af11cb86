package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JeanBsh/LocaTrack/internal/models"
	"github.com/JeanBsh/LocaTrack/internal/property"
	"github.com/JeanBsh/LocaTrack/internal/session"
	"github.com/JeanBsh/LocaTrack/internal/storage"
)

type PropertyHandler struct {
	svc     *property.Service
	storage storage.Storage
}

func NewPropertyHandler(svc *property.Service, store storage.Storage) *PropertyHandler {
	return &PropertyHandler{svc: svc, storage: store}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req property.CreateRequest
	if !decodeValid(w, r, &req) {
		return
	}

	p, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	properties, err := h.svc.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if properties == nil {
		properties = []models.Property{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"properties": properties, "count": len(properties)})
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property ID"})
		return
	}

	p, err := h.svc.GetByID(r.Context(), id)
	if errors.Is(err, property.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property ID"})
		return
	}

	var req property.CreateRequest
	if !decodeValid(w, r, &req) {
		return
	}

	p, err := h.svc.Update(r.Context(), id, req)
	if errors.Is(err, property.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property ID"})
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=DISPONIBLE OCCUPE TRAVAUX"`
	}
	if !decodeValid(w, r, &req) {
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, property.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property ID"})
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, property.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AttachDocument stores an uploaded file and appends its reference to the
// property record.
func (h *PropertyHandler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property ID"})
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB max
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file required"})
		return
	}
	defer file.Close()

	userID := session.UserIDFromContext(r.Context())
	contentType := header.Header.Get("Content-Type")
	path := fmt.Sprintf("properties/%s/%s/%s", userID, id, header.Filename)
	if err := h.storage.Upload(r.Context(), path, file, header.Size, contentType); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	url, err := h.storage.PresignGet(r.Context(), path, 7*24*time.Hour)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	p, err := h.svc.AttachDocument(r.Context(), id, models.PropertyDocument{
		URL:  url,
		Name: header.Filename,
		Type: contentType,
	})
	if errors.Is(err, property.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PropertyHandler) DetachDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property ID"})
		return
	}

	var req struct {
		URL string `json:"url" validate:"required"`
	}
	if !decodeValid(w, r, &req) {
		return
	}

	p, err := h.svc.DetachDocument(r.Context(), id, req.URL)
	if errors.Is(err, property.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}
