package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JeanBsh/LocaTrack/internal/models"
	"github.com/JeanBsh/LocaTrack/internal/profile"
	"github.com/JeanBsh/LocaTrack/internal/session"
	"github.com/JeanBsh/LocaTrack/internal/storage"
)

type ProfileHandler struct {
	svc     *profile.Service
	storage storage.Storage
}

func NewProfileHandler(svc *profile.Service, store storage.Storage) *ProfileHandler {
	return &ProfileHandler{svc: svc, storage: store}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context())
	if errors.Is(err, profile.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Upsert creates the profile on first save and overwrites the owner info on
// subsequent ones. Image URLs are managed separately.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerInfo models.OwnerInfo `json:"ownerInfo" validate:"required"`
	}
	if !decodeValid(w, r, &req) {
		return
	}

	p, err := h.svc.Upsert(r.Context(), req.OwnerInfo)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UploadImage stores a logo or signature image and records its URL on the
// profile. The {kind} route parameter selects which field.
func (h *ProfileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if kind != "logo" && kind != "signature" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "kind must be logo or signature"})
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil { // 8MB max
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
	path := fmt.Sprintf("profiles/%s/%s", userID, kind)
	contentType := header.Header.Get("Content-Type")
	if err := h.storage.Upload(r.Context(), path, file, header.Size, contentType); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	url, err := h.storage.PresignGet(r.Context(), path, 7*24*time.Hour)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	p, err := h.svc.SetImageURL(r.Context(), kind, url)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteImage clears a logo or signature URL. The stored object is removed
// best-effort; a storage failure does not block clearing the field.
func (h *ProfileHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if kind != "logo" && kind != "signature" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "kind must be logo or signature"})
		return
	}

	userID := session.UserIDFromContext(r.Context())
	path := fmt.Sprintf("profiles/%s/%s", userID, kind)
	if err := h.storage.Delete(r.Context(), path); err != nil {
		slog.Warn("failed to delete profile image object", "path", path, "error", err)
	}

	p, err := h.svc.SetImageURL(r.Context(), kind, "")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}
