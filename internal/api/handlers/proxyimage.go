package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ProxyImageHandler relays a remote image through this origin so document
// generation can inline images whose hosts do not allow cross-origin reads.
type ProxyImageHandler struct {
	client *http.Client
}

func NewProxyImageHandler(timeout time.Duration) *ProxyImageHandler {
	return &ProxyImageHandler{client: &http.Client{Timeout: timeout}}
}

func (h *ProxyImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		http.Error(w, "Missing URL parameter", http.StatusBadRequest)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		http.Error(w, "Invalid URL parameter", http.StatusBadRequest)
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		slog.Warn("image relay fetch failed", "url", target, "error", err)
		http.Error(w, "Failed to fetch image", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		http.Error(w, "Failed to fetch image: "+resp.Status, resp.StatusCode)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.Warn("image relay copy interrupted", "url", target, "error", err)
	}
}
