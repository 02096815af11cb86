package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProxyImageRequiresURLParameter(t *testing.T) {
	h := NewProxyImageHandler(time.Second)
	rec := httptest.NewRecorder()

	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/proxy-image", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Missing URL parameter\n", rec.Body.String())
}

func TestProxyImageMirrorsUpstream(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer upstream.Close()

	h := NewProxyImageHandler(time.Second)
	rec := httptest.NewRecorder()
	target := "/api/proxy-image?url=" + url.QueryEscape(upstream.URL+"/logo.png")
	h.Get(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))
	require.Equal(t, payload, rec.Body.Bytes())
}

func TestProxyImageDefaultsContentType(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Suppress the Content-Type header entirely, sniffing included.
		w.Header()["Content-Type"] = nil
		w.Write([]byte("raw bytes"))
	}))
	defer upstream.Close()

	h := NewProxyImageHandler(time.Second)
	rec := httptest.NewRecorder()
	target := "/api/proxy-image?url=" + url.QueryEscape(upstream.URL+"/blob")
	h.Get(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
}

func TestProxyImageMirrorsUpstreamErrorStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	h := NewProxyImageHandler(time.Second)
	rec := httptest.NewRecorder()
	target := "/api/proxy-image?url=" + url.QueryEscape(upstream.URL+"/gone.png")
	h.Get(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Failed to fetch image")
}

func TestProxyImageUnreachableHost(t *testing.T) {
	h := NewProxyImageHandler(500 * time.Millisecond)
	rec := httptest.NewRecorder()
	target := "/api/proxy-image?url=" + url.QueryEscape("http://127.0.0.1:1/logo.png")
	h.Get(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Failed to fetch image\n", rec.Body.String())
}
