package imaging

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDataURIEmptyURLMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer relay.Close()

	enc := NewEncoder(relay.URL, time.Second)
	require.Equal(t, "", enc.DataURI(context.Background(), ""))
	require.Equal(t, int32(0), calls.Load())
}

func TestDataURIThroughRelay(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/proxy-image", r.URL.Path)
		require.Equal(t, "https://img.example/logo.png", r.URL.Query().Get("url"))
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer relay.Close()

	enc := NewEncoder(relay.URL, time.Second)
	uri := enc.DataURI(context.Background(), "https://img.example/logo.png")
	require.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(payload), uri)
}

func TestDataURIFallsBackToDirectFetch(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream gone", http.StatusNotFound)
	}))
	defer relay.Close()

	payload := []byte("jpeg-bytes")
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(payload)
	}))
	defer origin.Close()

	enc := NewEncoder(relay.URL, time.Second)
	uri := enc.DataURI(context.Background(), origin.URL+"/photo.jpg")
	require.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(payload), uri)
}

func TestDataURIEmptyWhenBothAttemptsFail(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer relay.Close()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer origin.Close()

	enc := NewEncoder(relay.URL, time.Second)
	require.Equal(t, "", enc.DataURI(context.Background(), origin.URL+"/missing.png"))
}
