package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingInvalidator struct {
	calls int
}

func (r *recordingInvalidator) Invalidate(ctx context.Context) { r.calls++ }

func TestInvalidateStatsOnSuccessfulWrite(t *testing.T) {
	inv := &recordingInvalidator{}
	handler := invalidateStats(inv)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tenants", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 1, inv.calls)
}

func TestInvalidateStatsSkipsReads(t *testing.T) {
	inv := &recordingInvalidator{}
	handler := invalidateStats(inv)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tenants", nil))

	require.Equal(t, 0, inv.calls)
}

func TestInvalidateStatsSkipsFailedWrites(t *testing.T) {
	inv := &recordingInvalidator{}
	handler := invalidateStats(inv)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tenants", nil))

	require.Equal(t, 0, inv.calls)
}
