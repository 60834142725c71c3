package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pacahon/slideshare/library/log"
	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	var gotRequestID string
	download := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = log.RequestID(r.Context())
		w.WriteHeader(http.StatusAccepted)
	})
	router := NewRouter(download)

	t.Run("download route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/slideshare/download", nil))
		assert.Equal(t, http.StatusAccepted, rec.Code)

		id := rec.Header().Get(requestIDHeader)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, gotRequestID)
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodPost, "/api/slideshare/download", nil)
		req.Header.Set(requestIDHeader, id)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, id, rec.Header().Get(requestIDHeader))
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/slideshare/download", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("lifecycle", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_ah/start", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
