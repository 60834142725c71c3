package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
	"github.com/pacahon/slideshare/library/log"
	"go.opencensus.io/plugin/ochttp"
)

const requestIDHeader = "X-Request-Id"

// NewRouter mounts the download endpoints and the App Engine lifecycle hooks.
func NewRouter(slideshare http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(middleware.Recoverer)

	r.Get("/_ah/start", func(w http.ResponseWriter, r *http.Request) {
		log.Infof(r.Context(), "START")
	})
	r.Get("/_ah/stop", func(w http.ResponseWriter, r *http.Request) {
		log.Infof(r.Context(), "STOP")
	})
	r.Method(http.MethodPost, "/api/slideshare/download", slideshare)

	return &ochttp.Handler{Handler: r}
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := log.WithRequestID(r.Context(), id)
		defer timeTrack(ctx, time.Now(), r.RequestURI)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func timeTrack(ctx context.Context, start time.Time, name string) {
	elapsed := time.Since(start)
	log.Debugf(ctx, "%s took %s", name, elapsed)
}
