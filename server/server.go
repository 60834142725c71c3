// Package server assembles the download service from configuration.
package server

import (
	"context"
	"net/http"
	"time"

	"contrib.go.opencensus.io/exporter/stackdriver"
	"github.com/pacahon/slideshare"
	"github.com/pacahon/slideshare/api"
	"github.com/pacahon/slideshare/config"
	"github.com/pacahon/slideshare/library/log"
	"github.com/pacahon/slideshare/service"
	"github.com/pkg/errors"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front of the download service.
type Server struct {
	cfg     *config.Config
	handler http.Handler
	closers []func() error
}

// New wires logging, tracing and the SlideShare services into a router.
// Close must be called to flush the cloud sinks.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	log.Setup(cfg.Logging.Log())
	s := &Server{cfg: cfg}

	if project := cfg.GCP.ProjectID; project != "" {
		flush, err := log.UseCloudLogging(ctx, project, cfg.Logging.LogID)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, flush)

		exporter, err := stackdriver.NewExporter(stackdriver.Options{ProjectID: project})
		if err != nil {
			s.Close()
			return nil, errors.Wrap(err, "create trace exporter")
		}
		trace.RegisterExporter(exporter)
		s.closers = append(s.closers, func() error {
			trace.UnregisterExporter(exporter)
			exporter.Flush()
			return nil
		})
	}

	client, err := slideshare.NewClient(cfg.Credentials(), cfg.ClientOptions()...)
	if err != nil {
		s.Close()
		return nil, err
	}

	httpClient := &http.Client{Transport: &ochttp.Transport{}}
	handler := api.HandleSlideShare(
		service.NewCachedSlideShareService(service.NewSlideShareService(client, httpClient), cfg.Server.CacheTTL),
		service.NewStorage(cfg.Storage.Bucket),
		api.Options{
			CreatePDF:       cfg.Server.CreatePDF,
			MaxFileSize:     cfg.Server.MaxFileSize,
			DownloadTimeout: cfg.Server.DownloadTimeout,
			HTTPClient:      httpClient,
		},
	)
	s.handler = api.NewRouter(handler)
	return s, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof(ctx, "listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

// Close flushes the cloud logging and trace sinks.
func (s *Server) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}
