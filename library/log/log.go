// Package log is the context-first logger used across the module.
//
// Entries go to a zerolog logger on stderr by default. When UseCloudLogging
// is called they are sent to Cloud Logging instead, tagged with the
// OpenCensus trace of the context so they line up with request traces.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/logging"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opencensus.io/trace"
)

// Config selects level and output format.
type Config struct {
	Level  string
	Format string
	Color  bool
}

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, Config{Level: "info", Format: "console", Color: true})
	cloud  *cloudSink
)

type cloudSink struct {
	project string
	client  *logging.Client
	logger  *logging.Logger
}

// Setup replaces the stderr logger.
func Setup(cfg Config) {
	SetOutput(os.Stderr, cfg)
}

// SetOutput writes entries to w.
func SetOutput(w io.Writer, cfg Config) {
	l := newLogger(w, cfg)
	mu.Lock()
	logger = l
	mu.Unlock()
}

func newLogger(w io.Writer, cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format != "json" {
		color := cfg.Color
		if f, ok := w.(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
			color = false
		}
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    !color,
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// UseCloudLogging routes entries to the logID log of projectID. The
// returned func flushes and closes the client.
func UseCloudLogging(ctx context.Context, projectID, logID string) (func() error, error) {
	client, err := logging.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "create cloud logging client")
	}
	sink := &cloudSink{
		project: projectID,
		client:  client,
		logger:  client.Logger(logID),
	}

	mu.Lock()
	cloud = sink
	mu.Unlock()

	return func() error {
		mu.Lock()
		if cloud == sink {
			cloud = nil
		}
		mu.Unlock()
		return sink.client.Close()
	}, nil
}

type requestIDKey struct{}

// WithRequestID returns a context whose entries carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id set by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, zerolog.DebugLevel, format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, zerolog.InfoLevel, format, args...)
}

func Warningf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, zerolog.WarnLevel, format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, zerolog.ErrorLevel, format, args...)
}

var severities = map[zerolog.Level]logging.Severity{
	zerolog.DebugLevel: logging.Debug,
	zerolog.InfoLevel:  logging.Info,
	zerolog.WarnLevel:  logging.Warning,
	zerolog.ErrorLevel: logging.Error,
}

func logf(ctx context.Context, level zerolog.Level, format string, args ...interface{}) {
	mu.RLock()
	l, sink := logger, cloud
	mu.RUnlock()

	if level < l.GetLevel() {
		return
	}
	msg := fmt.Sprintf(format, args...)

	var traceID string
	if span := trace.FromContext(ctx); span != nil {
		traceID = span.SpanContext().TraceID.String()
	}
	requestID := RequestID(ctx)

	if sink != nil {
		entry := logging.Entry{
			Severity: severities[level],
			Payload:  msg,
		}
		if traceID != "" {
			entry.Trace = fmt.Sprintf("projects/%s/traces/%s", sink.project, traceID)
		}
		if requestID != "" {
			entry.Labels = map[string]string{"request_id": requestID}
		}
		sink.logger.Log(entry)
		return
	}

	event := l.WithLevel(level)
	if traceID != "" {
		event = event.Str("trace_id", traceID)
	}
	if requestID != "" {
		event = event.Str("request_id", requestID)
	}
	event.Msg(msg)
}
