package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
)

func capture(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf, cfg)
	t.Cleanup(func() { Setup(Config{Level: "info", Format: "console"}) })
	return &buf
}

func entries(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLevelFilter(t *testing.T) {
	buf := capture(t, Config{Level: "warn", Format: "json"})
	ctx := context.Background()

	Debugf(ctx, "dropped")
	Infof(ctx, "dropped")
	Warningf(ctx, "kept %d", 1)
	Errorf(ctx, "kept %d", 2)

	got := entries(t, buf)
	require.Len(t, got, 2)
	assert.Equal(t, "warn", got[0]["level"])
	assert.Equal(t, "kept 1", got[0]["message"])
	assert.Equal(t, "error", got[1]["level"])
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	buf := capture(t, Config{Level: "loud", Format: "json"})

	Debugf(context.Background(), "dropped")
	Infof(context.Background(), "kept")

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0]["message"])
}

func TestRequestAndTraceIDs(t *testing.T) {
	buf := capture(t, Config{Level: "debug", Format: "json"})

	ctx := WithRequestID(context.Background(), "3f1c2a4e-9a7e-4c55-8d0e-6d9f1b2c7a10")
	assert.Equal(t, "3f1c2a4e-9a7e-4c55-8d0e-6d9f1b2c7a10", RequestID(ctx))

	ctx, span := trace.StartSpan(ctx, "download")
	defer span.End()
	Infof(ctx, "fetching %s", "deck")

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "fetching deck", got[0]["message"])
	assert.Equal(t, "3f1c2a4e-9a7e-4c55-8d0e-6d9f1b2c7a10", got[0]["request_id"])
	assert.Equal(t, span.SpanContext().TraceID.String(), got[0]["trace_id"])
}

func TestConsoleFormat(t *testing.T) {
	buf := capture(t, Config{Level: "info", Format: "console", Color: true})

	Infof(context.Background(), "plain text")

	assert.Contains(t, buf.String(), "plain text")
	assert.NotContains(t, buf.String(), "{")
	assert.Empty(t, RequestID(context.Background()))
}
