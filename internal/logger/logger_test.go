package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeEntry parses the single JSON log line accumulated in buf.
func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger(t *testing.T) {
	t.Run("carries the role field on every entry", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger("possync")
		l.Logger = l.Output(&buf)

		l.Info().Msg("engine started")

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "possync", entry["role"])
	})

	t.Run("stamps entries with time", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger("sync-worker")
		l.Logger = l.Output(&buf)

		l.Info().Msg("drain pass finished")

		entry := decodeEntry(t, &buf)
		_, hasTime := entry["time"]
		assert.True(t, hasTime)
	})

	t.Run("caller field is named func", func(t *testing.T) {
		// поле func используется во всех Str("func", ...) по коду
		NewLogger("possync")
		assert.Equal(t, "func", zerolog.CallerFieldName)
	})

	t.Run("debug entries are not filtered out", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger("possync")
		l.Logger = l.Output(&buf)

		l.Debug().Str("queue_id", "q-1").Msg("item picked up")

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "q-1", entry["queue_id"])
	})
}

func TestNop(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)

	var buf bytes.Buffer
	l.Logger = l.Output(&buf)
	l.Error().Msg("must not appear")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("possync")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)

	child.Logger = child.Output(&buf)
	child.Info().Msg("from child")

	// дочерний логгер наследует role родителя
	entry := decodeEntry(t, &buf)
	assert.Equal(t, "possync", entry["role"])
}

func TestFromContext(t *testing.T) {
	t.Run("returns the attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("trace_id", "trace-42").Logger()
		ctx := zl.WithContext(context.Background())

		l := FromContext(ctx)
		l.Info().Msg("scoped entry")

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "trace-42", entry["trace_id"])
	})

	t.Run("never returns nil without an attached logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}

func TestFromRequest(t *testing.T) {
	t.Run("returns the request-scoped logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("store_id", "store-1").Logger()

		req := httptest.NewRequest(http.MethodGet, "/api/sync/status", nil)
		req = req.WithContext(zl.WithContext(req.Context()))

		l := FromRequest(req)
		l.Info().Msg("status requested")

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "store-1", entry["store_id"])
	})

	t.Run("never returns nil on a bare request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		require.NotNil(t, FromRequest(req))
	})
}
