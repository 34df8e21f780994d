package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes text records with the service name", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: "info", Format: "text", Output: &buf, Service: "chronosync"})

		logger.Info("hello", "key", "value")

		out := buf.String()
		assert.Contains(t, out, "hello")
		assert.Contains(t, out, "key=value")
		assert.Contains(t, out, "service=chronosync")
	})

	t.Run("writes json records enriched from context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: "debug", Format: "json", Output: &buf})
		userID := uuid.New()
		ctx := WithUserID(WithCorrelationID(context.Background(), "corr-42"), userID)

		logger.DebugContext(ctx, "enriched")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "enriched", entry["msg"])
		assert.Equal(t, "corr-42", entry[AttrCorrelationID])
		assert.Equal(t, userID.String(), entry[AttrUserID])
	})

	t.Run("drops records below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: "warn", Output: &buf})

		logger.Info("quiet")
		assert.Empty(t, buf.String())

		logger.With("component", "x").Warn("loud")
		assert.Contains(t, buf.String(), "component=x")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestWithCorrelationID_GeneratesWhenEmpty(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "")
	id := CorrelationIDFromContext(ctx)

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
	assert.Equal(t, uuid.Nil, UserIDFromContext(context.Background()))
}
