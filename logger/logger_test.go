package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogrusLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf})

	ctx := WithRequestID(context.Background(), "req-1")
	log.WithField("component", "apiclient").Info(ctx, "users fetched", map[string]interface{}{
		"page": 2,
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "users fetched", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "apiclient", entry["component"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.EqualValues(t, 2, entry["page"])
}

func TestLogrusLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info(context.Background(), "hidden", nil)
	assert.Empty(t, buf.String())

	log.Warn(context.Background(), "shown", nil)
	assert.Contains(t, buf.String(), "shown")
}

func TestLogrusLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "chatty", Format: "text", Output: &buf})

	log.Debug(context.Background(), "hidden", nil)
	assert.Empty(t, buf.String())

	log.Info(context.Background(), "visible", nil)
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestTestLogger_DerivedLoggersShareCapture(t *testing.T) {
	log := NewTestLogger()
	child := log.WithField("user_id", "abc")

	child.Error(context.Background(), "delete failed", map[string]interface{}{"status": 500})
	log.Info(context.Background(), "plain", nil)

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "error", entries[0].Level)
	assert.Equal(t, "abc", entries[0].Fields["user_id"])
	assert.Equal(t, 500, entries[0].Fields["status"])
	assert.NotContains(t, entries[1].Fields, "user_id")

	assert.Len(t, log.EntriesAt("error"), 1)

	log.Reset()
	assert.Empty(t, log.Entries())
}
