package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, getLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, getLogLevel("warning"))
	assert.Equal(t, slog.LevelError, getLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, getLogLevel(""))
}

func TestRegistrationLogs(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info").WithRequestID("req-1")

	l.LogRegistrationFailed(context.Background(), "Ahmed Khan", errors.New("status 503"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Registration Failed", entry["msg"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "Ahmed Khan", entry["name"])
	assert.Equal(t, "status 503", entry["error"])
	assert.Equal(t, "req-1", entry["request_id"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "error")

	l.LogRegistrationSubmitted(context.Background(), "Ahmed Khan", false)
	assert.Empty(t, buf.String())
}

func TestWithRequestID_EmptyIsNoop(t *testing.T) {
	l := NewWithWriter(&bytes.Buffer{}, "info")
	assert.Same(t, l, l.WithRequestID(""))
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "info").WithError(errors.New("dial tcp: refused")).Error("Redis unavailable")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Redis unavailable", entry["msg"])
	assert.Equal(t, "dial tcp: refused", entry["error"])
}

func TestInfoWithContext(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "info").InfoWithContext(context.Background(), "Registration notification still in flight", map[string]interface{}{
		"name": "Yusuf Omar",
		"wait": "2s",
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "Yusuf Omar", entry["name"])
	assert.Equal(t, "2s", entry["wait"])
}
