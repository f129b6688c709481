package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Config{AppEnv: "production", LogFormat: "json"}, &buf)

	logger.Info("hello", slog.String("k", "v"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "v", record["k"])
}

func TestNewLoggerPrettyDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Config{AppEnv: "production", LogFormat: "pretty"}, &buf)

	logger.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNewLoggerDevelopmentEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	dev := newLogger(&Config{AppEnv: "development", LogFormat: "pretty"}, &buf)
	assert.True(t, dev.Enabled(context.Background(), slog.LevelDebug))

	prod := newLogger(&Config{AppEnv: "production", LogFormat: "json"}, &buf)
	assert.False(t, prod.Enabled(context.Background(), slog.LevelDebug))
}
