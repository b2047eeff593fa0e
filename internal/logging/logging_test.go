package logging_test

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"birmerge/internal/config"
	"birmerge/internal/domain"
	"birmerge/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(config.LogConfig{Level: "info", Format: domain.LogFormatJSON}, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("pipeline.Run: done", "kept", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pipeline.Run: done", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.EqualValues(t, 2, entry["kept"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(config.LogConfig{Level: "debug", Format: domain.LogFormatConsole}, &buf)
	require.NoError(t, err)

	log.Debug("visible", "file", "a.txt")
	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "file=a.txt")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
