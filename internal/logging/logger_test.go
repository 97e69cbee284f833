package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Chamas111/booking-airbnb/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.Logging{Level: "debug", Format: "json"}, &buf)

	logger.Debug().Str("k", "v").Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "booking-api", entry["app"])
	assert.Equal(t, "v", entry["k"])
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.Logging{Level: "warn"}, &buf)

	logger.Info().Msg("skipped")
	assert.Zero(t, buf.Len())

	logger.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.Logging{Level: "loud"}, &buf)

	logger.Debug().Msg("debug")
	assert.Zero(t, buf.Len())

	logger.Info().Msg("info")
	assert.Contains(t, buf.String(), "info")
}
