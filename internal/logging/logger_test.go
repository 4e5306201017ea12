package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerDefaults(t *testing.T) {
	logger := NewLogger(Config{})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestNewLoggerUnknownLevelFallsBack(t *testing.T) {
	logger := NewLogger(Config{Level: "chatty"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger = NewLogger(Config{Level: "debug"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestNewLoggerJSONWithService(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: "JSON", Service: "gameday", Output: &buf})

	logger.WithField("matchup", "A @ B").Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "gameday", line["service"])
	assert.Equal(t, "A @ B", line["matchup"])
	assert.Equal(t, "hello", line["msg"])
}
