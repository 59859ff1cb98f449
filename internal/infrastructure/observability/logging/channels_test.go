package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T) (*ChanneledLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := DefaultLoggerConfig()
	cfg.Writer = &buf
	logger, err := NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger, &buf
}

func TestChanneledLogger_TagsChannel(t *testing.T) {
	logger, buf := newBufferLogger(t)

	logger.Content().Info("Block rendered", "blockId", "01H")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "content", entry["channel"])
	assert.Equal(t, "01H", entry["blockId"])
	assert.Equal(t, "Block rendered", entry["msg"])
}

func TestChanneledLogger_SetChannelLevel(t *testing.T) {
	logger, buf := newBufferLogger(t)

	logger.Media().Debug("hidden")
	assert.Empty(t, buf.String())

	require.NoError(t, logger.SetChannelLevel(ChannelMedia, slog.LevelDebug))
	buf.Reset()
	logger.Media().Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Equal(t, "DEBUG", logger.GetChannelLevels()["media"])

	assert.Error(t, logger.SetChannelLevel(Channel("nope"), slog.LevelDebug))
}

func TestChanneledLogger_UnknownChannelFallsBackToSystem(t *testing.T) {
	logger, buf := newBufferLogger(t)
	logger.GetChannel(Channel("missing")).Info("x")
	assert.True(t, strings.Contains(buf.String(), `"channel":"system"`))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}
