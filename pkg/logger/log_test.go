package logger

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewFromZap(zap.New(core)), logs
}

func TestLogger_ContextFields(t *testing.T) {
	log, logs := newObserved(zapcore.DebugLevel)

	ctx := util.WithFeedOffset(util.WithPair(util.WithRequestID(context.Background(), "req-7"), "BTC-USD"), 11)
	log.InfoContext(ctx, "order processed", NewField("orderID", int64(1)))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "BTC-USD", fields["pair"])
	assert.Equal(t, int64(11), fields["feed_offset"])
	assert.Equal(t, int64(1), fields["orderID"])
}

func TestLogger_ContextFieldsOmitted(t *testing.T) {
	log, logs := newObserved(zapcore.DebugLevel)

	log.WarnContext(context.Background(), "no context")

	fields := logs.All()[0].ContextMap()
	assert.Contains(t, fields, "request_id")
	assert.NotContains(t, fields, "pair")
	assert.NotContains(t, fields, "feed_offset")
}

func TestLogger_Error(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)

	err := errors.NewTracer("publish failed").Wrap(stderrors.New("broker down"))
	log.Error(err, NewField("topic", "order-updates"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "publish failed: broker down", entry.Message)
	assert.NotEmpty(t, entry.Stack)
}

func TestLogger_LevelFiltering(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)

	log.Debug("dropped")
	log.WithFields(NewField("component", "engine")).Info("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "engine", logs.All()[0].ContextMap()["component"])
}

func TestLevel_getZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, DebugLevel.getZapLevel())
	assert.Equal(t, zapcore.WarnLevel, WarnLevel.getZapLevel())
	assert.Equal(t, zapcore.ErrorLevel, ErrorLevel.getZapLevel())
	assert.Equal(t, zapcore.InfoLevel, Level("verbose").getZapLevel())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{" DEBUG ", DebugLevel},
		{"warning", WarnLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"", InfoLevel},
		{"trace", InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestNewLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	log, err := NewLogger(WithLoggingLevel(WarnLevel), WithOutputPaths(path))
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("book empty", NewField("side", "buy"))
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "book empty", entry["message"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "buy", entry["side"])
}

func TestNewLogger_BadOutputPath(t *testing.T) {
	_, err := NewLogger(WithOutputPaths(filepath.Join(t.TempDir(), "missing", "out.log")))
	assert.Error(t, err)
}
