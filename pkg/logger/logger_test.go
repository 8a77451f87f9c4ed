package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/console/pkg/logger"
)

type ctxKey struct{}

func requestID(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}

func decode(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestCritical(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, closeLog, err := logger.NewFile("", logger.WithWriter(&buf), logger.WithExtractors(requestID))
	require.NoError(t, err)
	defer closeLog()

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	logger.Critical(ctx, log, "bootstrap failed", slog.String("stage", "pool_ready"))

	entries := decode(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "CRITICAL", entries[0]["level"])
	assert.Equal(t, "bootstrap failed", entries[0]["msg"])
	assert.Equal(t, "pool_ready", entries[0]["stage"])
	assert.Equal(t, "req-1", entries[0]["request_id"])
}

func TestCritical_NilLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		logger.Critical(context.Background(), nil, "ignored")
	})
}

func TestNewFile_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, _, err := logger.NewFile("", logger.WithWriter(&buf), logger.WithLevel(slog.LevelError))
	require.NoError(t, err)

	log.Info("skipped")
	log.Warn("skipped")
	log.Error("kept")
	logger.Critical(context.Background(), log, "kept too")

	entries := decode(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "ERROR", entries[0]["level"])
	assert.Equal(t, "CRITICAL", entries[1]["level"])
}

func TestNewFile_WritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "console.log")
	log, closeLog, err := logger.NewFile(path)
	require.NoError(t, err)

	log.Info("hello", slog.Int("n", 1))
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNewFile_FallbackToStderr(t *testing.T) {
	t.Parallel()

	log, closeLog, err := logger.NewFile("")
	assert.ErrorIs(t, err, logger.ErrOpenLogFile)
	require.NotNil(t, log)
	require.NotNil(t, closeLog)
	assert.NoError(t, closeLog())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"":         slog.LevelInfo,
		"debug":    slog.LevelDebug,
		"INFO":     slog.LevelInfo,
		"warning":  slog.LevelWarn,
		"error":    slog.LevelError,
		"critical": logger.LevelCritical,
	}
	for in, want := range tests {
		got, err := logger.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logger.ParseLevel("loud")
	assert.ErrorIs(t, err, logger.ErrUnknownLevel)
}

func TestContextHandler_SkipsMissingValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, nil)
	log := slog.New(logger.NewContextHandler(h, requestID, nil)).With("component", "console")

	log.InfoContext(context.Background(), "no id")

	entries := decode(t, &buf)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0], "request_id")
	assert.Equal(t, "console", entries[0]["component"])
}
