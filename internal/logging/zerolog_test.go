package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, level string) (*ZerologLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(&buf, level, false), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		m := map[string]any{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), "line: %s", sc.Text())
		out = append(out, m)
	}
	return out
}

func TestZerologLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t, "debug")
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", "two")
	log.Warn(ctx, "wrn", "c", true)
	log.Error(ctx, "err", "d", errors.New("boom"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 4)

	tests := []struct {
		level string
		msg   string
		key   string
		val   any
	}{
		{"debug", "dbg", "a", float64(1)},
		{"info", "inf", "b", "two"},
		{"warn", "wrn", "c", true},
		{"error", "err", "d", "boom"},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.level, lines[i]["level"])
		assert.Equal(t, tc.msg, lines[i]["message"])
		assert.Equal(t, tc.val, lines[i][tc.key])
		assert.Contains(t, lines[i], "time")
	}
}

func TestZerologLogger_LevelFiltering(t *testing.T) {
	log, buf := newTestLogger(t, "warn")
	ctx := context.Background()

	log.Debug(ctx, "hidden")
	log.Info(ctx, "hidden")
	log.Warn(ctx, "shown")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestZerologLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	log, buf := newTestLogger(t, "verbose")
	ctx := context.Background()

	log.Debug(ctx, "hidden")
	log.Info(ctx, "shown")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
}

func TestZerologLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t, "info")

	child := log.With("module", "http", "user", "alice")
	child.Info(context.Background(), "hello", "k", "v")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "http", lines[0]["module"])
	assert.Equal(t, "alice", lines[0]["user"])
	assert.Equal(t, "v", lines[0]["k"])
}

func TestZerologLogger_RequestIDFromContext(t *testing.T) {
	log, buf := newTestLogger(t, "info")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	log.Info(ctx, "handled")
	log.Info(context.Background(), "no id")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "req-42", lines[0]["request_id"])
	assert.NotContains(t, lines[1], "request_id")
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = RequestIDFromContext(ContextWithRequestID(context.Background(), ""))
	assert.False(t, ok)
}

func TestZerologLogger_ConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", true)
	log.Info(context.Background(), "pretty", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "pretty")
	assert.Contains(t, out, "k=")
}

func TestZerologLogger_ImplementsLogger(t *testing.T) {
	var _ Logger = New(nil, "", false)
}
