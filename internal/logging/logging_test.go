package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineShapeUsesTsAndMessageKeys(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)
	log.Info("listener started", "port", 53)

	line := buf.String()
	require.True(t, strings.HasPrefix(line, "ts="), line)
	require.Contains(t, line, "level=INFO")
	require.Contains(t, line, "message=\"listener started\"")
	require.Contains(t, line, "port=53")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)
	log.Info("should not appear")
	require.Empty(t, buf.String())

	log.Warn("should appear")
	require.Contains(t, buf.String(), "should appear")
}
