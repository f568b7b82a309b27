package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/ostafen/meshcheck/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, logger.DebugLevel, logger.ParseLevel("debug"))
	require.Equal(t, logger.InfoLevel, logger.ParseLevel("INFO"))
	require.Equal(t, logger.WarnLevel, logger.ParseLevel("warning"))
	require.Equal(t, logger.ErrorLevel, logger.ParseLevel("ERROR"))
	require.Equal(t, logger.InfoLevel, logger.ParseLevel("verbose"))
}

func TestLevel_Slog(t *testing.T) {
	require.Equal(t, slog.LevelDebug, logger.DebugLevel.Slog())
	require.Equal(t, slog.LevelInfo, logger.InfoLevel.Slog())
	require.Equal(t, slog.LevelWarn, logger.WarnLevel.Slog())
	require.Equal(t, slog.LevelError, logger.ErrorLevel.Slog())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, logger.WarnLevel)

	l.Info("hidden")
	l.Debugf("hidden %d", 1)
	l.Warnf("size mismatch in %s", "mesh.stl")
	l.Error("boom")

	require.Equal(t, "[WARN] size mismatch in mesh.stl\n[ERROR] boom\n", buf.String())
}
