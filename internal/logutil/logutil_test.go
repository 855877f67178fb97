package logutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashbench.log")
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Level = "warn"
	cfg.Filename = path

	logger, err := cfg.Build()
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", zap.String("impl", "open"), zap.Int("size", 10))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "kept", entry["msg"])
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "open", entry["impl"])
	require.Equal(t, float64(10), entry["size"])
}

func TestBuildDefault(t *testing.T) {
	logger, err := DefaultConfig().Build()
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.False(t, logger.Core().Enabled(zap.DebugLevel))
	require.True(t, logger.Core().Enabled(zap.InfoLevel))
}

func TestBuildInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	_, err := cfg.Build()
	require.Error(t, err)

	cfg = DefaultConfig()
	cfg.Format = "xml"
	_, err = cfg.Build()
	require.Error(t, err)
}

func TestBuildLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	defer stdout.Close()
	stderr, err := os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)
	defer stderr.Close()

	oldStdout, oldStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = stdout, stderr
	defer func() { os.Stdout, os.Stderr = oldStdout, oldStderr }()

	logger, err := DefaultConfig().Build()
	require.NoError(t, err)
	logger.Info("to stderr")

	out, err := os.ReadFile(stdout.Name())
	require.NoError(t, err)
	require.Empty(t, out)

	errOut, err := os.ReadFile(stderr.Name())
	require.NoError(t, err)
	require.Contains(t, string(errOut), "to stderr")
}
