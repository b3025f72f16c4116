package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/gnames/gnmatch/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		res slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"trace", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.in), v.in)
	}
}

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}

	closer, err := Init(dir, cfg, false)
	require.NoError(t, err)
	slog.Info("first")
	slog.Debug("hidden")
	require.NoError(t, closer.Close())

	closer, err = Init(dir, cfg, true)
	require.NoError(t, err)
	slog.Info("second")
	require.NoError(t, closer.Close())

	bs, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"msg":"first"`)
	assert.Contains(t, string(bs), `"msg":"second"`)
	assert.NotContains(t, string(bs), "hidden")

	closer, err = Init(dir, cfg, false)
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	bs, err = os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Empty(t, bs)
}

func TestInitError(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	cfg := config.LogConfig{Destination: "file"}
	_, err := Init(filepath.Join(t.TempDir(), "missing"), cfg, false)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}
