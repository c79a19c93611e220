package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quipdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.Equal(t, Duration(10*time.Second), cfg.Timeout)
	assert.True(t, cfg.Diagram.Color)
	assert.False(t, cfg.StrictCalls)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
workers: 3
timeout: 250ms
strictCalls: true
diagram:
  maxColumns: 40
  color: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, Duration(250*time.Millisecond), cfg.Timeout)
	assert.True(t, cfg.StrictCalls)
	assert.Equal(t, 40, cfg.Diagram.MaxColumns)
	assert.False(t, cfg.Diagram.Color)
	assert.False(t, cfg.Debug)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"bad duration", "timeout: soon\n", "parse duration"},
		{"unknown field", "threads: 2\n", "threads"},
		{"zero workers", "workers: 0\n", "workers must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Workers = 2
	cfg.Timeout = Duration(time.Minute)
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestCreateLogger(t *testing.T) {
	cfg := Default()
	cfg.Debug = true
	logger, err := cfg.CreateLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(-1))
}
