package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucrnz/shorthand/internal/shorthand"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shorthand.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
format: seconds
lenient: true
max: 1w 1d
max_bytes: 1MiB
progress_interval: 500ms
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, "seconds", cfg.Format)
	require.NotNil(t, cfg.Lenient)
	assert.True(t, *cfg.Lenient)
	assert.Nil(t, cfg.Sum)
	require.NotNil(t, cfg.Max)
	assert.Equal(t, 8*24*time.Hour, cfg.Max.Std())
	assert.Equal(t, "1MiB", cfg.MaxBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "sum: true\n")
	t.Setenv(EnvPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg.Sum)
	assert.True(t, *cfg.Sum)
}

func TestLoadNone(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"format", "format: xml\n", ErrInvalidValue},
		{"max_bytes", "max_bytes: lots\n", ErrInvalidValue},
		{"progress_interval", "progress_interval: soon\n", ErrInvalidValue},
		{"max", "max: 3 hours\n", shorthand.ErrUnrecognizedUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
