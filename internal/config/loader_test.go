package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSONC(t *testing.T) {
	path := writeFile(t, "asyncbridge.jsonc", `{
	// Bound the worker goroutines.
	"executor": {
		"max_workers": 4,
		"propagate_panics": true,
	},
	"log": {"level": "debug", "format": "JSON"},
	"demo": {"message": "hi", "timeout": "250ms"},
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(4), cfg.Executor.MaxWorkers)
	assert.True(t, cfg.Executor.PropagatePanics)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "hi", cfg.Demo.Message)
	assert.Equal(t, 250*time.Millisecond, cfg.Demo.TimeoutDuration())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "asyncbridge.yaml", `
executor:
  max_workers: 2
log:
  level: warn
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(2), cfg.Executor.MaxWorkers)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "hello, continuation!", cfg.Demo.Message)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.jsonc"))
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Executor.MaxWorkers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Demo.TimeoutDuration())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "asyncbridge.jsonc", `{"log": {"level": "debug"}}`)

	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvMaxWorkers, "8")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, int64(8), cfg.Executor.MaxWorkers)

	t.Setenv(EnvMaxWorkers, "many")

	_, err = Load(path)
	assert.ErrorContains(t, err, EnvMaxWorkers)
}

func TestLoadInvalid(t *testing.T) {
	for name, content := range map[string]string{
		"syntax":      `{"log": `,
		"workers":     `{"executor": {"max_workers": -1}}`,
		"level":       `{"log": {"level": "loud"}}`,
		"format":      `{"log": {"format": "xml"}}`,
		"timeout":     `{"demo": {"timeout": "soon"}}`,
		"zerotimeout": `{"demo": {"timeout": "0s"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "asyncbridge.jsonc", content))
			assert.Error(t, err)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfig, "")
	assert.Equal(t, "asyncbridge.jsonc", DefaultPath())

	t.Setenv(EnvConfig, "/etc/asyncbridge.yaml")
	assert.Equal(t, "/etc/asyncbridge.yaml", DefaultPath())
}
