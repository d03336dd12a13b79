package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvPrefix+"_CONFIG", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "html", cfg.Renderer)
	assert.True(t, cfg.Loader.AllowHTTP)
	assert.Equal(t, 15*time.Second, cfg.Loader.Timeout)
	assert.Equal(t, int64(10<<20), cfg.Loader.MaxBytes)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
format: yaml
renderer: text
loader:
  allow_http: false
  timeout: 3s
theme:
  name: acme
  tokens:
    brand: "#123456"
`), 0o644))
	t.Setenv(EnvPrefix+"_RENDERER", "html")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "html", cfg.Renderer)
	assert.False(t, cfg.Loader.AllowHTTP)
	assert.Equal(t, 3*time.Second, cfg.Loader.Timeout)
	assert.Equal(t, "acme", cfg.Theme.Name)
	assert.Equal(t, map[string]string{"brand": "#123456"}, cfg.Theme.Tokens)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	t.Setenv(EnvPrefix+"_FORMAT", "xml")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
