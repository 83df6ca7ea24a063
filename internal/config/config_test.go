package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Security.ForceHTTPS)
	assert.Empty(t, cfg.Security.TrustedProxies)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SITE_SERVER_PORT", "9090")
	t.Setenv("SITE_SECURITY_FORCE_HTTPS", "true")
	t.Setenv("SITE_RATE_LIMIT_WINDOW", "30s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Security.ForceHTTPS)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7070
security:
  trusted_proxies:
    - 10.0.0.0/8
    - 192.168.1.1
cors:
  allowed_origins:
    - https://example.ch
log:
  format: console
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"https://example.ch"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.Security.TrustedProxies)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SITE_LOG_FORMAT", "xml")

	_, err := Load("")
	assert.ErrorContains(t, err, "log.format")
}

func TestLoad_InvalidTrustedProxy(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SITE_SECURITY_TRUSTED_PROXIES", "10.0.0.0/8 proxy.local")

	_, err := Load("")
	assert.ErrorContains(t, err, "trusted_proxies")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
