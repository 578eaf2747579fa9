package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alixocracy/jast/internal/mailer"
)

// isolate runs the test from an empty directory with no JAST_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	homedir.DisableCache = true
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	for _, k := range []string{"JAST_CONFIG_PATH", "JAST_BACKEND", "JAST_PATH", "JAST_MAIL_RESEND_API_KEY", "RESEND_API_KEY", "JAST_TIMER_DEFAULT_MINUTES"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	base, err := Dir()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 25, cfg.TimerMinutes)
	assert.Equal(t, mailer.ModeResend, cfg.Mail.Mode)
	assert.Equal(t, mailer.DefaultFrom, cfg.Mail.From)
	assert.Equal(t, 15*time.Second, cfg.Mail.Timeout)
	assert.Equal(t, "127.0.0.1:8787", cfg.ServeAddr)
	assert.Equal(t, filepath.Join(base, "jast.db"), cfg.Path)
	assert.Equal(t, filepath.Join(base, "jast.log"), cfg.LogFile)
	assert.Empty(t, cfg.File)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	yaml := `
backend: diskv
path: ~/jast-data
log_level: debug
timer:
  default_minutes: 45
mail:
  mode: endpoint
  endpoint: http://localhost:9000/send-daily-summary
  timeout: 3s
serve:
  addr: ":9999"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".jast.yaml"), []byte(yaml), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "diskv", cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "jast-data"), cfg.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 45, cfg.TimerMinutes)
	assert.Equal(t, mailer.ModeEndpoint, cfg.Mail.Mode)
	assert.Equal(t, "http://localhost:9000/send-daily-summary", cfg.Mail.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Mail.Timeout)
	assert.Equal(t, ":9999", cfg.ServeAddr)
	assert.NotEmpty(t, cfg.File)
}

func TestLoadExplicitDir(t *testing.T) {
	isolate(t)
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(other, ".jast.yaml"), []byte("log_level: warn\n"), 0o644))

	cfg, err := Load(other)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("JAST_BACKEND", "diskv")
	t.Setenv("RESEND_API_KEY", "re_env")
	t.Setenv("JAST_TIMER_DEFAULT_MINUTES", "15")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "diskv", cfg.Backend)
	base, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "kv"), cfg.Path)
	assert.Equal(t, "re_env", cfg.Mail.APIKey)
	assert.Equal(t, 15, cfg.TimerMinutes)
}

func TestLoadBadBackend(t *testing.T) {
	isolate(t)
	t.Setenv("JAST_BACKEND", "redis")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".jast.yaml"), []byte("backend: [unclosed"), 0o644))
	_, err := Load("")
	assert.Error(t, err)
}
