package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(4<<20), cfg.Server.MaxBodyBytes)
	assert.False(t, cfg.Log.JSON)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 600, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 30, cfg.RateLimit.BatchPerMinute)
	assert.Empty(t, cfg.RateLimit.Whitelist)
	assert.Equal(t, 8, cfg.Analysis.BatchConcurrency)
	assert.Equal(t, 100, cfg.Analysis.MaxBatchSize)
	assert.Equal(t, ":8080", cfg.Server.Addr())
}

func TestLoad_DiscoversFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ats-analyzer.yaml", "server:\n  port: 9000\n")
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", `
server:
  port: 9090
  write-timeout: 2m
log:
  json: true
rate-limit:
  enabled: false
  whitelist: ["10.0.0.1", "10.0.0.2"]
analysis:
  locale: en
  heuristics-file: heuristics.yaml
  batch-concurrency: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Log.JSON)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.RateLimit.Whitelist)
	assert.Equal(t, "en", cfg.Analysis.Locale)
	assert.Equal(t, "heuristics.yaml", cfg.Analysis.HeuristicsFile)
	assert.Equal(t, 2, cfg.Analysis.BatchConcurrency)
	// Unset keys keep their defaults
	assert.Equal(t, 100, cfg.Analysis.MaxBatchSize)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", "server:\n  port: 9090\n")
	t.Setenv("ATS_SERVER_PORT", "7070")
	t.Setenv("ATS_RATE_LIMIT_BLACKLIST", "1.2.3.4, 5.6.7.8")
	t.Setenv("ATS_ANALYSIS_MAX_BATCH_SIZE", "10")
	t.Setenv("ATS_SERVER_READ_TIMEOUT", "3s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"1.2.3.4", "5.6.7.8"}, cfg.RateLimit.Blacklist)
	assert.Equal(t, 10, cfg.Analysis.MaxBatchSize)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/ats-analyzer.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "server: [port\n")

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"port out of range", "server:\n  port: 70000\n"},
		{"unknown locale", "analysis:\n  locale: fr\n"},
		{"zero concurrency", "analysis:\n  batch-concurrency: 0\n"},
		{"zero rate", "rate-limit:\n  requests-per-minute: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.yaml", tt.content)
			cfg, err := Load(path)
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "config error")
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", " c ", ""}))
	assert.Empty(t, splitList(nil))
}
