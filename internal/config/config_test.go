package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
database:
  path: /tmp/ironplan-test.db
http:
  addr: ":9090"
log:
  level: debug
  use_cases: true
units:
  weight: kg
llm:
  enabled: true
  model: qwen2.5
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ironplan-test.db", cfg.Database.Path)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.UseCases)
	assert.Equal(t, "kg", cfg.WeightUnit())
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, "qwen2.5", cfg.LLM.Model)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "http://localhost:11434", cfg.LLM.Endpoint)
	assert.Equal(t, 1, cfg.LLM.MaxRetries)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ironplan.db", filepath.Base(cfg.Database.Path))
	assert.Equal(t, "127.0.0.1:8088", cfg.HTTP.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "lb", cfg.WeightUnit())
	assert.False(t, cfg.LLM.Enabled)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("IRONPLAN_DB", "/data/override.db")
	t.Setenv("IRONPLAN_HTTP_ADDR", ":7000")
	t.Setenv("IRONPLAN_LOG_LEVEL", "error")
	t.Setenv("IRONPLAN_LOG_USE_CASES", "false")
	t.Setenv("IRONPLAN_WEIGHT_UNIT", "LB")
	t.Setenv("IRONPLAN_LLM_TIMEOUT_MS", "5000")
	t.Setenv("IRONPLAN_LLM_MAX_RETRIES", "0")

	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "/data/override.db", cfg.Database.Path)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.False(t, cfg.Log.UseCases)
	assert.Equal(t, "lb", cfg.WeightUnit())
	assert.Equal(t, 5000, cfg.LLM.TimeoutMs)
	assert.Equal(t, 0, cfg.LLM.MaxRetries)
}

func TestEnvOverrideInvalidNumberIgnored(t *testing.T) {
	t.Setenv("IRONPLAN_LLM_TIMEOUT_MS", "soon")
	t.Setenv("IRONPLAN_LOG_USE_CASES", "maybe")

	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, 60000, cfg.LLM.TimeoutMs)
	assert.True(t, cfg.Log.UseCases)
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"empty db path", "database:\n  path: \"\"\n", "database.path is required"},
		{"empty http addr", "http:\n  addr: \"\"\n", "http.addr is required"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad unit", "units:\n  weight: stone\n", "units.weight must be lb or kg"},
		{"llm without model", "llm:\n  enabled: true\n  model: \"\"\n", "llm.model is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeTemp(t, tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeTemp(t, "database: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("IRONPLAN_CONFIG", "/etc/ironplan.yaml")
	assert.Equal(t, "/etc/ironplan.yaml", DefaultPath())

	t.Setenv("IRONPLAN_CONFIG", "")
	assert.Equal(t, "config.yaml", filepath.Base(DefaultPath()))
}
