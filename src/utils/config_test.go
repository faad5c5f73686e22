package utils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetForTest clears key for the duration of the test and restores it afterwards
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"CRONTAB_INPUT", "CRONTAB_OUTPUT", "CRONTAB_FAIL_FAST", "RUN_ID", "LOG_LEVEL", "APP_ENV"} {
		unsetForTest(t, key)
	}

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StdinPath, cfg.Input)
	assert.Equal(t, "text", cfg.Output)
	assert.False(t, cfg.FailFast)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)

	_, err = uuid.Parse(cfg.RunID)
	assert.NoError(t, err, "generated run id should be a uuid")
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CRONTAB_INPUT", "/etc/crontab")
	t.Setenv("CRONTAB_OUTPUT", "yaml")
	t.Setenv("CRONTAB_FAIL_FAST", "true")
	t.Setenv("RUN_ID", "nightly")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/etc/crontab", cfg.Input)
	assert.Equal(t, "yaml", cfg.Output)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, "nightly", cfg.RunID)
}

func TestLoadConfigFromDotenv(t *testing.T) {
	unsetForTest(t, "CRONTAB_OUTPUT")
	unsetForTest(t, "RUN_ID")
	t.Setenv("CRONTAB_INPUT", "from-process")

	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("CRONTAB_OUTPUT=json\nRUN_ID=dotenv-run\nCRONTAB_INPUT=from-file\n"), 0o600))

	cfg, err := LoadConfig(context.Background(), dotenv, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "dotenv-run", cfg.RunID)
	assert.Equal(t, "from-process", cfg.Input, "process environment wins over dotenv")
}

func TestLoadConfigRejectsBadBool(t *testing.T) {
	t.Setenv("CRONTAB_FAIL_FAST", "sometimes")

	_, err := LoadConfig(context.Background())
	assert.Error(t, err)
}
