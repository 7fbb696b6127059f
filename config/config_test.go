package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stevensf718/simulation-ops-tracker/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Empty env values read as unset, so defaults win even when the
	// variables exist in the ambient environment.
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("SEED_LEAVE_TYPES", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./data/tracker.db", cfg.DBPath)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.True(t, cfg.SeedLeaveTypes)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/ops-tracker-test.db")
	t.Setenv("ALLOWED_ORIGINS", "https://ops.example.com, https://staging.ops.example.com")
	t.Setenv("SEED_LEAVE_TYPES", "false")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/ops-tracker-test.db", cfg.DBPath)
	assert.Equal(t, []string{"https://ops.example.com", "https://staging.ops.example.com"}, cfg.AllowedOrigins)
	assert.False(t, cfg.SeedLeaveTypes)
}

func TestLoadConfig_OriginsSkipBlankEntries(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://ops.example.com,,   ,")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://ops.example.com"}, cfg.AllowedOrigins)
}
