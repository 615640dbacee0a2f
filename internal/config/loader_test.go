package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsite-tracker/internal/repository/sqlite"
)

const sampleTOML = `
[database]
filename = "site.db"
query_timeout = "3s"

[billing]
hourly_rate = "42.50"
default_overhead = "15"

[reporting]
palette = ["#111111", "#222222"]

[server]
addr = ":9000"

[application]
profile_id = 3
log_format = "json"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func isolatedLoader(t *testing.T) *Loader {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewLoader().WithEnvFile("")
}

func TestLoader_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := isolatedLoader(t).Load()
	require.NoError(t, err)

	assert.Equal(t, "jobsite.db", cfg.Database.Filename)
	assert.Equal(t, "text", cfg.Application.LogFormat)
}

func TestLoader_ReadsTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", sampleTOML)

	cfg, err := isolatedLoader(t).WithConfigFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "site.db", cfg.Database.Filename)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	require.NotNil(t, cfg.Billing.HourlyRate)
	assert.True(t, decimal.RequireFromString("42.5").Equal(*cfg.Billing.HourlyRate))
	assert.Equal(t, "15", cfg.Billing.DefaultOverhead.String())
	assert.Equal(t, []string{"#111111", "#222222"}, cfg.Reporting.Palette)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, int64(3), cfg.Application.ProfileID)
	assert.Equal(t, "json", cfg.Application.LogFormat)
	assert.Equal(t, "01/02/2006", cfg.Reporting.DateFormat, "unset keys keep defaults")
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := isolatedLoader(t).WithConfigFile(filepath.Join(dir, "nope.toml")).Load()
		assert.Error(t, err)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		path := writeFile(t, dir, "bad.toml", "[database\nfilename = ")
		_, err := isolatedLoader(t).WithConfigFile(path).Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeFile(t, dir, "invalid.toml", "[application]\nlog_format = \"xml\"\n")
		_, err := isolatedLoader(t).WithConfigFile(path).Load()
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "application.log_format", cfgErr.Field)
	})
}

func TestLoader_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", sampleTOML)
	envPath := writeFile(t, dir, ".env", "JT_SERVER_ADDR=:7000\nJT_PROFILE_ID=5\n")

	require.NoError(t, os.Unsetenv("JT_SERVER_ADDR"))
	t.Cleanup(func() { _ = os.Unsetenv("JT_SERVER_ADDR") })
	t.Setenv("JT_PROFILE_ID", "8")

	loader := isolatedLoader(t).WithConfigFile(path).WithEnvFile(envPath)
	timeout := 5 * time.Second
	overhead := decimal.NewFromInt(20)
	cfg, err := loader.LoadWithOverrides(&ConfigOverrides{
		DBQueryTimeout:  &timeout,
		DefaultOverhead: &overhead,
	})
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr, ".env beats the config file")
	assert.Equal(t, int64(8), cfg.Application.ProfileID, "process env beats .env")
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout, "flags beat everything")
	assert.Equal(t, "20", cfg.Billing.DefaultOverhead.String())
	assert.Equal(t, "site.db", cfg.Database.Filename)
}

func TestLoader_OverridesRevalidate(t *testing.T) {
	bad := "yaml"
	_, err := isolatedLoader(t).LoadWithOverrides(&ConfigOverrides{LogFormat: &bad})
	assert.Error(t, err)
}

func TestSave_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := NewConfig()
	rate := decimal.RequireFromString("55.25")
	cfg.Billing.HourlyRate = &rate
	cfg.Server.Addr = ":8181"

	require.NoError(t, Save(cfg, path))

	loaded, err := isolatedLoader(t).WithConfigFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, ":8181", loaded.Server.Addr)
	require.NotNil(t, loaded.Billing.HourlyRate)
	assert.Equal(t, "55.25", loaded.Billing.HourlyRate.String())
}

func TestCreateRepository(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = filepath.Join(t.TempDir(), "db")

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	assert.FileExists(t, cfg.GetDatabasePath())

	profile := &sqlite.Profile{Name: "Ann", Email: "ann@example.com", Role: "user"}
	require.NoError(t, repo.CreateProfile(context.Background(), profile))

	profiles, err := repo.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	profiles, err := repo.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}
