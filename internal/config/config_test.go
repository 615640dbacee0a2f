package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "jobsite.db", cfg.Database.Filename)
	assert.Equal(t, 10*time.Second, cfg.GetQueryTimeout())
	assert.Equal(t, int64(5<<20), cfg.Receipts.MaxBytes)
	assert.Contains(t, cfg.Receipts.AllowedTypes, "image/webp")
	assert.Equal(t, "01/02/2006", cfg.Reporting.DateFormat)
	assert.Nil(t, cfg.Billing.HourlyRate)
	assert.True(t, cfg.Billing.DefaultOverhead.IsZero())
	assert.Equal(t, "text", cfg.Application.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty db dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"empty db filename", func(c *Config) { c.Database.Filename = "" }, "database.filename"},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"empty receipts dir", func(c *Config) { c.Receipts.Dir = "" }, "receipts.dir"},
		{"zero receipt limit", func(c *Config) { c.Receipts.MaxBytes = 0 }, "receipts.max_bytes"},
		{"no receipt types", func(c *Config) { c.Receipts.AllowedTypes = nil }, "receipts.allowed_types"},
		{"empty date format", func(c *Config) { c.Reporting.DateFormat = "" }, "reporting.date_format"},
		{"negative rate", func(c *Config) { c.Billing.HourlyRate = &negative }, "billing.hourly_rate"},
		{"negative overhead", func(c *Config) { c.Billing.DefaultOverhead = negative }, "billing.default_overhead"},
		{"zero app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
		{"bad log level", func(c *Config) { c.Application.LogLevel = "loud" }, "application.log_level"},
		{"bad log format", func(c *Config) { c.Application.LogFormat = "xml" }, "application.log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("JT_DB_DIR", "/tmp/jt")
	t.Setenv("JT_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("JT_DB_DIR_PERMISSIONS", "700")
	t.Setenv("JT_RECEIPTS_MAX_BYTES", "1024")
	t.Setenv("JT_HOURLY_RATE", "42.50")
	t.Setenv("JT_DEFAULT_OVERHEAD", "12.5")
	t.Setenv("JT_APP_VERBOSE", "true")
	t.Setenv("JT_PROFILE_ID", "9")
	t.Setenv("JT_APP_TIMEOUT", "not-a-duration")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/jt", cfg.Database.Dir)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, uint32(0700), cfg.Database.DirPermissions)
	assert.Equal(t, int64(1024), cfg.Receipts.MaxBytes)
	require.NotNil(t, cfg.Billing.HourlyRate)
	assert.Equal(t, "42.5", cfg.Billing.HourlyRate.String())
	assert.Equal(t, "12.5", cfg.Billing.DefaultOverhead.String())
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, int64(9), cfg.Application.ProfileID)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout, "unparseable values keep the default")
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 2*time.Minute, ParseDurationWithFallback("2m", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("soon", time.Second))
	assert.Equal(t, int64(12), ParseInt64WithFallback("12", 1))
	assert.Equal(t, int64(1), ParseInt64WithFallback("twelve", 1))
	assert.True(t, ParseBoolWithFallback("yes", true))
	assert.False(t, ParseBoolWithFallback("0", true))
	assert.Equal(t, uint32(0644), ParseUint32WithFallback("644", 8, 0))
	assert.Equal(t, "1.5", ParseDecimalWithFallback("1.5", decimal.Zero).String())
	assert.True(t, ParseDecimalWithFallback("x", decimal.Zero).IsZero())
}
