package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration options for the job-site tracker
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Receipts    ReceiptsConfig    `toml:"receipts"`
	Reporting   ReportingConfig   `toml:"reporting"`
	Billing     BillingConfig     `toml:"billing"`
	Server      ServerConfig      `toml:"server"`
	Application ApplicationConfig `toml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `toml:"dir" env:"JT_DB_DIR"`
	Filename       string        `toml:"filename" env:"JT_DB_FILENAME"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"JT_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"JT_DB_DIR_PERMISSIONS"`
}

// ReceiptsConfig holds receipt upload configuration
type ReceiptsConfig struct {
	Dir          string   `toml:"dir" env:"JT_RECEIPTS_DIR"`
	BaseURL      string   `toml:"base_url" env:"JT_RECEIPTS_BASE_URL"`
	MaxBytes     int64    `toml:"max_bytes" env:"JT_RECEIPTS_MAX_BYTES"`
	AllowedTypes []string `toml:"allowed_types"`
}

// ReportingConfig holds report and export formatting
type ReportingConfig struct {
	DateFormat string   `toml:"date_format" env:"JT_REPORT_DATE_FORMAT"`
	Palette    []string `toml:"palette"`
}

// BillingConfig holds invoice pricing defaults
type BillingConfig struct {
	HourlyRate      *decimal.Decimal `toml:"hourly_rate" env:"JT_HOURLY_RATE"`
	DefaultOverhead decimal.Decimal  `toml:"default_overhead" env:"JT_DEFAULT_OVERHEAD"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string `toml:"addr" env:"JT_SERVER_ADDR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout   time.Duration `toml:"timeout" env:"JT_APP_TIMEOUT"`
	Verbose   bool          `toml:"verbose" env:"JT_APP_VERBOSE"`
	LogLevel  string        `toml:"log_level" env:"JT_LOG_LEVEL"`
	LogFormat string        `toml:"log_format" env:"JT_LOG_FORMAT"`
	ProfileID int64         `toml:"profile_id" env:"JT_PROFILE_ID"`
}

// DefaultDir returns ~/.jobsite, the home of the config file, database and receipts.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".jobsite")
}

// DefaultConfigPath returns the config file read when none is given.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "config.toml")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	dir := DefaultDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            dir,
			Filename:       "jobsite.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Receipts: ReceiptsConfig{
			Dir:          filepath.Join(dir, "receipts"),
			BaseURL:      "/receipts",
			MaxBytes:     5 << 20,
			AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
		},
		Reporting: ReportingConfig{
			DateFormat: "01/02/2006",
		},
		Billing: BillingConfig{
			DefaultOverhead: decimal.Zero,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Application: ApplicationConfig{
			Timeout:   60 * time.Second,
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// LoadFromEnvironment loads configuration from JT_* environment variables.
// Values that fail to parse leave the current setting alone.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("JT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("JT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("JT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if perms := os.Getenv("JT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Receipts configuration
	if dir := os.Getenv("JT_RECEIPTS_DIR"); dir != "" {
		c.Receipts.Dir = dir
	}
	if baseURL := os.Getenv("JT_RECEIPTS_BASE_URL"); baseURL != "" {
		c.Receipts.BaseURL = baseURL
	}
	if maxBytes := os.Getenv("JT_RECEIPTS_MAX_BYTES"); maxBytes != "" {
		c.Receipts.MaxBytes = ParseInt64WithFallback(maxBytes, c.Receipts.MaxBytes)
	}

	// Reporting configuration
	if format := os.Getenv("JT_REPORT_DATE_FORMAT"); format != "" {
		c.Reporting.DateFormat = format
	}

	// Billing configuration
	if rate := os.Getenv("JT_HOURLY_RATE"); rate != "" {
		if d, err := decimal.NewFromString(rate); err == nil {
			c.Billing.HourlyRate = &d
		}
	}
	if overhead := os.Getenv("JT_DEFAULT_OVERHEAD"); overhead != "" {
		c.Billing.DefaultOverhead = ParseDecimalWithFallback(overhead, c.Billing.DefaultOverhead)
	}

	// Server configuration
	if addr := os.Getenv("JT_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}

	// Application configuration
	if timeout := os.Getenv("JT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("JT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if level := os.Getenv("JT_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = level
	}
	if format := os.Getenv("JT_LOG_FORMAT"); format != "" {
		c.Application.LogFormat = format
	}
	if id := os.Getenv("JT_PROFILE_ID"); id != "" {
		c.Application.ProfileID = ParseInt64WithFallback(id, c.Application.ProfileID)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate receipts configuration
	if c.Receipts.Dir == "" {
		return &ConfigError{Field: "receipts.dir", Message: "receipts directory cannot be empty"}
	}
	if c.Receipts.MaxBytes <= 0 {
		return &ConfigError{Field: "receipts.max_bytes", Message: "receipt size limit must be positive"}
	}
	if len(c.Receipts.AllowedTypes) == 0 {
		return &ConfigError{Field: "receipts.allowed_types", Message: "at least one receipt content type is required"}
	}

	// Validate reporting configuration
	if c.Reporting.DateFormat == "" {
		return &ConfigError{Field: "reporting.date_format", Message: "date format cannot be empty"}
	}

	// Validate billing configuration
	if c.Billing.HourlyRate != nil && c.Billing.HourlyRate.IsNegative() {
		return &ConfigError{Field: "billing.hourly_rate", Message: "hourly rate cannot be negative"}
	}
	if c.Billing.DefaultOverhead.IsNegative() {
		return &ConfigError{Field: "billing.default_overhead", Message: "overhead percentage cannot be negative"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if _, err := logrus.ParseLevel(c.Application.LogLevel); err != nil {
		return &ConfigError{Field: "application.log_level", Message: err.Error()}
	}
	switch c.Application.LogFormat {
	case "text", "json":
	default:
		return &ConfigError{Field: "application.log_format", Message: "log format must be text or json"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
