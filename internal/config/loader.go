package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config         *Config
	configPath     string
	envPath        string
	configRequired bool
}

// NewLoader creates a new configuration loader reading ~/.jobsite/config.toml and ./.env
func NewLoader() *Loader {
	return &Loader{
		config:     NewConfig(),
		configPath: DefaultConfigPath(),
		envPath:    ".env",
	}
}

// WithConfigFile reads the given TOML file instead of the default one.
// The file must exist.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configPath = path
	l.configRequired = true
	return l
}

// WithEnvFile reads dotenv variables from path. An empty path disables it.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envPath = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file
// 3. Load .env into the process environment without replacing set variables
// 4. Override with environment variables
// 5. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

func (l *Loader) loadFile() error {
	if l.configPath == "" {
		return nil
	}

	if _, err := os.Stat(l.configPath); errors.Is(err, fs.ErrNotExist) && !l.configRequired {
		return nil
	}

	if _, err := toml.DecodeFile(l.configPath, l.config); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", l.configPath, err)
	}
	return nil
}

func (l *Loader) loadEnvFile() error {
	if l.envPath == "" {
		return nil
	}

	if _, err := os.Stat(l.envPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(l.envPath); err != nil {
		return fmt.Errorf("failed to read env file %s: %w", l.envPath, err)
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration

	// Receipts overrides
	ReceiptsDir *string

	// Billing overrides
	HourlyRate      *decimal.Decimal
	DefaultOverhead *decimal.Decimal

	// Server overrides
	ServerAddr *string

	// Application overrides
	Timeout   *time.Duration
	Verbose   *bool
	LogLevel  *string
	LogFormat *string
	ProfileID *int64
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}

	// Receipts overrides
	if overrides.ReceiptsDir != nil {
		config.Receipts.Dir = *overrides.ReceiptsDir
	}

	// Billing overrides
	if overrides.HourlyRate != nil {
		rate := *overrides.HourlyRate
		config.Billing.HourlyRate = &rate
	}
	if overrides.DefaultOverhead != nil {
		config.Billing.DefaultOverhead = *overrides.DefaultOverhead
	}

	// Server overrides
	if overrides.ServerAddr != nil {
		config.Server.Addr = *overrides.ServerAddr
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Application.LogFormat = *overrides.LogFormat
	}
	if overrides.ProfileID != nil {
		config.Application.ProfileID = *overrides.ProfileID
	}
}

// Save writes the configuration as TOML, creating the parent directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseInt64WithFallback parses an integer string with a fallback value
func ParseInt64WithFallback(s string, fallback int64) int64 {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}

// ParseDecimalWithFallback parses a decimal string with a fallback value
func ParseDecimalWithFallback(s string, fallback decimal.Decimal) decimal.Decimal {
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return fallback
}
