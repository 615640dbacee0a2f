package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jobsite-tracker/internal/config"
	"jobsite-tracker/internal/logging"
	"jobsite-tracker/internal/services"
)

// Opener builds the services for a loaded configuration. The returned close
// function releases whatever the services hold open.
type Opener func(cfg *config.Config, logger logrus.FieldLogger) (*services.Container, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
	open   Opener
	close  func() error

	configFile string
	in         io.Reader
	out        io.Writer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(open Opener) *RootCommand {
	root := &RootCommand{
		open: open,
		in:   os.Stdin,
		out:  os.Stdout,
	}

	root.cmd = &cobra.Command{
		Use:   "jt",
		Short: "Track job-site hours, expenses and estimates",
		Long: `Job-site tracker (jt) records the hours people work at job sites, the
expenses bought for each job, and cost estimates for upcoming work.

EXAMPLES:
  jt profile add "Ann Lee" ann@example.com             # Create a profile
  jt entry submit week.toml                            # Submit a batch of entries
  jt entry list --from 2024-03-01 --location "Elm St"  # List entries
  jt expense add --amount 12.50 --description Paint --retailer "Hardware Co"
  jt report summary --from 2024-03-01 --to 2024-03-31  # Dashboard totals
  jt report invoice --location "Elm St" --rate 45      # Invoice for one site
  jt export entries --out march.csv                    # CSV download
  jt estimate create deck.toml                         # New estimate worksheet
  jt estimate revise 3                                 # Copy as the next version
  jt serve                                             # Serve reports over HTTP

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > .env file > config file > defaults

  The config file is ~/.jobsite/config.toml unless --config is given.

  Environment variables:
    JT_DB_DIR, JT_DB_FILENAME, JT_DB_QUERY_TIMEOUT
    JT_RECEIPTS_DIR, JT_RECEIPTS_BASE_URL, JT_RECEIPTS_MAX_BYTES
    JT_REPORT_DATE_FORMAT, JT_HOURLY_RATE, JT_DEFAULT_OVERHEAD
    JT_SERVER_ADDR, JT_APP_TIMEOUT, JT_APP_VERBOSE
    JT_LOG_LEVEL, JT_LOG_FORMAT, JT_PROFILE_ID`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.teardown()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetIO replaces stdin and stdout for every command
func (r *RootCommand) SetIO(in io.Reader, out io.Writer) {
	r.in = in
	r.out = out
	r.cmd.SetOut(out)
}

// SetArgs sets the arguments used instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if closeErr := r.teardown(); err == nil {
		err = closeErr
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configFile, "config", "", "Config file (default ~/.jobsite/config.toml)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides JT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides JT_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides JT_DB_QUERY_TIMEOUT)")

	// Receipts configuration
	flags.String("receipts-dir", "", "Receipt storage directory (overrides JT_RECEIPTS_DIR)")

	// Billing configuration
	flags.String("hourly-rate", "", "Default invoice hourly rate (overrides JT_HOURLY_RATE)")
	flags.String("default-overhead", "", "Default overhead percentage (overrides JT_DEFAULT_OVERHEAD)")

	// Server configuration
	flags.String("addr", "", "HTTP listen address (overrides JT_SERVER_ADDR)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides JT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides JT_APP_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides JT_LOG_LEVEL)")
	flags.String("log-format", "", "Log format, text or json (overrides JT_LOG_FORMAT)")
	flags.Int64("profile", 0, "Profile id to act as (overrides JT_PROFILE_ID)")
}

// overridesFromFlags collects the global flags the user actually set
func (r *RootCommand) overridesFromFlags(cmd *cobra.Command) (*config.ConfigOverrides, error) {
	flags := cmd.Flags()
	o := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		o.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		o.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		o.DBQueryTimeout = &v
	}
	if flags.Changed("receipts-dir") {
		v, _ := flags.GetString("receipts-dir")
		o.ReceiptsDir = &v
	}
	if flags.Changed("hourly-rate") {
		v, _ := flags.GetString("hourly-rate")
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid --hourly-rate %q: must be a number", v)
		}
		o.HourlyRate = &rate
	}
	if flags.Changed("default-overhead") {
		v, _ := flags.GetString("default-overhead")
		overhead, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid --default-overhead %q: must be a number", v)
		}
		o.DefaultOverhead = &overhead
	}
	if flags.Changed("addr") {
		v, _ := flags.GetString("addr")
		o.ServerAddr = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		o.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		o.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		o.LogFormat = &v
	}
	if flags.Changed("profile") {
		v, _ := flags.GetInt64("profile")
		o.ProfileID = &v
	}

	return o, nil
}

// setup loads the configuration, applies flag overrides and opens the services
func (r *RootCommand) setup(cmd *cobra.Command) error {
	overrides, err := r.overridesFromFlags(cmd)
	if err != nil {
		return err
	}

	loader := config.NewLoader()
	if r.configFile != "" {
		loader = loader.WithConfigFile(r.configFile)
	}
	cfg, err := loader.LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg

	level := cfg.Application.LogLevel
	if cfg.Application.Verbose {
		level = logrus.DebugLevel.String()
	}
	logger := logging.New(logging.Options{Level: level, Format: cfg.Application.LogFormat})

	if !needsServices(cmd) {
		r.app = NewApp(nil, cfg, logger).WithIO(r.in, r.out)
		return nil
	}

	container, closeFn, err := r.open(cfg, logger)
	if err != nil {
		return err
	}
	r.close = closeFn
	r.app = NewApp(container, cfg, logger).WithIO(r.in, r.out)
	return nil
}

func (r *RootCommand) teardown() error {
	if r.close == nil {
		return nil
	}
	closeFn := r.close
	r.close = nil
	return closeFn()
}

// needsServices reports whether cmd touches the database. The config
// commands only read and write the config file.
func needsServices(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" || c.Annotations["services"] == "none" {
			return false
		}
	}
	return true
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// withTimeout runs fn under the application timeout
func (r *RootCommand) withTimeout(scale int, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout()*time.Duration(scale))
	defer cancel()
	return fn(ctx)
}
