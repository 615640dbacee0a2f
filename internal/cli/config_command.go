package cli

import (
	"context"
	"os"

	"github.com/BurntSushi/toml"

	"jobsite-tracker/internal/config"
	"jobsite-tracker/internal/errors"
)

// ConfigShowCommand handles the config show command
type ConfigShowCommand struct {
	app *App
}

// NewConfigShowCommand creates a new config show command handler
func NewConfigShowCommand(app *App) *ConfigShowCommand {
	return &ConfigShowCommand{app: app}
}

// Execute prints the effective configuration as TOML
func (c *ConfigShowCommand) Execute(ctx context.Context, args []string) error {
	return toml.NewEncoder(c.app.out).Encode(c.app.config)
}

// ConfigInitCommand handles the config init command
type ConfigInitCommand struct {
	app   *App
	path  string
	force bool
}

// NewConfigInitCommand creates a new config init command handler. An empty
// path writes the default config file.
func NewConfigInitCommand(app *App, path string, force bool) *ConfigInitCommand {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return &ConfigInitCommand{app: app, path: path, force: force}
}

// Execute writes a config file holding the default settings
func (c *ConfigInitCommand) Execute(ctx context.Context, args []string) error {
	if _, err := os.Stat(c.path); err == nil && !c.force {
		return c.app.errorHandler.HandleSimple(errors.NewInvalidInputError("path", c.path, "file exists, pass --force to replace it"))
	}

	if err := config.Save(config.NewConfig(), c.path); err != nil {
		return c.app.errorHandler.Handle("write config", err)
	}

	c.app.printf("Wrote %s\n", c.path)
	return nil
}
