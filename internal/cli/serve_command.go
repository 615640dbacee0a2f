package cli

import (
	"context"

	"github.com/gin-gonic/gin"

	"jobsite-tracker/internal/api"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute serves the HTTP API until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	if !c.app.config.Application.Verbose && c.app.config.Application.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := api.NewServer(c.app.services, c.app.config, c.app.logger)

	c.app.printf("Serving on http://%s\n", server.Addr())
	return server.Run(ctx)
}
