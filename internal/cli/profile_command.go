package cli

import (
	"context"

	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/errors"
)

// ProfileAddCommand handles the profile add command
type ProfileAddCommand struct {
	app   *App
	admin bool
}

// NewProfileAddCommand creates a new profile add command handler
func NewProfileAddCommand(app *App, admin bool) *ProfileAddCommand {
	return &ProfileAddCommand{app: app, admin: admin}
}

// Execute creates a profile from a name and an email address
func (c *ProfileAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("args", args, "expected a name and an email")
	}

	role := domain.RoleUser
	if c.admin {
		role = domain.RoleAdmin
	}

	p, err := c.app.services.Profiles.CreateProfile(ctx, domain.NewProfile(args[0], args[1], role))
	if err != nil {
		return c.app.errorHandler.Handle("create profile", err)
	}

	c.app.printf("%s %d: %s <%s> (%s)\n", successStyle.Render("Created profile"), p.ID, p.Name, p.Email, p.Role)
	c.app.println(dimStyle.Render("Act as this profile with --profile or JT_PROFILE_ID."))
	return nil
}

// ProfileListCommand handles the profile list command
type ProfileListCommand struct {
	app *App
}

// NewProfileListCommand creates a new profile list command handler
func NewProfileListCommand(app *App) *ProfileListCommand {
	return &ProfileListCommand{app: app}
}

// Execute lists every profile the current profile may see
func (c *ProfileListCommand) Execute(ctx context.Context, args []string) error {
	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list profiles", err)
	}

	profiles, err := c.app.services.Profiles.ListProfiles(ctx, actor)
	if err != nil {
		return c.app.errorHandler.Handle("list profiles", err)
	}

	c.app.printf("%s\n", headerStyle.Render("ID    Name                  Email                           Role"))
	for _, p := range profiles {
		c.app.printf("%-5d %-21s %-31s %s\n", p.ID, p.Name, p.Email, p.Role)
	}
	return nil
}
