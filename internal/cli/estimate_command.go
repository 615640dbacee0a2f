package cli

import (
	"context"
	"fmt"

	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/services"
)

// EstimateCreateCommand handles the estimate create command
type EstimateCreateCommand struct {
	app *App
}

// NewEstimateCreateCommand creates a new estimate create command handler
func NewEstimateCreateCommand(app *App) *EstimateCreateCommand {
	return &EstimateCreateCommand{app: app}
}

// Execute saves a worksheet read from a TOML file
func (c *EstimateCreateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("args", args, "expected one worksheet file")
	}

	ws, err := loadWorksheetFile(args[0])
	if err != nil {
		return err
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("create worksheet", err)
	}

	view, err := c.app.services.Estimates.CreateWorksheet(ctx, actor, ws)
	if err != nil {
		return c.app.errorHandler.Handle("create worksheet", err)
	}

	printWorksheet(c.app, view)
	return nil
}

// EstimateUpdateCommand handles the estimate update command
type EstimateUpdateCommand struct {
	app *App
}

// NewEstimateUpdateCommand creates a new estimate update command handler
func NewEstimateUpdateCommand(app *App) *EstimateUpdateCommand {
	return &EstimateUpdateCommand{app: app}
}

// Execute replaces a worksheet's job name, overhead and rows from a TOML file
func (c *EstimateUpdateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("args", args, "expected a worksheet id and a worksheet file")
	}
	id, err := parseID("id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	ws, err := loadWorksheetFile(args[1])
	if err != nil {
		return err
	}
	ws.ID = id

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("update worksheet", err)
	}

	view, err := c.app.services.Estimates.UpdateWorksheet(ctx, actor, ws)
	if err != nil {
		return c.app.errorHandler.Handle("update worksheet", err)
	}

	printWorksheet(c.app, view)
	return nil
}

// EstimateShowCommand handles the estimate show command
type EstimateShowCommand struct {
	app *App
}

// NewEstimateShowCommand creates a new estimate show command handler
func NewEstimateShowCommand(app *App) *EstimateShowCommand {
	return &EstimateShowCommand{app: app}
}

// Execute prints a worksheet with its totals
func (c *EstimateShowCommand) Execute(ctx context.Context, args []string) error {
	view, err := c.load(ctx, args, "show worksheet")
	if err != nil {
		return err
	}
	printWorksheet(c.app, view)
	return nil
}

func (c *EstimateShowCommand) load(ctx context.Context, args []string, operation string) (*services.WorksheetView, error) {
	if len(args) != 1 {
		return nil, errors.NewInvalidInputError("args", args, "expected one worksheet id")
	}
	id, err := parseID("id", args[0])
	if err != nil {
		return nil, c.app.errorHandler.HandleSimple(err)
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return nil, c.app.errorHandler.Handle(operation, err)
	}

	view, err := c.app.services.Estimates.GetWorksheet(ctx, actor, id)
	if err != nil {
		return nil, c.app.errorHandler.Handle(operation, err)
	}
	return view, nil
}

// EstimateReviseCommand handles the estimate revise command
type EstimateReviseCommand struct {
	app *App
}

// NewEstimateReviseCommand creates a new estimate revise command handler
func NewEstimateReviseCommand(app *App) *EstimateReviseCommand {
	return &EstimateReviseCommand{app: app}
}

// Execute copies a worksheet as the next version of its job
func (c *EstimateReviseCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("args", args, "expected one worksheet id")
	}
	id, err := parseID("id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("revise worksheet", err)
	}

	view, err := c.app.services.Estimates.ReviseWorksheet(ctx, actor, id)
	if err != nil {
		return c.app.errorHandler.Handle("revise worksheet", err)
	}

	printWorksheet(c.app, view)
	return nil
}

// EstimateListCommand handles the estimate list command
type EstimateListCommand struct {
	app *App
}

// NewEstimateListCommand creates a new estimate list command handler
func NewEstimateListCommand(app *App) *EstimateListCommand {
	return &EstimateListCommand{app: app}
}

// Execute lists worksheets, or every version of one job when a name is given
func (c *EstimateListCommand) Execute(ctx context.Context, args []string) error {
	jobName := ""
	if len(args) > 0 {
		jobName = args[0]
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list worksheets", err)
	}

	views, err := c.app.services.Estimates.ListWorksheets(ctx, actor, jobName)
	if err != nil {
		return c.app.errorHandler.Handle("list worksheets", err)
	}

	if len(views) == 0 {
		c.app.println("No worksheets found")
		return nil
	}

	c.app.println(headerStyle.Render(fmt.Sprintf("%-5s %-30s %5s %14s %10s", "ID", "Job", "Rows", "Total", "Updated")))
	for _, v := range views {
		c.app.printf("%-5d %-30s %5d %14s %10s\n", v.Worksheet.ID, v.Worksheet.JobName, len(v.Worksheet.Rows),
			money(v.Cost.Total), v.Worksheet.UpdatedAt.Format(domain.DateLayout))
	}
	return nil
}

// EstimateExportCommand handles the estimate export command
type EstimateExportCommand struct {
	app *App
	out string
}

// NewEstimateExportCommand creates a new estimate export command handler
func NewEstimateExportCommand(app *App, out string) *EstimateExportCommand {
	return &EstimateExportCommand{app: app, out: out}
}

// Execute writes a worksheet as an .xlsx spreadsheet
func (c *EstimateExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("args", args, "expected one worksheet id")
	}
	id, err := parseID("id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}
	if c.out == "" {
		return c.app.errorHandler.HandleSimple(errors.NewInvalidInputError("out", "", "an output file is required for spreadsheets"))
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("export worksheet", err)
	}

	w, closeFn, err := c.app.openOutput(c.out)
	if err != nil {
		return c.app.errorHandler.Handle("export worksheet", err)
	}
	defer closeFn()

	if err := c.app.services.Exports.ExportWorksheet(ctx, actor, id, w); err != nil {
		return c.app.errorHandler.Handle("export worksheet", err)
	}

	if c.out != "-" {
		c.app.printf("Wrote %s\n", c.out)
	}
	return nil
}

// EstimateDeleteCommand handles the estimate delete command
type EstimateDeleteCommand struct {
	app *App
}

// NewEstimateDeleteCommand creates a new estimate delete command handler
func NewEstimateDeleteCommand(app *App) *EstimateDeleteCommand {
	return &EstimateDeleteCommand{app: app}
}

// Execute deletes one worksheet version
func (c *EstimateDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("args", args, "expected one worksheet id")
	}
	id, err := parseID("id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("delete worksheet", err)
	}

	if err := c.app.services.Estimates.DeleteWorksheet(ctx, actor, id); err != nil {
		return c.app.errorHandler.Handle("delete worksheet", err)
	}

	c.app.printf("Deleted worksheet %d\n", id)
	return nil
}

func printWorksheet(app *App, view *services.WorksheetView) {
	ws := view.Worksheet
	printTitle(app.out, fmt.Sprintf("%s (#%d)", ws.JobName, ws.ID))

	app.println(headerStyle.Render(fmt.Sprintf("%-30s %14s", "Item", "Cost")))
	for _, row := range ws.Rows {
		app.printf("%-30s %14s\n", row.Item, money(row.Cost))
	}

	app.println()
	app.printf("%-30s %14s\n", "Subtotal", money(view.Cost.Subtotal))
	app.printf("%-30s %14s\n", fmt.Sprintf("Overhead (%s%%)", view.Cost.OverheadPercentage.String()), money(view.Cost.OverheadAmount))
	app.println(totalStyle.Render(fmt.Sprintf("%-30s %14s", "Total", money(view.Cost.Total))))
}
