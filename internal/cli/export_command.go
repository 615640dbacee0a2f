package cli

import (
	"context"
	"io"

	"jobsite-tracker/internal/errors"
)

// Export kinds
const (
	ExportEntries  = "entries"
	ExportExpenses = "expenses"
	ExportInvoice  = "invoice"
)

// ExportCommand handles the export commands, writing CSV to a file or stdout
type ExportCommand struct {
	app     *App
	kind    string
	filter  filterFlags
	pricing pricingFlags
	out     string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App, kind string, filter filterFlags, pricing pricingFlags, out string) *ExportCommand {
	return &ExportCommand{app: app, kind: kind, filter: filter, pricing: pricing, out: out}
}

// Execute writes the export
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	operation := "export " + c.kind

	f, actor, err := prepareReport(ctx, c.app, c.filter)
	if err != nil {
		return c.app.errorHandler.Handle(operation, err)
	}

	var write func(w io.Writer) error
	switch c.kind {
	case ExportEntries:
		write = func(w io.Writer) error {
			return c.app.services.Exports.ExportEntries(ctx, actor, f, w)
		}
	case ExportExpenses:
		write = func(w io.Writer) error {
			return c.app.services.Exports.ExportExpenses(ctx, actor, f, w)
		}
	case ExportInvoice:
		opts, err := c.pricing.options(c.app.billingDefaults())
		if err != nil {
			return c.app.errorHandler.Handle(operation, err)
		}
		write = func(w io.Writer) error {
			return c.app.services.Exports.ExportInvoice(ctx, actor, f, opts, w)
		}
	default:
		return errors.NewInvalidInputError("export", c.kind, "unknown export")
	}

	w, closeFn, err := c.app.openOutput(c.out)
	if err != nil {
		return c.app.errorHandler.Handle(operation, err)
	}
	defer closeFn()

	if err := write(w); err != nil {
		return c.app.errorHandler.Handle(operation, err)
	}
	return nil
}
