package cli

import (
	"context"
	"fmt"
	"strings"

	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/report"
)

// ReportSummaryCommand handles the report summary command
type ReportSummaryCommand struct {
	app    *App
	filter filterFlags
}

// NewReportSummaryCommand creates a new report summary command handler
func NewReportSummaryCommand(app *App, filter filterFlags) *ReportSummaryCommand {
	return &ReportSummaryCommand{app: app, filter: filter}
}

// Execute prints the dashboard totals
func (c *ReportSummaryCommand) Execute(ctx context.Context, args []string) error {
	f, actor, err := prepareReport(ctx, c.app, c.filter)
	if err != nil {
		return c.app.errorHandler.Handle("build summary", err)
	}

	s, err := c.app.services.Reporting.Summary(ctx, actor, f)
	if err != nil {
		return c.app.errorHandler.Handle("build summary", err)
	}

	printTitle(c.app.out, "Summary")
	c.app.printf("%-16s %d\n", "Entries", s.EntryCount)
	c.app.printf("%-16s %s\n", "Total hours", hours(s.TotalHours))
	c.app.printf("%-16s %s\n", "Total expenses", money(s.TotalExpenses))

	if len(s.Locations) > 0 {
		c.app.println()
		c.app.println(headerStyle.Render(fmt.Sprintf("%-24s %8s %12s", "Location", "Hours", "Expenses")))
		for _, loc := range s.Locations {
			lt := s.ByLocation[loc]
			c.app.printf("%-24s %8s %12s\n", loc, hours(lt.Hours), money(lt.Expenses))
		}
	}

	if employees := s.Employees(); len(employees) > 0 {
		c.app.println()
		c.app.println(headerStyle.Render(fmt.Sprintf("%-24s %8s", "Employee", "Hours")))
		for _, name := range employees {
			c.app.printf("%-24s %8s\n", name, hours(s.HoursByEmployee[name]))
		}
	}
	return nil
}

// ReportGroupsCommand handles the report groups command
type ReportGroupsCommand struct {
	app    *App
	filter filterFlags
}

// NewReportGroupsCommand creates a new report groups command handler
func NewReportGroupsCommand(app *App, filter filterFlags) *ReportGroupsCommand {
	return &ReportGroupsCommand{app: app, filter: filter}
}

// Execute prints entries nested by employee then location
func (c *ReportGroupsCommand) Execute(ctx context.Context, args []string) error {
	f, actor, err := prepareReport(ctx, c.app, c.filter)
	if err != nil {
		return c.app.errorHandler.Handle("group entries", err)
	}

	groups, err := c.app.services.Reporting.Groups(ctx, actor, f)
	if err != nil {
		return c.app.errorHandler.Handle("group entries", err)
	}

	if len(groups) == 0 {
		c.app.println("No entries found")
		return nil
	}

	for i, pg := range groups {
		if i > 0 {
			c.app.println()
		}
		printTitle(c.app.out, fmt.Sprintf("%s  %s h  %s", pg.Name, hours(pg.Hours), money(pg.Expenses)))
		for _, lg := range pg.Locations {
			c.app.println(headerStyle.Render(fmt.Sprintf("  %s  %s h  %s", lg.Location, hours(lg.Hours), money(lg.Expenses))))
			for _, te := range lg.Entries {
				start, end := te.ReportTimes()
				c.app.printf("    %s  %s-%s\n", te.Date.Format(domain.DateLayout), start, end)
			}
		}
	}
	return nil
}

// ReportDailyCommand handles the report daily command
type ReportDailyCommand struct {
	app    *App
	filter filterFlags
}

// NewReportDailyCommand creates a new report daily command handler
func NewReportDailyCommand(app *App, filter filterFlags) *ReportDailyCommand {
	return &ReportDailyCommand{app: app, filter: filter}
}

// Execute prints one row per day with a column per employee
func (c *ReportDailyCommand) Execute(ctx context.Context, args []string) error {
	f, actor, err := prepareReport(ctx, c.app, c.filter)
	if err != nil {
		return c.app.errorHandler.Handle("build daily chart", err)
	}

	chart, err := c.app.services.Reporting.Daily(ctx, actor, f)
	if err != nil {
		return c.app.errorHandler.Handle("build daily chart", err)
	}

	header := []string{fmt.Sprintf("%-10s", "Date")}
	for _, name := range chart.Employees {
		header = append(header, swatch(fmt.Sprintf("%10s", name), chart.Colors[name]))
	}
	c.app.println(strings.Join(header, " "))

	for _, p := range chart.Points {
		row := []string{p.Date.Format(domain.DateLayout)}
		for _, name := range chart.Employees {
			row = append(row, fmt.Sprintf("%10s", hours(p.Hours[name])))
		}
		c.app.println(strings.Join(row, " "))
	}
	return nil
}

// ReportInvoiceCommand handles the report invoice command
type ReportInvoiceCommand struct {
	app     *App
	filter  filterFlags
	pricing pricingFlags
}

// NewReportInvoiceCommand creates a new report invoice command handler
func NewReportInvoiceCommand(app *App, filter filterFlags, pricing pricingFlags) *ReportInvoiceCommand {
	return &ReportInvoiceCommand{app: app, filter: filter, pricing: pricing}
}

// Execute prints labor, expense lines and the priced totals
func (c *ReportInvoiceCommand) Execute(ctx context.Context, args []string) error {
	f, actor, err := prepareReport(ctx, c.app, c.filter)
	if err != nil {
		return c.app.errorHandler.Handle("build invoice", err)
	}
	opts, err := c.pricing.options(c.app.billingDefaults())
	if err != nil {
		return c.app.errorHandler.Handle("build invoice", err)
	}

	inv, err := c.app.services.Reporting.Invoice(ctx, actor, f, opts)
	if err != nil {
		return c.app.errorHandler.Handle("build invoice", err)
	}

	title := "Invoice"
	if f.Location != "" {
		title += " - " + f.Location
	}
	printTitle(c.app.out, title)

	c.app.println(headerStyle.Render(fmt.Sprintf("%-24s %8s %12s", "Labor", "Hours", "Amount")))
	for _, l := range inv.Labor {
		c.app.printf("%-24s %8s %12s\n", l.Employee, hours(l.Hours), money(l.Amount))
	}

	c.app.println()
	c.app.println(headerStyle.Render(fmt.Sprintf("%-10s %-24s %-20s %12s", "Date", "Expense", "Retailer", "Amount")))
	for _, x := range inv.Expenses {
		c.app.printf("%-10s %-24s %-20s %12s\n", x.Date.Format(domain.DateLayout), x.Description, x.Retailer, money(x.Amount))
	}

	c.app.println()
	c.app.printf("%-20s %12s\n", "Subtotal", money(inv.Cost.Subtotal))
	c.app.printf("%-20s %12s\n", fmt.Sprintf("Overhead (%s%%)", inv.Cost.OverheadPercentage.String()), money(inv.Cost.OverheadAmount))
	c.app.println(totalStyle.Render(fmt.Sprintf("%-20s %12s", "Total", money(inv.Cost.Total))))
	return nil
}

// prepareReport parses the filter flags and loads the acting profile
func prepareReport(ctx context.Context, app *App, flags filterFlags) (report.Filter, domain.Profile, error) {
	f, err := flags.filter()
	if err != nil {
		return report.Filter{}, domain.Profile{}, err
	}
	actor, err := app.actor(ctx)
	if err != nil {
		return report.Filter{}, domain.Profile{}, err
	}
	return f, actor, nil
}

// billingDefaults returns the configured invoice pricing
func (a *App) billingDefaults() report.InvoiceOptions {
	return report.InvoiceOptions{
		Rate:               a.config.Billing.HourlyRate,
		OverheadPercentage: a.config.Billing.DefaultOverhead,
	}
}
