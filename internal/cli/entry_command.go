package cli

import (
	"context"
	"fmt"
	"strings"

	"jobsite-tracker/internal/calc"
	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/draft"
	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/services"
)

// submitFlags adjust a batch before it is submitted
type submitFlags struct {
	Yes       bool
	Employee  string
	HoursOnly bool
}

// prepare names unnamed rows after Employee and, with HoursOnly, drops every
// expense so only hours are saved.
func (f submitFlags) prepare(batch draft.Batch) (draft.Batch, error) {
	employee := strings.TrimSpace(f.Employee)

	for _, row := range batch.Rows() {
		var err error
		if employee != "" && strings.TrimSpace(row.Entry.EmployeeName) == "" {
			batch, err = batch.Update(row.ID, func(te domain.TimeEntry) domain.TimeEntry {
				te.EmployeeName = employee
				return te
			})
			if err != nil {
				return batch, err
			}
		}
		if !f.HoursOnly {
			continue
		}
		for _, x := range row.Expenses {
			if batch, err = batch.RemoveExpense(row.ID, x.ID); err != nil {
				return batch, err
			}
		}
	}
	return batch, nil
}

// EntrySubmitCommand handles the entry submit command
type EntrySubmitCommand struct {
	app   *App
	flags submitFlags
}

// NewEntrySubmitCommand creates a new entry submit command handler. With Yes
// set, entries over eight hours are submitted without asking.
func NewEntrySubmitCommand(app *App, flags submitFlags) *EntrySubmitCommand {
	return &EntrySubmitCommand{app: app, flags: flags}
}

// Execute submits every entry in a batch file
func (c *EntrySubmitCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("args", args, "expected one batch file")
	}

	batch, err := draft.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}
	if batch, err = c.flags.prepare(batch); err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("submit entries", err)
	}

	var confirm services.Confirmer = newPromptConfirmer(c.app.in, c.app.out)
	if c.flags.Yes {
		confirm = services.AlwaysConfirm
	}

	result, err := c.app.services.Entries.SubmitBatch(ctx, actor, batch, confirm)
	if result != nil && len(result.Entries) > 0 {
		printSubmitted(c.app, result.Entries)
	}
	if err != nil {
		if c.app.errorHandler.IsCancelled(err) {
			return c.submitWithoutOverages(ctx, actor, batch)
		}
		return c.app.errorHandler.Handle("submit entries", err)
	}

	c.app.printf("%s %d of %d entries\n", successStyle.Render("Submitted"), len(result.Entries), batch.Len())
	return nil
}

// submitWithoutOverages offers to submit the entries of eight hours or less
// once the overages have been declined.
func (c *EntrySubmitCommand) submitWithoutOverages(ctx context.Context, actor domain.Profile, batch draft.Batch) error {
	kept := batch
	for _, row := range batch.Rows() {
		if calc.NeedsConfirmation([]domain.TimeEntry{row.Entry}) {
			kept = kept.Remove(row.ID)
		}
	}

	if kept.Len() == 0 {
		c.app.println("Nothing was submitted.")
		return nil
	}

	c.app.printf("Submit the other %d entries without them? [y/N]: ", kept.Len())
	var input string
	fmt.Fscanln(c.app.in, &input)
	if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
		c.app.println("Nothing was submitted.")
		return nil
	}

	result, err := c.app.services.Entries.SubmitBatch(ctx, actor, kept, nil)
	if result != nil && len(result.Entries) > 0 {
		printSubmitted(c.app, result.Entries)
	}
	if err != nil {
		return c.app.errorHandler.Handle("submit entries", err)
	}

	c.app.printf("%s %d of %d entries\n", successStyle.Render("Submitted"), len(result.Entries), batch.Len())
	return nil
}

// EntryListCommand handles the entry list command
type EntryListCommand struct {
	app    *App
	filter filterFlags
}

// NewEntryListCommand creates a new entry list command handler
func NewEntryListCommand(app *App, filter filterFlags) *EntryListCommand {
	return &EntryListCommand{app: app, filter: filter}
}

// Execute lists entries newest first
func (c *EntryListCommand) Execute(ctx context.Context, args []string) error {
	f, err := c.filter.filter()
	if err != nil {
		return c.app.errorHandler.Handle("list entries", err)
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list entries", err)
	}

	entries, err := c.app.services.Entries.ListEntries(ctx, actor, f)
	if err != nil {
		return c.app.errorHandler.Handle("list entries", err)
	}

	if len(entries) == 0 {
		c.app.println("No entries found")
		return nil
	}

	printEntries(c.app, entries)
	return nil
}

// EntryShowCommand handles the entry show command
type EntryShowCommand struct {
	app *App
}

// NewEntryShowCommand creates a new entry show command handler
func NewEntryShowCommand(app *App) *EntryShowCommand {
	return &EntryShowCommand{app: app}
}

// Execute prints one entry with its expenses
func (c *EntryShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("args", args, "expected one entry id")
	}
	id, err := parseID("id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("show entry", err)
	}

	te, err := c.app.services.Entries.GetEntry(ctx, actor, id)
	if err != nil {
		return c.app.errorHandler.Handle("show entry", err)
	}

	printEntries(c.app, []domain.TimeEntry{*te})
	if len(te.Expenses) == 0 {
		return nil
	}

	c.app.println()
	printExpenses(c.app, te.Expenses)
	return nil
}

// EntryDeleteCommand handles the entry delete command
type EntryDeleteCommand struct {
	app *App
	yes bool
}

// NewEntryDeleteCommand creates a new entry delete command handler
func NewEntryDeleteCommand(app *App, yes bool) *EntryDeleteCommand {
	return &EntryDeleteCommand{app: app, yes: yes}
}

// Execute deletes an entry and its expenses after confirmation
func (c *EntryDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("args", args, "expected one entry id")
	}
	id, err := parseID("id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("delete entry", err)
	}

	te, err := c.app.services.Entries.GetEntry(ctx, actor, id)
	if err != nil {
		return c.app.errorHandler.Handle("delete entry", err)
	}

	if !c.yes {
		c.app.printf("Delete the entry for %s at %s on %s and its %d expenses? [y/N]: ",
			te.EmployeeOrSelf(), te.Location, te.Date.Format(domain.DateLayout), len(te.Expenses))
		var input string
		fmt.Fscanln(c.app.in, &input)
		if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
			c.app.println("Delete cancelled.")
			return nil
		}
	}

	if err := c.app.services.Entries.DeleteEntry(ctx, actor, id); err != nil {
		return c.app.errorHandler.Handle("delete entry", err)
	}

	c.app.printf("Deleted entry %d\n", id)
	return nil
}

// printEntries shows entries the way reports do
func printEntries(app *App, entries []domain.TimeEntry) {
	printEntryTable(app, entries, domain.TimeEntry.ReportTimes)
}

// printSubmitted echoes just-submitted entries with the entry form's times
func printSubmitted(app *App, entries []domain.TimeEntry) {
	printEntryTable(app, entries, domain.TimeEntry.FormTimes)
}

func printEntryTable(app *App, entries []domain.TimeEntry, times func(domain.TimeEntry) (domain.ClockTime, domain.ClockTime)) {
	app.println(headerStyle.Render(fmt.Sprintf("%-5s %-10s %-18s %-20s %-5s %-5s %-5s %7s %10s",
		"ID", "Date", "Employee", "Location", "Start", "End", "Lunch", "Hours", "Expenses")))

	for _, te := range entries {
		start, end := times(te)
		lunch := "-"
		if te.LunchMinutes() > 0 {
			lunch = fmt.Sprintf("%d", te.LunchMinutes())
		}
		app.printf("%-5d %-10s %-18s %-20s %-5s %-5s %-5s %7s %10s\n",
			te.ID, te.Date.Format(domain.DateLayout), te.EmployeeOrSelf(), te.Location,
			start, end, lunch, hours(calc.Hours(te)), money(te.ExpenseTotal()))
	}

	app.println(totalStyle.Render(fmt.Sprintf("%-75s %7s", "Total", hours(calc.TotalHours(entries)))))
}
