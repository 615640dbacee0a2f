package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/draft"
	"jobsite-tracker/internal/errors"
)

// expenseFlags describe a single expense on the command line
type expenseFlags struct {
	Date        string
	Amount      string
	Description string
	Retailer    string
	Entry       int64
	Receipt     string
}

// ExpenseAddCommand handles the expense add command
type ExpenseAddCommand struct {
	app   *App
	flags expenseFlags
}

// NewExpenseAddCommand creates a new expense add command handler
func NewExpenseAddCommand(app *App, flags expenseFlags) *ExpenseAddCommand {
	return &ExpenseAddCommand{app: app, flags: flags}
}

// Execute records a standalone expense, or one on an entry when --entry is given
func (c *ExpenseAddCommand) Execute(ctx context.Context, args []string) error {
	x, receipt, err := c.build()
	if err != nil {
		return c.app.errorHandler.Handle("add expense", err)
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("add expense", err)
	}

	saved, err := c.app.services.Expenses.AddExpense(ctx, actor, x, receipt)
	if err != nil {
		return c.app.errorHandler.Handle("add expense", err)
	}

	c.app.printf("%s %d: %s %s at %s\n", successStyle.Render("Added expense"), saved.ID,
		money(saved.Amount), saved.Description, saved.RetailerName)
	if saved.HasReceipt() {
		c.app.printf("Receipt: %s\n", saved.ReceiptURL)
	}
	return nil
}

func (c *ExpenseAddCommand) build() (domain.Expense, *draft.Attachment, error) {
	date := domain.DateOf(timeNow())
	if parsed, err := parseOptionalDate("date", c.flags.Date); err != nil {
		return domain.Expense{}, nil, err
	} else if parsed != nil {
		date = *parsed
	}

	amount, err := parseOptionalDecimal("amount", c.flags.Amount)
	if err != nil {
		return domain.Expense{}, nil, err
	}
	if amount == nil {
		return domain.Expense{}, nil, errors.NewInvalidInputError("amount", "", "is required")
	}

	x := domain.NewExpense(date, *amount, strings.TrimSpace(c.flags.Description), c.flags.Retailer)
	if c.flags.Entry > 0 {
		id := c.flags.Entry
		x.TimeEntryID = &id
	}

	if c.flags.Receipt == "" {
		return x, nil, nil
	}

	data, err := os.ReadFile(c.flags.Receipt)
	if err != nil {
		return domain.Expense{}, nil, errors.NewInvalidInputError("receipt", c.flags.Receipt, err.Error())
	}
	return x, &draft.Attachment{Filename: filepath.Base(c.flags.Receipt), Data: data}, nil
}

// ExpenseListCommand handles the expense list command
type ExpenseListCommand struct {
	app    *App
	filter filterFlags
}

// NewExpenseListCommand creates a new expense list command handler
func NewExpenseListCommand(app *App, filter filterFlags) *ExpenseListCommand {
	return &ExpenseListCommand{app: app, filter: filter}
}

// Execute lists standalone expenses newest first
func (c *ExpenseListCommand) Execute(ctx context.Context, args []string) error {
	f, err := c.filter.filter()
	if err != nil {
		return c.app.errorHandler.Handle("list expenses", err)
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list expenses", err)
	}

	expenses, err := c.app.services.Expenses.ListStandalone(ctx, actor, f)
	if err != nil {
		return c.app.errorHandler.Handle("list expenses", err)
	}

	if len(expenses) == 0 {
		c.app.println("No expenses found")
		return nil
	}

	printExpenses(c.app, expenses)
	return nil
}

// ExpenseDeleteCommand handles the expense delete command
type ExpenseDeleteCommand struct {
	app *App
}

// NewExpenseDeleteCommand creates a new expense delete command handler
func NewExpenseDeleteCommand(app *App) *ExpenseDeleteCommand {
	return &ExpenseDeleteCommand{app: app}
}

// Execute deletes an expense and its receipt
func (c *ExpenseDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("args", args, "expected one expense id")
	}
	id, err := parseID("id", args[0])
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	actor, err := c.app.actor(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("delete expense", err)
	}

	if err := c.app.services.Expenses.DeleteExpense(ctx, actor, id); err != nil {
		return c.app.errorHandler.Handle("delete expense", err)
	}

	c.app.printf("Deleted expense %d\n", id)
	return nil
}

// RetailerListCommand handles the expense retailers command
type RetailerListCommand struct {
	app *App
}

// NewRetailerListCommand creates a new retailer list command handler
func NewRetailerListCommand(app *App) *RetailerListCommand {
	return &RetailerListCommand{app: app}
}

// Execute lists every known retailer
func (c *RetailerListCommand) Execute(ctx context.Context, args []string) error {
	retailers, err := c.app.services.Expenses.ListRetailers(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list retailers", err)
	}

	for _, r := range retailers {
		c.app.printf("%-5d %s\n", r.ID, r.Name)
	}
	return nil
}

func printExpenses(app *App, expenses []domain.Expense) {
	app.println(headerStyle.Render(fmt.Sprintf("%-5s %-10s %-24s %-20s %10s %s",
		"ID", "Date", "Description", "Retailer", "Amount", "Receipt")))

	for _, x := range expenses {
		receipt := "-"
		if x.HasReceipt() {
			receipt = x.ReceiptURL
		}
		app.printf("%-5d %-10s %-24s %-20s %10s %s\n",
			x.ID, x.Date.Format(domain.DateLayout), x.Description, x.RetailerName, money(x.Amount), receipt)
	}
}
