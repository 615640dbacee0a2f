package services

import (
	"context"
	"io"

	"jobsite-tracker/internal/calc"
	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/draft"
	"jobsite-tracker/internal/report"
)

// Confirmer is asked to approve a batch that contains entries over eight hours.
type Confirmer interface {
	ConfirmOverages(ctx context.Context, overages []calc.Overage) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, overages []calc.Overage) (bool, error)

// ConfirmOverages calls f.
func (f ConfirmFunc) ConfirmOverages(ctx context.Context, overages []calc.Overage) (bool, error) {
	return f(ctx, overages)
}

// AlwaysConfirm approves every batch without asking.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, []calc.Overage) (bool, error) {
	return true, nil
})

// SubmitResult is what a successful batch submission wrote.
type SubmitResult struct {
	Entries  []domain.TimeEntry `json:"entries"`
	Overages []calc.Overage     `json:"overages"`
}

// DailyChart is a daily hours series with a stable color per employee.
type DailyChart struct {
	report.DailySeries
	Colors map[string]string `json:"colors"`
}

// WorksheetView is a saved worksheet with its derived totals.
type WorksheetView struct {
	Worksheet domain.EstimateWorksheet `json:"worksheet"`
	Cost      calc.CostSummary         `json:"cost"`
}

// ProfileService defines operations on the people who use the system
type ProfileService interface {
	CreateProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error)
	GetProfile(ctx context.Context, id int64) (*domain.Profile, error)
	// ListProfiles returns every profile to admins and only the actor otherwise
	ListProfiles(ctx context.Context, actor domain.Profile) ([]domain.Profile, error)
}

// TimeEntryService defines operations for submitting and reading time entries
type TimeEntryService interface {
	// SubmitBatch validates the whole batch, asks confirm about any entry over
	// eight hours, then writes entries one by one with their expenses.
	// Nothing is written when validation fails or confirmation is declined.
	SubmitBatch(ctx context.Context, actor domain.Profile, batch draft.Batch, confirm Confirmer) (*SubmitResult, error)
	ListEntries(ctx context.Context, actor domain.Profile, f report.Filter) ([]domain.TimeEntry, error)
	GetEntry(ctx context.Context, actor domain.Profile, id int64) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, actor domain.Profile, id int64) error
}

// ExpenseService defines operations on expenses and retailers
type ExpenseService interface {
	// AddExpense saves a standalone expense, or one bound to an entry when
	// TimeEntryID is set. The receipt is optional.
	AddExpense(ctx context.Context, actor domain.Profile, x domain.Expense, receipt *draft.Attachment) (*domain.Expense, error)
	ListStandalone(ctx context.Context, actor domain.Profile, f report.Filter) ([]domain.Expense, error)
	DeleteExpense(ctx context.Context, actor domain.Profile, id int64) error
	ListRetailers(ctx context.Context) ([]domain.Retailer, error)
}

// ReportingService defines the dashboard and invoice roll-ups
type ReportingService interface {
	Summary(ctx context.Context, actor domain.Profile, f report.Filter) (*report.Summary, error)
	Groups(ctx context.Context, actor domain.Profile, f report.Filter) ([]report.PersonGroup, error)
	// Daily requires both ends of the filter's date range
	Daily(ctx context.Context, actor domain.Profile, f report.Filter) (*DailyChart, error)
	// Invoice prices with opts when given, else with the configured billing defaults
	Invoice(ctx context.Context, actor domain.Profile, f report.Filter, opts *report.InvoiceOptions) (*report.Invoice, error)
}

// EstimateService defines operations on estimate worksheets
type EstimateService interface {
	CreateWorksheet(ctx context.Context, actor domain.Profile, ws domain.EstimateWorksheet) (*WorksheetView, error)
	UpdateWorksheet(ctx context.Context, actor domain.Profile, ws domain.EstimateWorksheet) (*WorksheetView, error)
	GetWorksheet(ctx context.Context, actor domain.Profile, id int64) (*WorksheetView, error)
	// ReviseWorksheet saves a copy named after the highest version in the lineage
	ReviseWorksheet(ctx context.Context, actor domain.Profile, id int64) (*WorksheetView, error)
	// ListWorksheets lists the actor's worksheets; a non-empty jobName limits
	// the list to that job's lineage, oldest version first
	ListWorksheets(ctx context.Context, actor domain.Profile, jobName string) ([]WorksheetView, error)
	DeleteWorksheet(ctx context.Context, actor domain.Profile, id int64) error
}

// ExportService defines the CSV and spreadsheet downloads
type ExportService interface {
	ExportEntries(ctx context.Context, actor domain.Profile, f report.Filter, w io.Writer) error
	ExportExpenses(ctx context.Context, actor domain.Profile, f report.Filter, w io.Writer) error
	ExportInvoice(ctx context.Context, actor domain.Profile, f report.Filter, opts *report.InvoiceOptions, w io.Writer) error
	ExportWorksheet(ctx context.Context, actor domain.Profile, id int64, w io.Writer) error
}
