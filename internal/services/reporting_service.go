package services

import (
	"context"

	"jobsite-tracker/internal/config"
	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/report"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	timeEntryService TimeEntryService
	expenseService   ExpenseService
	config           *config.Config
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(timeEntryService TimeEntryService, expenseService ExpenseService, cfg *config.Config) ReportingService {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &reportingServiceImpl{
		timeEntryService: timeEntryService,
		expenseService:   expenseService,
		config:           cfg,
	}
}

// load fetches the filtered entries and the standalone expenses in the same date range
func (r *reportingServiceImpl) load(ctx context.Context, actor domain.Profile, f report.Filter) ([]domain.TimeEntry, []domain.Expense, error) {
	entries, err := r.timeEntryService.ListEntries(ctx, actor, f)
	if err != nil {
		return nil, nil, err
	}

	standalone, err := r.expenseService.ListStandalone(ctx, actor, f)
	if err != nil {
		return nil, nil, err
	}

	return entries, standalone, nil
}

// Summary returns the dashboard totals. Standalone expenses belong to no
// employee or location, so a narrowed summary leaves them out.
func (r *reportingServiceImpl) Summary(ctx context.Context, actor domain.Profile, f report.Filter) (*report.Summary, error) {
	entries, standalone, err := r.load(ctx, actor, f)
	if err != nil {
		return nil, err
	}
	if f.Narrowed() {
		standalone = nil
	}

	summary := report.Summarize(entries, standalone)
	return &summary, nil
}

// Groups returns entries nested by person and location
func (r *reportingServiceImpl) Groups(ctx context.Context, actor domain.Profile, f report.Filter) ([]report.PersonGroup, error) {
	entries, err := r.timeEntryService.ListEntries(ctx, actor, f)
	if err != nil {
		return nil, err
	}
	return report.GroupByPerson(entries), nil
}

// Daily returns the zero-filled hours series for the filter's date range
func (r *reportingServiceImpl) Daily(ctx context.Context, actor domain.Profile, f report.Filter) (*DailyChart, error) {
	if f.From == nil || f.To == nil {
		return nil, errors.NewValidationError("a daily chart needs both a start and an end date", nil)
	}

	entries, err := r.timeEntryService.ListEntries(ctx, actor, f)
	if err != nil {
		return nil, err
	}

	series := report.Daily(entries, *f.From, *f.To)
	return &DailyChart{
		DailySeries: series,
		Colors:      report.AssignColors(series.Employees, r.config.Reporting.Palette),
	}, nil
}

// Invoice builds an invoice for the filter
func (r *reportingServiceImpl) Invoice(ctx context.Context, actor domain.Profile, f report.Filter, opts *report.InvoiceOptions) (*report.Invoice, error) {
	entries, standalone, err := r.load(ctx, actor, f)
	if err != nil {
		return nil, err
	}

	if opts == nil {
		opts = &report.InvoiceOptions{
			Rate:               r.config.Billing.HourlyRate,
			OverheadPercentage: r.config.Billing.DefaultOverhead,
		}
	}
	if opts.OverheadPercentage.IsNegative() {
		return nil, errors.NewInvalidInputError("overhead_percentage", opts.OverheadPercentage.String(), "must not be negative")
	}

	inv := report.BuildInvoice(entries, standalone, f, *opts)
	return &inv, nil
}
