package services

import (
	"context"
	"io"

	"jobsite-tracker/internal/config"
	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/export"
	"jobsite-tracker/internal/report"
)

// exportServiceImpl implements the ExportService interface
type exportServiceImpl struct {
	timeEntryService TimeEntryService
	expenseService   ExpenseService
	reportingService ReportingService
	estimateService  EstimateService
	options          export.Options
}

// NewExportService creates a new ExportService instance
func NewExportService(timeEntryService TimeEntryService, expenseService ExpenseService, reportingService ReportingService, estimateService EstimateService, cfg *config.Config) ExportService {
	opts := export.Options{}
	if cfg != nil {
		opts.DateFormat = cfg.Reporting.DateFormat
	}
	return &exportServiceImpl{
		timeEntryService: timeEntryService,
		expenseService:   expenseService,
		reportingService: reportingService,
		estimateService:  estimateService,
		options:          opts,
	}
}

// ExportEntries writes the filtered entries as CSV
func (x *exportServiceImpl) ExportEntries(ctx context.Context, actor domain.Profile, f report.Filter, w io.Writer) error {
	entries, err := x.timeEntryService.ListEntries(ctx, actor, f)
	if err != nil {
		return err
	}
	return export.WriteEntriesCSV(w, entries, x.options)
}

// ExportExpenses writes the standalone expenses in the date range as CSV
func (x *exportServiceImpl) ExportExpenses(ctx context.Context, actor domain.Profile, f report.Filter, w io.Writer) error {
	expenses, err := x.expenseService.ListStandalone(ctx, actor, f)
	if err != nil {
		return err
	}
	return export.WriteExpensesCSV(w, expenses, x.options)
}

// ExportInvoice writes an invoice as CSV
func (x *exportServiceImpl) ExportInvoice(ctx context.Context, actor domain.Profile, f report.Filter, opts *report.InvoiceOptions, w io.Writer) error {
	inv, err := x.reportingService.Invoice(ctx, actor, f, opts)
	if err != nil {
		return err
	}
	return export.WriteInvoiceCSV(w, *inv, x.options)
}

// ExportWorksheet writes a worksheet as an XLSX workbook
func (x *exportServiceImpl) ExportWorksheet(ctx context.Context, actor domain.Profile, id int64, w io.Writer) error {
	v, err := x.estimateService.GetWorksheet(ctx, actor, id)
	if err != nil {
		return err
	}
	return export.WriteWorksheetXLSX(w, v.Worksheet)
}
