// Package export writes time entries, invoices and estimate worksheets in
// the formats people open outside the app: CSV and XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"jobsite-tracker/internal/calc"
	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/report"
)

// DefaultDateFormat renders dates as MM/DD/YYYY.
const DefaultDateFormat = "01/02/2006"

// Options controls how values are rendered.
type Options struct {
	DateFormat string
}

func (o Options) date(t time.Time) string {
	layout := o.DateFormat
	if layout == "" {
		layout = DefaultDateFormat
	}
	return t.Format(layout)
}

// newCSVWriter returns a writer that ends records with CRLF as RFC 4180 asks.
func newCSVWriter(w io.Writer) *csv.Writer {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	return writer
}

var entryHeader = []string{"Date", "Employee", "Location", "Start", "End", "Lunch (min)", "Hours", "Expenses"}

// WriteEntriesCSV writes one row per entry. Full-day entries show the
// reporting start and end times.
func WriteEntriesCSV(w io.Writer, entries []domain.TimeEntry, opts Options) error {
	writer := newCSVWriter(w)

	if err := writer.Write(entryHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, te := range entries {
		start, end := te.ReportTimes()
		row := []string{
			opts.date(te.Date),
			te.EmployeeOrSelf(),
			te.Location,
			start.String(),
			end.String(),
			strconv.Itoa(te.LunchMinutes()),
			calc.FormatHours(calc.Hours(te)),
			calc.FormatMoney(te.ExpenseTotal()),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

var expenseHeader = []string{"Date", "Description", "Retailer", "Amount", "Receipt"}

// WriteExpensesCSV writes one row per expense.
func WriteExpensesCSV(w io.Writer, expenses []domain.Expense, opts Options) error {
	writer := newCSVWriter(w)

	if err := writer.Write(expenseHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, x := range expenses {
		row := []string{
			opts.date(x.Date),
			x.Description,
			x.RetailerName,
			calc.FormatMoney(x.Amount),
			x.ReceiptURL,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

var invoiceHeader = []string{"Type", "Date", "Description", "Hours", "Amount"}

// WriteInvoiceCSV writes labor lines, then expense lines, then the subtotal,
// overhead and total rows.
func WriteInvoiceCSV(w io.Writer, inv report.Invoice, opts Options) error {
	writer := newCSVWriter(w)

	rows := [][]string{invoiceHeader}
	for _, l := range inv.Labor {
		rows = append(rows, []string{"Labor", "", l.Employee, calc.FormatHours(l.Hours), calc.FormatMoney(l.Amount)})
	}
	for _, x := range inv.Expenses {
		desc := x.Description
		if x.Retailer != "" {
			desc = fmt.Sprintf("%s (%s)", x.Description, x.Retailer)
		}
		rows = append(rows, []string{"Expense", opts.date(x.Date), desc, "", calc.FormatMoney(x.Amount)})
	}
	rows = append(rows,
		[]string{"Subtotal", "", "", calc.FormatHours(inv.TotalHours), calc.FormatMoney(inv.Cost.Subtotal)},
		[]string{"Overhead", "", inv.Cost.OverheadPercentage.String() + "%", "", calc.FormatMoney(inv.Cost.OverheadAmount)},
		[]string{"Total", "", "", "", calc.FormatMoney(inv.Cost.Total)},
	)

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write invoice CSV: %w", err)
	}
	return nil
}
