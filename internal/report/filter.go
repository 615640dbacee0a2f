// Package report rolls time entries and expenses up into the totals, groups
// and chart series shown on the dashboard and invoices.
package report

import (
	"time"

	"jobsite-tracker/internal/domain"
)

// Filter selects entries by inclusive date range, employee display name and
// location. Empty fields match everything.
type Filter struct {
	From     *time.Time
	To       *time.Time
	Employee string
	Location string
}

// Narrowed reports whether the filter picks out an employee or a location.
func (f Filter) Narrowed() bool {
	return f.Employee != "" || f.Location != ""
}

// MatchesDate reports whether d falls inside the filter's date range.
func (f Filter) MatchesDate(d time.Time) bool {
	day := domain.DateOf(d)
	if f.From != nil && day.Before(domain.DateOf(*f.From)) {
		return false
	}
	if f.To != nil && day.After(domain.DateOf(*f.To)) {
		return false
	}
	return true
}

// Matches reports whether the entry passes every filter field.
func (f Filter) Matches(te domain.TimeEntry) bool {
	if !f.MatchesDate(te.Date) {
		return false
	}
	if f.Employee != "" && te.EmployeeName != f.Employee {
		return false
	}
	if f.Location != "" && te.Location != f.Location {
		return false
	}
	return true
}

// Entries returns the entries that match, preserving order.
func (f Filter) Entries(entries []domain.TimeEntry) []domain.TimeEntry {
	var out []domain.TimeEntry
	for _, te := range entries {
		if f.Matches(te) {
			out = append(out, te)
		}
	}
	return out
}

// Expenses returns the standalone expenses inside the date range.
// Standalone expenses carry no employee or location, so only dates apply.
func (f Filter) Expenses(expenses []domain.Expense) []domain.Expense {
	var out []domain.Expense
	for _, x := range expenses {
		if f.MatchesDate(x.Date) {
			out = append(out, x)
		}
	}
	return out
}

// SearchOptions converts the filter into repository search criteria.
func (f Filter) SearchOptions(owner *int64) domain.SearchOptions {
	opts := domain.SearchOptions{From: f.From, To: f.To, OwnerID: owner}
	if f.Employee != "" {
		name := f.Employee
		opts.EmployeeName = &name
	}
	if f.Location != "" {
		loc := f.Location
		opts.Location = &loc
	}
	return opts
}
