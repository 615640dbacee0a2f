package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/calc"
	"jobsite-tracker/internal/domain"
)

// LocationTotals holds the hours and expense spend at one job site.
type LocationTotals struct {
	Hours    decimal.Decimal `json:"hours"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Summary is the dashboard roll-up of a set of entries and standalone expenses.
// Employees are keyed by display name, so two people sharing a name share a row.
type Summary struct {
	EntryCount      int                        `json:"entry_count"`
	TotalHours      decimal.Decimal            `json:"total_hours"`
	TotalExpenses   decimal.Decimal            `json:"total_expenses"`
	HoursByEmployee map[string]decimal.Decimal `json:"hours_by_employee"`
	ByLocation      map[string]LocationTotals  `json:"by_location"`
	Locations       []string                   `json:"locations"`
}

// Summarize totals hours and expenses. Total expenses include both entry
// expenses and standalone ones; standalone expenses have no location.
func Summarize(entries []domain.TimeEntry, standalone []domain.Expense) Summary {
	s := Summary{
		EntryCount:      len(entries),
		TotalHours:      decimal.Zero,
		TotalExpenses:   decimal.Zero,
		HoursByEmployee: make(map[string]decimal.Decimal),
		ByLocation:      make(map[string]LocationTotals),
		Locations:       []string{},
	}

	for _, te := range entries {
		h := calc.Hours(te)
		spent := te.ExpenseTotal()

		s.TotalHours = s.TotalHours.Add(h)
		s.TotalExpenses = s.TotalExpenses.Add(spent)

		name := te.EmployeeOrSelf()
		s.HoursByEmployee[name] = s.HoursByEmployee[name].Add(h)

		lt, seen := s.ByLocation[te.Location]
		if !seen {
			lt = LocationTotals{Hours: decimal.Zero, Expenses: decimal.Zero}
			s.Locations = append(s.Locations, te.Location)
		}
		lt.Hours = lt.Hours.Add(h)
		lt.Expenses = lt.Expenses.Add(spent)
		s.ByLocation[te.Location] = lt
	}

	for _, x := range standalone {
		s.TotalExpenses = s.TotalExpenses.Add(x.Amount)
	}

	sort.Strings(s.Locations)
	return s
}

// Employees returns the employee names in the summary, sorted.
func (s Summary) Employees() []string {
	names := make([]string, 0, len(s.HoursByEmployee))
	for name := range s.HoursByEmployee {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
