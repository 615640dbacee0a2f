package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/calc"
	"jobsite-tracker/internal/domain"
)

// DailyPoint is one day of the activity chart.
type DailyPoint struct {
	Date  time.Time                  `json:"date"`
	Hours map[string]decimal.Decimal `json:"hours"`
}

// DailySeries is the per-day, per-employee hours chart.
type DailySeries struct {
	Employees []string     `json:"employees"`
	Points    []DailyPoint `json:"points"`
}

// Daily builds one point per day in the inclusive range [start, end]. Every
// employee that appears in the range gets a value on every day, zero when
// they logged nothing. Entries outside the range are ignored.
func Daily(entries []domain.TimeEntry, start, end time.Time) DailySeries {
	first, last := domain.DateOf(start), domain.DateOf(end)
	series := DailySeries{Employees: []string{}, Points: []DailyPoint{}}
	if last.Before(first) {
		return series
	}

	perDay := make(map[string]map[string]decimal.Decimal)
	seen := make(map[string]bool)
	for _, te := range entries {
		day := domain.DateOf(te.Date)
		if day.Before(first) || day.After(last) {
			continue
		}
		key := day.Format(domain.DateLayout)
		if perDay[key] == nil {
			perDay[key] = make(map[string]decimal.Decimal)
		}
		name := te.EmployeeOrSelf()
		perDay[key][name] = perDay[key][name].Add(calc.Hours(te))
		seen[name] = true
	}

	for name := range seen {
		series.Employees = append(series.Employees, name)
	}
	sort.Strings(series.Employees)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		point := DailyPoint{Date: day, Hours: make(map[string]decimal.Decimal, len(series.Employees))}
		logged := perDay[day.Format(domain.DateLayout)]
		for _, name := range series.Employees {
			point.Hours[name] = decimal.Zero
			if h, ok := logged[name]; ok {
				point.Hours[name] = h
			}
		}
		series.Points = append(series.Points, point)
	}
	return series
}
