package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/calc"
	"jobsite-tracker/internal/domain"
)

// PersonGroup is one employee name with their entries split by location.
type PersonGroup struct {
	Name      string          `json:"name"`
	Hours     decimal.Decimal `json:"hours"`
	Expenses  decimal.Decimal `json:"expenses"`
	Locations []LocationGroup `json:"locations"`
}

// LocationGroup is one job site within a PersonGroup.
type LocationGroup struct {
	Location string             `json:"location"`
	Hours    decimal.Decimal    `json:"hours"`
	Expenses decimal.Decimal    `json:"expenses"`
	Entries  []domain.TimeEntry `json:"-"`
}

// GroupByPerson nests entries as person -> location -> entries. Persons and
// locations sort alphabetically; entries sort newest date first, with ties
// kept in input order.
func GroupByPerson(entries []domain.TimeEntry) []PersonGroup {
	byPerson := make(map[string]map[string][]domain.TimeEntry)
	for _, te := range entries {
		name := te.EmployeeOrSelf()
		if byPerson[name] == nil {
			byPerson[name] = make(map[string][]domain.TimeEntry)
		}
		byPerson[name][te.Location] = append(byPerson[name][te.Location], te)
	}

	names := make([]string, 0, len(byPerson))
	for name := range byPerson {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]PersonGroup, 0, len(names))
	for _, name := range names {
		pg := PersonGroup{Name: name, Hours: decimal.Zero, Expenses: decimal.Zero}

		locations := make([]string, 0, len(byPerson[name]))
		for loc := range byPerson[name] {
			locations = append(locations, loc)
		}
		sort.Strings(locations)

		for _, loc := range locations {
			list := byPerson[name][loc]
			sort.SliceStable(list, func(i, j int) bool {
				return list[i].Date.After(list[j].Date)
			})

			lg := LocationGroup{Location: loc, Hours: decimal.Zero, Expenses: decimal.Zero, Entries: list}
			for _, te := range list {
				lg.Hours = lg.Hours.Add(calc.Hours(te))
				lg.Expenses = lg.Expenses.Add(te.ExpenseTotal())
			}

			pg.Hours = pg.Hours.Add(lg.Hours)
			pg.Expenses = pg.Expenses.Add(lg.Expenses)
			pg.Locations = append(pg.Locations, lg)
		}

		groups = append(groups, pg)
	}
	return groups
}
