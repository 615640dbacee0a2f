package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/calc"
	"jobsite-tracker/internal/domain"
)

// InvoiceOptions controls how an invoice is priced.
type InvoiceOptions struct {
	// Rate is the hourly labor rate. When nil, labor lines carry hours only
	// and the cost summary covers expenses alone.
	Rate               *decimal.Decimal
	OverheadPercentage decimal.Decimal
}

// LaborLine is the hours one employee worked in the invoice period.
type LaborLine struct {
	Employee string          `json:"employee"`
	Hours    decimal.Decimal `json:"hours"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpenseLine is a single billed expense.
type ExpenseLine struct {
	Date        time.Time       `json:"date"`
	Employee    string          `json:"employee,omitempty"`
	Location    string          `json:"location,omitempty"`
	Description string          `json:"description"`
	Retailer    string          `json:"retailer"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice is the billable summary of a filtered set of entries.
type Invoice struct {
	Filter     Filter           `json:"-"`
	Labor      []LaborLine      `json:"labor"`
	Expenses   []ExpenseLine    `json:"expenses"`
	TotalHours decimal.Decimal  `json:"total_hours"`
	Cost       calc.CostSummary `json:"cost"`
}

// BuildInvoice applies the filter and prices what remains. Labor is keyed by
// employee display name. Expense lines are sorted by date, entry expenses
// before standalone ones on the same day.
func BuildInvoice(entries []domain.TimeEntry, standalone []domain.Expense, f Filter, opts InvoiceOptions) Invoice {
	inv := Invoice{
		Filter:     f,
		Labor:      []LaborLine{},
		Expenses:   []ExpenseLine{},
		TotalHours: decimal.Zero,
	}

	hours := make(map[string]decimal.Decimal)
	for _, te := range f.Entries(entries) {
		h := calc.Hours(te)
		name := te.EmployeeOrSelf()
		hours[name] = hours[name].Add(h)
		inv.TotalHours = inv.TotalHours.Add(h)

		for _, x := range te.Expenses {
			inv.Expenses = append(inv.Expenses, ExpenseLine{
				Date:        x.Date,
				Employee:    name,
				Location:    te.Location,
				Description: x.Description,
				Retailer:    x.RetailerName,
				Amount:      x.Amount,
			})
		}
	}
	for _, x := range f.Expenses(standalone) {
		inv.Expenses = append(inv.Expenses, ExpenseLine{
			Date:        x.Date,
			Description: x.Description,
			Retailer:    x.RetailerName,
			Amount:      x.Amount,
		})
	}
	sort.SliceStable(inv.Expenses, func(i, j int) bool {
		return inv.Expenses[i].Date.Before(inv.Expenses[j].Date)
	})

	var costs []decimal.Decimal
	names := make([]string, 0, len(hours))
	for name := range hours {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		line := LaborLine{Employee: name, Hours: hours[name], Amount: decimal.Zero}
		if opts.Rate != nil {
			line.Amount = line.Hours.Mul(*opts.Rate)
			costs = append(costs, line.Amount)
		}
		inv.Labor = append(inv.Labor, line)
	}
	for _, x := range inv.Expenses {
		costs = append(costs, x.Amount)
	}

	inv.Cost = calc.Cost(costs, opts.OverheadPercentage)
	return inv
}
