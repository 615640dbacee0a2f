package calc

import (
	"time"

	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/domain"
)

// OverageThreshold is the daily hour count above which a batch needs confirmation.
var OverageThreshold = decimal.NewFromInt(8)

// Overage identifies one entry that exceeds the threshold.
type Overage struct {
	Employee string          `json:"employee"`
	Date     time.Time       `json:"date"`
	Hours    decimal.Decimal `json:"hours"`
}

// FindOverages lists every entry whose hours are strictly above
// OverageThreshold, in input order. Exactly 8.0 hours is not an overage.
func FindOverages(entries []domain.TimeEntry) []Overage {
	var overages []Overage
	for _, te := range entries {
		h := Hours(te)
		if h.GreaterThan(OverageThreshold) {
			overages = append(overages, Overage{
				Employee: te.EmployeeOrSelf(),
				Date:     te.Date,
				Hours:    h,
			})
		}
	}
	return overages
}

// NeedsConfirmation reports whether any entry is an overage.
func NeedsConfirmation(entries []domain.TimeEntry) bool {
	for _, te := range entries {
		if Hours(te).GreaterThan(OverageThreshold) {
			return true
		}
	}
	return false
}
