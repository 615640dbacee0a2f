// Package calc holds the pure hour and cost arithmetic shared by entry
// submission, invoices, the dashboard and estimates.
package calc

import (
	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/domain"
)

var (
	minutesPerHour = decimal.NewFromInt(60)

	// FullDayHours is credited for a full day without a lunch break.
	FullDayHours = decimal.NewFromInt(8)
	// FullDayWithLunchHours is credited for a full day with a lunch break.
	FullDayWithLunchHours = decimal.RequireFromString("7.5")
)

// Hours returns the hours credited for an entry, rounded to two places.
// Full days use the fixed 8.0/7.5 rule and ignore any stored times.
// An end before the start yields negative hours.
func Hours(te domain.TimeEntry) decimal.Decimal {
	if te.IsFullDay {
		if te.HasLunchBreak {
			return FullDayWithLunchHours
		}
		return FullDayHours
	}

	var start, end domain.ClockTime
	if te.StartTime != nil {
		start = *te.StartTime
	}
	if te.EndTime != nil {
		end = *te.EndTime
	}
	return SpanHours(start, end, te.LunchMinutes())
}

// SpanHours returns (end - start - lunch) in hours, rounded half away from zero
// to two places.
func SpanHours(start, end domain.ClockTime, lunchMinutes int) decimal.Decimal {
	minutes := end.Minutes() - start.Minutes() - lunchMinutes
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour).Round(2)
}

// TotalHours sums Hours over entries.
func TotalHours(entries []domain.TimeEntry) decimal.Decimal {
	total := decimal.Zero
	for _, te := range entries {
		total = total.Add(Hours(te))
	}
	return total
}

// FormatHours renders hours with two decimals, e.g. "7.50".
func FormatHours(h decimal.Decimal) string {
	return h.StringFixed(2)
}
