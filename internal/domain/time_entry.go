package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SelfLabel is shown in place of an employee name when an entry was logged
// by the profile for itself.
const SelfLabel = "Self"

// LunchBreak is an unpaid break deducted from a partial-day span, in minutes.
type LunchBreak int

const (
	LunchBreak30 LunchBreak = 30
	LunchBreak45 LunchBreak = 45
	LunchBreak60 LunchBreak = 60
)

// IsValid reports whether the break is one of the allowed lengths.
func (l LunchBreak) IsValid() bool {
	switch l {
	case LunchBreak30, LunchBreak45, LunchBreak60:
		return true
	default:
		return false
	}
}

// TimeEntry is one person's work on one job site for one calendar day.
// EmployeeName is stored next to EmployeeID so reports never need a join.
type TimeEntry struct {
	ID            int64      `json:"id"`
	OwnerID       int64      `json:"owner_id"`
	EmployeeID    int64      `json:"employee_id,omitempty"`
	EmployeeName  string     `json:"employee_name"`
	Date          time.Time  `json:"date"`
	IsFullDay     bool       `json:"is_full_day"`
	StartTime     *ClockTime `json:"start_time,omitempty"`
	EndTime       *ClockTime `json:"end_time,omitempty"`
	HasLunchBreak bool       `json:"has_lunch_break"`
	LunchBreak    LunchBreak `json:"lunch_break"`
	Location      string     `json:"location"`
	Expenses      []Expense  `json:"expenses,omitempty"`
}

// NewFullDayEntry creates a full-day entry for the given employee and site.
func NewFullDayEntry(employeeName string, date time.Time, location string, withLunch bool) TimeEntry {
	te := TimeEntry{
		EmployeeName: employeeName,
		Date:         DateOf(date),
		IsFullDay:    true,
		Location:     location,
	}
	if withLunch {
		te = te.WithLunchBreak(LunchBreak30)
	}
	return te
}

// NewPartialDayEntry creates an entry covering start to end on the given date.
func NewPartialDayEntry(employeeName string, date time.Time, location string, start, end ClockTime) TimeEntry {
	return TimeEntry{
		EmployeeName: employeeName,
		Date:         DateOf(date),
		StartTime:    &start,
		EndTime:      &end,
		Location:     location,
	}
}

// WithLunchBreak returns a copy of the entry with the given break recorded.
func (te TimeEntry) WithLunchBreak(l LunchBreak) TimeEntry {
	te.HasLunchBreak = true
	te.LunchBreak = l
	return te
}

// LunchMinutes returns the recorded break, or zero when no break was taken.
func (te TimeEntry) LunchMinutes() int {
	if !te.HasLunchBreak {
		return 0
	}
	return int(te.LunchBreak)
}

// EmployeeOrSelf returns the employee display name, falling back to SelfLabel.
func (te TimeEntry) EmployeeOrSelf() string {
	if te.EmployeeName == "" {
		return SelfLabel
	}
	return te.EmployeeName
}

// FormTimes returns the start and end shown in the entry form.
func (te TimeEntry) FormTimes() (ClockTime, ClockTime) {
	if te.IsFullDay {
		return FormFullDayStart, FormFullDayEnd
	}
	return te.clockTimes()
}

// ReportTimes returns the start and end shown in reports and exports.
func (te TimeEntry) ReportTimes() (ClockTime, ClockTime) {
	if te.IsFullDay {
		return ReportFullDayStart, ReportFullDayEnd
	}
	return te.clockTimes()
}

func (te TimeEntry) clockTimes() (ClockTime, ClockTime) {
	var start, end ClockTime
	if te.StartTime != nil {
		start = *te.StartTime
	}
	if te.EndTime != nil {
		end = *te.EndTime
	}
	return start, end
}

// ExpenseTotal sums the amounts of the entry's expenses.
func (te TimeEntry) ExpenseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range te.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// IsValid checks if the time entry has the fields every entry needs.
// An end time before the start time is allowed.
func (te TimeEntry) IsValid() bool {
	if te.Date.IsZero() {
		return false
	}
	if !te.IsFullDay && (te.StartTime == nil || te.EndTime == nil) {
		return false
	}
	if te.HasLunchBreak && !te.LunchBreak.IsValid() {
		return false
	}
	return true
}
