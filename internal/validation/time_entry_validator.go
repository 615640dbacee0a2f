package validation

import (
	"fmt"
	"time"

	"jobsite-tracker/internal/domain"
)

// TimeEntryValidator provides validation for time entries and their expenses
type TimeEntryValidator struct {
	validator        *Validator
	expenseValidator *ExpenseValidator
}

// NewTimeEntryValidator creates a new time entry validator
func NewTimeEntryValidator(v *Validator) *TimeEntryValidator {
	return &TimeEntryValidator{
		validator:        v,
		expenseValidator: NewExpenseValidator(v),
	}
}

// ValidateTimeEntry validates a single entry. An end time before the start
// time is accepted; the duration is then negative.
func (tev *TimeEntryValidator) ValidateTimeEntry(te domain.TimeEntry) error {
	validationError := NewValidationError()

	if te.Date.IsZero() {
		validationError.AddRequiredError("date")
	}

	// A blank employee name means the entry is for whoever submits it
	if tev.validator.IsNonEmptyString(te.EmployeeName) &&
		!tev.validator.IsValidStringLength(te.EmployeeName, 1, maxNameLength) {
		validationError.AddInvalidLengthError("employee_name", te.EmployeeName, 1, maxNameLength)
	}

	if !tev.validator.IsNonEmptyString(te.Location) {
		validationError.AddRequiredError("location")
	}

	if !te.IsFullDay {
		tev.validateClock(validationError, "start_time", te.StartTime)
		tev.validateClock(validationError, "end_time", te.EndTime)
	}

	if te.HasLunchBreak && !te.LunchBreak.IsValid() {
		validationError.AddInvalidValueError("lunch_break", int(te.LunchBreak), "must be 30, 45 or 60 minutes")
	}

	for i, x := range te.Expenses {
		validationError.Merge(fmt.Sprintf("expenses[%d]", i), tev.expenseValidator.ValidateExpense(x))
	}

	return validationError.OrNil()
}

func (tev *TimeEntryValidator) validateClock(ve *ValidationError, field string, ct *domain.ClockTime) {
	if ct == nil {
		ve.AddRequiredError(field)
		return
	}
	if !ct.IsValid() {
		ve.AddInvalidFormatError(field, ct.String(), domain.ClockLayout)
	}
}

// ValidateBatch validates every entry, prefixing fields with the row number.
func (tev *TimeEntryValidator) ValidateBatch(entries []domain.TimeEntry) error {
	validationError := NewValidationError()

	if len(entries) == 0 {
		validationError.AddRequiredError("entries")
		return validationError
	}

	for i, te := range entries {
		validationError.Merge(fmt.Sprintf("entries[%d]", i), tev.ValidateTimeEntry(te))
	}

	return validationError.OrNil()
}

// ValidateDateRange validates a report or search date range
func (tev *TimeEntryValidator) ValidateDateRange(from, to *time.Time) error {
	if tev.validator.IsValidDateRange(from, to) {
		return nil
	}

	validationError := NewValidationError()
	validationError.AddInvalidRangeError("date_range", map[string]interface{}{
		"from": from,
		"to":   to,
	}, "end date must be on or after start date")
	return validationError
}

// ValidateTimeEntryID validates a time entry ID
func (tev *TimeEntryValidator) ValidateTimeEntryID(id int64) error {
	if !tev.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("time_entry_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
