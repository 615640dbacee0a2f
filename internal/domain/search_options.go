package domain

import "time"

// SearchOptions represents search criteria for time entries.
// Dates are inclusive calendar days; names and locations match exactly.
type SearchOptions struct {
	From         *time.Time
	To           *time.Time
	OwnerID      *int64
	EmployeeName *string
	Location     *string
}

// ExpenseSearchOptions represents search criteria for expenses.
type ExpenseSearchOptions struct {
	From           *time.Time
	To             *time.Time
	OwnerID        *int64
	TimeEntryID    *int64
	StandaloneOnly bool
}

// WorksheetSearchOptions represents search criteria for estimate worksheets.
type WorksheetSearchOptions struct {
	OwnerID  *int64
	BaseName *string
}
