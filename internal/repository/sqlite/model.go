package sqlite

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile represents a row of the profiles table
type Profile struct {
	ID        int64
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

// TimeEntry represents a row of the time_entries table.
// Start and end are stored as minutes since midnight and are NULL for full days.
type TimeEntry struct {
	ID                int64
	OwnerID           int64
	EmployeeID        int64
	EmployeeName      string
	EntryDate         time.Time
	IsFullDay         bool
	StartMinutes      *int64
	EndMinutes        *int64
	HasLunchBreak     bool
	LunchBreakMinutes int64
	Location          string
	Expenses          []*Expense
}

// Expense represents a row of the expenses table joined with its retailer
type Expense struct {
	ID           int64
	OwnerID      int64
	TimeEntryID  *int64
	ExpenseDate  time.Time
	Amount       decimal.Decimal
	Description  string
	RetailerID   int64
	RetailerName string
	ReceiptURL   string
}

// Retailer represents a row of the retailers table
type Retailer struct {
	ID   int64
	Name string
}

// Worksheet represents a row of the estimate_worksheets table with its rows
type Worksheet struct {
	ID                 int64
	OwnerID            int64
	JobName            string
	OverheadPercentage decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Rows               []*WorksheetRow
}

// WorksheetRow represents a row of the worksheet_rows table
type WorksheetRow struct {
	ID          int64
	WorksheetID int64
	Position    int
	Item        string
	Cost        decimal.Decimal
}
