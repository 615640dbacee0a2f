package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a purchase made for a job. It either belongs to a time entry or
// stands alone.
type Expense struct {
	ID           int64           `json:"id"`
	OwnerID      int64           `json:"owner_id"`
	TimeEntryID  *int64          `json:"time_entry_id,omitempty"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	RetailerID   int64           `json:"retailer_id"`
	RetailerName string          `json:"retailer_name"`
	ReceiptURL   string          `json:"receipt_url,omitempty"`
}

// NewExpense creates an expense bought at the named retailer.
func NewExpense(date time.Time, amount decimal.Decimal, description, retailerName string) Expense {
	return Expense{
		Date:         DateOf(date),
		Amount:       amount,
		Description:  description,
		RetailerName: retailerName,
	}
}

// IsStandalone reports whether the expense is not attached to a time entry.
func (e Expense) IsStandalone() bool {
	return e.TimeEntryID == nil
}

// HasReceipt reports whether a receipt file was uploaded.
func (e Expense) HasReceipt() bool {
	return e.ReceiptURL != ""
}

// Retailer is a store an expense was bought from. Retailers are created on
// first use and looked up by exact name afterwards.
type Retailer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
