package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanAll drains rows through a single-row scan function
func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ScanProfile scans a single profile from a database row
func ScanProfile(scanner Scanner) (*Profile, error) {
	p := &Profile{}
	var createdAt string

	if err := scanner.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &createdAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = t

	return p, nil
}

// ScanProfiles scans multiple profiles from database rows
func ScanProfiles(rows Rows) ([]*Profile, error) {
	return scanAll(rows, ScanProfile)
}

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var entryDate string
	var startMinutes, endMinutes sql.NullInt64

	err := scanner.Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.EmployeeID,
		&entry.EmployeeName,
		&entryDate,
		&entry.IsFullDay,
		&startMinutes,
		&endMinutes,
		&entry.HasLunchBreak,
		&entry.LunchBreakMinutes,
		&entry.Location,
	)
	if err != nil {
		return nil, err
	}

	d, err := ParseDateFromDB(entryDate)
	if err != nil {
		return nil, err
	}
	entry.EntryDate = d

	if startMinutes.Valid {
		entry.StartMinutes = &startMinutes.Int64
	}
	if endMinutes.Valid {
		entry.EndMinutes = &endMinutes.Int64
	}

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	return scanAll(rows, ScanTimeEntry)
}

// ScanExpense scans a single expense joined with its retailer name
func ScanExpense(scanner Scanner) (*Expense, error) {
	e := &Expense{}
	var expenseDate string
	var timeEntryID sql.NullInt64

	err := scanner.Scan(
		&e.ID,
		&e.OwnerID,
		&timeEntryID,
		&expenseDate,
		&e.Amount,
		&e.Description,
		&e.RetailerID,
		&e.RetailerName,
		&e.ReceiptURL,
	)
	if err != nil {
		return nil, err
	}

	d, err := ParseDateFromDB(expenseDate)
	if err != nil {
		return nil, err
	}
	e.ExpenseDate = d

	if timeEntryID.Valid {
		e.TimeEntryID = &timeEntryID.Int64
	}

	return e, nil
}

// ScanExpenses scans multiple expenses from database rows
func ScanExpenses(rows Rows) ([]*Expense, error) {
	return scanAll(rows, ScanExpense)
}

// ScanRetailer scans a single retailer from a database row
func ScanRetailer(scanner Scanner) (*Retailer, error) {
	r := &Retailer{}
	if err := scanner.Scan(&r.ID, &r.Name); err != nil {
		return nil, err
	}
	return r, nil
}

// ScanRetailers scans multiple retailers from database rows
func ScanRetailers(rows Rows) ([]*Retailer, error) {
	return scanAll(rows, ScanRetailer)
}

// ScanWorksheet scans a worksheet header row; rows are loaded separately
func ScanWorksheet(scanner Scanner) (*Worksheet, error) {
	w := &Worksheet{}
	var createdAt, updatedAt string

	if err := scanner.Scan(&w.ID, &w.OwnerID, &w.JobName, &w.OverheadPercentage, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if w.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, err
	}

	return w, nil
}

// ScanWorksheets scans multiple worksheet header rows
func ScanWorksheets(rows Rows) ([]*Worksheet, error) {
	return scanAll(rows, ScanWorksheet)
}

// ScanWorksheetRow scans a single worksheet line item
func ScanWorksheetRow(scanner Scanner) (*WorksheetRow, error) {
	r := &WorksheetRow{}
	if err := scanner.Scan(&r.ID, &r.WorksheetID, &r.Position, &r.Item, &r.Cost); err != nil {
		return nil, err
	}
	return r, nil
}

// ScanWorksheetRows scans multiple worksheet line items
func ScanWorksheetRows(rows Rows) ([]*WorksheetRow, error) {
	return scanAll(rows, ScanWorksheetRow)
}
