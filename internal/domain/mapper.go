package domain

import (
	"jobsite-tracker/internal/repository/sqlite"
)

// ProfileMapper handles conversion between domain and database Profile models.
type ProfileMapper struct{}

// ToDatabase converts a domain Profile to a database Profile.
func (m *ProfileMapper) ToDatabase(p Profile) sqlite.Profile {
	return sqlite.Profile{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt,
	}
}

// FromDatabase converts a database Profile to a domain Profile.
func (m *ProfileMapper) FromDatabase(p sqlite.Profile) Profile {
	return Profile{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      Role(p.Role),
		CreatedAt: p.CreatedAt,
	}
}

// FromDatabaseSlice converts database Profiles to domain Profiles.
func (m *ProfileMapper) FromDatabaseSlice(rows []*sqlite.Profile) []Profile {
	profiles := make([]Profile, len(rows))
	for i, p := range rows {
		profiles[i] = m.FromDatabase(*p)
	}
	return profiles
}

// ExpenseMapper handles conversion between domain and database Expense models.
type ExpenseMapper struct{}

// ToDatabase converts a domain Expense to a database Expense.
func (m *ExpenseMapper) ToDatabase(e Expense) sqlite.Expense {
	return sqlite.Expense{
		ID:           e.ID,
		OwnerID:      e.OwnerID,
		TimeEntryID:  e.TimeEntryID,
		ExpenseDate:  e.Date,
		Amount:       e.Amount,
		Description:  e.Description,
		RetailerID:   e.RetailerID,
		RetailerName: e.RetailerName,
		ReceiptURL:   e.ReceiptURL,
	}
}

// FromDatabase converts a database Expense to a domain Expense.
func (m *ExpenseMapper) FromDatabase(e sqlite.Expense) Expense {
	return Expense{
		ID:           e.ID,
		OwnerID:      e.OwnerID,
		TimeEntryID:  e.TimeEntryID,
		Date:         e.ExpenseDate,
		Amount:       e.Amount,
		Description:  e.Description,
		RetailerID:   e.RetailerID,
		RetailerName: e.RetailerName,
		ReceiptURL:   e.ReceiptURL,
	}
}

// FromDatabaseSlice converts database Expenses to domain Expenses.
func (m *ExpenseMapper) FromDatabaseSlice(rows []*sqlite.Expense) []Expense {
	expenses := make([]Expense, len(rows))
	for i, e := range rows {
		expenses[i] = m.FromDatabase(*e)
	}
	return expenses
}

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct {
	expenses ExpenseMapper
}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
// Expenses are written separately and are not carried over.
func (m *TimeEntryMapper) ToDatabase(te TimeEntry) sqlite.TimeEntry {
	row := sqlite.TimeEntry{
		ID:            te.ID,
		OwnerID:       te.OwnerID,
		EmployeeID:    te.EmployeeID,
		EmployeeName:  te.EmployeeName,
		EntryDate:     te.Date,
		IsFullDay:     te.IsFullDay,
		HasLunchBreak: te.HasLunchBreak,
		Location:      te.Location,
	}
	if te.HasLunchBreak {
		row.LunchBreakMinutes = int64(te.LunchBreak)
	}
	if !te.IsFullDay {
		row.StartMinutes = clockToMinutes(te.StartTime)
		row.EndMinutes = clockToMinutes(te.EndTime)
	}
	return row
}

// FromDatabase converts a database TimeEntry, with its expenses, to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(row sqlite.TimeEntry) TimeEntry {
	te := TimeEntry{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		EmployeeID:    row.EmployeeID,
		EmployeeName:  row.EmployeeName,
		Date:          row.EntryDate,
		IsFullDay:     row.IsFullDay,
		StartTime:     minutesToClock(row.StartMinutes),
		EndTime:       minutesToClock(row.EndMinutes),
		HasLunchBreak: row.HasLunchBreak,
		LunchBreak:    LunchBreak(row.LunchBreakMinutes),
		Location:      row.Location,
	}
	if len(row.Expenses) > 0 {
		te.Expenses = m.expenses.FromDatabaseSlice(row.Expenses)
	}
	return te
}

// FromDatabaseSlice converts database TimeEntries to domain TimeEntries.
func (m *TimeEntryMapper) FromDatabaseSlice(rows []*sqlite.TimeEntry) []TimeEntry {
	entries := make([]TimeEntry, len(rows))
	for i, row := range rows {
		entries[i] = m.FromDatabase(*row)
	}
	return entries
}

func clockToMinutes(c *ClockTime) *int64 {
	if c == nil {
		return nil
	}
	v := int64(c.Minutes())
	return &v
}

func minutesToClock(v *int64) *ClockTime {
	if v == nil {
		return nil
	}
	c := ClockTimeFromMinutes(int(*v))
	return &c
}

// WorksheetMapper handles conversion between domain and database worksheet models.
type WorksheetMapper struct{}

// ToDatabase converts a domain EstimateWorksheet to a database Worksheet.
func (m *WorksheetMapper) ToDatabase(w EstimateWorksheet) sqlite.Worksheet {
	row := sqlite.Worksheet{
		ID:                 w.ID,
		OwnerID:            w.OwnerID,
		JobName:            w.JobName,
		OverheadPercentage: w.OverheadPercentage,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
		Rows:               make([]*sqlite.WorksheetRow, len(w.Rows)),
	}
	for i, r := range w.Rows {
		row.Rows[i] = &sqlite.WorksheetRow{WorksheetID: w.ID, Position: i, Item: r.Item, Cost: r.Cost}
	}
	return row
}

// FromDatabase converts a database Worksheet to a domain EstimateWorksheet.
func (m *WorksheetMapper) FromDatabase(row sqlite.Worksheet) EstimateWorksheet {
	w := EstimateWorksheet{
		ID:                 row.ID,
		OwnerID:            row.OwnerID,
		JobName:            row.JobName,
		OverheadPercentage: row.OverheadPercentage,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
		Rows:               make([]WorksheetRow, len(row.Rows)),
	}
	for i, r := range row.Rows {
		w.Rows[i] = WorksheetRow{Item: r.Item, Cost: r.Cost}
	}
	return w
}

// FromDatabaseSlice converts database Worksheets to domain EstimateWorksheets.
func (m *WorksheetMapper) FromDatabaseSlice(rows []*sqlite.Worksheet) []EstimateWorksheet {
	worksheets := make([]EstimateWorksheet, len(rows))
	for i, row := range rows {
		worksheets[i] = m.FromDatabase(*row)
	}
	return worksheets
}

// SearchOptionsMapper handles conversion between domain and database search options.
type SearchOptionsMapper struct{}

// ToDatabase converts domain SearchOptions to database SearchOptions.
func (m *SearchOptionsMapper) ToDatabase(opts SearchOptions) sqlite.SearchOptions {
	return sqlite.SearchOptions{
		From:         opts.From,
		To:           opts.To,
		OwnerID:      opts.OwnerID,
		EmployeeName: opts.EmployeeName,
		Location:     opts.Location,
	}
}

// ExpensesToDatabase converts domain ExpenseSearchOptions to database options.
func (m *SearchOptionsMapper) ExpensesToDatabase(opts ExpenseSearchOptions) sqlite.ExpenseSearchOptions {
	return sqlite.ExpenseSearchOptions{
		From:           opts.From,
		To:             opts.To,
		OwnerID:        opts.OwnerID,
		TimeEntryID:    opts.TimeEntryID,
		StandaloneOnly: opts.StandaloneOnly,
	}
}

// WorksheetsToDatabase converts domain WorksheetSearchOptions to database options.
func (m *SearchOptionsMapper) WorksheetsToDatabase(opts WorksheetSearchOptions) sqlite.WorksheetSearchOptions {
	return sqlite.WorksheetSearchOptions{
		OwnerID:  opts.OwnerID,
		BaseName: opts.BaseName,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Profile       *ProfileMapper
	TimeEntry     *TimeEntryMapper
	Expense       *ExpenseMapper
	Worksheet     *WorksheetMapper
	SearchOptions *SearchOptionsMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Profile:       &ProfileMapper{},
		TimeEntry:     &TimeEntryMapper{},
		Expense:       &ExpenseMapper{},
		Worksheet:     &WorksheetMapper{},
		SearchOptions: &SearchOptionsMapper{},
	}
}
