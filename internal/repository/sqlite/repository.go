package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SearchOptions contains the filters for time entry searches.
// Dates are inclusive; employee name and location match exactly.
type SearchOptions struct {
	From         *time.Time
	To           *time.Time
	OwnerID      *int64
	EmployeeName *string
	Location     *string
}

// ExpenseSearchOptions contains the filters for expense searches
type ExpenseSearchOptions struct {
	From           *time.Time
	To             *time.Time
	OwnerID        *int64
	TimeEntryID    *int64
	StandaloneOnly bool
}

// WorksheetSearchOptions contains the filters for worksheet searches.
// BaseName matches the name itself and any " vN" revision of it.
type WorksheetSearchOptions struct {
	OwnerID  *int64
	BaseName *string
}

// Repository defines the interface for database operations
type Repository interface {
	// Profiles
	CreateProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, id int64) (*Profile, error)
	ListProfiles(ctx context.Context) ([]*Profile, error)

	// Time entries, returned with their expenses attached
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id int64) error
	SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error)

	// Expenses and retailers
	CreateExpense(ctx context.Context, expense *Expense) error
	GetExpense(ctx context.Context, id int64) (*Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	SearchExpenses(ctx context.Context, opts ExpenseSearchOptions) ([]*Expense, error)
	GetOrCreateRetailer(ctx context.Context, name string) (*Retailer, error)
	ListRetailers(ctx context.Context) ([]*Retailer, error)

	// Estimate worksheets, returned with their rows in order
	CreateWorksheet(ctx context.Context, worksheet *Worksheet) error
	GetWorksheet(ctx context.Context, id int64) (*Worksheet, error)
	UpdateWorksheet(ctx context.Context, worksheet *Worksheet) error
	DeleteWorksheet(ctx context.Context, id int64) error
	ListWorksheets(ctx context.Context, opts WorksheetSearchOptions) ([]*Worksheet, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

const (
	timeEntryColumns = `id, owner_id, employee_id, employee_name, entry_date, is_full_day,
	start_minutes, end_minutes, has_lunch_break, lunch_break_minutes, location`

	expenseSelect = `
	SELECT e.id, e.owner_id, e.time_entry_id, e.expense_date, e.amount, e.description,
		e.retailer_id, r.name, e.receipt_url
	FROM expenses e
	JOIN retailers r ON r.id = e.retailer_id`

	worksheetColumns = `id, owner_id, job_name, overhead_percentage, created_at, updated_at`
)

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// A single connection keeps ":memory:" databases alive and serializes writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// MigrationStatus reports the schema version of the open database
func (r *SQLiteRepository) MigrationStatus() (*migrations.MigrationStatus, error) {
	return migrations.Status(r.db)
}

// CreateProfile creates a new profile
func (r *SQLiteRepository) CreateProfile(ctx context.Context, profile *Profile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = r.now().UTC()
	}

	query := `INSERT INTO profiles (name, email, role, created_at) VALUES (?, ?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, profile.Name, profile.Email, profile.Role, FormatTimeForDB(profile.CreatedAt))
	if err != nil {
		return err
	}

	profile.ID = id
	return nil
}

// GetProfile retrieves a profile by ID
func (r *SQLiteRepository) GetProfile(ctx context.Context, id int64) (*Profile, error) {
	query := `SELECT id, name, email, role, created_at FROM profiles WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanProfile, "profile", fmt.Sprintf("%d", id), id)
}

// ListProfiles retrieves all profiles ordered by name
func (r *SQLiteRepository) ListProfiles(ctx context.Context) ([]*Profile, error) {
	query := `SELECT id, name, email, role, created_at FROM profiles ORDER BY name ASC, id ASC`
	return QueryMultiple(ctx, r.db, query, ScanProfiles, "profiles")
}

// CreateTimeEntry creates a new time entry. Expenses are not written here.
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	INSERT INTO time_entries (owner_id, employee_id, employee_name, entry_date, is_full_day,
		start_minutes, end_minutes, has_lunch_break, lunch_break_minutes, location)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		entry.OwnerID,
		entry.EmployeeID,
		entry.EmployeeName,
		FormatDateForDB(entry.EntryDate),
		entry.IsFullDay,
		nullableInt64(entry.StartMinutes),
		nullableInt64(entry.EndMinutes),
		entry.HasLunchBreak,
		entry.LunchBreakMinutes,
		entry.Location,
	)
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// GetTimeEntry retrieves a time entry by ID with its expenses
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`

	entry, err := QuerySingle(ctx, r.db, query, ScanTimeEntry, "time entry", fmt.Sprintf("%d", id), id)
	if err != nil {
		return nil, err
	}

	if err := r.attachExpenses(ctx, []*TimeEntry{entry}); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateTimeEntry updates an existing time entry
func (r *SQLiteRepository) UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	UPDATE time_entries
	SET employee_id = ?, employee_name = ?, entry_date = ?, is_full_day = ?, start_minutes = ?,
		end_minutes = ?, has_lunch_break = ?, lunch_break_minutes = ?, location = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", entry.ID),
		entry.EmployeeID,
		entry.EmployeeName,
		FormatDateForDB(entry.EntryDate),
		entry.IsFullDay,
		nullableInt64(entry.StartMinutes),
		nullableInt64(entry.EndMinutes),
		entry.HasLunchBreak,
		entry.LunchBreakMinutes,
		entry.Location,
		entry.ID,
	)
}

// DeleteTimeEntry deletes a time entry by ID; its expenses cascade
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id int64) error {
	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", id), id)
}

// SearchTimeEntries searches for time entries, newest date first
func (r *SQLiteRepository) SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error) {
	var conditions []string
	var args []interface{}

	if opts.From != nil {
		conditions = append(conditions, "entry_date >= ?")
		args = append(args, FormatDatePtrForDB(opts.From))
	}
	if opts.To != nil {
		conditions = append(conditions, "entry_date <= ?")
		args = append(args, FormatDatePtrForDB(opts.To))
	}
	if opts.OwnerID != nil {
		conditions = append(conditions, "owner_id = ?")
		args = append(args, *opts.OwnerID)
	}
	if opts.EmployeeName != nil && *opts.EmployeeName != "" {
		conditions = append(conditions, "employee_name = ?")
		args = append(args, *opts.EmployeeName)
	}
	if opts.Location != nil && *opts.Location != "" {
		conditions = append(conditions, "location = ?")
		args = append(args, *opts.Location)
	}

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entry_date DESC, id DESC"

	entries, err := QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries", args...)
	if err != nil {
		return nil, err
	}

	if err := r.attachExpenses(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// attachExpenses loads the expenses of all given entries in one query
func (r *SQLiteRepository) attachExpenses(ctx context.Context, entries []*TimeEntry) error {
	if len(entries) == 0 {
		return nil
	}

	byID := make(map[int64]*TimeEntry, len(entries))
	placeholders := make([]string, 0, len(entries))
	args := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
		placeholders = append(placeholders, "?")
		args = append(args, e.ID)
	}

	query := expenseSelect + ` WHERE e.time_entry_id IN (` + strings.Join(placeholders, ", ") + `) ORDER BY e.id ASC`
	expenses, err := QueryMultiple(ctx, r.db, query, ScanExpenses, "expenses", args...)
	if err != nil {
		return err
	}

	for _, x := range expenses {
		if entry, ok := byID[*x.TimeEntryID]; ok {
			entry.Expenses = append(entry.Expenses, x)
		}
	}
	return nil
}

// CreateExpense creates a new expense. The retailer must already exist.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, expense *Expense) error {
	query := `
	INSERT INTO expenses (owner_id, time_entry_id, expense_date, amount, description, retailer_id, receipt_url)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		expense.OwnerID,
		nullableInt64(expense.TimeEntryID),
		FormatDateForDB(expense.ExpenseDate),
		expense.Amount.String(),
		expense.Description,
		expense.RetailerID,
		expense.ReceiptURL,
	)
	if err != nil {
		return err
	}

	expense.ID = id
	return nil
}

// GetExpense retrieves an expense by ID
func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (*Expense, error) {
	query := expenseSelect + ` WHERE e.id = ?`
	return QuerySingle(ctx, r.db, query, ScanExpense, "expense", fmt.Sprintf("%d", id), id)
}

// DeleteExpense deletes an expense by ID
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	query := `DELETE FROM expenses WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "expense", fmt.Sprintf("%d", id), id)
}

// SearchExpenses searches for expenses, newest date first
func (r *SQLiteRepository) SearchExpenses(ctx context.Context, opts ExpenseSearchOptions) ([]*Expense, error) {
	var conditions []string
	var args []interface{}

	if opts.From != nil {
		conditions = append(conditions, "e.expense_date >= ?")
		args = append(args, FormatDatePtrForDB(opts.From))
	}
	if opts.To != nil {
		conditions = append(conditions, "e.expense_date <= ?")
		args = append(args, FormatDatePtrForDB(opts.To))
	}
	if opts.OwnerID != nil {
		conditions = append(conditions, "e.owner_id = ?")
		args = append(args, *opts.OwnerID)
	}
	if opts.TimeEntryID != nil {
		conditions = append(conditions, "e.time_entry_id = ?")
		args = append(args, *opts.TimeEntryID)
	}
	if opts.StandaloneOnly {
		conditions = append(conditions, "e.time_entry_id IS NULL")
	}

	query := expenseSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.expense_date DESC, e.id DESC"

	return QueryMultiple(ctx, r.db, query, ScanExpenses, "expenses", args...)
}

// GetOrCreateRetailer returns the retailer with exactly this name, creating it if needed
func (r *SQLiteRepository) GetOrCreateRetailer(ctx context.Context, name string) (*Retailer, error) {
	insert := `INSERT INTO retailers (name) VALUES (?) ON CONFLICT(name) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, insert, name); err != nil {
		return nil, HandleDatabaseError("create retailer", err)
	}

	query := `SELECT id, name FROM retailers WHERE name = ?`
	return QuerySingle(ctx, r.db, query, ScanRetailer, "retailer", name, name)
}

// ListRetailers retrieves all retailers ordered by name
func (r *SQLiteRepository) ListRetailers(ctx context.Context) ([]*Retailer, error) {
	query := `SELECT id, name FROM retailers ORDER BY name ASC`
	return QueryMultiple(ctx, r.db, query, ScanRetailers, "retailers")
}

// CreateWorksheet creates a worksheet and its rows in one transaction
func (r *SQLiteRepository) CreateWorksheet(ctx context.Context, worksheet *Worksheet) error {
	now := r.now().UTC()
	worksheet.CreatedAt = now
	worksheet.UpdatedAt = now

	return WithTx(ctx, r.db, "create worksheet", func(tx *sql.Tx) error {
		query := `
		INSERT INTO estimate_worksheets (owner_id, job_name, overhead_percentage, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
		result, err := tx.ExecContext(ctx, query,
			worksheet.OwnerID,
			worksheet.JobName,
			worksheet.OverheadPercentage.String(),
			FormatTimeForDB(worksheet.CreatedAt),
			FormatTimeForDB(worksheet.UpdatedAt),
		)
		if err != nil {
			return err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		worksheet.ID = id

		return insertWorksheetRows(ctx, tx, worksheet)
	})
}

// UpdateWorksheet replaces a worksheet's header fields and rows
func (r *SQLiteRepository) UpdateWorksheet(ctx context.Context, worksheet *Worksheet) error {
	worksheet.UpdatedAt = r.now().UTC()

	return WithTx(ctx, r.db, "update worksheet", func(tx *sql.Tx) error {
		query := `
		UPDATE estimate_worksheets
		SET job_name = ?, overhead_percentage = ?, updated_at = ?
		WHERE id = ?`
		result, err := tx.ExecContext(ctx, query,
			worksheet.JobName,
			worksheet.OverheadPercentage.String(),
			FormatTimeForDB(worksheet.UpdatedAt),
			worksheet.ID,
		)
		if err != nil {
			return err
		}
		if err := ValidateRowsAffected(result, "worksheet", fmt.Sprintf("%d", worksheet.ID)); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM worksheet_rows WHERE worksheet_id = ?`, worksheet.ID); err != nil {
			return err
		}
		return insertWorksheetRows(ctx, tx, worksheet)
	})
}

func insertWorksheetRows(ctx context.Context, tx *sql.Tx, worksheet *Worksheet) error {
	query := `INSERT INTO worksheet_rows (worksheet_id, position, item, cost) VALUES (?, ?, ?, ?)`
	for i, row := range worksheet.Rows {
		row.WorksheetID = worksheet.ID
		row.Position = i
		result, err := tx.ExecContext(ctx, query, row.WorksheetID, row.Position, row.Item, row.Cost.String())
		if err != nil {
			return err
		}
		if row.ID, err = result.LastInsertId(); err != nil {
			return err
		}
	}
	return nil
}

// GetWorksheet retrieves a worksheet by ID with its rows
func (r *SQLiteRepository) GetWorksheet(ctx context.Context, id int64) (*Worksheet, error) {
	query := `SELECT ` + worksheetColumns + ` FROM estimate_worksheets WHERE id = ?`

	worksheet, err := QuerySingle(ctx, r.db, query, ScanWorksheet, "worksheet", fmt.Sprintf("%d", id), id)
	if err != nil {
		return nil, err
	}

	if err := r.attachRows(ctx, []*Worksheet{worksheet}); err != nil {
		return nil, err
	}
	return worksheet, nil
}

// DeleteWorksheet deletes a worksheet by ID; its rows cascade
func (r *SQLiteRepository) DeleteWorksheet(ctx context.Context, id int64) error {
	query := `DELETE FROM estimate_worksheets WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "worksheet", fmt.Sprintf("%d", id), id)
}

// ListWorksheets lists worksheets ordered by job name
func (r *SQLiteRepository) ListWorksheets(ctx context.Context, opts WorksheetSearchOptions) ([]*Worksheet, error) {
	var conditions []string
	var args []interface{}

	if opts.OwnerID != nil {
		conditions = append(conditions, "owner_id = ?")
		args = append(args, *opts.OwnerID)
	}
	if opts.BaseName != nil && *opts.BaseName != "" {
		conditions = append(conditions, "(job_name = ? OR job_name LIKE ? ESCAPE '\\')")
		args = append(args, *opts.BaseName, escapeLike(*opts.BaseName)+" v%")
	}

	query := `SELECT ` + worksheetColumns + ` FROM estimate_worksheets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY job_name ASC, id ASC"

	worksheets, err := QueryMultiple(ctx, r.db, query, ScanWorksheets, "worksheets", args...)
	if err != nil {
		return nil, err
	}

	if err := r.attachRows(ctx, worksheets); err != nil {
		return nil, err
	}
	return worksheets, nil
}

func (r *SQLiteRepository) attachRows(ctx context.Context, worksheets []*Worksheet) error {
	if len(worksheets) == 0 {
		return nil
	}

	byID := make(map[int64]*Worksheet, len(worksheets))
	placeholders := make([]string, 0, len(worksheets))
	args := make([]interface{}, 0, len(worksheets))
	for _, w := range worksheets {
		byID[w.ID] = w
		placeholders = append(placeholders, "?")
		args = append(args, w.ID)
	}

	query := `SELECT id, worksheet_id, position, item, cost FROM worksheet_rows
	WHERE worksheet_id IN (` + strings.Join(placeholders, ", ") + `)
	ORDER BY worksheet_id ASC, position ASC`
	rows, err := QueryMultiple(ctx, r.db, query, ScanWorksheetRows, "worksheet rows", args...)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if w, ok := byID[row.WorksheetID]; ok {
			w.Rows = append(w.Rows, row)
		}
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
