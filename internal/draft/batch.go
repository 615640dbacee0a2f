// Package draft holds time entries that are being filled in before they are
// submitted. A Batch never changes in place; every edit returns a new Batch.
package draft

import (
	"fmt"

	"github.com/google/uuid"

	"jobsite-tracker/internal/domain"
)

// Attachment is a receipt file waiting to be uploaded with its expense.
type Attachment struct {
	Filename string
	Data     []byte
}

// ExpenseRow is an expense on a draft row.
type ExpenseRow struct {
	ID      uuid.UUID
	Expense domain.Expense
	Receipt *Attachment
}

// Row is one draft time entry with its expenses.
type Row struct {
	ID       uuid.UUID
	Entry    domain.TimeEntry
	Expenses []ExpenseRow
}

// TimeEntry returns the row's entry with its expenses attached.
func (r Row) TimeEntry() domain.TimeEntry {
	te := r.Entry
	te.Expenses = make([]domain.Expense, len(r.Expenses))
	for i, x := range r.Expenses {
		te.Expenses[i] = x.Expense
	}
	return te
}

// RowNotFoundError is returned when an edit names a row that is not in the batch.
type RowNotFoundError struct {
	ID uuid.UUID
}

func (e *RowNotFoundError) Error() string {
	return fmt.Sprintf("draft row %s not found", e.ID)
}

// Batch is an ordered set of draft rows keyed by id.
type Batch struct {
	order []uuid.UUID
	rows  map[uuid.UUID]Row
	newID func() uuid.UUID
}

// New returns an empty batch.
func New() Batch {
	return Batch{rows: map[uuid.UUID]Row{}, newID: uuid.New}
}

func (b Batch) clone() Batch {
	order := make([]uuid.UUID, len(b.order))
	copy(order, b.order)

	rows := make(map[uuid.UUID]Row, len(b.rows))
	for id, r := range b.rows {
		rows[id] = r
	}

	newID := b.newID
	if newID == nil {
		newID = uuid.New
	}
	return Batch{order: order, rows: rows, newID: newID}
}

// Len returns the number of rows.
func (b Batch) Len() int {
	return len(b.order)
}

// Add appends an entry and returns the new batch and the row id. Expenses
// already on the entry become expense rows.
func (b Batch) Add(te domain.TimeEntry) (Batch, uuid.UUID) {
	next := b.clone()

	row := Row{ID: next.newID(), Entry: te}
	row.Entry.Expenses = nil
	for _, x := range te.Expenses {
		row.Expenses = append(row.Expenses, ExpenseRow{ID: next.newID(), Expense: x})
	}

	next.order = append(next.order, row.ID)
	next.rows[row.ID] = row
	return next, row.ID
}

// Update replaces a row's entry with fn applied to it.
func (b Batch) Update(id uuid.UUID, fn func(domain.TimeEntry) domain.TimeEntry) (Batch, error) {
	row, ok := b.rows[id]
	if !ok {
		return b, &RowNotFoundError{ID: id}
	}

	next := b.clone()
	row.Entry = fn(row.Entry)
	row.Entry.Expenses = nil
	next.rows[id] = row
	return next, nil
}

// Remove drops a row. Removing an unknown id returns the batch unchanged.
func (b Batch) Remove(id uuid.UUID) Batch {
	if _, ok := b.rows[id]; !ok {
		return b
	}

	next := b.clone()
	delete(next.rows, id)
	order := next.order[:0]
	for _, rid := range next.order {
		if rid != id {
			order = append(order, rid)
		}
	}
	next.order = order
	return next
}

// AddExpense attaches an expense, with an optional receipt, to a row.
func (b Batch) AddExpense(rowID uuid.UUID, x domain.Expense, receipt *Attachment) (Batch, uuid.UUID, error) {
	row, ok := b.rows[rowID]
	if !ok {
		return b, uuid.Nil, &RowNotFoundError{ID: rowID}
	}

	next := b.clone()
	er := ExpenseRow{ID: next.newID(), Expense: x, Receipt: receipt}

	expenses := make([]ExpenseRow, len(row.Expenses), len(row.Expenses)+1)
	copy(expenses, row.Expenses)
	row.Expenses = append(expenses, er)
	next.rows[rowID] = row
	return next, er.ID, nil
}

// RemoveExpense drops an expense from a row.
func (b Batch) RemoveExpense(rowID, expenseID uuid.UUID) (Batch, error) {
	row, ok := b.rows[rowID]
	if !ok {
		return b, &RowNotFoundError{ID: rowID}
	}

	next := b.clone()
	expenses := make([]ExpenseRow, 0, len(row.Expenses))
	for _, er := range row.Expenses {
		if er.ID != expenseID {
			expenses = append(expenses, er)
		}
	}
	row.Expenses = expenses
	next.rows[rowID] = row
	return next, nil
}

// Rows returns the rows in insertion order.
func (b Batch) Rows() []Row {
	rows := make([]Row, 0, len(b.order))
	for _, id := range b.order {
		rows = append(rows, b.rows[id])
	}
	return rows
}

// Entries returns every row as a time entry with expenses attached.
func (b Batch) Entries() []domain.TimeEntry {
	entries := make([]domain.TimeEntry, 0, len(b.order))
	for _, r := range b.Rows() {
		entries = append(entries, r.TimeEntry())
	}
	return entries
}
