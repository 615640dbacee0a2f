package draft

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsite-tracker/internal/domain"
)

var day = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func entry(name string) domain.TimeEntry {
	return domain.NewFullDayEntry(name, day, "Elm St", true)
}

func names(b Batch) []string {
	var out []string
	for _, r := range b.Rows() {
		out = append(out, r.Entry.EmployeeName)
	}
	return out
}

func TestBatch_AddKeepsOrder(t *testing.T) {
	b := New()
	b, first := b.Add(entry("Ann"))
	b, second := b.Add(entry("Ben"))
	b, _ = b.Add(entry("Cy"))

	assert.NotEqual(t, first, second)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []string{"Ann", "Ben", "Cy"}, names(b))
}

func TestBatch_IsImmutable(t *testing.T) {
	original, id := New().Add(entry("Ann"))

	added, _ := original.Add(entry("Ben"))
	updated, err := original.Update(id, func(te domain.TimeEntry) domain.TimeEntry {
		te.EmployeeName = "Annie"
		return te
	})
	require.NoError(t, err)
	removed := original.Remove(id)
	withExpense, _, err := original.AddExpense(id, domain.NewExpense(day, decimal.NewFromInt(5), "tape", "A"), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ann"}, names(original))
	require.Len(t, original.Rows(), 1)
	assert.Empty(t, original.Rows()[0].Expenses)

	assert.Equal(t, []string{"Ann", "Ben"}, names(added))
	assert.Equal(t, []string{"Annie"}, names(updated))
	assert.Equal(t, 0, removed.Len())
	assert.Len(t, withExpense.Rows()[0].Expenses, 1)
}

func TestBatch_RemoveByID(t *testing.T) {
	b := New()
	b, a := b.Add(entry("Ann"))
	b, bid := b.Add(entry("Ben"))
	b, _ = b.Add(entry("Cy"))

	b = b.Remove(bid)
	assert.Equal(t, []string{"Ann", "Cy"}, names(b))

	same := b.Remove(uuid.New())
	assert.Equal(t, []string{"Ann", "Cy"}, names(same))

	b = b.Remove(a)
	assert.Equal(t, []string{"Cy"}, names(b))
}

func TestBatch_UnknownRow(t *testing.T) {
	b, _ := New().Add(entry("Ann"))
	missing := uuid.New()

	_, err := b.Update(missing, func(te domain.TimeEntry) domain.TimeEntry { return te })
	var notFound *RowNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing, notFound.ID)

	_, _, err = b.AddExpense(missing, domain.Expense{}, nil)
	assert.ErrorAs(t, err, &notFound)

	_, err = b.RemoveExpense(missing, uuid.New())
	assert.ErrorAs(t, err, &notFound)
}

func TestBatch_Expenses(t *testing.T) {
	te := entry("Ann")
	te.Expenses = []domain.Expense{domain.NewExpense(day, decimal.NewFromInt(1), "pre-attached", "A")}

	b, rowID := New().Add(te)
	receipt := &Attachment{Filename: "r.png", Data: []byte("png")}
	b, paintID, err := b.AddExpense(rowID, domain.NewExpense(day, decimal.RequireFromString("12.50"), "paint", "B"), receipt)
	require.NoError(t, err)
	b, _, err = b.AddExpense(rowID, domain.NewExpense(day, decimal.NewFromInt(3), "nails", "B"), nil)
	require.NoError(t, err)

	row := b.Rows()[0]
	assert.Equal(t, rowID, row.ID)
	require.Len(t, row.Expenses, 3)
	assert.Equal(t, receipt, row.Expenses[1].Receipt)
	assert.Empty(t, row.Entry.Expenses, "expenses live on the row")

	b, err = b.RemoveExpense(rowID, paintID)
	require.NoError(t, err)

	entries := b.Entries()
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Expenses, 2)
	assert.Equal(t, "pre-attached", entries[0].Expenses[0].Description)
	assert.Equal(t, "nails", entries[0].Expenses[1].Description)
	assert.True(t, decimal.NewFromInt(4).Equal(entries[0].ExpenseTotal()))
}

func TestBatch_UpdateKeepsExpenses(t *testing.T) {
	b, rowID := New().Add(entry("Ann"))
	b, _, err := b.AddExpense(rowID, domain.NewExpense(day, decimal.NewFromInt(1), "tape", "A"), nil)
	require.NoError(t, err)

	b, err = b.Update(rowID, func(te domain.TimeEntry) domain.TimeEntry {
		te.Location = "Oak Ave"
		return te
	})
	require.NoError(t, err)

	entries := b.Entries()
	assert.Equal(t, "Oak Ave", entries[0].Location)
	assert.Len(t, entries[0].Expenses, 1)
}

func TestBatch_ZeroValueIsUsable(t *testing.T) {
	var b Batch
	b, _ = b.Add(entry("Ann"))
	assert.Equal(t, 1, b.Len())
	assert.Empty(t, Batch{}.Entries())
}

const batchTOML = `
[[entry]]
date = "2024-03-01"
employee = "Ann"
employee_id = 4
location = "12 Elm St"
start = "07:00"
end = "15:30"
lunch = 30

  [[entry.expense]]
  amount = "12.50"
  description = "Paint, 2\" brush"
  retailer = "Hardware Co"
  receipt = "paint.png"

  [[entry.expense]]
  date = "2024-02-29"
  amount = "3"
  description = "Tape"
  retailer = "Corner Store"

[[entry]]
date = "2024-03-02"
employee = "Ben"
location = "Oak Ave"
full_day = true
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paint.png"), []byte("receipt-bytes"), 0600))
	path := filepath.Join(dir, "batch.toml")
	require.NoError(t, os.WriteFile(path, []byte(batchTOML), 0600))

	b, err := LoadFile(path)
	require.NoError(t, err)

	rows := b.Rows()
	require.Len(t, rows, 2)

	ann := rows[0]
	assert.Equal(t, "Ann", ann.Entry.EmployeeName)
	assert.Equal(t, int64(4), ann.Entry.EmployeeID)
	assert.Equal(t, day, ann.Entry.Date)
	require.NotNil(t, ann.Entry.StartTime)
	assert.Equal(t, "07:00", ann.Entry.StartTime.String())
	assert.True(t, ann.Entry.HasLunchBreak)
	assert.Equal(t, domain.LunchBreak30, ann.Entry.LunchBreak)

	require.Len(t, ann.Expenses, 2)
	paint := ann.Expenses[0]
	assert.Equal(t, `Paint, 2" brush`, paint.Expense.Description)
	assert.Equal(t, "12.5", paint.Expense.Amount.String())
	assert.Equal(t, day, paint.Expense.Date, "expense date defaults to the entry date")
	require.NotNil(t, paint.Receipt)
	assert.Equal(t, "paint.png", paint.Receipt.Filename)
	assert.Equal(t, []byte("receipt-bytes"), paint.Receipt.Data)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), ann.Expenses[1].Expense.Date)
	assert.Nil(t, ann.Expenses[1].Receipt)

	ben := rows[1]
	assert.True(t, ben.Entry.IsFullDay)
	assert.False(t, ben.Entry.HasLunchBreak)
	assert.Nil(t, ben.Entry.StartTime)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"bad toml", "[[entry]\n", "failed to parse batch file"},
		{"bad date", "[[entry]]\ndate = \"03/01/2024\"\nfull_day = true\n", "entry 1"},
		{"bad clock", "[[entry]]\ndate = \"2024-03-01\"\nstart = \"9am\"\nend = \"17:00\"\n", "invalid time of day"},
		{"missing receipt", "[[entry]]\ndate = \"2024-03-01\"\nfull_day = true\n[[entry.expense]]\namount = \"1\"\nreceipt = \"nope.png\"\n", "entry 1 expense 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
