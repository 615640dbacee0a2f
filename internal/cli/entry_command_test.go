package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/report"
)

const longDayBatch = `
[[entry]]
date = "2024-03-04"
employee = "Ann"
location = "Elm St"
start = "06:00"
end = "17:00"
lunch = 30
`

const mixedBatch = longDayBatch + `
[[entry]]
date = "2024-03-05"
employee = "Ann"
location = "Elm St"
start = "08:00"
end = "12:00"
`

const selfBatch = `
[[entry]]
date = "2024-03-04"
location = "Elm St"
start = "07:00"
end = "17:00"

  [[entry.expense]]
  amount = "8.00"
  description = "Tape"
  retailer = "Hardware Co"
`

func TestEntrySubmitCommand(t *testing.T) {
	ta := setupTestApp(t)
	path := ta.writeFile(t, "week.toml", weekBatch)

	err := NewEntrySubmitCommand(ta.app, submitFlags{}).Execute(context.Background(), []string{path})
	require.NoError(t, err)

	out := ta.output()
	assert.Contains(t, out, "Submitted 2 of 2 entries")
	assert.Contains(t, out, "Elm St")
	assert.Contains(t, out, "08:00 16:30", "submitted full days show the entry form range")
	assert.NotContains(t, out, "09:00 17:00")
	assert.Contains(t, out, "15.50")
	assert.NotContains(t, out, "over 8 hours")
}

func TestEntrySubmitCommand_Overages(t *testing.T) {
	tests := []struct {
		name          string
		batch         string
		yes           bool
		input         string
		expectPrompt  bool
		expectOutput  string
		expectedSaved int
	}{
		{
			name:          "declining can still submit the shorter days",
			batch:         mixedBatch,
			input:         "n\ny\n",
			expectPrompt:  true,
			expectOutput:  "Submitted 1 of 2 entries",
			expectedSaved: 1,
		},
		{
			name:          "declining both prompts writes nothing",
			batch:         mixedBatch,
			input:         "n\nn\n",
			expectPrompt:  true,
			expectOutput:  "Nothing was submitted.",
			expectedSaved: 0,
		},
		{
			name:          "declining writes nothing",
			input:         "n\n",
			expectPrompt:  true,
			expectOutput:  "Nothing was submitted.",
			expectedSaved: 0,
		},
		{
			name:          "empty answer declines",
			input:         "\n",
			expectPrompt:  true,
			expectOutput:  "Nothing was submitted.",
			expectedSaved: 0,
		},
		{
			name:          "confirming writes the batch",
			input:         "y\n",
			expectPrompt:  true,
			expectOutput:  "Submitted 1 of 1 entries",
			expectedSaved: 1,
		},
		{
			name:          "yes flag skips the prompt",
			yes:           true,
			expectOutput:  "Submitted 1 of 1 entries",
			expectedSaved: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := setupTestApp(t)
			batch := tt.batch
			if batch == "" {
				batch = longDayBatch
			}
			path := ta.writeFile(t, "long.toml", batch)
			ta.input(tt.input)

			err := NewEntrySubmitCommand(ta.app, submitFlags{Yes: tt.yes}).Execute(context.Background(), []string{path})
			require.NoError(t, err)

			out := ta.output()
			assert.Contains(t, out, tt.expectOutput)
			if tt.expectPrompt {
				assert.Contains(t, out, "These entries are over 8 hours:")
				assert.Contains(t, out, "2024-03-04  Ann")
				assert.Contains(t, out, "10.50 h")
			} else {
				assert.NotContains(t, out, "over 8 hours")
			}

			entries, err := ta.services.Entries.ListEntries(context.Background(), ta.ann, report.Filter{})
			require.NoError(t, err)
			assert.Len(t, entries, tt.expectedSaved)
		})
	}
}

func TestEntrySubmitCommand_SelfEntries(t *testing.T) {
	tests := []struct {
		name             string
		flags            submitFlags
		expectedEmployee string
		expectedExpenses int
	}{
		{
			name:             "unnamed entries are saved for the profile",
			expectedEmployee: "Ann",
			expectedExpenses: 1,
		},
		{
			name:             "employee flag names them",
			flags:            submitFlags{Employee: "Ben"},
			expectedEmployee: "Ben",
			expectedExpenses: 1,
		},
		{
			name:             "hours only drops the expenses",
			flags:            submitFlags{HoursOnly: true},
			expectedEmployee: "Ann",
			expectedExpenses: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := setupTestApp(t)
			ctx := context.Background()
			path := ta.writeFile(t, "self.toml", selfBatch)
			ta.input("y\n")

			require.NoError(t, NewEntrySubmitCommand(ta.app, tt.flags).Execute(ctx, []string{path}))

			out := ta.output()
			assert.Contains(t, out, "These entries are over 8 hours:")
			if tt.flags.Employee == "" {
				assert.Contains(t, out, "2024-03-04  "+domain.SelfLabel)
			}
			assert.Contains(t, out, "Submitted 1 of 1 entries")

			entries, err := ta.services.Entries.ListEntries(ctx, ta.ann, report.Filter{})
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedEmployee, entries[0].EmployeeName)
			assert.Len(t, entries[0].Expenses, tt.expectedExpenses)
		})
	}
}

func TestEntrySubmitCommand_Errors(t *testing.T) {
	ta := setupTestApp(t)
	ctx := context.Background()

	err := NewEntrySubmitCommand(ta.app, submitFlags{Yes: true}).Execute(ctx, []string{ta.dir + "/missing.toml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read batch file")

	path := ta.writeFile(t, "bad.toml", `
[[entry]]
date = "2024-03-04"
employee = "Ann"
start = "09:00"
end = "17:00"
`)
	err = NewEntrySubmitCommand(ta.app, submitFlags{Yes: true}).Execute(ctx, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to submit entries")
	assert.Contains(t, err.Error(), "location")
}

func TestEntryListCommand(t *testing.T) {
	ta := setupTestApp(t)
	ta.submitWeek(t)
	ctx := context.Background()

	require.NoError(t, NewEntryListCommand(ta.app, filterFlags{}).Execute(ctx, nil))
	out := ta.output()
	assert.Contains(t, out, "Oak Ave")
	assert.Contains(t, out, "$12.50")
	assert.Less(t, indexOf(out, "2024-03-05"), indexOf(out, "2024-03-04"), "newest first")
	assert.Contains(t, out, "09:00 17:00", "listed full days show the report range")

	require.NoError(t, NewEntryListCommand(ta.app, filterFlags{Location: "Oak Ave"}).Execute(ctx, nil))
	out = ta.output()
	assert.NotContains(t, out, "Elm St")
	assert.Contains(t, out, "7.50")

	ta.as(ta.ben)
	require.NoError(t, NewEntryListCommand(ta.app, filterFlags{}).Execute(ctx, nil))
	assert.Contains(t, ta.output(), "No entries found")

	err := NewEntryListCommand(ta.app, filterFlags{From: "2024-03-05", To: "2024-03-01"}).Execute(ctx, nil)
	assert.Error(t, err)
}

func TestEntryShowAndDeleteCommands(t *testing.T) {
	ta := setupTestApp(t)
	ta.submitWeek(t)
	ctx := context.Background()

	entries, err := ta.services.Entries.ListEntries(ctx, ta.ann, report.Filter{Location: "Elm St"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	id := formatID(entries[0].ID)

	require.NoError(t, NewEntryShowCommand(ta.app).Execute(ctx, []string{id}))
	out := ta.output()
	assert.Contains(t, out, "Lumber")
	assert.Contains(t, out, "Home Depot")

	ta.as(ta.ben)
	err = NewEntryShowCommand(ta.app).Execute(ctx, []string{id})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")

	ta.as(ta.ann)
	ta.input("n\n")
	require.NoError(t, NewEntryDeleteCommand(ta.app, false).Execute(ctx, []string{id}))
	assert.Contains(t, ta.output(), "Delete cancelled.")

	ta.input("y\n")
	require.NoError(t, NewEntryDeleteCommand(ta.app, false).Execute(ctx, []string{id}))
	out = ta.output()
	assert.Contains(t, out, "and its 1 expenses?")
	assert.Contains(t, out, "Deleted entry "+id)

	err = NewEntryDeleteCommand(ta.app, true).Execute(ctx, []string{id})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = NewEntryDeleteCommand(ta.app, true).Execute(ctx, []string{"zero"})
	assert.Error(t, err)
}
