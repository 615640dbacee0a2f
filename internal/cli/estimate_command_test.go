package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"jobsite-tracker/internal/export"
)

const deckWorksheet = `
job = "Deck"
overhead = "10"

[[row]]
item = "Boards"
cost = "420.00"

[[row]]
item = "Screws"
cost = "30"
`

func TestEstimateCommands(t *testing.T) {
	ta := setupTestApp(t)
	ctx := context.Background()
	path := ta.writeFile(t, "deck.toml", deckWorksheet)

	require.NoError(t, NewEstimateCreateCommand(ta.app).Execute(ctx, []string{path}))
	out := ta.output()
	assert.Contains(t, out, "Deck (#")
	assert.Contains(t, out, "Boards")
	assert.Contains(t, out, "$450.00")
	assert.Contains(t, out, "Overhead (10%)")
	assert.Contains(t, out, "$495.00")

	views, err := ta.services.Estimates.ListWorksheets(ctx, ta.ann, "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	id := formatID(views[0].Worksheet.ID)

	require.NoError(t, NewEstimateShowCommand(ta.app).Execute(ctx, []string{id}))
	assert.Contains(t, ta.output(), "Screws")

	require.NoError(t, NewEstimateReviseCommand(ta.app).Execute(ctx, []string{id}))
	assert.Contains(t, ta.output(), "Deck v2")

	require.NoError(t, NewEstimateListCommand(ta.app).Execute(ctx, []string{"Deck"}))
	out = ta.output()
	assert.Contains(t, out, "Deck v2")
	assert.Less(t, indexOf(out, "Deck  "), indexOf(out, "Deck v2"), "oldest version first")

	updated := ta.writeFile(t, "deck2.toml", `
job = "Deck"
overhead = "0"

[[row]]
item = "Boards"
cost = "400"
`)
	require.NoError(t, NewEstimateUpdateCommand(ta.app).Execute(ctx, []string{id, updated}))
	out = ta.output()
	assert.NotContains(t, out, "Screws")
	assert.Contains(t, out, "$400.00")

	xlsx := ta.dir + "/deck.xlsx"
	require.NoError(t, NewEstimateExportCommand(ta.app, xlsx).Execute(ctx, []string{id}))
	assert.Contains(t, ta.output(), "Wrote "+xlsx)

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	item, err := f.GetCellValue(export.WorksheetSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Boards", item)

	ta.as(ta.ben)
	err = NewEstimateShowCommand(ta.app).Execute(ctx, []string{id})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")

	require.NoError(t, NewEstimateListCommand(ta.app).Execute(ctx, nil))
	assert.Contains(t, ta.output(), "No worksheets found")

	ta.as(ta.ann)
	require.NoError(t, NewEstimateDeleteCommand(ta.app).Execute(ctx, []string{id}))
	assert.Contains(t, ta.output(), "Deleted worksheet "+id)

	err = NewEstimateShowCommand(ta.app).Execute(ctx, []string{id})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEstimateCommand_Errors(t *testing.T) {
	ta := setupTestApp(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		run           func() error
		expectedError string
	}{
		{
			name:          "missing file",
			run:           func() error { return NewEstimateCreateCommand(ta.app).Execute(ctx, []string{ta.dir + "/none.toml"}) },
			expectedError: "failed to read worksheet file",
		},
		{
			name: "row without an item",
			run: func() error {
				path := ta.writeFile(t, "blank.toml", "job = \"Shed\"\n[[row]]\ncost = \"5\"\n")
				return NewEstimateCreateCommand(ta.app).Execute(ctx, []string{path})
			},
			expectedError: "failed to create worksheet",
		},
		{
			name:          "export needs an output file",
			run:           func() error { return NewEstimateExportCommand(ta.app, "").Execute(ctx, []string{"1"}) },
			expectedError: "output file is required",
		},
		{
			name:          "bad id",
			run:           func() error { return NewEstimateReviseCommand(ta.app).Execute(ctx, []string{"first"}) },
			expectedError: "id",
		},
		{
			name:          "no args",
			run:           func() error { return NewEstimateDeleteCommand(ta.app).Execute(ctx, nil) },
			expectedError: "expected one worksheet id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}
