package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitVersion(t *testing.T) {
	tests := []struct {
		name            string
		expectedBase    string
		expectedVersion int
	}{
		{"Kitchen", "Kitchen", 1},
		{"Kitchen v2", "Kitchen", 2},
		{"Kitchen v12", "Kitchen", 12},
		{"Bath v2 v3", "Bath v2", 3},
		{"Kitchen v0", "Kitchen v0", 1},
		{"Kitchenv2", "Kitchenv2", 1},
		{"v2", "v2", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, version := SplitVersion(tt.name)
			assert.Equal(t, tt.expectedBase, base)
			assert.Equal(t, tt.expectedVersion, version)
		})
	}
}

func TestNextVersionName(t *testing.T) {
	assert.Equal(t, "Kitchen v2", NextVersionName("Kitchen"))
	assert.Equal(t, "Kitchen v3", NextVersionName("Kitchen v2"))
	assert.Equal(t, "Deck v10", NextVersionName("Deck v9"))
}

func TestEstimateWorksheet_Revise(t *testing.T) {
	ws := NewEstimateWorksheet("Kitchen", decimal.NewFromInt(15)).
		AddRow("Cabinets", decimal.NewFromInt(10))
	ws.ID = 7
	ws.OwnerID = 3

	next := ws.Revise()

	assert.Equal(t, int64(0), next.ID)
	assert.Equal(t, int64(3), next.OwnerID)
	assert.Equal(t, "Kitchen v2", next.JobName)
	assert.Equal(t, ws.Rows, next.Rows)

	next.Rows[0].Item = "Changed"
	assert.Equal(t, "Cabinets", ws.Rows[0].Item, "revision must not share rows with the original")
}

func TestEstimateWorksheet_AddRowDoesNotAlias(t *testing.T) {
	base := NewEstimateWorksheet("Deck", decimal.Zero).AddRow("Boards", decimal.NewFromInt(100))
	a := base.AddRow("Screws", decimal.NewFromInt(5))
	b := base.AddRow("Stain", decimal.NewFromInt(30))

	assert.Len(t, base.Rows, 1)
	assert.Equal(t, "Screws", a.Rows[1].Item)
	assert.Equal(t, "Stain", b.Rows[1].Item)
	assert.Len(t, a.Costs(), 2)
}
