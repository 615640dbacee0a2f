package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/domain"
)

// worksheetFile is the TOML layout of an estimate file:
//
//	job = "Deck"
//	overhead = "15"
//
//	[[row]]
//	item = "Boards"
//	cost = "420.00"
type worksheetFile struct {
	Job      string          `toml:"job"`
	Overhead decimal.Decimal `toml:"overhead"`
	Rows     []worksheetRow  `toml:"row"`
}

type worksheetRow struct {
	Item string          `toml:"item"`
	Cost decimal.Decimal `toml:"cost"`
}

// loadWorksheetFile reads an estimate worksheet from a TOML file
func loadWorksheetFile(path string) (domain.EstimateWorksheet, error) {
	var file worksheetFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return domain.EstimateWorksheet{}, fmt.Errorf("failed to read worksheet file %s: %w", path, err)
	}

	ws := domain.NewEstimateWorksheet(file.Job, file.Overhead)
	for _, row := range file.Rows {
		ws = ws.AddRow(row.Item, row.Cost)
	}
	return ws, nil
}
