package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"jobsite-tracker/internal/calc"
	"jobsite-tracker/internal/domain"
)

const (
	// WorksheetSheet is the name of the estimate sheet in exported workbooks.
	WorksheetSheet = "Estimate"
	// CurrencyFormat is applied to every cost cell.
	CurrencyFormat = "$#,##0.00"
)

// NewWorksheetWorkbook lays out an estimate as an item/cost grid followed by
// subtotal, overhead and total rows. The caller owns the returned file.
func NewWorksheetWorkbook(ws domain.EstimateWorksheet) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", WorksheetSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := fillWorksheet(f, ws); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fillWorksheet(f *excelize.File, ws domain.EstimateWorksheet) error {
	numFmt := CurrencyFormat
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("failed to create currency style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	boldMoney, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("failed to create total style: %w", err)
	}

	if err := f.SetSheetRow(WorksheetSheet, "A1", &[]interface{}{"item", "cost"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(WorksheetSheet, "A1", "B1", bold); err != nil {
		return err
	}

	row := 2
	for _, r := range ws.Rows {
		if err := f.SetCellStr(WorksheetSheet, cell("A", row), r.Item); err != nil {
			return err
		}
		if err := setMoney(f, cell("B", row), r.Cost, money); err != nil {
			return err
		}
		row++
	}

	summary := calc.Cost(ws.Costs(), ws.OverheadPercentage)
	totals := []struct {
		label string
		value decimal.Decimal
		style int
	}{
		{"Subtotal", summary.Subtotal, money},
		{fmt.Sprintf("Overhead (%s%%)", ws.OverheadPercentage.String()), summary.OverheadAmount, money},
		{"Total", summary.Total, boldMoney},
	}
	for _, t := range totals {
		if err := f.SetCellStr(WorksheetSheet, cell("A", row), t.label); err != nil {
			return err
		}
		if err := setMoney(f, cell("B", row), t.value, t.style); err != nil {
			return err
		}
		row++
	}

	return f.SetColWidth(WorksheetSheet, "A", "A", 40)
}

func setMoney(f *excelize.File, ref string, v decimal.Decimal, style int) error {
	if err := f.SetCellFloat(WorksheetSheet, ref, v.InexactFloat64(), -1, 64); err != nil {
		return err
	}
	return f.SetCellStyle(WorksheetSheet, ref, ref, style)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// WriteWorksheetXLSX writes the estimate workbook to w.
func WriteWorksheetXLSX(w io.Writer, ws domain.EstimateWorksheet) error {
	f, err := NewWorksheetWorkbook(ws)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
