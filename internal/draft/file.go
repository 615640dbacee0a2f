package draft

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/domain"
)

// File is the TOML layout of a batch file:
//
//	[[entry]]
//	date = "2024-03-01"
//	employee = "Ann"
//	location = "12 Elm St"
//	start = "07:00"
//	end = "15:30"
//	lunch = 30
//
//	  [[entry.expense]]
//	  amount = "12.50"
//	  description = "Paint"
//	  retailer = "Hardware Co"
//	  receipt = "receipts/paint.jpg"
type File struct {
	Entries []FileEntry `toml:"entry"`
}

// FileEntry is one [[entry]] table.
type FileEntry struct {
	Date       string        `toml:"date"`
	Employee   string        `toml:"employee"`
	EmployeeID int64         `toml:"employee_id"`
	Location   string        `toml:"location"`
	FullDay    bool          `toml:"full_day"`
	Start      string        `toml:"start"`
	End        string        `toml:"end"`
	Lunch      int           `toml:"lunch"`
	Expenses   []FileExpense `toml:"expense"`
}

// FileExpense is one [[entry.expense]] table. Receipt paths are relative to
// the batch file.
type FileExpense struct {
	Date        string          `toml:"date"`
	Amount      decimal.Decimal `toml:"amount"`
	Description string          `toml:"description"`
	Retailer    string          `toml:"retailer"`
	Receipt     string          `toml:"receipt"`
}

// LoadFile reads a batch file from disk.
func LoadFile(path string) (Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return Batch{}, err
	}
	defer f.Close()

	return Decode(f, filepath.Dir(path))
}

// Decode parses a batch from r, resolving receipt paths against baseDir.
func Decode(r io.Reader, baseDir string) (Batch, error) {
	var file File
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return Batch{}, fmt.Errorf("failed to parse batch file: %w", err)
	}

	batch := New()
	for i, fe := range file.Entries {
		te, err := fe.toTimeEntry()
		if err != nil {
			return Batch{}, fmt.Errorf("entry %d: %w", i+1, err)
		}

		var rowID uuid.UUID
		batch, rowID = batch.Add(te)

		for j, fx := range fe.Expenses {
			x, receipt, err := fx.toExpense(te, baseDir)
			if err != nil {
				return Batch{}, fmt.Errorf("entry %d expense %d: %w", i+1, j+1, err)
			}
			if batch, _, err = batch.AddExpense(rowID, x, receipt); err != nil {
				return Batch{}, err
			}
		}
	}
	return batch, nil
}

func (fe FileEntry) toTimeEntry() (domain.TimeEntry, error) {
	date, err := domain.ParseDate(fe.Date)
	if err != nil {
		return domain.TimeEntry{}, err
	}

	var te domain.TimeEntry
	if fe.FullDay {
		te = domain.NewFullDayEntry(fe.Employee, date, fe.Location, false)
	} else {
		start, err := domain.ParseClockTime(fe.Start)
		if err != nil {
			return domain.TimeEntry{}, err
		}
		end, err := domain.ParseClockTime(fe.End)
		if err != nil {
			return domain.TimeEntry{}, err
		}
		te = domain.NewPartialDayEntry(fe.Employee, date, fe.Location, start, end)
	}

	if fe.Lunch != 0 {
		te = te.WithLunchBreak(domain.LunchBreak(fe.Lunch))
	}
	te.EmployeeID = fe.EmployeeID
	return te, nil
}

func (fx FileExpense) toExpense(te domain.TimeEntry, baseDir string) (domain.Expense, *Attachment, error) {
	date := te.Date
	if fx.Date != "" {
		d, err := domain.ParseDate(fx.Date)
		if err != nil {
			return domain.Expense{}, nil, err
		}
		date = d
	}

	x := domain.NewExpense(date, fx.Amount, fx.Description, fx.Retailer)
	if fx.Receipt == "" {
		return x, nil, nil
	}

	receiptPath := fx.Receipt
	if !filepath.IsAbs(receiptPath) {
		receiptPath = filepath.Join(baseDir, receiptPath)
	}
	data, err := os.ReadFile(receiptPath)
	if err != nil {
		return domain.Expense{}, nil, fmt.Errorf("failed to read receipt: %w", err)
	}
	return x, &Attachment{Filename: filepath.Base(receiptPath), Data: data}, nil
}
