package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

var versionSuffix = regexp.MustCompile(`^(.*\S) v(\d+)$`)

// WorksheetRow is one priced line of an estimate.
type WorksheetRow struct {
	Item string          `json:"item"`
	Cost decimal.Decimal `json:"cost"`
}

// EstimateWorksheet is a job cost estimate. Revisions share a base job name
// and carry a " vN" suffix from the second version on.
type EstimateWorksheet struct {
	ID                 int64           `json:"id"`
	OwnerID            int64           `json:"owner_id"`
	JobName            string          `json:"job_name"`
	Rows               []WorksheetRow  `json:"rows"`
	OverheadPercentage decimal.Decimal `json:"overhead_percentage"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewEstimateWorksheet creates an empty worksheet for the named job.
func NewEstimateWorksheet(jobName string, overheadPercentage decimal.Decimal) EstimateWorksheet {
	return EstimateWorksheet{
		JobName:            jobName,
		OverheadPercentage: overheadPercentage,
	}
}

// Costs returns the row costs in order.
func (w EstimateWorksheet) Costs() []decimal.Decimal {
	costs := make([]decimal.Decimal, len(w.Rows))
	for i, r := range w.Rows {
		costs[i] = r.Cost
	}
	return costs
}

// AddRow returns a copy of the worksheet with a row appended.
func (w EstimateWorksheet) AddRow(item string, cost decimal.Decimal) EstimateWorksheet {
	rows := make([]WorksheetRow, len(w.Rows), len(w.Rows)+1)
	copy(rows, w.Rows)
	w.Rows = append(rows, WorksheetRow{Item: item, Cost: cost})
	return w
}

// Revise returns an unsaved copy of the worksheet named as the next version.
func (w EstimateWorksheet) Revise() EstimateWorksheet {
	rows := make([]WorksheetRow, len(w.Rows))
	copy(rows, w.Rows)
	return EstimateWorksheet{
		OwnerID:            w.OwnerID,
		JobName:            NextVersionName(w.JobName),
		Rows:               rows,
		OverheadPercentage: w.OverheadPercentage,
	}
}

// SplitVersion splits a job name into its base name and version number.
// Names without a suffix are version 1.
func SplitVersion(jobName string) (string, int) {
	m := versionSuffix.FindStringSubmatch(jobName)
	if m == nil {
		return jobName, 1
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return jobName, 1
	}
	return m[1], n
}

// NextVersionName returns the job name of the following revision.
func NextVersionName(jobName string) string {
	base, version := SplitVersion(jobName)
	return fmt.Sprintf("%s v%d", base, version+1)
}
