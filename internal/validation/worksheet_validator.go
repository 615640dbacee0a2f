package validation

import (
	"fmt"

	"jobsite-tracker/internal/domain"
)

// WorksheetValidator validates estimate worksheets
type WorksheetValidator struct {
	validator *Validator
}

// NewWorksheetValidator creates a new worksheet validator
func NewWorksheetValidator(v *Validator) *WorksheetValidator {
	return &WorksheetValidator{validator: v}
}

// ValidateWorksheet requires a job name, a non-negative overhead and an item
// on every row. Row costs may be negative.
func (wv *WorksheetValidator) ValidateWorksheet(ws domain.EstimateWorksheet) error {
	validationError := NewValidationError()

	if !wv.validator.IsNonEmptyString(ws.JobName) {
		validationError.AddRequiredError("job_name")
	} else if !wv.validator.IsValidStringLength(ws.JobName, 1, maxNameLength) {
		validationError.AddInvalidLengthError("job_name", ws.JobName, 1, maxNameLength)
	}

	if !wv.validator.IsNonNegative(ws.OverheadPercentage) {
		validationError.AddInvalidValueError("overhead_percentage", ws.OverheadPercentage.String(), "must not be negative")
	}

	for i, row := range ws.Rows {
		if !wv.validator.IsNonEmptyString(row.Item) {
			validationError.AddRequiredError(fmt.Sprintf("rows[%d].item", i))
		}
	}

	return validationError.OrNil()
}
