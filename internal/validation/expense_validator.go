package validation

import (
	"jobsite-tracker/internal/domain"
)

// ExpenseValidator validates expenses and receipt uploads
type ExpenseValidator struct {
	validator *Validator
}

// NewExpenseValidator creates a new expense validator
func NewExpenseValidator(v *Validator) *ExpenseValidator {
	return &ExpenseValidator{validator: v}
}

// ValidateExpense checks amount, description and retailer
func (ev *ExpenseValidator) ValidateExpense(x domain.Expense) error {
	validationError := NewValidationError()

	if !ev.validator.IsNonNegative(x.Amount) {
		validationError.AddInvalidValueError("amount", x.Amount.String(), "must not be negative")
	}
	if !ev.validator.IsNonEmptyString(x.Description) {
		validationError.AddRequiredError("description")
	}
	if !ev.validator.IsNonEmptyString(x.RetailerName) {
		validationError.AddRequiredError("retailer")
	} else if !ev.validator.IsValidStringLength(x.RetailerName, 1, maxNameLength) {
		validationError.AddInvalidLengthError("retailer", x.RetailerName, 1, maxNameLength)
	}

	return validationError.OrNil()
}

// ValidateReceipt checks size and sniffed content type, returning the type
func (ev *ExpenseValidator) ValidateReceipt(data []byte) (string, error) {
	validationError := NewValidationError()

	if len(data) == 0 {
		validationError.AddRequiredError("receipt")
		return "", validationError
	}

	if limit := ev.validator.MaxReceiptBytes(); int64(len(data)) > limit {
		validationError.AddTooLargeError("receipt", int64(len(data)), limit)
	}

	contentType := ev.validator.DetectContentType(data)
	if !ev.validator.IsAllowedContentType(contentType) {
		validationError.AddInvalidFormatError("receipt", contentType, "a JPEG, PNG, WebP or GIF image")
	}

	return contentType, validationError.OrNil()
}
