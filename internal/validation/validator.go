package validation

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"jobsite-tracker/internal/config"
)

const (
	defaultMaxReceiptBytes = 5 << 20
	maxNameLength          = 255
)

var defaultReceiptTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidID checks if a row id is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidEmail checks for a bare address such as ann@example.com
func (v *Validator) IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// IsNonNegative checks that a decimal amount is zero or more
func (v *Validator) IsNonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}

// IsValidDateRange checks if a date range is logical
func (v *Validator) IsValidDateRange(startTime, endTime *time.Time) bool {
	if startTime == nil || endTime == nil {
		return true // One or both dates are nil, which is valid for open-ended ranges
	}
	return startTime.Before(*endTime) || startTime.Equal(*endTime)
}

// DetectContentType sniffs the media type of uploaded bytes, dropping any parameters
func (v *Validator) DetectContentType(data []byte) string {
	contentType := http.DetectContentType(data)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}

// IsAllowedContentType checks a sniffed type against the configured receipt types
func (v *Validator) IsAllowedContentType(contentType string) bool {
	for _, allowed := range v.getReceiptTypes() {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// MaxReceiptBytes returns the configured receipt size limit or default
func (v *Validator) MaxReceiptBytes() int64 {
	if v.config != nil && v.config.Receipts.MaxBytes > 0 {
		return v.config.Receipts.MaxBytes
	}
	return defaultMaxReceiptBytes
}

// getReceiptTypes returns configured receipt content types or default
func (v *Validator) getReceiptTypes() []string {
	if v.config != nil && len(v.config.Receipts.AllowedTypes) > 0 {
		return v.config.Receipts.AllowedTypes
	}
	return defaultReceiptTypes
}
