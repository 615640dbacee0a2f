package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeDatabase, "database"},
		{ErrorTypeInvalidInput, "invalid_input"},
		{ErrorTypeTimeout, "timeout"},
		{ErrorTypePermission, "permission"},
		{ErrorTypeStorage, "storage"},
		{ErrorTypeCancelled, "cancelled"},
		{ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	withoutCause := &AppError{Type: ErrorTypeCancelled, Message: "batch submission cancelled"}
	withCause := &AppError{Type: ErrorTypeStorage, Message: "write failed", Cause: errors.New("disk full")}

	assert.Equal(t, "cancelled: batch submission cancelled", withoutCause.Error())
	assert.Equal(t, "storage: write failed (caused by: disk full)", withCause.Error())
	assert.Equal(t, withCause.Cause, withCause.Unwrap())
}

func TestAppError_Is(t *testing.T) {
	a := &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}

	assert.True(t, a.Is(&AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}))
	assert.False(t, a.Is(&AppError{Type: ErrorTypeDatabase, Code: "DATABASE_ERROR"}))
	assert.False(t, a.Is(errors.New("not found")))
	assert.True(t, errors.Is(NewNotFoundError("expense", "1"), &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}))
	assert.True(t, a.IsType(ErrorTypeNotFound))
}

func TestAppError_Context(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation, Message: "bad row"}

	_, exists := appError.GetContext("row")
	assert.False(t, exists, "nil context has no keys")

	result := appError.WithContext("row", 3)
	assert.Same(t, appError, result)

	value, exists := appError.GetContext("row")
	assert.True(t, exists)
	assert.Equal(t, 3, value)
}
