package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "name", Message: "is required"}}, "validation error for field 'name': is required"},
		{"Multiple errors", []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be positive"},
		}, "multiple validation errors: validation error for field 'name': is required; validation error for field 'age': must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			assert.Equal(t, tt.expectError, ve.Error())
		})
	}
}

func TestValidationError_OrNil(t *testing.T) {
	ve := NewValidationError()
	assert.NoError(t, ve.OrNil())

	ve.AddRequiredError("location")
	err := ve.OrNil()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestValidationError_AddHelpers(t *testing.T) {
	tests := []struct {
		name            string
		add             func(ve *ValidationError)
		expectedType    ValidationErrorType
		expectedMessage string
	}{
		{
			name:            "required",
			add:             func(ve *ValidationError) { ve.AddRequiredError("location") },
			expectedType:    ErrorTypeRequired,
			expectedMessage: "location is required",
		},
		{
			name:            "format",
			add:             func(ve *ValidationError) { ve.AddInvalidFormatError("location", "x", "HH:MM") },
			expectedType:    ErrorTypeInvalidFormat,
			expectedMessage: "location has invalid format, expected: HH:MM",
		},
		{
			name:            "length between",
			add:             func(ve *ValidationError) { ve.AddInvalidLengthError("location", "x", 2, 10) },
			expectedType:    ErrorTypeInvalidLength,
			expectedMessage: "location must be between 2 and 10 characters long",
		},
		{
			name:            "length at most",
			add:             func(ve *ValidationError) { ve.AddInvalidLengthError("location", "x", 0, 10) },
			expectedType:    ErrorTypeInvalidLength,
			expectedMessage: "location must be at most 10 characters long",
		},
		{
			name:            "value",
			add:             func(ve *ValidationError) { ve.AddInvalidValueError("location", "x", "unknown site") },
			expectedType:    ErrorTypeInvalidValue,
			expectedMessage: "location has invalid value: unknown site",
		},
		{
			name:            "range",
			add:             func(ve *ValidationError) { ve.AddInvalidRangeError("location", "x", "out of bounds") },
			expectedType:    ErrorTypeInvalidRange,
			expectedMessage: "location has invalid range: out of bounds",
		},
		{
			name:            "too large",
			add:             func(ve *ValidationError) { ve.AddTooLargeError("location", 20, 10) },
			expectedType:    ErrorTypeTooLarge,
			expectedMessage: "location is 20 bytes, the limit is 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := NewValidationError()
			tt.add(ve)

			require.Len(t, ve.Errors, 1)
			assert.Equal(t, "location", ve.Errors[0].Field)
			assert.Equal(t, tt.expectedType, ve.Errors[0].Type)
			assert.Equal(t, tt.expectedMessage, ve.Errors[0].Message)
		})
	}
}

func TestValidationError_Merge(t *testing.T) {
	inner := NewValidationError()
	inner.AddRequiredError("location")

	ve := NewValidationError()
	ve.Merge("entries[1]", inner)
	ve.Merge("entries[2]", nil)
	ve.Merge("entries[3]", errors.New("not a validation error"))

	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "entries[1].location", ve.Errors[0].Field)
	assert.Equal(t, "entries[1]: location is required", ve.Errors[0].Message)
	assert.Equal(t, "location", inner.Errors[0].Field, "source errors are not modified")
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("date")
	ve.AddRequiredError("location")
	ve.AddInvalidValueError("date", "x", "bad")

	assert.Len(t, ve.GetFieldErrors("date"), 2)
	assert.Len(t, ve.GetFieldErrors("location"), 1)
	assert.Empty(t, ve.GetFieldErrors("amount"))
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	assert.Equal(t, "Input validation failed", ve.GetUserFriendlyMessage())

	ve.AddRequiredError("date")
	assert.Equal(t, "date is required", ve.GetUserFriendlyMessage())

	ve.AddRequiredError("location")
	assert.Equal(t, "Multiple validation errors occurred:\n- date is required\n- location is required", ve.GetUserFriendlyMessage())
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError()))
	assert.False(t, IsValidationError(errors.New("plain")))
	assert.False(t, IsValidationError(nil))
}
