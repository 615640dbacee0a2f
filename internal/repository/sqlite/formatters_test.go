package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "UTC time",
			input:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			expected: "2024-01-15T10:30:00Z",
		},
		{
			name:     "offset time is stored as UTC",
			input:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			expected: "2024-01-15T15:30:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestFormatDateForDB_SortsLexically(t *testing.T) {
	earlier := FormatDateForDB(time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC))
	later := FormatDateForDB(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "2024-09-30", earlier)
	assert.Less(t, earlier, later)
}

func TestFormatDatePtrForDB(t *testing.T) {
	assert.Nil(t, FormatDatePtrForDB(nil))

	d := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-29", FormatDatePtrForDB(&d))
}

func TestParseDateFromDB(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"valid date", "2024-03-01", false},
		{"timestamp is not a date", "2024-03-01T10:00:00Z", true},
		{"US format", "03/01/2024", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDateFromDB(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, FormatDateForDB(d))
		})
	}
}

func TestNullableInt64(t *testing.T) {
	assert.Nil(t, nullableInt64(nil))
	assert.Equal(t, int64(42), nullableInt64(int64Ptr(42)))
}
