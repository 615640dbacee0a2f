package sqlite

import (
	"time"
)

const dateLayout = "2006-01-02"

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatDateForDB formats a calendar date as YYYY-MM-DD so that string
// comparison in SQL orders dates correctly
func FormatDateForDB(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatDatePtrForDB formats a *time.Time date, returning nil if the pointer is nil
func FormatDatePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatDateForDB(*t)
}

// ParseDateFromDB parses a YYYY-MM-DD date from the database
func ParseDateFromDB(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// nullableInt64 converts an optional integer into a driver value
func nullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
