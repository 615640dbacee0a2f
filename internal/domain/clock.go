package domain

import (
	"fmt"
	"time"
)

// ClockLayout is the wall-clock format used for entry start and end times.
const ClockLayout = "15:04"

// DateLayout is the calendar-date format used for storage and input files.
const DateLayout = "2006-01-02"

// ClockTime is a local time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// Full-day display ranges. The entry form and the reporting views have always
// shown different ranges for a full day; neither is used to compute hours.
var (
	FormFullDayStart   = ClockTime{Hour: 8, Minute: 0}
	FormFullDayEnd     = ClockTime{Hour: 16, Minute: 30}
	ReportFullDayStart = ClockTime{Hour: 9, Minute: 0}
	ReportFullDayEnd   = ClockTime{Hour: 17, Minute: 0}
)

// NewClockTime creates a ClockTime for the given hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// ParseClockTime parses a "15:04" formatted time of day.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ClockTimeFromMinutes converts minutes since midnight back into a ClockTime.
func ClockTimeFromMinutes(minutes int) ClockTime {
	return ClockTime{Hour: minutes / 60, Minute: minutes % 60}
}

// Minutes returns the number of minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// IsValid reports whether the time falls inside a single day.
func (c ClockTime) IsValid() bool {
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalText encodes the time as "15:04".
func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a "15:04" time of day.
func (c *ClockTime) UnmarshalText(text []byte) error {
	parsed, err := ParseClockTime(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseDate parses a "2006-01-02" calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
