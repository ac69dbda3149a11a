package domain

import (
	"fmt"
	"time"
)

// DayLayout is the wire format of a calendar day
const DayLayout = "2006-01-02"

// Day is a calendar day in the student's local zone, without a time of day.
// The zero Day is not a valid calendar day; use a *Day for "no day yet".
type Day struct {
	year  int
	month time.Month
	day   int
}

// NewDay builds a Day, normalising overflowing values the way time.Date does
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar day of t in t's own location
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// ParseDay parses a YYYY-MM-DD string
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid calendar day %q: %w", s, err)
	}
	return DayOf(t), nil
}

func (d Day) midnightUTC() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Day
func (d Day) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// DaysSince returns the number of calendar days from earlier to d.
// It is negative when earlier is after d.
func (d Day) DaysSince(earlier Day) int {
	return int(d.midnightUTC().Sub(earlier.midnightUTC()).Hours() / 24)
}

// AddDays returns the day n days after d
func (d Day) AddDays(n int) Day {
	return DayOf(d.midnightUTC().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other
func (d Day) Before(other Day) bool {
	return d.DaysSince(other) < 0
}

func (d Day) String() string {
	return d.midnightUTC().Format(DayLayout)
}

// MarshalText implements encoding.TextMarshaler
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
