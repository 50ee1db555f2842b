package dateutil

import "time"

// Date is a calendar day with no time-of-day component, pinned to UTC.
// Habit logs and streak comparisons all go through this type so that
// "same day" and "yesterday" mean the same thing everywhere.
type Date struct {
	t time.Time
}

// New builds a Date for the given year, month and day.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a timestamp to its UTC calendar day.
func FromTime(t time.Time) Date {
	u := t.UTC()
	return New(u.Year(), u.Month(), u.Day())
}

// Today returns the current UTC calendar day.
func Today() Date {
	return FromTime(time.Now())
}

// Time returns the date as a time.Time at UTC midnight, suitable for
// storing in the database.
func (d Date) Time() time.Time {
	return d.t
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) String() string {
	return d.t.Format("2006-01-02")
}
