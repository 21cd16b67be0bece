package models

import "time"

// Day is a calendar day in UTC, distinct from an instant in time. All
// per-day keys (daily_aggregates, insight_records) and all day-window
// queries go through this type so UTC normalization happens exactly once.
type Day struct {
	t time.Time
}

// NewDay truncates an instant to its UTC calendar day.
func NewDay(at time.Time) Day {
	u := at.UTC()
	return Day{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// TodayUTC returns the current UTC calendar day.
func TodayUTC() Day {
	return NewDay(time.Now())
}

// YesterdayUTC returns the UTC calendar day before the current one. Jobs
// compute this once at start and hold it fixed for the whole run.
func YesterdayUTC() Day {
	return NewDay(time.Now().UTC().AddDate(0, 0, -1))
}

// Start returns the day's UTC midnight instant.
func (d Day) Start() time.Time {
	return d.t
}

// End returns the last instant of the day (23:59:59.999999999 UTC).
func (d Day) End() time.Time {
	return d.t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Next returns the following calendar day.
func (d Day) Next() Day {
	return Day{t: d.t.AddDate(0, 0, 1)}
}

// Equal reports whether two values denote the same calendar day.
func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// Contains reports whether the instant falls within the day's UTC window.
func (d Day) Contains(at time.Time) bool {
	u := at.UTC()
	return !u.Before(d.t) && u.Before(d.t.AddDate(0, 0, 1))
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	return d.t.Format("2006-01-02")
}

// IsZero reports whether the day is the zero value.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}
