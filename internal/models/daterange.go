package models

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date format used in forms and query strings.
const DateLayout = "2006-01-02"

// DefaultWindowDays is the length of the default reporting window.
const DefaultWindowDays = 30

// ErrInvertedRange is returned when a window ends before it starts.
var ErrInvertedRange = errors.New("end date is before start date")

// DateRange is an inclusive window of calendar dates. Both bounds are
// midnights in the same location.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NormalizeDate discards the time-of-day of t and returns midnight of the
// same calendar date in loc.
func NormalizeDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ParseDate parses a YYYY-MM-DD string as a calendar date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// NewDateRange builds the window [start, end], both inclusive.
func NewDateRange(start, end time.Time, loc *time.Location) (*DateRange, error) {
	s := NormalizeDate(start, loc)
	e := NormalizeDate(end, loc)
	if e.Before(s) {
		return nil, ErrInvertedRange
	}
	return &DateRange{Start: s, End: e}, nil
}

// OptionalDateRange returns nil unless both bounds are given.
func OptionalDateRange(start, end *time.Time, loc *time.Location) (*DateRange, error) {
	if start == nil || end == nil {
		return nil, nil
	}
	return NewDateRange(*start, *end, loc)
}

// DefaultDateRange is the last DefaultWindowDays days up to and including today.
func DefaultDateRange(now time.Time, loc *time.Location) *DateRange {
	today := NormalizeDate(now.In(loc), loc)
	return &DateRange{Start: today.AddDate(0, 0, -DefaultWindowDays), End: today}
}

// Lower is the first instant inside the window.
func (r DateRange) Lower() time.Time {
	return r.Start
}

// Upper is the first instant after the window (exclusive bound).
// Filtering with [Lower, Upper) is equivalent to End 23:59:59.999... inclusive.
func (r DateRange) Upper() time.Time {
	return r.End.AddDate(0, 0, 1)
}

// Contains reports whether t falls inside the window.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Lower()) && t.Before(r.Upper())
}

// Days returns every calendar date in the window, oldest first.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// String renders the window for page headings.
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + " to " + r.End.Format(DateLayout)
}
