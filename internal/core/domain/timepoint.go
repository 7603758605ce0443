package domain

import "time"

// DayLayout is the wire format for business days.
const DayLayout = "2006-01-02"

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD business day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// TimePoint pairs the business day the system operates under with the wall-clock
// instant. The two may differ: after midnight the business day stays until it
// is advanced explicitly.
type TimePoint struct {
	Day  time.Time `json:"day"`
	Date time.Time `json:"date"`
}

// NewTimePoint builds a TimePoint, normalising day.
func NewTimePoint(day, date time.Time) TimePoint {
	return TimePoint{Day: DateOf(day), Date: date}
}

// EqualsDay reports day == target.
func (tp TimePoint) EqualsDay(day time.Time) bool {
	return tp.Day.Equal(DateOf(day))
}

// BeforeDay reports day < target.
func (tp TimePoint) BeforeDay(day time.Time) bool {
	return tp.Day.Before(DateOf(day))
}

// BeforeEqualsDay reports day <= target.
func (tp TimePoint) BeforeEqualsDay(day time.Time) bool {
	return !tp.AfterDay(day)
}

// AfterDay reports day > target.
func (tp TimePoint) AfterDay(day time.Time) bool {
	return tp.Day.After(DateOf(day))
}

// AfterEqualsDay reports day >= target.
func (tp TimePoint) AfterEqualsDay(day time.Time) bool {
	return !tp.BeforeDay(day)
}
