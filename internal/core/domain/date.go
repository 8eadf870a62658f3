package domain

import (
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day with no time component, serialized as YYYY-MM-DD.
type Date string

func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", &ValidationError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return Date(s), nil
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Time returns the day as midnight UTC.
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Value: string(d), Reason: "expected YYYY-MM-DD"}
	}
	return t, nil
}

func (d Date) AddDays(n int) (Date, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return DateOf(t.AddDate(0, 0, n)), nil
}

func (d Date) String() string {
	return string(d)
}

// ValidateRange fails when from is after to or either bound is malformed.
func ValidateRange(from, to Date) error {
	f, err := from.Time()
	if err != nil {
		return err
	}
	t, err := to.Time()
	if err != nil {
		return err
	}
	if f.After(t) {
		return &ValidationError{Field: "from", Value: string(from), Reason: "must not be after " + string(to)}
	}
	return nil
}

// MinDate is the lower bound used when a caller wants a habit's whole history.
const MinDate Date = "1970-01-01"
