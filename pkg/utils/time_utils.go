package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by trip briefs and itineraries.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be formatted as YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

// DayCount returns the number of calendar days in [start, end], inclusive.
func DayCount(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	if e.Before(s) {
		return 0, fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidInput, start, end)
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}
