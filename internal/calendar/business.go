package calendar

import (
	"fmt"
	"time"
)

// IsBusinessDay reports whether d is a Brazilian business day: not a
// Saturday, not a Sunday and not a national holiday.
func IsBusinessDay(d time.Time) (bool, error) {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false, nil
	}
	holidays, err := ComputeHolidays(d.Year())
	if err != nil {
		return false, err
	}
	return !holidays.Contains(d), nil
}

// LastNBusinessDays returns the last n business days up to and including
// from (most recent first).
func LastNBusinessDays(n int, from time.Time) ([]time.Time, error) {
	if n < 1 {
		return nil, fmt.Errorf("business days: n must be positive, got %d", n)
	}

	out := make([]time.Time, 0, n)
	d := truncateToDate(from)

	for len(out) < n {
		ok, err := IsBusinessDay(d)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out, nil
}
