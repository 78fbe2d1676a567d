// Package day normalizes timestamps to the civil days used as store keys.
package day

import "time"

// LayoutISO is the key format for a day.
const LayoutISO = "2006-01-02"

// Of drops the clock from t, keeping the calendar date as seen in t's location.
func Of(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a normalized day.
func Date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// Today is the normalized current local day.
func Today() time.Time {
	return Of(time.Now())
}

// Key formats a day as 2006-01-02.
func Key(t time.Time) string {
	return Of(t).Format(LayoutISO)
}

// Parse reads a 2006-01-02 day.
func Parse(v string) (time.Time, error) {
	t, err := time.Parse(LayoutISO, v)
	if err != nil {
		return time.Time{}, err
	}
	return Of(t), nil
}

// Same reports whether a and b fall on the same civil day.
func Same(a, b time.Time) bool {
	return Key(a) == Key(b)
}
