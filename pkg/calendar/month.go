// Package calendar provides month arithmetic, Monday-first month grids, and
// the cursor that tracks the displayed month and the selected day.
package calendar

import (
	"iter"
	"time"

	"tableflip.dev/habits/pkg/day"
)

// Week is one row of a month grid, Monday first. Zero marks a padding cell.
type Week [7]int

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return day.Date(t.Year(), t.Month(), 1)
}

// ShiftMonth returns the first day of the month delta months away from
// monthStart. Years roll over in both directions.
func ShiftMonth(monthStart time.Time, delta int) time.Time {
	return day.Date(monthStart.Year(), monthStart.Month()+time.Month(delta), 1)
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	return day.Date(year, month+1, 0).Day()
}

// mondayOffset is the number of padding cells before the 1st.
func mondayOffset(year int, month time.Month) int {
	return (int(day.Date(year, month, 1).Weekday()) + 6) % 7
}

// MonthGrid yields the week rows of a month in order.
func MonthGrid(year int, month time.Month) iter.Seq[Week] {
	return func(yield func(Week) bool) {
		offset := mondayOffset(year, month)
		days := DaysIn(year, month)
		rows := (offset + days + 6) / 7

		for row := 0; row < rows; row++ {
			var w Week
			for col := range w {
				d := row*7 + col - offset + 1
				if d >= 1 && d <= days {
					w[col] = d
				}
			}
			if !yield(w) {
				return
			}
		}
	}
}

// Cursor is the presentational calendar state: which month is displayed and
// which day is selected. The two move independently.
type Cursor struct {
	Month    time.Time `json:"month"`
	Selected time.Time `json:"selected"`
}

// NewCursor displays today's month with today selected.
func NewCursor(today time.Time) Cursor {
	return Cursor{Month: MonthStart(today), Selected: day.Of(today)}
}

// Shift moves the displayed month, leaving the selection alone.
func (c *Cursor) Shift(delta int) {
	c.Month = ShiftMonth(MonthStart(c.Month), delta)
}

// Select changes the selected day, leaving the displayed month alone.
func (c *Cursor) Select(d time.Time) {
	c.Selected = day.Of(d)
}

// Jump selects d and displays its month.
func (c *Cursor) Jump(d time.Time) {
	c.Select(d)
	c.Month = MonthStart(d)
}

// Move shifts the selection by days, following it with the displayed month.
func (c *Cursor) Move(days int) {
	c.Jump(c.Selected.AddDate(0, 0, days))
}

// SelectionVisible reports whether the selected day is in the displayed month.
func (c Cursor) SelectionVisible() bool {
	return c.Selected.Year() == c.Month.Year() && c.Selected.Month() == c.Month.Month()
}
