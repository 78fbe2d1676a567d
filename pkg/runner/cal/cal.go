package cal

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/habits/pkg/calendar"
	"tableflip.dev/habits/pkg/day"
	"tableflip.dev/habits/pkg/printers"
	"tableflip.dev/habits/pkg/session"
)

// Cal prints the month around the selected day, moved by Shift months.
type Cal struct {
	State  *session.State
	Select time.Time
	Shift  int
	Year   bool

	JSON bool
	Out  io.Writer
}

// Month is the JSON form of one displayed month.
type Month struct {
	Month string          `json:"month"`
	Weeks []calendar.Week `json:"weeks"`
	Days  []calendar.Day  `json:"days"`
}

func (n *Cal) Do(ctx context.Context) error {
	if n.State == nil {
		return fmt.Errorf("cal requires a session")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	cur := &n.State.Cursor
	if !n.Select.IsZero() {
		cur.Jump(n.Select)
	}
	cur.Shift(n.Shift)

	count := 1
	if n.Year {
		cur.Month = day.Date(cur.Month.Year(), time.January, 1)
		count = 12
	}

	months := make([]Month, 0, count)
	for i := 0; i < count; i++ {
		months = append(months, n.month())
		if i < count-1 {
			cur.Shift(1)
		}
	}

	if n.JSON {
		if count == 1 {
			return printers.JSON(out, months[0])
		}
		return printers.JSON(out, months)
	}

	pp := printers.PrettyPrint{Out: out}
	for _, m := range months {
		start, _ := time.Parse("2006-01", m.Month)
		pp.Calendar(start, m.Days)
	}
	if !n.Year && cur.SelectionVisible() {
		sel := cur.Selected
		pp.Plan(sel, n.State.Plans.Slots(sel), false)
	}
	return nil
}

func (n *Cal) month() Month {
	m := n.State.Cursor.Month
	out := Month{Month: m.Format("2006-01"), Days: n.State.CalendarDays()}
	for w := range calendar.MonthGrid(m.Year(), m.Month()) {
		out.Weeks = append(out.Weeks, w)
	}
	return out
}
