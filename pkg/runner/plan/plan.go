package plan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/habits/pkg/day"
	"tableflip.dev/habits/pkg/plan"
	"tableflip.dev/habits/pkg/printers"
	"tableflip.dev/habits/pkg/session"
)

// Plan applies adds and removals to one day and prints it.
type Plan struct {
	State *session.State
	Date  time.Time

	// Adds are HOUR=TITLE or HOUR=TITLE|NOTE.
	Adds    []string
	Removes []int
	All     bool

	JSON bool
	Out  io.Writer
}

// Result is the JSON form of a day plan.
type Result struct {
	Date     string       `json:"date"`
	Entries  []plan.Entry `json:"entries"`
	Removed  int          `json:"removed"`
	Warnings []string     `json:"warnings,omitempty"`
}

// ParseAdd parses HOUR=TITLE[|NOTE]. HOUR may be written as 7, 07 or 07:00.
func ParseAdd(v string) (hour int, title, note string, err error) {
	h, rest, ok := strings.Cut(v, "=")
	if !ok {
		return 0, "", "", &plan.ValidationError{Field: "entry", Reason: fmt.Sprintf("%q is not HOUR=TITLE", v)}
	}
	h = strings.TrimSuffix(strings.TrimSpace(h), ":00")
	hour, err = strconv.Atoi(h)
	if err != nil {
		return 0, "", "", &plan.ValidationError{Field: "hour", Reason: fmt.Sprintf("%q is not a number", h)}
	}
	title, note, _ = strings.Cut(rest, "|")
	return hour, strings.TrimSpace(title), strings.TrimSpace(note), nil
}

func (n *Plan) Do(ctx context.Context) error {
	if n.State == nil {
		return fmt.Errorf("plan requires a session")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	date := n.Date
	if date.IsZero() {
		date = n.State.Today()
	}
	date = day.Of(date)
	n.State.Cursor.Jump(date)

	var warnings []string
	for _, a := range n.Adds {
		hour, title, note, err := ParseAdd(a)
		if err == nil {
			_, err = n.State.Plans.AddEntry(date, hour, title, note)
		}
		if err != nil {
			if !errors.Is(err, plan.ErrInvalid) {
				return err
			}
			warnings = append(warnings, err.Error())
		}
	}
	removed := 0
	if len(n.Removes) > 0 {
		removed = n.State.Plans.DeleteEntries(date, n.Removes...)
	}

	if n.JSON {
		return printers.JSON(out, Result{
			Date:     day.Key(date),
			Entries:  n.State.Plans.EntriesFor(date),
			Removed:  removed,
			Warnings: warnings,
		})
	}

	warn := color.New(color.FgYellow)
	for _, w := range warnings {
		_, _ = warn.Fprintf(out, "warning: %s\n", w)
	}
	if removed > 0 {
		_, _ = fmt.Fprintf(out, "removed %d\n", removed)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Plan(date, n.State.Plans.Slots(date), n.All)
	return nil
}
