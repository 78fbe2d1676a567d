package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/habits/pkg/calendar"
	"tableflip.dev/habits/pkg/day"
	"tableflip.dev/habits/pkg/plan"
	"tableflip.dev/habits/pkg/record"
	"tableflip.dev/habits/pkg/session"
)

// BarWidth is the width of an achievement bar at 100%.
const BarWidth = 20

type PrettyPrint struct {
	Out   io.Writer
	Width int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, one, many string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " - %d %s\n", count, one)
	default:
		_, _ = c.Fprintf(pp.out(), " - %d %s\n", count, many)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Bar draws rate (0-100) as a BarWidth cell bar.
func Bar(rate int) string {
	rate = min(max(rate, 0), 100)
	filled := rate * BarWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", BarWidth-filled)
}

func rateColor(rate int) *color.Color {
	switch {
	case rate >= 80:
		return color.New(color.FgGreen)
	case rate >= 50:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// Records prints the record window as a table with achievement bars.
func (pp *PrettyPrint) Records(recs []record.DailyRecord) {
	pp.TitleWithCount("Last days", len(recs), "record", "records")
	if len(recs) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Achievement"), bold.Sprint("Rate"), bold.Sprint("Checked"), bold.Sprint("Mood"))
	for _, r := range recs {
		c := rateColor(r.AchievementRate)
		tbl.AddRow(
			r.Date.Format("Mon 01-02"),
			c.Sprint(Bar(r.AchievementRate)),
			fmt.Sprintf("%d%%", r.AchievementRate),
			r.CheckedCount,
			fmt.Sprintf("%d/%d", r.MoodScore, record.MaxMood),
		)
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// CheckIn prints the outcome of a check-in.
func (pp *PrettyPrint) CheckIn(ci session.CheckIn) {
	c := rateColor(ci.Record.AchievementRate)
	_, _ = fmt.Fprintf(pp.out(), "%s  %s %s\n",
		color.New(color.Bold).Sprint(day.Key(ci.Record.Date)),
		c.Sprint(Bar(ci.Record.AchievementRate)),
		c.Sprintf("%d%%", ci.Record.AchievementRate),
	)
	_, _ = fmt.Fprintf(pp.out(), "checked %d/%d, mood %d/%d\n",
		ci.Record.CheckedCount, ci.Total, ci.Record.MoodScore, record.MaxMood)
	for _, h := range ci.Checked {
		_, _ = fmt.Fprintf(pp.out(), "  %s %s\n", color.GreenString("✓"), h)
	}
	pp.NewLine()
}

// Plan prints the entries of a day. With all set, every hour is listed.
func (pp *PrettyPrint) Plan(date time.Time, slots []plan.Slot, all bool) {
	count := 0
	for _, s := range slots {
		if s.Entry != nil {
			count++
		}
	}
	pp.TitleWithCount(date.Format("Monday, January 2 2006"), count, "entry", "entries")
	if count == 0 && !all {
		pp.none()
		return
	}

	faint := color.New(color.Faint)
	hour := color.New(color.FgHiYellow)
	note := color.New(color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = uint(max(pp.width()-8, 20))
	for _, s := range slots {
		label := fmt.Sprintf("%02d:00", s.Hour)
		switch {
		case s.Entry != nil:
			text := s.Entry.Title
			if s.Entry.Note != "" {
				text += " " + note.Sprintf("(%s)", s.Entry.Note)
			}
			tbl.AddRow(hour.Sprint(label), text)
		case all:
			tbl.AddRow(faint.Sprint(label), faint.Sprint("·"))
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Calendar prints a Monday-first month.
func (pp *PrettyPrint) Calendar(month time.Time, days []calendar.Day) {
	_, _ = fmt.Fprintln(pp.out(), calendar.Render(month, days, calendar.DefaultOptions()))
	pp.NewLine()
}

// Markdown renders md for the terminal, falling back to wrapped plain text.
func (pp *PrettyPrint) Markdown(md string) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(pp.width()),
	)
	if err == nil {
		var out string
		if out, err = renderer.Render(md); err == nil {
			_, _ = fmt.Fprint(pp.out(), out)
			return
		}
	}
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(md, pp.width()))
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
