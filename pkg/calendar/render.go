package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/habits/pkg/day"
)

// Header is the Monday-first weekday header.
const Header = "Mo Tu We Th Fr Sa Su"

// Day describes a single day rendered in the calendar.
type Day struct {
	Day        int
	HasEntry   bool
	IsToday    bool
	IsSelected bool
}

// Options controls calendar styling.
type Options struct {
	TitleStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	EntryStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowTitle     bool
	ShowHeader    bool
}

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	title := lipgloss.NewStyle().Bold(true)
	header := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	entry := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	today := lipgloss.NewStyle().Underline(true)
	selected := lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0"))
	return Options{
		TitleStyle:    title,
		HeaderStyle:   header,
		EmptyStyle:    empty,
		EntryStyle:    entry,
		TodayStyle:    today,
		SelectedStyle: selected,
		ShowTitle:     true,
		ShowHeader:    true,
	}
}

// Days builds render metadata for the cursor's displayed month. marked holds
// the days that carry plan entries.
func Days(c Cursor, marked []time.Time, now time.Time) []Day {
	month := MonthStart(c.Month)
	n := DaysIn(month.Year(), month.Month())
	out := make([]Day, n)
	for i := range out {
		d := month.AddDate(0, 0, i)
		out[i] = Day{
			Day:        i + 1,
			IsToday:    day.Same(d, now),
			IsSelected: day.Same(d, c.Selected),
		}
	}
	for _, m := range marked {
		if m.Year() == month.Year() && m.Month() == month.Month() {
			out[m.Day()-1].HasEntry = true
		}
	}
	return out
}

// Render produces a multi-line calendar string for the given month.
func Render(month time.Time, days []Day, opts Options) string {
	if month.IsZero() {
		return ""
	}
	month = MonthStart(month)
	n := DaysIn(month.Year(), month.Month())

	byDay := make(map[int]Day, len(days))
	for _, d := range days {
		if d.Day >= 1 && d.Day <= n {
			byDay[d.Day] = d
		}
	}

	var lines []string
	if opts.ShowTitle {
		title := month.Format("January 2006")
		pad := max((len(Header)-len(title))/2, 0)
		lines = append(lines, strings.Repeat(" ", pad)+opts.TitleStyle.Render(title))
	}
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render(Header))
	}

	for week := range MonthGrid(month.Year(), month.Month()) {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			if d == 0 {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			cells = append(cells, renderDay(byDay[d], d, opts))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(info Day, d int, opts Options) string {
	text := fmt.Sprintf("%2d", d)

	style := opts.EmptyStyle
	if info.HasEntry {
		style = opts.EntryStyle
	}
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if info.IsSelected {
		style = style.Inherit(opts.SelectedStyle)
	}
	return style.Render(text)
}
