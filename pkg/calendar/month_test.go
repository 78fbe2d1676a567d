package calendar

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/habits/pkg/day"
)

func TestShiftMonth(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		delta int
		want  time.Time
	}{
		{"december forward", day.Date(2024, time.December, 1), 1, day.Date(2025, time.January, 1)},
		{"january back", day.Date(2024, time.January, 1), -1, day.Date(2023, time.December, 1)},
		{"zero", day.Date(2024, time.June, 1), 0, day.Date(2024, time.June, 1)},
		{"many years forward", day.Date(2024, time.March, 1), 27, day.Date(2026, time.June, 1)},
		{"many years back", day.Date(2024, time.March, 1), -15, day.Date(2022, time.December, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShiftMonth(tt.start, tt.delta); !got.Equal(tt.want) {
				t.Fatalf("ShiftMonth(%s, %d) = %s, want %s",
					tt.start.Format(day.LayoutISO), tt.delta, got.Format(day.LayoutISO), tt.want.Format(day.LayoutISO))
			}
		})
	}
}

func TestShiftMonthZeroIsIdentity(t *testing.T) {
	for y := 1999; y <= 2031; y++ {
		for m := time.January; m <= time.December; m++ {
			x := day.Date(y, m, 1)
			if got := ShiftMonth(x, 0); !got.Equal(x) {
				t.Fatalf("ShiftMonth(%s, 0) = %s", x.Format(day.LayoutISO), got.Format(day.LayoutISO))
			}
			if got := ShiftMonth(ShiftMonth(x, 13), -13); !got.Equal(x) {
				t.Fatalf("round trip of %s gave %s", x.Format(day.LayoutISO), got.Format(day.LayoutISO))
			}
		}
	}
}

func TestMonthGridMondayFirst(t *testing.T) {
	// June 2024 starts on a Saturday and has 30 days.
	got := slices.Collect(MonthGrid(2024, time.June))
	want := []Week{
		{0, 0, 0, 0, 0, 1, 2},
		{3, 4, 5, 6, 7, 8, 9},
		{10, 11, 12, 13, 14, 15, 16},
		{17, 18, 19, 20, 21, 22, 23},
		{24, 25, 26, 27, 28, 29, 30},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected grid:\n got %v\nwant %v", got, want)
	}
}

func TestMonthGridCoversEveryDay(t *testing.T) {
	for y := 2023; y <= 2025; y++ {
		for m := time.January; m <= time.December; m++ {
			var days []int
			for w := range MonthGrid(y, m) {
				for _, d := range w {
					if d != 0 {
						days = append(days, d)
					}
				}
			}
			n := DaysIn(y, m)
			if len(days) != n {
				t.Fatalf("%d-%02d: expected %d days, got %d", y, m, n, len(days))
			}
			for i, d := range days {
				if d != i+1 {
					t.Fatalf("%d-%02d: day %d out of order", y, m, d)
				}
			}
			first := day.Date(y, m, 1).Weekday()
			if col := slices.Index(slices.Collect(MonthGrid(y, m))[0][:], 1); (col+1)%7 != int(first) {
				t.Fatalf("%d-%02d: day 1 in column %d but is a %s", y, m, col, first)
			}
		}
	}
}

func TestMonthGridStopsEarly(t *testing.T) {
	rows := 0
	for range MonthGrid(2024, time.June) {
		rows++
		if rows == 2 {
			break
		}
	}
	if rows != 2 {
		t.Fatalf("expected to stop after two rows, got %d", rows)
	}
}

func TestDaysIn(t *testing.T) {
	if got := DaysIn(2024, time.February); got != 29 {
		t.Fatalf("leap february: got %d", got)
	}
	if got := DaysIn(2023, time.February); got != 28 {
		t.Fatalf("february: got %d", got)
	}
	if got := DaysIn(2024, time.December); got != 31 {
		t.Fatalf("december: got %d", got)
	}
}

func TestCursorIndependence(t *testing.T) {
	c := NewCursor(time.Date(2024, time.December, 30, 18, 0, 0, 0, time.UTC))
	if !c.Month.Equal(day.Date(2024, time.December, 1)) {
		t.Fatalf("unexpected month %s", c.Month)
	}

	c.Shift(1)
	if !c.Month.Equal(day.Date(2025, time.January, 1)) {
		t.Fatalf("expected january 2025, got %s", c.Month.Format(day.LayoutISO))
	}
	if !c.Selected.Equal(day.Date(2024, time.December, 30)) {
		t.Fatalf("shift moved the selection to %s", c.Selected.Format(day.LayoutISO))
	}
	if c.SelectionVisible() {
		t.Fatalf("selection should not be visible in january")
	}

	c.Select(day.Date(2025, time.January, 5))
	if !c.Month.Equal(day.Date(2025, time.January, 1)) || !c.SelectionVisible() {
		t.Fatalf("select should not move the month")
	}

	c.Move(-7)
	if !c.Selected.Equal(day.Date(2024, time.December, 29)) || !c.Month.Equal(day.Date(2024, time.December, 1)) {
		t.Fatalf("move should follow the selection, got %s / %s",
			c.Selected.Format(day.LayoutISO), c.Month.Format(day.LayoutISO))
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestRender(t *testing.T) {
	c := NewCursor(day.Date(2024, time.June, 12))
	days := Days(c, []time.Time{day.Date(2024, time.June, 3), day.Date(2024, time.July, 3)}, day.Date(2024, time.June, 14))

	if !days[2].HasEntry || days[3].HasEntry {
		t.Fatalf("unexpected entry marks %+v", days[:4])
	}
	if !days[11].IsSelected || !days[13].IsToday {
		t.Fatalf("unexpected selection/today marks")
	}

	out := stripANSI(Render(c.Month, days, DefaultOptions()))
	lines := strings.Split(out, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	want := []string{
		"     June 2024",
		Header,
		"                1  2",
		" 3  4  5  6  7  8  9",
		"10 11 12 13 14 15 16",
		"17 18 19 20 21 22 23",
		"24 25 26 27 28 29 30",
	}
	if !slices.Equal(lines, want) {
		t.Fatalf("unexpected render:\n%s", strings.Join(lines, "\n"))
	}
}

func TestRenderZeroMonth(t *testing.T) {
	if got := Render(time.Time{}, nil, DefaultOptions()); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}
