package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/habits/pkg/calendar"
	"tableflip.dev/habits/pkg/day"
	"tableflip.dev/habits/pkg/plan"
	"tableflip.dev/habits/pkg/record"
	"tableflip.dev/habits/pkg/session"
)

func init() {
	color.NoColor = true
}

func stripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestBar(t *testing.T) {
	tests := []struct {
		rate   int
		filled int
	}{
		{0, 0}, {40, 8}, {55, 11}, {100, 20}, {150, 20}, {-5, 0},
	}
	for _, tt := range tests {
		got := Bar(tt.rate)
		if n := strings.Count(got, "█"); n != tt.filled {
			t.Errorf("Bar(%d) filled %d, want %d", tt.rate, n, tt.filled)
		}
		if n := len([]rune(got)); n != BarWidth {
			t.Errorf("Bar(%d) width %d", tt.rate, n)
		}
	}
}

func TestRecords(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}

	s := record.NewStore(7)
	s.Upsert(day.Date(2024, time.June, 10), 40, 2, 5)
	s.Upsert(day.Date(2024, time.June, 11), 100, 5, 9)
	pp.Records(s.List())

	out := buf.String()
	for _, want := range []string{"Last days - 2 records", "Mon 06-10", "40%", "100%", "9/10", strings.Repeat("█", 20)} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRecordsEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Records(nil)
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestPlan(t *testing.T) {
	d := day.Date(2024, time.June, 20)
	p := plan.NewStore()
	if _, err := p.AddEntry(d, 14, "Meeting sync", "room 3"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.AddEntry(d, 7, "Gym", ""); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Plan(d, p.Slots(d), false)
	out := buf.String()
	if !strings.Contains(out, "Thursday, June 20 2024 - 2 entries") {
		t.Fatalf("unexpected title:\n%s", out)
	}
	if strings.Index(out, "07:00") > strings.Index(out, "14:00") || strings.Contains(out, "03:00") {
		t.Fatalf("unexpected rows:\n%s", out)
	}
	if !strings.Contains(out, "(room 3)") {
		t.Fatalf("note missing:\n%s", out)
	}

	buf.Reset()
	pp.Plan(d, p.Slots(d), true)
	if got := strings.Count(buf.String(), ":00"); got != plan.HoursPerDay {
		t.Fatalf("expected %d rows, got %d:\n%s", plan.HoursPerDay, got, buf.String())
	}
}

func TestCheckIn(t *testing.T) {
	st := session.New(session.Options{Now: func() time.Time {
		return time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC)
	}})
	ci, err := st.CheckIn([]string{"Exercise"}, 6)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).CheckIn(ci)
	out := buf.String()
	for _, want := range []string{"2024-06-12", "20%", "checked 1/5, mood 6/10", "✓ Exercise"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCalendar(t *testing.T) {
	c := calendar.NewCursor(time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC))
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Calendar(c.Month, calendar.Days(c, nil, c.Selected))

	out := stripANSI(buf.String())
	if !strings.Contains(out, "June 2024") || !strings.Contains(out, calendar.Header) {
		t.Fatalf("unexpected calendar:\n%s", out)
	}
	if !strings.Contains(out, "24 25 26 27 28 29 30") {
		t.Fatalf("missing last week:\n%s", out)
	}
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf, Width: 60}).Markdown("# Summary\n\n- Mood: **7/10**\n")
	out := stripANSI(buf.String())
	if !strings.Contains(out, "Summary") || !strings.Contains(out, "7/10") {
		t.Fatalf("unexpected markdown output:\n%s", out)
	}
}
