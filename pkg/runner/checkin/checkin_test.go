package checkin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/habits/pkg/report"
	"tableflip.dev/habits/pkg/session"
)

func init() {
	color.NoColor = true
}

func newState() *session.State {
	return session.New(session.Options{Seed: true, Now: func() time.Time {
		return time.Date(2024, time.June, 12, 21, 0, 0, 0, time.UTC)
	}})
}

type fakePrompter struct {
	habits []string
	mood   int
	err    error
}

func (f fakePrompter) Prompt([]string, int) ([]string, int, error) {
	return f.habits, f.mood, f.err
}

func TestDoCount(t *testing.T) {
	var buf bytes.Buffer
	st := newState()
	c := CheckIn{State: st, Count: 3, Mood: 6, Out: &buf}
	if err := c.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if st.Records.Len() != 7 {
		t.Fatalf("expected 7 records, got %d", st.Records.Len())
	}
	if !strings.Contains(buf.String(), "checked 3/5, mood 6/10") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestDoJSONWithReport(t *testing.T) {
	var buf bytes.Buffer
	c := CheckIn{
		State:   newState(),
		Reports: &report.Builder{Name: "Mina"},
		Habits:  []string{"exercise", "drink water"},
		Mood:    8,
		JSON:    true,
		Out:     &buf,
	}
	if err := c.Do(context.Background()); err != nil {
		t.Fatal(err)
	}

	var got Result
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got.CheckIn.Record.AchievementRate != 40 || got.Report == nil || got.Report.Name != "Mina" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestDoInteractive(t *testing.T) {
	var buf bytes.Buffer
	st := newState()
	c := CheckIn{
		State:       st,
		Interactive: true,
		Prompter:    fakePrompter{habits: []string{"Sleep well"}, mood: 9},
		Out:         &buf,
	}
	if err := c.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	rec, ok := st.Records.Get(st.Today())
	if !ok || rec.CheckedCount != 1 || rec.MoodScore != 9 {
		t.Fatalf("unexpected record %+v", rec)
	}

	c.Prompter = fakePrompter{err: errors.New("^C")}
	if err := c.Do(context.Background()); err == nil {
		t.Fatalf("expected prompt error")
	}
}

func TestDoUnknownHabit(t *testing.T) {
	c := CheckIn{State: newState(), Habits: []string{"Fly"}, Mood: 5, Out: &bytes.Buffer{}}
	if err := c.Do(context.Background()); !errors.Is(err, session.ErrUnknownHabit) {
		t.Fatalf("expected ErrUnknownHabit, got %v", err)
	}
}
