package records

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/habits/pkg/session"
)

func init() {
	color.NoColor = true
}

func seeded() *session.State {
	return session.New(session.Options{Seed: true, Now: func() time.Time {
		return time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC)
	}})
}

func TestSummarize(t *testing.T) {
	sum := Summarize(seeded().Records)
	// 40+60+80+20+100+60 = 360, moods 5+6+7+4+8+6 = 36
	if len(sum.Records) != 6 || sum.Average != 60 || sum.Mood != 6 || sum.Window != 7 {
		t.Fatalf("unexpected summary %+v", sum)
	}

	empty := Summarize(session.New(session.Options{}).Records)
	if empty.Average != 0 || len(empty.Records) != 0 {
		t.Fatalf("unexpected empty summary %+v", empty)
	}
}

func TestDo(t *testing.T) {
	var buf bytes.Buffer
	r := Records{State: seeded(), Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "average 60%, mood 6.0/10 over 6 days") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	r.JSON = true
	if err := r.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	var got Summary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got.Records) != 6 || got.Records[0].Date.Day() != 6 {
		t.Fatalf("unexpected json summary %+v", got)
	}
}
