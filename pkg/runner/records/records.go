package records

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/habits/pkg/printers"
	"tableflip.dev/habits/pkg/record"
	"tableflip.dev/habits/pkg/session"
)

// Records prints the record window of a session.
type Records struct {
	State *session.State
	JSON  bool
	Out   io.Writer
}

// Summary is the JSON form of the window.
type Summary struct {
	Window  int                  `json:"window"`
	Records []record.DailyRecord `json:"records"`
	Average int                  `json:"averageRate"`
	Mood    float64              `json:"averageMood"`
}

// Summarize computes the window averages.
func Summarize(s *record.Store) Summary {
	recs := s.List()
	sum := Summary{Window: s.Window(), Records: recs}
	if len(recs) == 0 {
		return sum
	}
	rate, mood := 0, 0
	for _, r := range recs {
		rate += r.AchievementRate
		mood += r.MoodScore
	}
	sum.Average = rate / len(recs)
	sum.Mood = float64(mood) / float64(len(recs))
	return sum
}

func (n *Records) Do(ctx context.Context) error {
	if n.State == nil {
		return fmt.Errorf("records requires a session")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	sum := Summarize(n.State.Records)

	if n.JSON {
		return printers.JSON(out, sum)
	}

	pp := printers.PrettyPrint{Out: out}
	pp.Records(sum.Records)
	if len(sum.Records) > 0 {
		_, _ = fmt.Fprintf(out, "average %d%%, mood %.1f/%d over %d days\n",
			sum.Average, sum.Mood, record.MaxMood, len(sum.Records))
	}
	return nil
}
