package checkin

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/habits/pkg/printers"
	"tableflip.dev/habits/pkg/report"
	"tableflip.dev/habits/pkg/session"
)

// CheckIn records today's habits and prints the outcome, followed by a
// report when Reports is set.
type CheckIn struct {
	State   *session.State
	Reports *report.Builder

	Habits []string
	// Count is used when Habits is empty; negative means none checked.
	Count int
	Mood  int

	Interactive bool
	// ReportOnly prints just the report.
	ReportOnly bool
	JSON       bool
	Out         io.Writer

	// Prompter replaces the interactive prompts, mainly for tests.
	Prompter Prompter
}

// Result is the JSON form of a check-in.
type Result struct {
	CheckIn session.CheckIn `json:"checkIn"`
	Report  *report.Summary `json:"report,omitempty"`
}

func (n *CheckIn) Do(ctx context.Context) error {
	if n.State == nil {
		return fmt.Errorf("checkin requires a session")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Interactive {
		p := n.Prompter
		if p == nil {
			p = &PromptUI{}
		}
		habits, mood, err := p.Prompt(n.State.Habits, n.Mood)
		if err != nil {
			return err
		}
		n.Habits, n.Mood = habits, mood
	}

	var ci session.CheckIn
	if len(n.Habits) > 0 {
		var err error
		if ci, err = n.State.CheckIn(n.Habits, n.Mood); err != nil {
			return err
		}
	} else {
		ci = n.State.CheckInCount(nil, n.Count, n.Mood)
	}

	var sum *report.Summary
	if n.Reports != nil {
		s := n.Reports.Build(ctx, ci)
		sum = &s
	}

	if n.JSON {
		return printers.JSON(out, Result{CheckIn: ci, Report: sum})
	}

	pp := printers.PrettyPrint{Out: out}
	if !n.ReportOnly || sum == nil {
		pp.Records(n.State.Records.List())
		pp.CheckIn(ci)
	}
	if sum != nil {
		md, err := sum.Markdown()
		if err != nil {
			return err
		}
		pp.Markdown(md)
	}
	return nil
}
