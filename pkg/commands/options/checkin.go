package options

import (
	"github.com/spf13/cobra"
)

// CheckInOptions carries the habits and mood of a check-in.
type CheckInOptions struct {
	Habits []string
	Count  int
	Mood   int
}

func AddCheckInArgs(cmd *cobra.Command, o *CheckInOptions) {
	cmd.Flags().StringSliceVarP(&o.Habits, "habit", "H", nil,
		Wrap80("Habit completed today, repeat or comma separate for more."))
	cmd.Flags().IntVarP(&o.Count, "count", "n", -1,
		Wrap80("Number of habits completed, when not naming them."))
	cmd.Flags().IntVarP(&o.Mood, "mood", "m", 6,
		"Mood score from 1 to 10.")
}
