package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/habits/pkg/commands/options"
	"tableflip.dev/habits/pkg/runner/checkin"
)

func addCheckIn(topLevel *cobra.Command) {
	co := &options.CheckInOptions{}
	ia := &options.InteractiveOptions{}
	var noReport bool

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record today's habits and mood, then show the report.",
		Example: `
habits checkin -H exercise -H "drink water" --mood 7
habits checkin --count 3 --mood 6 --no-report
habits checkin -i
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			env, err := load(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			c := checkin.CheckIn{
				State:       env.State,
				Reports:     env.Reports,
				Habits:      co.Habits,
				Count:       co.Count,
				Mood:        co.Mood,
				Interactive: ia.Interactive,
				JSON:        oo.JSON,
				Out:         cmd.OutOrStdout(),
			}
			if noReport {
				c.Reports = nil
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddCheckInArgs(cmd, co)
	options.InteractiveArgs(cmd, ia)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Skip weather, coach and reward lookups.")

	topLevel.AddCommand(cmd)
}

func addReport(topLevel *cobra.Command) {
	co := &options.CheckInOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Check in and print only the daily report.",
		Example: `
habits report -H exercise --mood 8
habits report --count 5 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			env, err := load(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			c := checkin.CheckIn{
				State:      env.State,
				Reports:    env.Reports,
				Habits:     co.Habits,
				Count:      co.Count,
				Mood:       co.Mood,
				ReportOnly: true,
				JSON:       oo.JSON,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddCheckInArgs(cmd, co)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
