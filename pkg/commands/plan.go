package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/habits/pkg/commands/options"
	"tableflip.dev/habits/pkg/runner/plan"
)

func addPlan(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	var (
		adds    []string
		removes []int
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "plan [HOUR=TITLE[|NOTE]...]",
		Short: "Add, remove and show the hour entries of a day.",
		Long: options.Wrap80(`Plan works on one day (today unless --on is given). Each argument or
--add value is HOUR=TITLE with an optional |NOTE, and replaces any entry already at that
hour. Removals run after additions.`),
		Example: `
habits plan 7=Gym "14=Meeting sync|room 3"
habits plan --on 2/28 --rm 7 --all
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			env, err := load(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			date, err := on.GetOn(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			p := plan.Plan{
				State:   env.State,
				Date:    date,
				Adds:    append(args, adds...),
				Removes: removes,
				All:     all,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(p.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().StringArrayVarP(&adds, "add", "a", nil, "Entry to add as HOUR=TITLE[|NOTE].")
	cmd.Flags().IntSliceVarP(&removes, "rm", "r", nil, "Hours to clear.")
	cmd.Flags().BoolVar(&all, "all", false, "List all 24 hours, not only the planned ones.")

	topLevel.AddCommand(cmd)
}
