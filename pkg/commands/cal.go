package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/habits/pkg/commands/options"
	"tableflip.dev/habits/pkg/runner/cal"
)

func addCal(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	var (
		shift int
		year  bool
	)

	cmd := &cobra.Command{
		Use:   "cal",
		Short: "Show a Monday-first month calendar.",
		Example: `
habits cal
habits cal --shift -1
habits cal --on 2025-3-1 --year
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			env, err := load(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			c := cal.Cal{
				State: env.State,
				Shift: shift,
				Year:  year,
				JSON:  oo.JSON,
				Out:   cmd.OutOrStdout(),
			}
			if on.OnString != "" {
				if c.Select, err = on.GetOn(time.Now()); err != nil {
					return oo.HandleError(err)
				}
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().IntVarP(&shift, "shift", "s", 0, "Months to move the displayed month by.")
	cmd.Flags().BoolVarP(&year, "year", "y", false, "Show the whole year.")

	topLevel.AddCommand(cmd)
}
