package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/habits/pkg/commands/options"
	"tableflip.dev/habits/pkg/runner/records"
)

func addRecords(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"week"},
		Short:   "Show the rolling window of daily records.",
		Example: `
habits records
habits records --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			env, err := load(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			r := records.Records{State: env.State, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
