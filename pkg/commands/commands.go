package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/habits/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "habits",
		Short: options.Wrap80("Daily habit check-ins, a rolling week of records, and hour-by-hour day plans on the command line."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			oo.Out = cmd.OutOrStdout()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addCheckIn(topLevel)
	addRecords(topLevel)
	addPlan(topLevel)
	addCal(topLevel)
	addReport(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
