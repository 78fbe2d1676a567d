package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/habits/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration in use.",
		Example: `
habits info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s := info.Info{Out: cmd.OutOrStdout()}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
