package commands

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/habits/pkg/commands/options"
	"tableflip.dev/habits/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	r := mcp.Runner{}
	var stdio bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve one habits session to an MCP client.",
		Long: options.Wrap80(`Start a Model Context Protocol server holding one habits session for as long
as it runs. Check-ins, records, day plans and the calendar are exposed as tools. The session
is lost when the server stops.`),
		Example: `
habits mcp --stdio
habits mcp --addr 0.0.0.0:9000 --path /habits
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if stdio {
				r.Addr = ""
			} else if _, _, err := net.SplitHostPort(r.Addr); err != nil {
				return fmt.Errorf("invalid --addr %q: %w", r.Addr, err)
			}

			env, err := load(cmd.Context())
			if err != nil {
				return err
			}
			r.Session = env.State
			r.Reports = env.Reports
			r.Version = version
			r.Path = strings.TrimSpace(r.Path)
			r.Out = cmd.OutOrStdout()
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false, "Serve over stdin/stdout instead of HTTP.")
	cmd.Flags().StringVar(&r.Addr, "addr", "127.0.0.1:8080", "HTTP listen address, port 0 picks a free one.")
	cmd.Flags().StringVar(&r.Path, "path", mcp.DefaultPath, "HTTP endpoint path.")
	cmd.Flags().StringVar(&r.CertFile, "tls-cert", "", "TLS certificate file for HTTPS.")
	cmd.Flags().StringVar(&r.KeyFile, "tls-key", "", "TLS private key file for HTTPS.")

	topLevel.AddCommand(cmd)
}
