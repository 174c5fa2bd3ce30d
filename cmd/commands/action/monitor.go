package action

import (
	"github.com/dld-r00f/hcloud-ocf/internal/agent"
	"github.com/dld-r00f/hcloud-ocf/internal/ocf"

	"github.com/spf13/cobra"
)

func MonitorCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "monitor",
		Aliases: []string{"status"},
		Short:   "Report whether the floating ip points at this host",
		Long: `Report whether the floating ip currently points at this host.

Exits 0 when it does, 7 when it is unassigned or points at another
server, and 6 when the host is not represented in the API or the
credential is rejected.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "monitor", func(cmd *cobra.Command, a *agent.Agent) ocf.ReturnCode {
				return a.Monitor(cmd.Context())
			})
		},
	}
}
