package action

import (
	"github.com/dld-r00f/hcloud-ocf/internal/agent"
	"github.com/dld-r00f/hcloud-ocf/internal/ocf"

	"github.com/spf13/cobra"
)

func StartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Point the floating ip at this host",
		Long: `Point the floating ip at the server this agent runs on.

Invoked by the cluster manager when the resource is placed here. The
call blocks through transient API failures and rate limits; the cluster
manager's action timeout is the upper bound.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "start", func(cmd *cobra.Command, a *agent.Agent) ocf.ReturnCode {
				return a.Start(cmd.Context())
			})
		},
	}
}
