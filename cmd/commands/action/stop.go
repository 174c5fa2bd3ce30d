package action

import (
	"time"

	"github.com/dld-r00f/hcloud-ocf/internal/ocf"

	"github.com/spf13/cobra"
)

func StopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Release the resource without touching the floating ip",
		Long: `Succeed immediately without any remote call.

Clearing the floating ip's target before reassignment has caused
instability in the past, so the address deliberately stays on the last
active server until the next start claims it elsewhere.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			// Parameters are not required here: stop must succeed even
			// when the configuration is broken, or the node could never
			// be fenced cleanly.
			p, _ := resolveParams()
			record("stop", p, ocf.Success, started, "")
			return ocf.Exit(ocf.Success)
		},
	}
}
