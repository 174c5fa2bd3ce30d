package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/dld-r00f/hcloud-ocf/cmd/commands/action"
	"github.com/dld-r00f/hcloud-ocf/cmd/commands/audit"
	"github.com/dld-r00f/hcloud-ocf/cmd/commands/auth"
	"github.com/dld-r00f/hcloud-ocf/internal/ocf"
	"github.com/dld-r00f/hcloud-ocf/internal/providers"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "hcloud-ocf",
		Short: "OCF resource agent for Hetzner Cloud floating ips",
		Long: `hcloud-ocf keeps a Hetzner Cloud floating ip pointed at whichever
cluster node the cluster manager starts the resource on.

Cluster-facing actions (invoked by the cluster manager, exit status is
the OCF return code):
  hcloud-ocf start|stop|monitor|meta-data|validate-all

Operator commands:
  hcloud-ocf auth login            # Store the API token in the keychain
  hcloud-ocf audit list            # Inspect recent invocations`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(action.StartCommand())
	cmd.AddCommand(action.StopCommand())
	cmd.AddCommand(action.MonitorCommand())
	cmd.AddCommand(action.MetaDataCommand())
	cmd.AddCommand(action.ValidateCommand())
	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(audit.NewCommand())

	return cmd
}

// Execute runs the root command and maps the outcome to the process
// exit status the cluster manager reads.
func Execute() {
	providers.RegisterHetzner()

	var root = rootCmd()
	err := root.Execute()
	if err == nil {
		return
	}

	var exitErr *ocf.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(int(exitErr.Code))
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
