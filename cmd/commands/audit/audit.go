package audit

import "github.com/spf13/cobra"

// NewCommand returns the "audit" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "View and manage the invocation audit trail",
		Long: "View the local trail of agent invocations and prune old entries.\n\n" +
			"Entries are stored in ~/.config/hcloud-ocf/hcloud-ocf.db and are\n" +
			"written best-effort: they never influence an action's outcome.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
