package auth

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the cloud API credential",
		Long: `Manage the cloud API credential.

Tokens stored here are used whenever the resource definition does not
set the api_token parameter, keeping the credential out of the cluster
configuration.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}
