package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/dld-r00f/hcloud-ocf/internal/services/auth"
	"github.com/dld-r00f/hcloud-ocf/internal/util"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [provider]",
		Short: "Store an API token in the local keychain",
		Long: `Store an API token in the local keychain. The provider defaults to
hetzner.

Example:
  hcloud-ocf auth login`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := "hetzner"
			if len(args) == 1 {
				provider = strings.TrimSpace(args[0])
			}
			if provider == "" {
				return fmt.Errorf("provider is required")
			}

			token, err := cmd.Flags().GetString("token")
			if err != nil {
				return err
			}

			token = strings.TrimSpace(token)
			if token == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Enter API token: ")
				bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				token = strings.TrimSpace(string(bytes))
			}

			if err := util.ValidateAPIToken(token); err != nil {
				return err
			}

			if err := auth.DefaultStore().SetToken(provider, token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved token for provider %s\n", provider)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "API token (optional, overrides prompt)")

	return cmd
}
