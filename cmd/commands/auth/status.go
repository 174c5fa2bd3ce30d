package auth

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dld-r00f/hcloud-ocf/internal/providers"
	"github.com/dld-r00f/hcloud-ocf/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which providers have stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := auth.DefaultStore()

			providerNames := providers.List()
			sort.Strings(providerNames)

			if len(providerNames) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No providers registered.")
				return nil
			}

			for _, provider := range providerNames {
				_, err := store.GetToken(provider)
				switch {
				case err == nil:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in\n", provider)
				case errors.Is(err, auth.ErrTokenNotFound):
					fmt.Fprintf(cmd.OutOrStdout(), "%s: not logged in\n", provider)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", provider, err)
				}
			}
			return nil
		},
		SilenceUsage: true,
	}
}
