package action

import (
	"fmt"

	"github.com/dld-r00f/hcloud-ocf/internal/hostfinder"
	"github.com/dld-r00f/hcloud-ocf/internal/ocf"
	"github.com/dld-r00f/hcloud-ocf/internal/util"

	"github.com/spf13/cobra"
)

func ValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-all",
		Short: "Check the resource parameters without touching the API",
		Long: `Check that the resource parameters are syntactically usable: the ip is
an IPv4 literal, a token of the right shape is available, the host
finder strategy exists, and the sleep duration is a positive integer.
No remote call is made.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveParams()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return ocf.Exit(ocf.ErrConfigured)
			}

			checks := []error{
				util.ValidateIPv4Address(p.ip),
				util.ValidateAPIToken(p.token),
				validateHostFinder(p.hostFinder),
			}
			if sleepRaw := ocf.Param("sleep"); sleepRaw != "" {
				checks = append(checks, util.ValidateSleepSeconds(sleepRaw))
			}

			failed := false
			for _, err := range checks {
				if err != nil {
					failed = true
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			}
			if failed {
				return ocf.Exit(ocf.ErrConfigured)
			}
			return nil
		},
	}
}

func validateHostFinder(kind string) error {
	_, err := hostfinder.New(kind)
	return err
}
