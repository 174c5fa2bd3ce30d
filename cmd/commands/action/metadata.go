package action

import (
	"github.com/dld-r00f/hcloud-ocf/internal/hostfinder"
	"github.com/dld-r00f/hcloud-ocf/internal/ocf"

	"github.com/spf13/cobra"
)

func MetaDataCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "meta-data",
		Short:        "Print the OCF resource agent meta-data XML",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return agentMetadata().Write(cmd.OutOrStdout())
		},
	}
}

// agentMetadata is the document the cluster manager introspects to
// learn the agent's parameters, actions, and timeout hints.
func agentMetadata() ocf.Metadata {
	return ocf.Metadata{
		Name:       "floating_ip",
		Version:    "0.1.0",
		APIVersion: "1.0",
		Desc:       desc("Manage Hetzner Cloud floating ips"),
		LongDesc: desc(`This resource agent uses the Hetzner Cloud API to direct a floating ip
address to the server the resource is started on. Monitor reports
running on the server the floating ip is pointing to.

Stop does nothing: it is not necessary to clear the address's target
before reassigning it, and doing so has caused issues in the past.

The agent does NOT manage adding the address to a local network
interface. Either add it permanently in the host's network
configuration, or use a second resource of type IPAddr2 with two
constraints: colocate the address with the floating ip, and order the
address after the floating ip.`),
		Parameters: []ocf.Parameter{
			{
				Name:     "ip",
				Required: 1,
				Unique:   1,
				Desc:     desc("Hetzner Cloud ip address x.x.x.x"),
				LongDesc: desc(`The floating ip address this resource manages. The address itself,
not the id of the address.`),
				Content: ocf.Content{Type: "string"},
			},
			{
				Name:     "api_token",
				Required: 0,
				Unique:   0,
				Desc:     desc("Hetzner Cloud api token"),
				LongDesc: desc(`The api token with which the address can be managed. Create it in the
Hetzner Cloud Console under Access / Api Tokens for the project which
contains the address. When unset, the agent reads the token stored via
'hcloud-ocf auth login'.`),
				Content: ocf.Content{Type: "string"},
			},
			{
				Name:     "host_finder",
				Required: 0,
				Unique:   0,
				Desc:     desc("Strategy matching this host to an api server record"),
				LongDesc: desc(`Available strategies:
- public-ip: a server's public IPv4 address is bound to a local interface
- hostname: a server's name equals the local hostname`),
				Content: ocf.Content{Type: "string", Default: hostfinder.KindPublicIP},
			},
			{
				Name:     "sleep",
				Required: 0,
				Unique:   0,
				Desc:     desc("Seconds to wait when an api request fails"),
				LongDesc: desc(`The number of seconds to wait when the api is unreachable or returns
an internal server error. Rate limit errors wait for double this time,
but at least 10 seconds.`),
				Content: ocf.Content{Type: "integer", Default: "5"},
			},
		},
		Actions: []ocf.Action{
			{Name: "start", Timeout: "60s"},
			{Name: "stop", Timeout: "20s"},
			{Name: "monitor", Timeout: "60s", Interval: "10s"},
			{Name: "meta-data", Timeout: "5s"},
			{Name: "validate-all", Timeout: "20s"},
		},
	}
}

func desc(text string) ocf.Desc {
	return ocf.Desc{Lang: "en", Text: text}
}
