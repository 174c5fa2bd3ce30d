package providers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dld-r00f/hcloud-ocf/internal/domain"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// HetznerProvider implements domain.Provider using the Hetzner Cloud API.
type HetznerProvider struct {
	client *hcloud.Client
}

// NewHetznerProvider creates a HetznerProvider with the given hcloud client options.
// Default options (application name) are applied first; callers can override them.
func NewHetznerProvider(opts ...hcloud.ClientOption) *HetznerProvider {
	defaults := []hcloud.ClientOption{
		hcloud.WithApplication("hcloud-ocf", "0.1.0"),
	}
	allOpts := append(defaults, opts...)
	return &HetznerProvider{
		client: hcloud.NewClient(allOpts...),
	}
}

// RegisterHetzner registers the Hetzner provider factory with the global registry.
func RegisterHetzner() {
	Register("hetzner", func(token string) (domain.Provider, error) {
		return NewHetznerProvider(hcloud.WithToken(token)), nil
	})
}

func (h *HetznerProvider) GetDisplayName() string {
	return "Hetzner"
}

// ListServers retrieves all servers from the Hetzner Cloud API.
func (h *HetznerProvider) ListServers(ctx context.Context) ([]domain.Server, error) {
	hzServers, err := h.client.Server.All(ctx)
	if err != nil {
		return nil, classify("list servers", err)
	}

	servers := make([]domain.Server, 0, len(hzServers))
	for _, s := range hzServers {
		servers = append(servers, toDomainServer(s))
	}

	return servers, nil
}

// ListFloatingIPs retrieves all floating ips from the Hetzner Cloud API.
func (h *HetznerProvider) ListFloatingIPs(ctx context.Context) ([]domain.FloatingIP, error) {
	hzIPs, err := h.client.FloatingIP.All(ctx)
	if err != nil {
		return nil, classify("list floating ips", err)
	}

	ips := make([]domain.FloatingIP, 0, len(hzIPs))
	for _, ip := range hzIPs {
		ips = append(ips, toDomainFloatingIP(ip))
	}

	return ips, nil
}

// AssignFloatingIP points a floating ip at a server. Reassignment from
// another server needs no prior unassign; the API swaps atomically.
func (h *HetznerProvider) AssignFloatingIP(ctx context.Context, ipID string, serverID string) error {
	numericIPID, err := strconv.ParseInt(ipID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid floating ip ID %q: %w", ipID, err)
	}
	numericServerID, err := strconv.ParseInt(serverID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid server ID %q: %w", serverID, err)
	}

	_, _, err = h.client.FloatingIP.Assign(ctx, &hcloud.FloatingIP{ID: numericIPID}, &hcloud.Server{ID: numericServerID})
	if err != nil {
		return classify("assign floating ip", err)
	}

	return nil
}

// classify maps an hcloud API error onto the domain sentinel driving
// the agent's retry decisions. Anything unrecognized, including
// transport failures and 5xx responses, counts as transient.
func classify(op string, err error) error {
	switch {
	case hcloud.IsError(err, hcloud.ErrorCodeNotFound):
		return fmt.Errorf("failed to %s: %w", op, domain.ErrNotFound)
	case hcloud.IsError(err, hcloud.ErrorCodeUnauthorized):
		return fmt.Errorf("failed to %s: %w", op, domain.ErrUnauthorized)
	case hcloud.IsError(err, hcloud.ErrorCodeRateLimitExceeded):
		return fmt.Errorf("failed to %s: %w", op, domain.ErrRateLimited)
	}
	return fmt.Errorf("failed to %s: %v: %w", op, err, domain.ErrTransient)
}

// toDomainServer converts an hcloud.Server to a domain.Server.
func toDomainServer(s *hcloud.Server) domain.Server {
	server := domain.Server{
		ID:        strconv.FormatInt(s.ID, 10),
		Name:      s.Name,
		Status:    string(s.Status),
		CreatedAt: s.Created,
		Provider:  "hetzner",
	}

	if !s.PublicNet.IPv4.IsUnspecified() {
		server.PublicIPv4 = s.PublicNet.IPv4.IP.String()
	}

	if !s.PublicNet.IPv6.IsUnspecified() {
		server.PublicIPv6 = s.PublicNet.IPv6.IP.String()
	}

	return server
}

// toDomainFloatingIP converts an hcloud.FloatingIP to a domain.FloatingIP.
func toDomainFloatingIP(f *hcloud.FloatingIP) domain.FloatingIP {
	ip := domain.FloatingIP{
		ID:   strconv.FormatInt(f.ID, 10),
		Name: f.Name,
	}

	if f.IP != nil {
		ip.IP = f.IP.String()
	}

	if f.Server != nil {
		ip.ServerID = strconv.FormatInt(f.Server.ID, 10)
	}

	return ip
}
