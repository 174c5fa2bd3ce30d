package domain

import "context"

// Provider is the abstract cloud API capability the agent runs against.
// Implementations classify every failure into one of the sentinel
// errors in errors.go.
type Provider interface {
	GetDisplayName() string
	ListServers(ctx context.Context) ([]Server, error)
	ListFloatingIPs(ctx context.Context) ([]FloatingIP, error)
	AssignFloatingIP(ctx context.Context, ipID string, serverID string) error
}
