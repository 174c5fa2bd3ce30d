package hostfinder

import (
	"fmt"
	"net"

	"github.com/dld-r00f/hcloud-ocf/internal/domain"
)

// PublicIPFinder matches a server whose recorded public IPv4 address is
// bound to any local network interface.
type PublicIPFinder struct {
	interfaceAddrs func() ([]net.Addr, error)
}

// NewPublicIPFinder creates a finder reading real interface addresses.
func NewPublicIPFinder() *PublicIPFinder {
	return &PublicIPFinder{interfaceAddrs: net.InterfaceAddrs}
}

func (f *PublicIPFinder) Find(servers []domain.Server) (domain.Server, error) {
	addrs, err := f.interfaceAddrs()
	if err != nil {
		return domain.Server{}, fmt.Errorf("hostfinder: failed to list interface addresses: %w", err)
	}

	local := make(map[string]struct{}, len(addrs))
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip4 := ip.To4(); ip4 != nil {
			local[ip4.String()] = struct{}{}
		}
	}

	for _, server := range servers {
		if server.PublicIPv4 == "" {
			continue
		}
		if _, ok := local[server.PublicIPv4]; ok {
			return server, nil
		}
	}

	return domain.Server{}, fmt.Errorf("hostfinder: no server record has a public IPv4 bound to a local interface: %w", domain.ErrNotFound)
}
