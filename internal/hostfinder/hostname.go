package hostfinder

import (
	"fmt"
	"os"

	"github.com/dld-r00f/hcloud-ocf/internal/domain"
)

// HostnameFinder matches a server whose name equals the local hostname.
type HostnameFinder struct {
	hostname func() (string, error)
}

// NewHostnameFinder creates a finder reading the real hostname.
func NewHostnameFinder() *HostnameFinder {
	return &HostnameFinder{hostname: os.Hostname}
}

func (f *HostnameFinder) Find(servers []domain.Server) (domain.Server, error) {
	hostname, err := f.hostname()
	if err != nil {
		return domain.Server{}, fmt.Errorf("hostfinder: failed to read hostname: %w", err)
	}

	for _, server := range servers {
		if server.Name == hostname {
			return server, nil
		}
	}

	return domain.Server{}, fmt.Errorf("hostfinder: no server record is named %q: %w", hostname, domain.ErrNotFound)
}
