// Package hostfinder matches the host this process runs on to its
// server record in the cloud API.
package hostfinder

import (
	"fmt"

	"github.com/dld-r00f/hcloud-ocf/internal/domain"
	"github.com/dld-r00f/hcloud-ocf/internal/util"
)

// Strategy names accepted by New.
const (
	KindPublicIP = "public-ip"
	KindHostname = "hostname"
)

// HostFinder scans a fetched server listing for the record representing
// this host. When the listing contains more than one match, the first
// in listing order wins. No match returns an error wrapping
// domain.ErrNotFound.
type HostFinder interface {
	Find(servers []domain.Server) (domain.Server, error)
}

// New returns the finder for the given strategy name. The empty name
// selects the public-ip default. The strategy set is closed, so an
// unknown name is a configuration error.
func New(kind string) (HostFinder, error) {
	switch util.NormalizeKey(kind) {
	case "", KindPublicIP:
		return NewPublicIPFinder(), nil
	case KindHostname:
		return NewHostnameFinder(), nil
	}
	return nil, fmt.Errorf("hostfinder: unknown strategy %q (available: %s, %s)", kind, KindPublicIP, KindHostname)
}
