// Package agent implements the floating-ip resource agent's three
// cluster-facing operations. No state is held between invocations:
// start, monitor, and stop each re-derive the remote truth, so an
// invocation killed mid-call leaves nothing behind for the next one to
// clean up.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dld-r00f/hcloud-ocf/internal/domain"
	"github.com/dld-r00f/hcloud-ocf/internal/hostfinder"
	"github.com/dld-r00f/hcloud-ocf/internal/ocf"
	"github.com/dld-r00f/hcloud-ocf/internal/retry"
)

// Config carries one invocation's effective parameters, resolved by
// the command layer before the agent runs.
type Config struct {
	// IP is the floating ip's literal IPv4 address.
	IP string

	// HostFinder names the strategy matching this host to a server
	// record. Empty selects the public-ip default.
	HostFinder string

	// Delay is the base retry delay; zero selects the 5s default.
	// The rate-limit delay is always max(2*Delay, 10s).
	Delay time.Duration
}

// Agent orchestrates start, monitor, and stop against a provider.
type Agent struct {
	ip       string
	provider domain.Provider
	finder   hostfinder.HostFinder
	policy   retry.Policy
	stderr   io.Writer
}

// Option adjusts an Agent, mainly for tests.
type Option func(*Agent)

// WithStderr redirects operator-facing error lines.
func WithStderr(w io.Writer) Option {
	return func(a *Agent) { a.stderr = w }
}

// WithPolicy replaces the retry policy, including its sleeper.
func WithPolicy(p retry.Policy) Option {
	return func(a *Agent) { a.policy = p }
}

// WithHostFinder replaces the host resolution strategy.
func WithHostFinder(f hostfinder.HostFinder) Option {
	return func(a *Agent) { a.finder = f }
}

// New builds an agent for one invocation.
func New(cfg Config, provider domain.Provider, opts ...Option) (*Agent, error) {
	finder, err := hostfinder.New(cfg.HostFinder)
	if err != nil {
		return nil, err
	}

	a := &Agent{
		ip:       cfg.IP,
		provider: provider,
		finder:   finder,
		policy:   retry.NewPolicy(cfg.Delay),
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Start points the floating ip at this host. When the ip already
// points here no remote mutation is performed, so repeated starts are
// cheap no-ops.
func (a *Agent) Start(ctx context.Context) ocf.ReturnCode {
	server, err := a.resolveServer(ctx)
	if err != nil {
		return a.fail("resolve host server", err)
	}

	ip, err := a.locateFloatingIP(ctx)
	if err != nil {
		return a.fail("locate floating ip", err)
	}

	if ip.AssignedTo(server) {
		return ocf.Success
	}

	if err := a.assign(ctx, ip, server); err != nil {
		return a.fail("assign floating ip", err)
	}

	return ocf.Success
}

// Monitor reports whether the floating ip points at this host. It
// never mutates remote state.
func (a *Agent) Monitor(ctx context.Context) ocf.ReturnCode {
	server, err := a.resolveServer(ctx)
	if err != nil {
		return a.fail("resolve host server", err)
	}

	ip, err := a.locateFloatingIP(ctx)
	if err != nil {
		return a.fail("locate floating ip", err)
	}

	if !ip.AssignedTo(server) {
		return ocf.NotRunning
	}

	return ocf.Success
}

// Stop succeeds without touching the remote API. Clearing the target
// before reassignment elsewhere has caused instability; the address
// stays on the last active server until the next start claims it.
func (a *Agent) Stop(ctx context.Context) ocf.ReturnCode {
	return ocf.Success
}

// resolveServer finds the server record representing this host. A
// not-found here means the host is not represented in the API at all,
// which is misconfiguration, so the retry predicate rejects it.
func (a *Agent) resolveServer(ctx context.Context) (domain.Server, error) {
	var server domain.Server
	err := retry.Do(ctx, a.policy, retry.IsRetryable, func() error {
		servers, err := a.provider.ListServers(ctx)
		if err != nil {
			return err
		}
		found, err := a.finder.Find(servers)
		if err != nil {
			return err
		}
		server = found
		return nil
	})
	return server, err
}

// locateFloatingIP finds the record whose address matches exactly.
// Unlike server resolution, a missing entry is retried: shortly after
// an action the remote listing can lag behind.
func (a *Agent) locateFloatingIP(ctx context.Context) (domain.FloatingIP, error) {
	var ip domain.FloatingIP
	err := retry.Do(ctx, a.policy, retry.IsRetryableOrNotFound, func() error {
		ips, err := a.provider.ListFloatingIPs(ctx)
		if err != nil {
			return err
		}
		for _, candidate := range ips {
			if candidate.IP == a.ip {
				ip = candidate
				return nil
			}
		}
		return fmt.Errorf("floating ip %s is not listed: %w", a.ip, domain.ErrNotFound)
	})
	return ip, err
}

func (a *Agent) assign(ctx context.Context, ip domain.FloatingIP, server domain.Server) error {
	return retry.Do(ctx, a.policy, retry.IsRetryable, func() error {
		return a.provider.AssignFloatingIP(ctx, ip.ID, server.ID)
	})
}

// fail maps a fatal error to the outcome the cluster manager acts on:
// authentication and not-found failures prompt human intervention,
// anything else (context canceled, local faults) is a generic error.
func (a *Agent) fail(op string, err error) ocf.ReturnCode {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		fmt.Fprintf(a.stderr, "Error: cloud api returned an authentication error while trying to %s. Token deleted?\n", op)
		return ocf.ErrConfigured
	case errors.Is(err, domain.ErrNotFound):
		fmt.Fprintf(a.stderr, "Error: failed to %s: %v\n", op, err)
		return ocf.ErrConfigured
	default:
		fmt.Fprintf(a.stderr, "Error: failed to %s: %v\n", op, err)
		return ocf.ErrGeneric
	}
}
