package agent

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dld-r00f/hcloud-ocf/internal/domain"
	"github.com/dld-r00f/hcloud-ocf/internal/ocf"
	"github.com/dld-r00f/hcloud-ocf/internal/retry"
)

// mockProvider scripts remote responses and counts every call.
type mockProvider struct {
	servers    []domain.Server
	ips        []domain.FloatingIP
	listErrs   []error // consumed by ListServers, one per call
	ipErrs     []error // consumed by ListFloatingIPs, one per call
	assignErrs []error // consumed by AssignFloatingIP, one per call

	listCalls   int
	ipCalls     int
	assignCalls int

	assignedIP     string
	assignedServer string
}

func (m *mockProvider) GetDisplayName() string { return "Mock" }

func (m *mockProvider) ListServers(_ context.Context) ([]domain.Server, error) {
	m.listCalls++
	if err := pop(&m.listErrs); err != nil {
		return nil, err
	}
	return m.servers, nil
}

func (m *mockProvider) ListFloatingIPs(_ context.Context) ([]domain.FloatingIP, error) {
	m.ipCalls++
	if err := pop(&m.ipErrs); err != nil {
		return nil, err
	}
	return m.ips, nil
}

func (m *mockProvider) AssignFloatingIP(_ context.Context, ipID string, serverID string) error {
	m.assignCalls++
	if err := pop(&m.assignErrs); err != nil {
		return err
	}
	m.assignedIP = ipID
	m.assignedServer = serverID
	for i := range m.ips {
		if m.ips[i].ID == ipID {
			m.ips[i].ServerID = serverID
		}
	}
	return nil
}

func pop(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}
	err := (*errs)[0]
	*errs = (*errs)[1:]
	return err
}

// fixedFinder returns the server with the given ID, or not-found.
type fixedFinder struct {
	id string
}

func (f fixedFinder) Find(servers []domain.Server) (domain.Server, error) {
	for _, s := range servers {
		if s.ID == f.id {
			return s, nil
		}
	}
	return domain.Server{}, fmt.Errorf("no server %s: %w", f.id, domain.ErrNotFound)
}

func fastPolicy(t *testing.T) (retry.Policy, *[]time.Duration) {
	t.Helper()
	var delays []time.Duration
	policy := retry.NewPolicy(5 * time.Second)
	policy.Sleep = func(_ context.Context, d time.Duration) bool {
		delays = append(delays, d)
		return true
	}
	return policy, &delays
}

func newTestAgent(t *testing.T, provider *mockProvider, serverID string) (*Agent, *[]time.Duration, *bytes.Buffer) {
	t.Helper()
	policy, delays := fastPolicy(t)
	var stderr bytes.Buffer
	a, err := New(Config{IP: "198.51.100.7"}, provider,
		WithHostFinder(fixedFinder{id: serverID}),
		WithPolicy(policy),
		WithStderr(&stderr),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, delays, &stderr
}

func TestStart_AssignsWhenUnassigned(t *testing.T) {
	provider := &mockProvider{
		servers: []domain.Server{{ID: "42", Name: "node-a"}},
		ips:     []domain.FloatingIP{{ID: "9", IP: "198.51.100.7"}},
	}
	a, _, _ := newTestAgent(t, provider, "42")

	if code := a.Start(context.Background()); code != ocf.Success {
		t.Fatalf("Start = %v, want success", code)
	}
	if provider.assignCalls != 1 {
		t.Errorf("expected 1 assign call, got %d", provider.assignCalls)
	}
	if provider.assignedIP != "9" || provider.assignedServer != "42" {
		t.Errorf("assigned %s -> %s, want 9 -> 42", provider.assignedIP, provider.assignedServer)
	}
}

func TestStart_IsIdempotent(t *testing.T) {
	provider := &mockProvider{
		servers: []domain.Server{{ID: "42"}},
		ips:     []domain.FloatingIP{{ID: "9", IP: "198.51.100.7"}},
	}
	a, _, _ := newTestAgent(t, provider, "42")

	// Two starts in a row: only the first may mutate remote state.
	if code := a.Start(context.Background()); code != ocf.Success {
		t.Fatalf("first Start = %v, want success", code)
	}
	if code := a.Start(context.Background()); code != ocf.Success {
		t.Fatalf("second Start = %v, want success", code)
	}
	if provider.assignCalls != 1 {
		t.Errorf("expected at most 1 assign call across repeated starts, got %d", provider.assignCalls)
	}
}

func TestStart_ReassignsFromOtherServer(t *testing.T) {
	provider := &mockProvider{
		servers: []domain.Server{{ID: "42"}, {ID: "17"}},
		ips:     []domain.FloatingIP{{ID: "9", IP: "198.51.100.7", ServerID: "17"}},
	}
	a, _, _ := newTestAgent(t, provider, "42")

	if code := a.Start(context.Background()); code != ocf.Success {
		t.Fatalf("Start = %v, want success", code)
	}
	if provider.assignCalls != 1 {
		t.Errorf("expected 1 assign call, got %d", provider.assignCalls)
	}
	if provider.assignedServer != "42" {
		t.Errorf("reassigned to %s, want 42", provider.assignedServer)
	}
}

func TestStart_HostNotInAPIIsMisconfigured(t *testing.T) {
	provider := &mockProvider{
		servers: []domain.Server{{ID: "17"}},
		ips:     []domain.FloatingIP{{ID: "9", IP: "198.51.100.7"}},
	}
	a, delays, _ := newTestAgent(t, provider, "42")

	if code := a.Start(context.Background()); code != ocf.ErrConfigured {
		t.Fatalf("Start = %v, want misconfigured", code)
	}
	if provider.assignCalls != 0 {
		t.Errorf("assign must never run after failed resolution, got %d calls", provider.assignCalls)
	}
	if provider.ipCalls != 0 {
		t.Errorf("floating ip lookup must not run after failed resolution, got %d calls", provider.ipCalls)
	}
	if len(*delays) != 0 {
		t.Errorf("host-not-found must not be retried, slept %v", *delays)
	}
}

func TestStart_TransientListFailuresAreRetried(t *testing.T) {
	provider := &mockProvider{
		servers: []domain.Server{{ID: "42"}},
		ips:     []domain.FloatingIP{{ID: "9", IP: "198.51.100.7"}},
		listErrs: []error{
			fmt.Errorf("boom: %w", domain.ErrTransient),
			fmt.Errorf("boom: %w", domain.ErrTransient),
			fmt.Errorf("boom: %w", domain.ErrTransient),
		},
	}
	a, delays, _ := newTestAgent(t, provider, "42")

	if code := a.Start(context.Background()); code != ocf.Success {
		t.Fatalf("Start = %v, want success", code)
	}
	if provider.listCalls != 4 {
		t.Errorf("expected 4 list attempts, got %d", provider.listCalls)
	}
	for i, d := range *delays {
		if d != 5*time.Second {
			t.Errorf("sleep %d = %v, want 5s", i, d)
		}
	}
	if len(*delays) != 3 {
		t.Errorf("expected 3 sleeps, got %d", len(*delays))
	}
}

func TestStart_MissingFloatingIPIsRetriedThenFound(t *testing.T) {
	provider := &mockProvider{
		servers: []domain.Server{{ID: "42"}},
		ips:     []domain.FloatingIP{{ID: "9", IP: "198.51.100.7"}},
		// First listing omits the ip (eventual consistency), then a
		// transient failure, then the full listing.
		ipErrs: []error{
			fmt.Errorf("listing incomplete: %w", domain.ErrNotFound),
			fmt.Errorf("boom: %w", domain.ErrTransient),
		},
	}
	a, _, _ := newTestAgent(t, provider, "42")

	if code := a.Start(context.Background()); code != ocf.Success {
		t.Fatalf("Start = %v, want success", code)
	}
	if provider.ipCalls != 3 {
		t.Errorf("expected 3 floating ip listings, got %d", provider.ipCalls)
	}
}

func TestStart_AuthFailureOnAssignIsMisconfiguredWithoutRetry(t *testing.T) {
	provider := &mockProvider{
		servers:    []domain.Server{{ID: "42"}, {ID: "17"}},
		ips:        []domain.FloatingIP{{ID: "9", IP: "198.51.100.7", ServerID: "17"}},
		assignErrs: []error{fmt.Errorf("token revoked: %w", domain.ErrUnauthorized)},
	}
	a, delays, stderr := newTestAgent(t, provider, "42")

	if code := a.Start(context.Background()); code != ocf.ErrConfigured {
		t.Fatalf("Start = %v, want misconfigured", code)
	}
	if provider.assignCalls != 1 {
		t.Errorf("expected exactly 1 assign attempt, got %d", provider.assignCalls)
	}
	if len(*delays) != 0 {
		t.Errorf("auth failure must not be retried, slept %v", *delays)
	}
	if stderr.Len() == 0 {
		t.Error("expected an operator-facing error line on stderr")
	}
}

func TestStart_RateLimitSleepsLonger(t *testing.T) {
	provider := &mockProvider{
		servers:  []domain.Server{{ID: "42"}},
		ips:      []domain.FloatingIP{{ID: "9", IP: "198.51.100.7"}},
		listErrs: []error{fmt.Errorf("throttled: %w", domain.ErrRateLimited)},
	}
	a, delays, _ := newTestAgent(t, provider, "42")

	if code := a.Start(context.Background()); code != ocf.Success {
		t.Fatalf("Start = %v, want success", code)
	}
	if len(*delays) != 1 || (*delays)[0] != 10*time.Second {
		t.Errorf("expected a single 10s sleep, got %v", *delays)
	}
}

func TestMonitor_SuccessWhenAssignedHere(t *testing.T) {
	provider := &mockProvider{
		servers: []domain.Server{{ID: "42"}},
		ips:     []domain.FloatingIP{{ID: "9", IP: "198.51.100.7", ServerID: "42"}},
	}
	a, _, _ := newTestAgent(t, provider, "42")

	if code := a.Monitor(context.Background()); code != ocf.Success {
		t.Fatalf("Monitor = %v, want success", code)
	}
	if provider.assignCalls != 0 {
		t.Errorf("monitor must never mutate, got %d assign calls", provider.assignCalls)
	}
}

func TestMonitor_AfterStartReturnsSuccess(t *testing.T) {
	provider := &mockProvider{
		servers: []domain.Server{{ID: "42"}},
		ips:     []domain.FloatingIP{{ID: "9", IP: "198.51.100.7"}},
	}
	a, _, _ := newTestAgent(t, provider, "42")

	if code := a.Start(context.Background()); code != ocf.Success {
		t.Fatalf("Start = %v, want success", code)
	}
	if code := a.Monitor(context.Background()); code != ocf.Success {
		t.Fatalf("Monitor after Start = %v, want success", code)
	}
}

func TestMonitor_NotRunningWhenAssignedElsewhere(t *testing.T) {
	provider := &mockProvider{
		servers: []domain.Server{{ID: "42"}, {ID: "17"}},
		ips:     []domain.FloatingIP{{ID: "9", IP: "198.51.100.7", ServerID: "17"}},
	}
	a, _, _ := newTestAgent(t, provider, "42")

	if code := a.Monitor(context.Background()); code != ocf.NotRunning {
		t.Fatalf("Monitor = %v, want not running", code)
	}
}

func TestMonitor_NotRunningWhenUnassigned(t *testing.T) {
	provider := &mockProvider{
		servers: []domain.Server{{ID: "42"}},
		ips:     []domain.FloatingIP{{ID: "9", IP: "198.51.100.7"}},
	}
	a, _, _ := newTestAgent(t, provider, "42")

	if code := a.Monitor(context.Background()); code != ocf.NotRunning {
		t.Fatalf("Monitor = %v, want not running", code)
	}
}

func TestMonitor_AuthFailureIsMisconfigured(t *testing.T) {
	provider := &mockProvider{
		servers:  []domain.Server{{ID: "42"}},
		ips:      []domain.FloatingIP{{ID: "9", IP: "198.51.100.7", ServerID: "42"}},
		listErrs: []error{fmt.Errorf("token revoked: %w", domain.ErrUnauthorized)},
	}
	a, _, _ := newTestAgent(t, provider, "42")

	if code := a.Monitor(context.Background()); code != ocf.ErrConfigured {
		t.Fatalf("Monitor = %v, want misconfigured", code)
	}
}

func TestStop_SucceedsWithZeroRemoteCalls(t *testing.T) {
	provider := &mockProvider{}
	a, _, _ := newTestAgent(t, provider, "42")

	if code := a.Stop(context.Background()); code != ocf.Success {
		t.Fatalf("Stop = %v, want success", code)
	}
	if provider.listCalls != 0 || provider.ipCalls != 0 || provider.assignCalls != 0 {
		t.Errorf("stop must issue zero remote calls, got list=%d ip=%d assign=%d",
			provider.listCalls, provider.ipCalls, provider.assignCalls)
	}
}

func TestStart_ContextCanceledIsGenericError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &mockProvider{
		servers: []domain.Server{{ID: "42"}},
		ips:     []domain.FloatingIP{{ID: "9", IP: "198.51.100.7"}},
	}
	a, _, _ := newTestAgent(t, provider, "42")

	if code := a.Start(ctx); code != ocf.ErrGeneric {
		t.Fatalf("Start with canceled context = %v, want generic error", code)
	}
}

func TestNew_UnknownHostFinderStrategy(t *testing.T) {
	if _, err := New(Config{IP: "198.51.100.7", HostFinder: "dns"}, &mockProvider{}); err == nil {
		t.Fatal("expected error for unknown host finder strategy")
	}
}
