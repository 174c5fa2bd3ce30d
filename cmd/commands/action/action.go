// Package action implements the cluster-facing OCF actions. The
// cluster manager invokes the agent as `hcloud-ocf <action>` with
// resource parameters in OCF_RESKEY_* environment variables and reads
// the process exit status as the outcome.
package action

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dld-r00f/hcloud-ocf/internal/agent"
	"github.com/dld-r00f/hcloud-ocf/internal/auditlog"
	"github.com/dld-r00f/hcloud-ocf/internal/config"
	"github.com/dld-r00f/hcloud-ocf/internal/ocf"
	"github.com/dld-r00f/hcloud-ocf/internal/providers"
	"github.com/dld-r00f/hcloud-ocf/internal/services/auth"

	"github.com/spf13/cobra"
)

const defaultProvider = "hetzner"

// params is one invocation's resolved configuration: OCF environment
// first, then the optional defaults file, then built-in defaults. The
// token additionally falls back to the OS keyring so the resource
// definition does not have to embed the credential.
type params struct {
	ip         string
	token      string
	hostFinder string
	provider   string
	delay      time.Duration
}

func resolveParams() (params, error) {
	cfg, err := config.Load()
	if err != nil {
		return params{}, err
	}

	p := params{
		ip:         ocf.Param("ip"),
		token:      ocf.Param("api_token"),
		hostFinder: ocf.ParamOr("host_finder", cfg.HostFinder),
		provider:   defaultProvider,
	}
	if cfg.Provider != "" {
		p.provider = cfg.Provider
	}

	sleepRaw := ocf.Param("sleep")
	switch {
	case sleepRaw != "":
		seconds, err := strconv.Atoi(sleepRaw)
		if err != nil || seconds <= 0 {
			return params{}, fmt.Errorf("invalid sleep parameter %q", sleepRaw)
		}
		p.delay = time.Duration(seconds) * time.Second
	case cfg.SleepSeconds > 0:
		p.delay = time.Duration(cfg.SleepSeconds) * time.Second
	}

	if p.token == "" {
		if token, err := auth.DefaultStore().GetToken(p.provider); err == nil {
			p.token = token
		}
	}

	return p, nil
}

// run executes one remote-facing operation end to end: resolve
// parameters, build the provider and agent, run, audit, exit.
func run(cmd *cobra.Command, operation string, fn func(*cobra.Command, *agent.Agent) ocf.ReturnCode) error {
	started := time.Now()

	p, err := resolveParams()
	if err != nil {
		return misconfigured(cmd, operation, p, started, err)
	}
	if p.ip == "" {
		return misconfigured(cmd, operation, p, started, fmt.Errorf("the ip parameter is required"))
	}
	if p.token == "" {
		return misconfigured(cmd, operation, p, started,
			fmt.Errorf("no api token: set OCF_RESKEY_api_token or run 'hcloud-ocf auth login %s'", p.provider))
	}

	provider, err := providers.Get(p.provider, p.token)
	if err != nil {
		return misconfigured(cmd, operation, p, started, err)
	}

	a, err := agent.New(agent.Config{IP: p.ip, HostFinder: p.hostFinder, Delay: p.delay}, provider,
		agent.WithStderr(cmd.ErrOrStderr()))
	if err != nil {
		return misconfigured(cmd, operation, p, started, err)
	}

	code := fn(cmd, a)
	record(operation, p, code, started, "")
	return ocf.Exit(code)
}

func misconfigured(cmd *cobra.Command, operation string, p params, started time.Time, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	record(operation, p, ocf.ErrConfigured, started, err.Error())
	return ocf.Exit(ocf.ErrConfigured)
}

// record appends to the local audit trail. Best effort only: the OCF
// outcome must never depend on local bookkeeping.
func record(operation string, p params, code ocf.ReturnCode, started time.Time, detail string) {
	repo, err := auditlog.Open()
	if err != nil {
		return
	}
	defer repo.Close()

	_ = repo.Save(&auditlog.Entry{
		Operation:  operation,
		FloatingIP: p.ip,
		Provider:   p.provider,
		Outcome:    int(code),
		Detail:     auditlog.Redact(detail, p.token),
		DurationMs: time.Since(started).Milliseconds(),
	})
}
