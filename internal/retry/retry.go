// Package retry wraps remote calls with classification-driven backoff.
// Transient failures and rate limits are retried without an attempt
// ceiling; the cluster manager's own action timeout is the real upper
// bound, and it kills the whole process when exceeded. Configuration
// problems (bad credential, missing record) surface immediately so
// they are never masked by the loop.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/dld-r00f/hcloud-ocf/internal/domain"
)

// DefaultBaseDelay is the pause after a transient failure when the
// resource is configured without an explicit sleep parameter.
const DefaultBaseDelay = 5 * time.Second

// minRateLimitDelay is the floor for the rate-limit pause.
const minRateLimitDelay = 10 * time.Second

// Predicate reports whether a classified error should be retried.
type Predicate func(error) bool

// Policy holds the delays between attempts. Sleep is swapped out in
// tests; nil means a real timer-backed sleep.
type Policy struct {
	Delay          time.Duration
	RateLimitDelay time.Duration
	Sleep          func(ctx context.Context, d time.Duration) bool
}

// NewPolicy derives a policy from the base delay: rate limits wait
// twice the base, but never under ten seconds.
func NewPolicy(base time.Duration) Policy {
	if base <= 0 {
		base = DefaultBaseDelay
	}
	rateLimit := 2 * base
	if rateLimit < minRateLimitDelay {
		rateLimit = minRateLimitDelay
	}
	return Policy{Delay: base, RateLimitDelay: rateLimit}
}

// Do invokes fn until it succeeds or fails with an error rejected by
// shouldRetry. A success returns immediately; retries only ever follow
// a failure. Between attempts it sleeps DelayFor(err), and it honors
// context cancellation both before an attempt and mid-sleep.
func Do(ctx context.Context, policy Policy, shouldRetry Predicate, fn func() error) error {
	if shouldRetry == nil {
		shouldRetry = IsRetryable
	}
	doSleep := policy.Sleep
	if doSleep == nil {
		doSleep = sleep
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn()
		if err == nil {
			return nil
		}
		if !shouldRetry(err) {
			return err
		}

		if !doSleep(ctx, policy.DelayFor(err)) {
			return ctx.Err()
		}
	}
}

// DelayFor chooses the pause before the next attempt: the rate-limit
// delay for throttled requests, the base delay for everything else.
func (p Policy) DelayFor(err error) time.Duration {
	if errors.Is(err, domain.ErrRateLimited) {
		return p.RateLimitDelay
	}
	return p.Delay
}

// IsRetryable accepts transient and rate-limit failures. Not-found and
// authentication failures are configuration problems and fail fast.
func IsRetryable(err error) bool {
	return errors.Is(err, domain.ErrTransient) || errors.Is(err, domain.ErrRateLimited)
}

// IsRetryableOrNotFound additionally retries not-found, for lookups
// where a missing record can be eventual consistency in the remote
// listing rather than misconfiguration.
func IsRetryableOrNotFound(err error) bool {
	return IsRetryable(err) || errors.Is(err, domain.ErrNotFound)
}

func sleep(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
