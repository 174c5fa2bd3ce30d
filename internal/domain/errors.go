package domain

import "errors"

// Sentinel errors classifying remote API failures. The provider wraps
// every API error in exactly one of these so the agent's retry and
// outcome decisions never depend on a provider-specific SDK.
//
//	return fmt.Errorf("failed to list servers: %w", domain.ErrRateLimited)
var (
	// ErrNotFound indicates the requested resource does not exist.
	// Fatal when the missing record is this host's server entry;
	// retried when a floating-ip listing is momentarily incomplete.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the request was rejected due to an
	// invalid, expired, or revoked credential. Never retried: a bad
	// token will not self-heal.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the provider throttled the request.
	// Retried with the longer rate-limit delay.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransient indicates a failure expected to resolve itself,
	// such as an internal server error or a dropped connection.
	// Retried with the base delay.
	ErrTransient = errors.New("transient api failure")
)
