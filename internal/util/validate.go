package util

import (
	"fmt"
	"net"
	"strconv"
)

// hcloudTokenLength is the length of a Hetzner Cloud API token.
const hcloudTokenLength = 64

// ValidateIPv4Address checks that s is a literal dotted-quad IPv4
// address. The agent matches the floating ip by exact literal, so
// hostnames and IPv6 addresses are rejected.
func ValidateIPv4Address(s string) error {
	if s == "" {
		return fmt.Errorf("ip address is required")
	}
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("%q is not a valid IPv4 address", s)
	}
	return nil
}

// ValidateAPIToken checks the shape of a Hetzner Cloud API token.
func ValidateAPIToken(token string) error {
	if token == "" {
		return fmt.Errorf("api token is required")
	}
	if len(token) != hcloudTokenLength {
		return fmt.Errorf("api token must be exactly %d characters, got %d", hcloudTokenLength, len(token))
	}
	return nil
}

// ValidateSleepSeconds checks the retry base delay parameter: a
// positive integer number of seconds.
func ValidateSleepSeconds(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("sleep must be an integer number of seconds, got %q", s)
	}
	if n <= 0 {
		return fmt.Errorf("sleep must be greater than 0, got %d", n)
	}
	return nil
}
