package domain

import "time"

// Server is a read-only snapshot of a compute instance as reported by
// the cloud API. It is fetched fresh on every invocation and valid only
// for that invocation.
type Server struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	PublicIPv4 string    `json:"public_ipv4,omitempty"`
	PublicIPv6 string    `json:"public_ipv6,omitempty"`
	Provider   string    `json:"provider"`
}
