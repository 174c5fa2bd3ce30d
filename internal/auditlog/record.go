package auditlog

import "time"

// Entry is one persisted agent invocation. The trail exists for
// operators reconstructing a failover after the fact; the agent itself
// never reads it back.
type Entry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Operation  string    `json:"operation"`
	FloatingIP string    `json:"floating_ip,omitempty"`
	ServerID   string    `json:"server_id,omitempty"`
	Provider   string    `json:"provider,omitempty"`
	Outcome    int       `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}
