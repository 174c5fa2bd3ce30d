package domain

// FloatingIP is a snapshot of a floating ip's remote assignment.
// ServerID is empty when the address is unassigned; the remote API
// guarantees at most one assignment at a time.
type FloatingIP struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	IP       string `json:"ip"`
	ServerID string `json:"server_id,omitempty"`
}

// AssignedTo reports whether the floating ip currently points at the
// given server. Pure comparison, no remote call.
func (f FloatingIP) AssignedTo(s Server) bool {
	return f.ServerID != "" && f.ServerID == s.ID
}
