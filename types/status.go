package types

// Link is the link/state reported for a capability.
type Link string

const (
	LinkUp   Link = "up"
	LinkDown Link = "down"
)

type CapabilityStatus struct {
	Link  Link   `json:"link"`
	TS    int64  `json:"ts_ns"`           // Unix ns
	Error string `json:"error,omitempty"` // machine-readable short code
}
