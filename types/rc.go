package types

// RC receiver configuration supplied on topic "config/rc".
// Zero timing fields select the decoder defaults.
type RCConfig struct {
	Pin       int    `json:"pin"`
	Channels  int    `json:"channels"`
	Order     string `json:"order,omitempty"` // e.g. "TAER1234"; empty is identity
	LowUs     uint16 `json:"low_us,omitempty"`
	HighUs    uint16 `json:"high_us,omitempty"`
	SyncUs    uint16 `json:"sync_us,omitempty"`
	NeutralUs uint16 `json:"neutral_us,omitempty"`
	PublishMs uint32 `json:"publish_ms,omitempty"`
	StaleMs   uint32 `json:"stale_ms,omitempty"`
}

// RCInfo is published retained on "rc/info" once the receiver is running.
type RCInfo struct {
	Pin       int    `json:"pin"`
	Channels  int    `json:"channels"`
	Order     string `json:"order,omitempty"`
	LowUs     uint16 `json:"low_us"`
	HighUs    uint16 `json:"high_us"`
	SyncUs    uint16 `json:"sync_us"`
	NeutralUs uint16 `json:"neutral_us"`
}

// RCValue is a latched snapshot in logical channel order (µs).
type RCValue struct {
	Channels []uint16 `json:"ch"`
	Frames   uint32   `json:"frames"`
	TS       int64    `json:"ts_ns"`
}
