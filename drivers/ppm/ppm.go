// Package ppm decodes a single-wire PPM radio-control signal into per-channel
// pulse widths.
//
// The decoder runs in interrupt context: every rising edge of the signal is
// timestamped by a free-running 16-bit microsecond counter and the difference to
// the previous rising edge is classified as a channel pulse, a sync gap or a
// glitch:
//
//	rx, _ := ppm.New(ppm.Config{Pin: 16, Channels: 8})
//	if err := rx.Init(captures); err != nil {
//		println("[rc]", err.Error()) // channels stay at neutral
//	}
//	throttle := rx.Channel(ppm.Throttle)
//
// The hardware side is reached only through EdgeSource, so the decoder has no
// platform code and can be driven with synthetic edges in tests.
//
// NOTE: the handler never allocates, blocks or locks. Slot values are published
// with per-slot atomic stores; a reader may observe slots from two different
// frames if it reads mid-frame.
package ppm

// Timestamp is a sample of the free-running capture counter (µs, wraps mod 2^16).
type Timestamp = uint16

// MaxChannels bounds the number of slots a frame can carry.
const MaxChannels = 16

// Pulse widths in microseconds.
const (
	DefaultNeutral = 1500
	PulseMin       = 1000
	PulseMax       = 2000
)

// Thresholds classify the delta between two rising edges.
// A pulse is valid when Low < diff < High; a sync gap when diff > Sync.
type Thresholds struct {
	Low  uint16
	High uint16
	Sync uint16
}

// DefaultThresholds suit standard 1000..2000 µs receivers with a >2.5 ms frame gap.
var DefaultThresholds = Thresholds{Low: 900, High: 2100, Sync: 2500}

func (t Thresholds) valid() bool {
	return t.Low < t.High && t.High <= t.Sync
}

// EdgeSource is the capture capability of one timer channel: it timestamps
// signal edges and raises an interrupt per edge.
type EdgeSource interface {
	// Configure sets the channel up for rising-edge capture.
	Configure() error
	// SetHandler attaches h to the capture interrupt. A nil h detaches.
	SetHandler(h func()) error
	// Capture returns the counter value latched at the last edge.
	Capture() Timestamp
	// Rising reports the polarity of the last edge.
	Rising() bool
}

// CaptureResolver maps a pin identifier to the timer channel that owns it.
type CaptureResolver interface {
	ByPin(pin int) (EdgeSource, bool)
}
