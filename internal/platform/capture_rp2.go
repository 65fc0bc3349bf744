// internal/platform/capture_rp2.go
//go:build rp2040 || rp2350

package platform

import (
	"machine"
	"runtime/volatile"
	_ "unsafe"

	"ppmrx-go/drivers/ppm"
)

//go:linkname ticks runtime.ticks
func ticks() uint64

//go:linkname ticksToNanoseconds runtime.ticksToNanoseconds
func ticksToNanoseconds(ticks uint64) int64

// DefaultCaptureFactory resolves GP0..GP28 to a GPIO edge interrupt stamped
// from the runtime's microsecond timer.
func DefaultCaptureFactory() ppm.CaptureResolver { return rp2Captures{} }

type rp2Captures struct{}

func (rp2Captures) ByPin(n int) (ppm.EdgeSource, bool) {
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Capture{p: machine.Pin(n)}, true
}

// rp2Capture latches the counter in the GPIO ISR, then runs the decoder
// handler in the same interrupt. Only rising edges are enabled, so the
// polarity flag is set rather than sampled; a late pin read could already
// see the falling edge of a short pulse.
type rp2Capture struct {
	p     machine.Pin
	stamp uint16
	level uint8
}

func (c *rp2Capture) Configure() error {
	c.p.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return nil
}

func (c *rp2Capture) SetHandler(h func()) error {
	if h == nil {
		var zero machine.PinChange
		return c.p.SetInterrupt(zero, nil)
	}
	return c.p.SetInterrupt(machine.PinRising, c.isr(h))
}

func (c *rp2Capture) isr(h func()) func(machine.Pin) {
	return func(machine.Pin) {
		us := uint64(ticksToNanoseconds(ticks())) / 1000
		volatile.StoreUint16(&c.stamp, uint16(us))
		volatile.StoreUint8(&c.level, 1)
		h()
	}
}

func (c *rp2Capture) Capture() ppm.Timestamp { return volatile.LoadUint16(&c.stamp) }
func (c *rp2Capture) Rising() bool           { return volatile.LoadUint8(&c.level) == 1 }
