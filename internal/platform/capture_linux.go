// internal/platform/capture_linux.go
//go:build linux && !baremetal

package platform

import (
	"sync"
	"sync/atomic"
	"time"

	"ppmrx-go/drivers/ppm"

	"github.com/warthog618/go-gpiocdev"
)

// LineCaptureFactory resolves line offsets on a gpiochip character device.
// The kernel stamps each edge; the stamp is reduced to a 16-bit µs counter.
type LineCaptureFactory struct {
	Chip string // e.g. "gpiochip0"
}

func NewLineCaptureFactory(chip string) *LineCaptureFactory {
	return &LineCaptureFactory{Chip: chip}
}

func (f *LineCaptureFactory) ByPin(n int) (ppm.EdgeSource, bool) {
	if n < 0 {
		return nil, false
	}
	c, err := gpiocdev.NewChip(f.Chip)
	if err != nil {
		return nil, false
	}
	lines := c.Lines()
	_ = c.Close()
	if n >= lines {
		return nil, false
	}
	return &lineCapture{chip: f.Chip, offset: n}, true
}

type lineCapture struct {
	chip   string
	offset int

	mu   sync.Mutex
	line *gpiocdev.Line

	stamp  atomic.Uint32
	rising atomic.Bool
}

// Configure checks the line can be requested as an input. The edge request
// itself happens when a handler is attached.
func (c *lineCapture) Configure() error {
	l, err := gpiocdev.RequestLine(c.chip, c.offset, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		return err
	}
	return l.Close()
}

func (c *lineCapture) SetHandler(h func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.line != nil {
		_ = c.line.Close()
		c.line = nil
	}
	if h == nil {
		return nil
	}
	l, err := gpiocdev.RequestLine(c.chip, c.offset,
		gpiocdev.WithPullDown,
		gpiocdev.WithRisingEdge,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			// Events arrive on a single watcher goroutine, in order.
			c.stamp.Store(uint32(evt.Timestamp / time.Microsecond))
			c.rising.Store(evt.Type == gpiocdev.LineEventRisingEdge)
			h()
		}))
	if err != nil {
		return err
	}
	c.line = l
	return nil
}

func (c *lineCapture) Capture() ppm.Timestamp { return ppm.Timestamp(c.stamp.Load()) }
func (c *lineCapture) Rising() bool           { return c.rising.Load() }
