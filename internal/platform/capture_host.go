// internal/platform/capture_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"sync"

	"ppmrx-go/drivers/ppm"
)

// FakeEdgeSource implements ppm.EdgeSource for host builds and tests.
// Rise and Fall play the role of the capture interrupt.
type FakeEdgeSource struct {
	mu         sync.Mutex
	pin        int
	t          uint16
	rising     bool
	handler    func()
	configured bool
}

func (f *FakeEdgeSource) Configure() error {
	f.mu.Lock()
	f.configured = true
	f.mu.Unlock()
	return nil
}

func (f *FakeEdgeSource) SetHandler(h func()) error {
	f.mu.Lock()
	f.handler = h
	f.mu.Unlock()
	return nil
}

func (f *FakeEdgeSource) Capture() ppm.Timestamp {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *FakeEdgeSource) Rising() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rising
}

// Rise advances the counter by each delta (µs) and raises a rising edge.
func (f *FakeEdgeSource) Rise(deltas ...uint16) {
	for _, dt := range deltas {
		f.edge(dt, true)
	}
}

// Fall advances the counter by dt and raises a falling edge.
func (f *FakeEdgeSource) Fall(dt uint16) { f.edge(dt, false) }

func (f *FakeEdgeSource) edge(dt uint16, rising bool) {
	f.mu.Lock()
	f.t += dt
	f.rising = rising
	h := f.handler
	f.mu.Unlock()
	if h != nil {
		h() // ISR-style callback
	}
}

// Attached reports whether a handler is installed.
func (f *FakeEdgeSource) Attached() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handler != nil
}

func (f *FakeEdgeSource) Configured() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.configured
}

func (f *FakeEdgeSource) Pin() int { return f.pin }

// FakeCaptureFactory returns stable *FakeEdgeSource instances per pin.
// Pins outside [Min,Max] have no capture resource.
type FakeCaptureFactory struct {
	Min, Max int

	mu   sync.Mutex
	srcs map[int]*FakeEdgeSource
}

func (f *FakeCaptureFactory) ByPin(n int) (ppm.EdgeSource, bool) {
	src, ok := f.get(n, true)
	if !ok {
		return nil, false
	}
	return src, true
}

// Get exposes the underlying *FakeEdgeSource for tests (e.g. to drive edges).
func (f *FakeCaptureFactory) Get(n int) (*FakeEdgeSource, bool) { return f.get(n, false) }

func (f *FakeCaptureFactory) get(n int, create bool) (*FakeEdgeSource, bool) {
	if n < f.Min || n > f.Max {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.srcs == nil {
		f.srcs = make(map[int]*FakeEdgeSource)
	}
	s, ok := f.srcs[n]
	if !ok && create {
		s = &FakeEdgeSource{pin: n}
		f.srcs[n] = s
		ok = true
	}
	return s, ok
}

// DefaultCaptureFactory provides fake capture sources on GP0..GP28.
func DefaultCaptureFactory() ppm.CaptureResolver {
	return &FakeCaptureFactory{Min: 0, Max: 28}
}
