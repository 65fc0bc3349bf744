package ppm

import (
	"sync/atomic"

	"ppmrx-go/x/mathx"
)

// Stats are free-running counters kept by the decoder. They wrap.
type Stats struct {
	Frames    uint32 // sync gaps that closed a complete, glitch-free frame
	Syncs     uint32 // sync gaps seen
	Glitches  uint32 // deltas that were neither a pulse nor a sync gap
	Overflows uint32 // valid pulses dropped because the frame was already full
}

// Decoder turns rising-edge timestamps into slot writes.
// All mutable state lives here and is touched only from the capture handler,
// except for the atomics that the main loop reads.
type Decoder struct {
	src   EdgeSource
	store *Store
	th    Thresholds
	n     uint32

	cursor   atomic.Uint32 // 0..n; n means frozen until the next sync gap
	lastRise Timestamp
	frozen   bool // a glitch (or start-up) invalidated the current frame

	frames    atomic.Uint32
	syncs     atomic.Uint32
	glitches  atomic.Uint32
	overflows atomic.Uint32
}

// NewDecoder returns a decoder writing n slots of store. n is clamped to
// 1..MaxChannels. The decoder starts frozen.
func NewDecoder(store *Store, n int, th Thresholds) *Decoder {
	d := &Decoder{
		store: store,
		th:    th,
		n:     uint32(mathx.Clamp(n, 1, MaxChannels)),
	}
	d.Freeze()
	return d
}

// Diff returns the elapsed counter ticks from prev to c, modulo 2^16.
func Diff(c, prev Timestamp) uint16 { return c - prev }

// Freeze parks the cursor at n so that nothing is written before the next
// sync gap.
func (d *Decoder) Freeze() {
	d.frozen = true
	d.cursor.Store(d.n)
}

// Edge processes one edge. Falling edges are ignored.
func (d *Decoder) Edge(c Timestamp, rising bool) {
	if !rising {
		return
	}
	diff := Diff(c, d.lastRise)
	d.lastRise = c

	cur := d.cursor.Load()
	switch {
	case diff > d.th.Low && diff < d.th.High:
		if cur < d.n {
			d.store.Set(int(cur), diff)
			d.cursor.Store(cur + 1)
		} else if !d.frozen {
			d.overflows.Add(1)
		}
	case diff > d.th.Sync:
		d.syncs.Add(1)
		if cur == d.n && !d.frozen {
			d.frames.Add(1)
		}
		d.frozen = false
		d.cursor.Store(0)
	default:
		// Glitch: drop the rest of this frame rather than shift channels.
		d.glitches.Add(1)
		d.frozen = true
		d.cursor.Store(d.n)
	}
}

// HandleCapture is the interrupt entry point for the bound EdgeSource.
func (d *Decoder) HandleCapture() {
	src := d.src
	if src == nil {
		return
	}
	d.Edge(src.Capture(), src.Rising())
}

// Cursor returns the slot the next valid pulse will fill (n when frozen or full).
func (d *Decoder) Cursor() int { return int(d.cursor.Load()) }

// Channels returns the number of slots per frame.
func (d *Decoder) Channels() int { return int(d.n) }

func (d *Decoder) Stats() Stats {
	return Stats{
		Frames:    d.frames.Load(),
		Syncs:     d.syncs.Load(),
		Glitches:  d.glitches.Load(),
		Overflows: d.overflows.Load(),
	}
}
