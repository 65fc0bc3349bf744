package ppm

import (
	"ppmrx-go/errcode"
	"ppmrx-go/x/mathx"

	"tinygo.org/x/drivers"
)

var _ drivers.Sensor = (*Receiver)(nil)

// Config describes one PPM input. Channels has no default.
type Config struct {
	Pin      int
	Channels int
	// Order[logical] is the physical slot; nil means identity.
	Order []int
	// Zero value selects DefaultThresholds.
	Thresholds Thresholds
	// Value every slot holds until the first frame. Zero selects DefaultNeutral.
	Neutral uint16
}

// Receiver wires an EdgeSource to a Decoder and serves channel reads.
type Receiver struct {
	cfg     Config
	neutral uint16
	cmap    ChannelMap
	store   Store
	dec     *Decoder
	src     EdgeSource

	latched [MaxChannels]uint16 // logical order, filled by Update
}

// New validates cfg and returns a receiver whose channels read neutral.
// Nothing touches hardware until Init.
func New(cfg Config) (*Receiver, error) {
	if cfg.Channels < 1 || cfg.Channels > MaxChannels {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "ppm.New", Msg: "channel count out of range"}
	}
	th := cfg.Thresholds
	if th == (Thresholds{}) {
		th = DefaultThresholds
	}
	if !th.valid() {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "ppm.New", Msg: "thresholds"}
	}
	cmap, err := NewChannelMap(cfg.Order, cfg.Channels)
	if err != nil {
		return nil, err
	}
	neutral := cfg.Neutral
	if neutral == 0 {
		neutral = DefaultNeutral
	}
	cfg.Thresholds = th
	cfg.Neutral = neutral

	r := &Receiver{cfg: cfg, neutral: neutral, cmap: cmap}
	r.dec = NewDecoder(&r.store, cfg.Channels, th)
	r.store.Reset(neutral)
	r.latch()
	return r, nil
}

// Init brings the receiver up: slots to neutral, cursor frozen, capture
// configured, handler attached, in that order. A pin without a capture
// resource returns errcode.NoTimer and leaves the channels at neutral.
func (r *Receiver) Init(res CaptureResolver) error {
	if r.src != nil {
		r.Close()
	}
	r.store.Reset(r.neutral)
	r.dec.Freeze()

	if res == nil {
		return &errcode.E{C: errcode.NoTimer, Op: "ppm.Init", Msg: "no capture resolver"}
	}
	src, ok := res.ByPin(r.cfg.Pin)
	if !ok || src == nil {
		return &errcode.E{C: errcode.NoTimer, Op: "ppm.Init"}
	}
	if err := src.Configure(); err != nil {
		return errcode.Wrap(errcode.NoTimer, "ppm.Init", err)
	}
	r.dec.src = src
	if err := src.SetHandler(r.dec.HandleCapture); err != nil {
		r.dec.src = nil
		return errcode.Wrap(errcode.NoTimer, "ppm.Init", err)
	}
	r.src = src
	return nil
}

// Close detaches the capture handler. Channel values are kept.
func (r *Receiver) Close() error {
	src := r.src
	if src == nil {
		return nil
	}
	err := src.SetHandler(nil)
	r.src = nil
	r.dec.src = nil
	r.dec.Freeze()
	return err
}

// Installed reports whether a capture handler is attached.
func (r *Receiver) Installed() bool { return r.src != nil }

// Channel returns the last decoded pulse width (µs) for a logical channel,
// or the neutral value for an unmapped channel.
func (r *Receiver) Channel(logical int) uint16 {
	slot, ok := r.cmap.Physical(logical)
	if !ok {
		return r.neutral
	}
	return r.store.Get(slot)
}

// SetChannel exists for symmetry with output-capable receivers. PPM input is
// driven by the transmitter, so this does nothing.
func (r *Receiver) SetChannel(logical int, v uint16) {}

// Raw returns a physical slot without mapping.
func (r *Receiver) Raw(slot int) uint16 { return r.store.Get(slot) }

// Update latches every logical channel for a main-loop pass.
func (r *Receiver) Update(which drivers.Measurement) error {
	if which == 0 {
		return nil
	}
	r.latch()
	return nil
}

func (r *Receiver) latch() {
	for i := 0; i < r.cmap.Len(); i++ {
		r.latched[i] = r.Channel(i)
	}
}

// Latched returns the value captured by the last Update.
func (r *Receiver) Latched(logical int) uint16 {
	if logical < 0 || logical >= r.cmap.Len() {
		return r.neutral
	}
	return r.latched[logical]
}

// Scaled maps a latched channel from PulseMin..PulseMax to -1000..1000.
func (r *Receiver) Scaled(logical int) int16 {
	v := mathx.Clamp(r.Latched(logical), PulseMin, PulseMax)
	return int16(mathx.MapU16(v, PulseMin, PulseMax, 0, 2000)) - 1000
}

func (r *Receiver) Channels() int          { return r.cmap.Len() }
func (r *Receiver) Neutral() uint16        { return r.neutral }
func (r *Receiver) Pin() int               { return r.cfg.Pin }
func (r *Receiver) Map() ChannelMap        { return r.cmap }
func (r *Receiver) Stats() Stats           { return r.dec.Stats() }
func (r *Receiver) Decoder() *Decoder      { return r.dec }
func (r *Receiver) Thresholds() Thresholds { return r.cfg.Thresholds }
