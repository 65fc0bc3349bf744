// Package rc runs a PPM receiver behind the bus. It is configured from the
// retained "config/rc" message and publishes retained rc/info, rc/value and
// rc/status messages.
package rc

import (
	"context"
	"sync/atomic"
	"time"

	"ppmrx-go/bus"
	"ppmrx-go/drivers/ppm"
	"ppmrx-go/errcode"
	"ppmrx-go/internal/util"
	"ppmrx-go/types"
	"ppmrx-go/x/timex"

	"tinygo.org/x/drivers"
)

const (
	DefaultPublish = 50 * time.Millisecond
	DefaultStale   = 500 * time.Millisecond
)

var (
	topicConfigRC = bus.T("config", "rc")
	topicInfo     = bus.T("rc", "info")
	topicValue    = bus.T("rc", "value")
	topicStatus   = bus.T("rc", "status")
)

// TopicValue and TopicStatus are exported for in-process consumers.
func TopicValue() bus.Topic  { return topicValue }
func TopicStatus() bus.Topic { return topicStatus }

type Service struct {
	res ppm.CaptureResolver
	rx  atomic.Pointer[ppm.Receiver]

	// Owned by the service goroutine.
	publish    time.Duration
	stale      time.Duration
	lastFrames uint32
	lastChange time.Time
	link       types.Link
	linkErr    errcode.Code
}

func New(res ppm.CaptureResolver) *Service {
	return &Service{res: res, publish: DefaultPublish, stale: DefaultStale}
}

// Receiver returns the running receiver, or nil before the first valid config.
// Other goroutines should read it with Channel; Update and Latched belong to
// the service loop.
func (s *Service) Receiver() *ppm.Receiver { return s.rx.Load() }

// Start the rc service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigRC)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(s.publish)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			if rx := s.rx.Load(); rx != nil {
				rx.Close()
			}
			s.setStatus(conn, types.LinkDown, "")
			println("[rc] stopping")
			return
		case msg, ok := <-cfgSub.Channel():
			if !ok {
				return
			}
			var cfg types.RCConfig
			if err := util.DecodeJSON(msg.Payload, &cfg); err != nil {
				println("[rc] config decode failed:", err.Error())
				s.setStatus(conn, types.LinkDown, errcode.InvalidPayload)
				continue
			}
			s.apply(conn, cfg)
			tick.Reset(s.publish)
		case now := <-tick.C:
			s.poll(conn, now)
		}
	}
}

// apply replaces the running receiver. Failures are reported, never fatal.
func (s *Service) apply(conn *bus.Connection, cfg types.RCConfig) {
	if old := s.rx.Swap(nil); old != nil {
		old.Close()
	}
	s.publish = timex.Millis(cfg.PublishMs, DefaultPublish)
	s.stale = timex.Millis(cfg.StaleMs, DefaultStale)

	pc, err := receiverConfig(cfg)
	if err != nil {
		s.fail(conn, err)
		return
	}
	rx, err := ppm.New(pc)
	if err != nil {
		s.fail(conn, err)
		return
	}
	if err := rx.Init(s.res); err != nil {
		// Keep the receiver so readers see neutral values.
		s.rx.Store(rx)
		s.fail(conn, err)
		return
	}
	s.rx.Store(rx)

	th := rx.Thresholds()
	conn.Publish(conn.NewMessage(topicInfo, types.RCInfo{
		Pin:       rx.Pin(),
		Channels:  rx.Channels(),
		Order:     cfg.Order,
		LowUs:     th.Low,
		HighUs:    th.High,
		SyncUs:    th.Sync,
		NeutralUs: rx.Neutral(),
	}, true))

	s.lastFrames = rx.Stats().Frames
	s.lastChange = time.Now()
	s.link, s.linkErr = "", ""
	s.setStatus(conn, types.LinkDown, "")
	println("[rc] receiver up on pin", rx.Pin(), "channels", rx.Channels())
}

func (s *Service) fail(conn *bus.Connection, err error) {
	println("[rc] config rejected:", err.Error())
	conn.Publish(conn.NewMessage(topicInfo, nil, true))
	s.setStatus(conn, types.LinkDown, errcode.Of(err))
}

// poll latches, publishes the snapshot and supervises the signal.
func (s *Service) poll(conn *bus.Connection, now time.Time) {
	rx := s.rx.Load()
	if rx == nil || !rx.Installed() {
		return
	}
	_ = rx.Update(drivers.Measurement(1))
	n := rx.Channels()
	v := types.RCValue{
		Channels: make([]uint16, n),
		Frames:   rx.Stats().Frames,
		TS:       now.UnixNano(),
	}
	for i := 0; i < n; i++ {
		v.Channels[i] = rx.Latched(i)
	}
	conn.Publish(conn.NewMessage(topicValue, v, true))

	if v.Frames != s.lastFrames {
		s.lastFrames = v.Frames
		s.lastChange = now
		s.setStatus(conn, types.LinkUp, "")
		return
	}
	if now.Sub(s.lastChange) >= s.stale {
		s.setStatus(conn, types.LinkDown, errcode.NoSignal)
	}
}

// setStatus publishes rc/status on transitions only.
func (s *Service) setStatus(conn *bus.Connection, link types.Link, code errcode.Code) {
	if link == s.link && code == s.linkErr {
		return
	}
	s.link, s.linkErr = link, code
	if code == errcode.NoSignal {
		println("[rc] signal lost")
	} else if link == types.LinkUp {
		println("[rc] signal acquired")
	}
	conn.Publish(conn.NewMessage(topicStatus, types.CapabilityStatus{
		Link:  link,
		TS:    timex.NowNs(),
		Error: string(code),
	}, true))
}

// receiverConfig maps the bus config onto the driver config. Zero timing
// fields fall back to the decoder defaults one by one.
func receiverConfig(cfg types.RCConfig) (ppm.Config, error) {
	pc := ppm.Config{
		Pin:      cfg.Pin,
		Channels: cfg.Channels,
		Neutral:  cfg.NeutralUs,
		Thresholds: ppm.Thresholds{
			Low:  orDefault(cfg.LowUs, ppm.DefaultThresholds.Low),
			High: orDefault(cfg.HighUs, ppm.DefaultThresholds.High),
			Sync: orDefault(cfg.SyncUs, ppm.DefaultThresholds.Sync),
		},
	}
	if cfg.Order != "" {
		order, err := ppm.OrderFor(cfg.Order, cfg.Channels)
		if err != nil {
			return pc, err
		}
		pc.Order = order
	}
	return pc, nil
}

func orDefault(v, def uint16) uint16 {
	if v == 0 {
		return def
	}
	return v
}
