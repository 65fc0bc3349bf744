package telemetry

import (
	"context"
	"io"
	"time"

	"ppmrx-go/bus"
	"ppmrx-go/internal/util"
	"ppmrx-go/services/rc"
	"ppmrx-go/types"
	"ppmrx-go/x/timex"
)

const DefaultInterval = 100 * time.Millisecond

var topicConfigTelemetry = bus.T("config", "telemetry")

type reporterConfig struct {
	IntervalMs uint32 `json:"interval_ms"`
}

// Reporter writes the latest rc/value as a telemetry line to w at a fixed
// interval. Lines are only written when a new snapshot arrived.
type Reporter struct {
	w   io.Writer
	buf []byte
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w, buf: make([]byte, 0, 128)}
}

// Start the reporter.
func (r *Reporter) Start(ctx context.Context, conn *bus.Connection) error {
	go r.serviceLoop(ctx, conn)
	return nil
}

func (r *Reporter) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigTelemetry)
	valSub := conn.Subscribe(rc.TopicValue())
	stSub := conn.Subscribe(rc.TopicStatus())
	defer conn.Unsubscribe(cfgSub)
	defer conn.Unsubscribe(valSub)
	defer conn.Unsubscribe(stSub)

	tick := time.NewTicker(DefaultInterval)
	defer tick.Stop()

	var (
		last  types.RCValue
		fresh bool
		link  = types.LinkDown
	)
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-cfgSub.Channel():
			var cfg reporterConfig
			if err := util.DecodeJSON(msg.Payload, &cfg); err != nil {
				println("[telemetry] config decode failed:", err.Error())
				continue
			}
			tick.Reset(timex.Millis(cfg.IntervalMs, DefaultInterval))
		case msg := <-valSub.Channel():
			if v, ok := msg.Payload.(types.RCValue); ok {
				last, fresh = v, true
			}
		case msg := <-stSub.Channel():
			if st, ok := msg.Payload.(types.CapabilityStatus); ok {
				link = st.Link
			}
		case <-tick.C:
			if !fresh {
				continue
			}
			fresh = false
			r.buf = AppendFrame(r.buf[:0], last, link)
			if _, err := r.w.Write(r.buf); err != nil {
				println("[telemetry] write failed:", err.Error())
			}
		}
	}
}
