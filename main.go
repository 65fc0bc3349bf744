package main

import (
	"context"
	"time"

	"ppmrx-go/bus"
	"ppmrx-go/internal/platform"
	"ppmrx-go/services/config"
	"ppmrx-go/services/rc"
	"ppmrx-go/telemetry"
	"ppmrx-go/types"
)

const device = "pico"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, device)

	diag := platform.DiagOutput()

	println("[main] bootstrapping bus")
	b := bus.NewBus(8)

	println("[main] starting rc service")
	rcSvc := rc.New(platform.DefaultCaptureFactory())
	if err := rcSvc.Start(ctx, b.NewConnection("rc")); err != nil {
		println("[main] rc start failed:", err.Error())
	}

	println("[main] starting telemetry")
	if err := telemetry.NewReporter(diag).Start(ctx, b.NewConnection("telemetry")); err != nil {
		println("[main] telemetry start failed:", err.Error())
	}

	println("[main] publishing config for", device)
	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	// Status transitions are worth a console line of their own.
	mon := b.NewConnection("monitor").Subscribe(rc.TopicStatus())
	for m := range mon.Channel() {
		if st, ok := m.Payload.(types.CapabilityStatus); ok {
			println("[main] rc link", string(st.Link), st.Error)
		}
	}
}
