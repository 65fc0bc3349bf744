//go:build linux

// ppm-linux decodes a PPM signal on a Linux GPIO line and prints telemetry
// lines on stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ppmrx-go/bus"
	"ppmrx-go/internal/platform"
	"ppmrx-go/services/rc"
	"ppmrx-go/telemetry"
	"ppmrx-go/types"

	"github.com/spf13/cobra"
)

var (
	chipName  string
	lineNum   int
	channels  int
	order     string
	publishMs uint32
	staleMs   uint32
)

var rootCmd = &cobra.Command{
	Use:   "ppm-linux",
	Short: "Decode a PPM receiver on a Linux GPIO line",
	Long: `ppm-linux requests rising-edge events on one gpiochip line, decodes the
PPM frames and writes one telemetry line per snapshot to stdout.

Status changes are reported on stderr. Stop with Ctrl+C.`,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&chipName, "chip", "gpiochip0", "GPIO chip device")
	f.IntVar(&lineNum, "line", 17, "Line offset carrying the PPM signal")
	f.IntVar(&channels, "channels", 8, "Channels per frame")
	f.StringVar(&order, "order", "", "Transmitter channel order, e.g. TAER1234 (default identity)")
	f.Uint32Var(&publishMs, "publish-ms", 50, "Snapshot period in milliseconds")
	f.Uint32Var(&staleMs, "stale-ms", 500, "Signal loss timeout in milliseconds")
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bus.NewBus(16)
	caps := platform.NewLineCaptureFactory(chipName)

	if err := rc.New(caps).Start(ctx, b.NewConnection("rc")); err != nil {
		return err
	}
	if err := telemetry.NewReporter(os.Stdout).Start(ctx, b.NewConnection("telemetry")); err != nil {
		return err
	}

	ui := b.NewConnection("ui")
	stSub := ui.Subscribe(rc.TopicStatus())
	ui.Publish(ui.NewMessage(bus.T("config", "telemetry"), map[string]any{"interval_ms": publishMs}, true))
	ui.Publish(ui.NewMessage(bus.T("config", "rc"), types.RCConfig{
		Pin:       lineNum,
		Channels:  channels,
		Order:     order,
		PublishMs: publishMs,
		StaleMs:   staleMs,
	}, true))

	fmt.Fprintf(os.Stderr, "Listening for PPM on %s:%d (%d channels)\n", chipName, lineNum, channels)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "Exiting...")
			return nil
		case m := <-stSub.Channel():
			st, ok := m.Payload.(types.CapabilityStatus)
			if !ok {
				continue
			}
			if st.Error != "" {
				fmt.Fprintf(os.Stderr, "link %s: %s\n", st.Link, st.Error)
			} else {
				fmt.Fprintf(os.Stderr, "link %s\n", st.Link)
			}
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
