// internal/platform/diag_rp2040.go
//go:build rp2040

package platform

import (
	"io"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// Diagnostic UART: uart0 on GP0 (TX) / GP1 (RX).
const (
	diagBaud = 115200
	diagTX   = 0
	diagRX   = 1
)

// DiagOutput configures uart0 and returns it as the diagnostic/telemetry sink.
func DiagOutput() io.Writer {
	hw := uartx.UART0
	// Defaults inside uartx apply if a field is zero.
	_ = hw.Configure(uartx.UARTConfig{
		BaudRate: diagBaud,
		TX:       machine.Pin(diagTX),
		RX:       machine.Pin(diagRX),
	})
	return hw
}
