package main

import (
	"bufio"
	"fmt"
	"io"

	"ppmrx-go/telemetry"

	"go.bug.st/serial"
)

// OpenSerialConnection opens the board's diagnostic UART.
func OpenSerialConnection(portName string, baudRate int) (io.ReadCloser, error) {
	if portName == "" {
		return nil, fmt.Errorf("no serial port specified (use --port)")
	}
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %v", portName, err)
	}
	return port, nil
}

// readLines splits r into lines. Telemetry lines go to onFrame, everything
// else to onText. It returns when r is exhausted or fails.
func readLines(r io.Reader, onFrame func(telemetry.Frame), onText func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if f, err := telemetry.ParseFrame(line); err == nil {
			onFrame(f)
			continue
		}
		onText(line)
	}
	return sc.Err()
}
