package main

import (
	"fmt"
	"strings"
	"time"

	"ppmrx-go/telemetry"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Print every telemetry frame with a timestamp",
	RunE:  runLog,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serial.GetPortsList()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Println("No serial ports found")
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(portsCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	conn, err := OpenSerialConnection(portName, baudRate)
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("rcmon - Frame Log\n")
	fmt.Printf("Port: %s @ %d baud\n", portName, baudRate)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	return readLines(conn,
		func(f telemetry.Frame) { fmt.Println(formatFrame(time.Now(), f)) },
		func(s string) { fmt.Println(s) },
	)
}

func formatFrame(ts time.Time, f telemetry.Frame) string {
	var s strings.Builder
	fmt.Fprintf(&s, "[%s] #%d %-4s", ts.Format("15:04:05.000"), f.Frames, f.Link)
	for _, v := range f.Channels {
		fmt.Fprintf(&s, " %4d", v)
	}
	return s.String()
}
