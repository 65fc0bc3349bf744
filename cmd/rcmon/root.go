package main

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int
)

var rootCmd = &cobra.Command{
	Use:   "rcmon",
	Short: "RC receiver telemetry monitor",
	Long: `rcmon - A CLI tool for watching the telemetry stream of a PPM receiver board.

The board prints one line per snapshot on its diagnostic UART:

  rc f=<frames> l=<up|down> ch=<v0>,<v1>,...

Any other line (boot messages, status changes) is passed through as text.

Connection:
  --port /dev/ttyACM0 [--baud 115200]`,
	Version:      "0.3.0",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate")
}
