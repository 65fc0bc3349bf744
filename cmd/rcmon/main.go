// rcmon - RC Receiver Telemetry Monitor
//
// Reads the telemetry lines a ppmrx board prints on its diagnostic UART and
// shows them as a log or as live channel bars.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
