package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

// Pico: PPM on GP16, 8 channels, TAER transmitter order.
const cfgPico = `{
  "rc": {
      "pin": 16,
      "channels": 8,
      "order": "TAER1234",
      "publish_ms": 50,
      "stale_ms": 500
  },
  "telemetry": {
      "interval_ms": 100
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
}
