package timex

import "time"

// NowNs returns Unix nanoseconds as int64.
func NowNs() int64 { return time.Now().UnixNano() }

// Millis converts a millisecond setting to a duration, using def when ms is zero.
func Millis(ms uint32, def time.Duration) time.Duration {
	if ms == 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
