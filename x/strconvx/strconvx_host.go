//go:build !rp2040 && !rp2350

package strconvx

import "strconv"

// Signature parity with strconv; host builds delegate straight through.

func ParseUint(s string, base, bitSize int) (uint64, error) {
	return strconv.ParseUint(s, base, bitSize)
}
