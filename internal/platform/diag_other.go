// internal/platform/diag_other.go
//go:build !rp2040

package platform

import (
	"io"
	"os"
)

// DiagOutput returns stdout (USB CDC on MCUs without a dedicated diag UART).
func DiagOutput() io.Writer { return os.Stdout }
