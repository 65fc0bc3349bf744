// Package telemetry formats receiver snapshots as single text lines for a
// serial link and parses them back on the host:
//
//	rc f=1234 l=up ch=1500,1500,1000,1500,1000,1000,1000,1000
package telemetry

import (
	"strings"

	"ppmrx-go/drivers/ppm"
	"ppmrx-go/errcode"
	"ppmrx-go/types"
	"ppmrx-go/x/conv"
	"ppmrx-go/x/strconvx"
)

const prefix = "rc "

// Frame is one parsed telemetry line.
type Frame struct {
	Frames   uint32
	Link     types.Link
	Channels []uint16
}

// AppendFrame appends the line for v to dst, newline included.
func AppendFrame(dst []byte, v types.RCValue, link types.Link) []byte {
	if link == "" {
		link = types.LinkDown
	}
	dst = append(dst, prefix...)
	dst = append(dst, "f="...)
	dst = conv.AppendUint(dst, uint64(v.Frames))
	dst = append(dst, " l="...)
	dst = append(dst, link...)
	dst = append(dst, " ch="...)
	for i, c := range v.Channels {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = conv.AppendUint(dst, uint64(c))
	}
	return append(dst, '\n')
}

// ParseFrame parses a line produced by AppendFrame. Surrounding whitespace
// is ignored; unknown fields are skipped.
func ParseFrame(line string) (Frame, error) {
	var f Frame
	line = strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return f, bad("not a frame line")
	}
	var haveF, haveL, haveCh bool
	for _, field := range strings.Fields(rest) {
		key, val, ok := strings.Cut(field, "=")
		if !ok {
			return f, bad("field without value")
		}
		switch key {
		case "f":
			n, err := strconvx.ParseUint(val, 10, 32)
			if err != nil {
				return f, errcode.Wrap(errcode.InvalidPayload, "telemetry.ParseFrame", err)
			}
			f.Frames, haveF = uint32(n), true
		case "l":
			switch types.Link(val) {
			case types.LinkUp, types.LinkDown:
				f.Link, haveL = types.Link(val), true
			default:
				return f, bad("unknown link " + val)
			}
		case "ch":
			ch, err := parseChannels(val)
			if err != nil {
				return f, err
			}
			f.Channels, haveCh = ch, true
		}
	}
	if !haveF || !haveL || !haveCh {
		return f, bad("missing field")
	}
	return f, nil
}

func parseChannels(s string) ([]uint16, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > ppm.MaxChannels {
		return nil, bad("too many channels")
	}
	out := make([]uint16, len(parts))
	for i, p := range parts {
		n, err := strconvx.ParseUint(p, 10, 16)
		if err != nil {
			return nil, errcode.Wrap(errcode.InvalidPayload, "telemetry.ParseFrame", err)
		}
		out[i] = uint16(n)
	}
	return out, nil
}

func bad(msg string) error {
	return &errcode.E{C: errcode.InvalidPayload, Op: "telemetry.ParseFrame", Msg: msg}
}
