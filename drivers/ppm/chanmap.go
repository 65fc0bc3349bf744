package ppm

import "ppmrx-go/errcode"

// Logical channels as consumed by control code.
const (
	Roll = iota
	Pitch
	Yaw
	Throttle
	Mode
	Aux1
	Aux2
	Aux3
	Aux4
	Aux5
)

// Common transmitter orders, read left to right as physical slots 0..n-1.
// A=aileron(roll) E=elevator(pitch) T=throttle R=rudder(yaw); digit k is the
// k-th switch channel (1 = Mode, 2 = Aux1, ...).
const (
	OrderAETR = "AETR12345"
	OrderTAER = "TAER12345"
	OrderRETA = "RETA12345"
	OrderETAR = "ETAR12345" // Futaba/Hitec
)

// ChannelMap is a fixed lookup from logical channel to physical slot.
type ChannelMap struct {
	phys [MaxChannels]uint8
	n    uint8
}

// NewChannelMap builds a map for n logical channels. order[logical] is the
// physical slot; logical channels past len(order) map to themselves. Every
// physical slot must be in [0,n).
func NewChannelMap(order []int, n int) (ChannelMap, error) {
	var m ChannelMap
	if n < 1 || n > MaxChannels {
		return m, errcode.InvalidParams
	}
	if len(order) > n {
		return m, &errcode.E{C: errcode.InvalidMap, Op: "ppm.NewChannelMap", Msg: "more entries than channels"}
	}
	for i := 0; i < n; i++ {
		p := i
		if i < len(order) {
			p = order[i]
		}
		if p < 0 || p >= n {
			return ChannelMap{}, &errcode.E{C: errcode.InvalidMap, Op: "ppm.NewChannelMap", Msg: "slot out of range"}
		}
		m.phys[i] = uint8(p)
	}
	m.n = uint8(n)
	return m, nil
}

// IdentityMap maps logical i to slot i for n channels (clamped to MaxChannels).
func IdentityMap(n int) ChannelMap {
	if n > MaxChannels {
		n = MaxChannels
	}
	var m ChannelMap
	for i := 0; i < n; i++ {
		m.phys[i] = uint8(i)
	}
	if n > 0 {
		m.n = uint8(n)
	}
	return m
}

// Physical returns the slot for a logical channel.
func (m ChannelMap) Physical(logical int) (int, bool) {
	if logical < 0 || logical >= int(m.n) {
		return 0, false
	}
	return int(m.phys[logical]), true
}

// Len is the number of logical channels.
func (m ChannelMap) Len() int { return int(m.n) }

// ParseOrder turns a transmitter order string such as "TAER1234" into the
// logical->physical slice accepted by NewChannelMap.
func ParseOrder(s string) ([]int, error) {
	if len(s) == 0 || len(s) > MaxChannels {
		return nil, &errcode.E{C: errcode.InvalidMap, Op: "ppm.ParseOrder", Msg: "bad length"}
	}
	var seen [MaxChannels]bool
	order := make([]int, len(s))
	for slot := 0; slot < len(s); slot++ {
		logical, ok := letterToLogical(s[slot])
		if !ok || logical >= len(s) || seen[logical] {
			return nil, &errcode.E{C: errcode.InvalidMap, Op: "ppm.ParseOrder", Msg: "bad symbol " + s[slot:slot+1]}
		}
		seen[logical] = true
		order[logical] = slot
	}
	return order, nil
}

func letterToLogical(c byte) (int, bool) {
	switch c {
	case 'A', 'a':
		return Roll, true
	case 'E', 'e':
		return Pitch, true
	case 'R', 'r':
		return Yaw, true
	case 'T', 't':
		return Throttle, true
	}
	if c >= '1' && c <= '9' {
		return Mode + int(c-'1'), true
	}
	return 0, false
}

// OrderFor parses s trimmed to the first n slots, so a long order string can be
// used with a receiver that sends fewer channels.
func OrderFor(s string, n int) ([]int, error) {
	if n > 0 && len(s) > n {
		s = s[:n]
	}
	return ParseOrder(s)
}
