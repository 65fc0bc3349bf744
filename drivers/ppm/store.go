package ppm

import "sync/atomic"

// Store holds the last good pulse width per physical slot.
// The decoder is its only writer; readers may run concurrently.
type Store struct {
	slots [MaxChannels]atomic.Uint32
}

// Set stores v in slot. Out-of-range slots are ignored.
func (s *Store) Set(slot int, v uint16) {
	if uint(slot) >= MaxChannels {
		return
	}
	s.slots[slot].Store(uint32(v))
}

// Get returns the value of slot, or 0 for an out-of-range slot.
func (s *Store) Get(slot int) uint16 {
	if uint(slot) >= MaxChannels {
		return 0
	}
	return uint16(s.slots[slot].Load())
}

// Reset sets every slot to v. Only call before a handler is attached.
func (s *Store) Reset(v uint16) {
	for i := range s.slots {
		s.slots[i].Store(uint32(v))
	}
}
