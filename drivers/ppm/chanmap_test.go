package ppm

import (
	"testing"

	"ppmrx-go/errcode"
)

func TestIdentityMap(t *testing.T) {
	m := IdentityMap(8)
	if m.Len() != 8 {
		t.Fatalf("len = %d", m.Len())
	}
	for i := 0; i < 8; i++ {
		if p, ok := m.Physical(i); !ok || p != i {
			t.Fatalf("Physical(%d) = %d,%v", i, p, ok)
		}
	}
	if _, ok := m.Physical(8); ok {
		t.Fatal("logical 8 should be unmapped")
	}
	if IdentityMap(40).Len() != MaxChannels {
		t.Fatal("identity map should clamp to MaxChannels")
	}
}

func TestNewChannelMap(t *testing.T) {
	m, err := NewChannelMap([]int{2, 0, 1}, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{2, 0, 1, 3, 4} // tail maps to itself
	for l, w := range want {
		if p, ok := m.Physical(l); !ok || p != w {
			t.Fatalf("Physical(%d) = %d,%v want %d", l, p, ok, w)
		}
	}

	bad := []struct {
		order []int
		n     int
		code  errcode.Code
	}{
		{nil, 0, errcode.InvalidParams},
		{nil, MaxChannels + 1, errcode.InvalidParams},
		{[]int{0, 1, 2}, 2, errcode.InvalidMap},
		{[]int{-1}, 4, errcode.InvalidMap},
		{[]int{0, 4}, 4, errcode.InvalidMap},
	}
	for _, tc := range bad {
		if _, err := NewChannelMap(tc.order, tc.n); errcode.Of(err) != tc.code {
			t.Fatalf("NewChannelMap(%v,%d): got %v want %s", tc.order, tc.n, err, tc.code)
		}
	}
}

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder(OrderETAR)
	if err != nil {
		t.Fatal(err)
	}
	// E T A R -> pitch on slot 0, throttle 1, roll 2, yaw 3.
	if order[Pitch] != 0 || order[Throttle] != 1 || order[Roll] != 2 || order[Yaw] != 3 {
		t.Fatalf("unexpected order %v", order)
	}
	if order[Mode] != 4 || order[Aux4] != 8 {
		t.Fatalf("switch channels misplaced: %v", order)
	}

	for _, s := range []string{"", "AETX", "AATR", "AETR9", "AETR12345678901234"} {
		if _, err := ParseOrder(s); errcode.Of(err) != errcode.InvalidMap {
			t.Fatalf("ParseOrder(%q) = %v, want invalid_map", s, err)
		}
	}
}

func TestOrderForTrims(t *testing.T) {
	order, err := OrderFor(OrderAETR, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != 6 || order[Aux1] != 5 {
		t.Fatalf("unexpected order %v", order)
	}
	if _, err := NewChannelMap(order, 6); err != nil {
		t.Fatalf("trimmed order should build a map: %v", err)
	}
}
