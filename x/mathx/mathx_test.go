package mathx

import "testing"

func TestClamp(t *testing.T) {
	if Clamp(5, 1, 3) != 3 || Clamp(-1, 1, 3) != 1 || Clamp(2, 1, 3) != 2 {
		t.Fatal("int clamp")
	}
	if Clamp(uint16(900), 1000, 2000) != 1000 {
		t.Fatal("uint16 clamp")
	}
	if Clamp(5, 3, 1) != 3 {
		t.Fatal("swapped bounds")
	}
}

func TestMapU16(t *testing.T) {
	cases := []struct {
		x, inMin, inMax, outMin, outMax, want uint16
	}{
		{1500, 1000, 2000, 0, 2000, 1000},
		{1000, 1000, 2000, 0, 2000, 0},
		{2500, 1000, 2000, 0, 2000, 2000},
		{500, 1000, 2000, 0, 2000, 0},
		{1250, 1000, 2000, 100, 0, 75},
		{7, 5, 5, 42, 99, 42},
	}
	for _, tc := range cases {
		if got := MapU16(tc.x, tc.inMin, tc.inMax, tc.outMin, tc.outMax); got != tc.want {
			t.Fatalf("MapU16(%d,%d,%d,%d,%d)=%d want %d", tc.x, tc.inMin, tc.inMax, tc.outMin, tc.outMax, got, tc.want)
		}
	}
}
