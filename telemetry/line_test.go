package telemetry

import (
	"testing"

	"ppmrx-go/errcode"
	"ppmrx-go/types"
)

func TestAppendFrame(t *testing.T) {
	v := types.RCValue{Channels: []uint16{1500, 1000, 2000, 988}, Frames: 42}
	got := string(AppendFrame(nil, v, types.LinkUp))
	want := "rc f=42 l=up ch=1500,1000,2000,988\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// Reuses dst and defaults an unknown link to down.
	buf := make([]byte, 0, 64)
	buf = AppendFrame(buf, types.RCValue{}, "")
	if string(buf) != "rc f=0 l=down ch=\n" {
		t.Fatalf("got %q", buf)
	}
}

func TestParseFrameRoundTrip(t *testing.T) {
	v := types.RCValue{Channels: []uint16{1100, 1200, 1300, 1400, 1500, 1600, 1700, 1800}, Frames: 4294967295}
	f, err := ParseFrame(string(AppendFrame(nil, v, types.LinkDown)))
	if err != nil {
		t.Fatal(err)
	}
	if f.Frames != v.Frames || f.Link != types.LinkDown || len(f.Channels) != len(v.Channels) {
		t.Fatalf("unexpected frame %+v", f)
	}
	for i := range v.Channels {
		if f.Channels[i] != v.Channels[i] {
			t.Fatalf("channel %d = %d, want %d", i, f.Channels[i], v.Channels[i])
		}
	}
}

func TestParseFrameTolerance(t *testing.T) {
	f, err := ParseFrame("  rc f=7 rssi=90 l=up ch=1500\r\n")
	if err != nil {
		t.Fatal(err)
	}
	if f.Frames != 7 || f.Link != types.LinkUp || len(f.Channels) != 1 {
		t.Fatalf("unexpected frame %+v", f)
	}
}

func TestParseFrameRejects(t *testing.T) {
	for _, line := range []string{
		"",
		"[rc] signal lost",
		"rc f=1 l=up",
		"rc f=x l=up ch=1500",
		"rc f=1 l=sideways ch=1500",
		"rc f=1 l=up ch=1500,70000",
		"rc f=1 l=up ch=1500,,1500",
		"rc f=1 l=up ch=1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17",
		"rc f l=up ch=1500",
	} {
		if _, err := ParseFrame(line); errcode.Of(err) != errcode.InvalidPayload {
			t.Fatalf("ParseFrame(%q) = %v, want invalid_payload", line, err)
		}
	}
}
