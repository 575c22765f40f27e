package z80reg

import "testing"

func TestFlagsRoundTrip(t *testing.T) {
	for b := 0; b <= 0xFF; b++ {
		var f Flags
		f.Unpack(uint8(b))
		if got := f.Pack(); got != uint8(b) {
			t.Fatalf("round trip for 0x%02X: got 0x%02X", b, got)
		}
	}
}

func TestPairHalvesIndependent(t *testing.T) {
	var p Pair
	p.SetAll(0x1234)
	p.Lo = 0x99
	if p.All() != 0x1299 {
		t.Fatalf("writing Lo changed Hi: got 0x%04X", p.All())
	}
	p.Hi = 0x00
	if p.Lo != 0x99 {
		t.Fatalf("writing Hi changed Lo: got 0x%02X", p.Lo)
	}
}

func TestPairIncDecWrap(t *testing.T) {
	var p Pair
	p.SetAll(0xFFFF)
	p.Inc()
	if p.All() != 0x0000 {
		t.Fatalf("Inc did not wrap: got 0x%04X", p.All())
	}
	p.Dec()
	if p.All() != 0xFFFF {
		t.Fatalf("Dec did not wrap: got 0x%04X", p.All())
	}
}

func TestParity(t *testing.T) {
	cases := []struct {
		v    uint8
		even bool
	}{
		{0x00, true},
		{0x01, false},
		{0x03, true},
		{0xFF, true},
		{0x0F, true},
		{0x07, false},
	}
	for _, c := range cases {
		if got := Parity(c.v); got != c.even {
			t.Errorf("Parity(0x%02X) = %v, want %v", c.v, got, c.even)
		}
	}
}
