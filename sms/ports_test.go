package sms

import (
	"testing"

	"github.com/dillonb/sms-go/vdp"
)

func TestPortsRoutesVDPDataAndControl(t *testing.T) {
	v := vdp.New(vdp.RegionNTSC)
	p := newPorts(v)

	p.Out(0x81, 0x00) // latch low byte of VRAM address 0
	p.Out(0x81, 0x40) // latch high byte, code=01 (VRAM write)
	p.Out(0x80, 0x42)
	if got := v.VRAMByte(0); got != 0x42 {
		t.Fatalf("VRAMByte(0) = 0x%02X, want 0x42", got)
	}

	p.Out(0x81, 0x00)
	p.Out(0x81, 0x00) // code=00: VRAM read, prefetches byte at address 0
	if got := p.In(0x80); got != 0x42 {
		t.Fatalf("In(0x80) = 0x%02X, want 0x42", got)
	}
}

func TestPortsJoystickReadsDefaultToFF(t *testing.T) {
	v := vdp.New(vdp.RegionNTSC)
	p := newPorts(v)

	if got := p.In(0xDC); got != 0xFF {
		t.Fatalf("In(0xDC) = 0x%02X, want 0xFF", got)
	}
	if got := p.In(0xDD); got != 0xFF {
		t.Fatalf("In(0xDD) = 0x%02X, want 0xFF", got)
	}
}

func TestPortsPSGWritesAreIgnored(t *testing.T) {
	v := vdp.New(vdp.RegionNTSC)
	p := newPorts(v)
	p.Out(0x7F, 0x9F) // must not panic or touch VDP state
	if got := v.Address(); got != 0 {
		t.Fatalf("Address() = 0x%04X after a PSG write, want unchanged 0", got)
	}
}
