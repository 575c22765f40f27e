package vdp

import "testing"

func TestControlWriteSequenceLatchesAddressAndCode(t *testing.T) {
	v := New(RegionNTSC)

	v.WriteControl(0x00)
	v.WriteControl(0x41) // high byte 0x01, code 1 (VRAM write)

	if v.Address() != 0x0100 {
		t.Fatalf("Address = 0x%04X, want 0x0100", v.Address())
	}
	if v.code != 1 {
		t.Fatalf("code = %d, want 1", v.code)
	}
}

func TestRegisterWriteViaControlPort(t *testing.T) {
	v := New(RegionNTSC)

	// Pair (0x80, 0x82): programs register 2 with 0x80.
	v.WriteControl(0x80)
	v.WriteControl(0x82)
	if got := v.Register(2); got != 0x80 {
		t.Fatalf("register 2 = 0x%02X, want 0x80", got)
	}

	// Pair (0x00, 0x82): programs register 2 with 0x00.
	v.WriteControl(0x00)
	v.WriteControl(0x82)
	if got := v.Register(2); got != 0x00 {
		t.Fatalf("register 2 = 0x%02X, want 0x00", got)
	}
}

func TestVRAMWriteSequenceWrapsAt0x4000(t *testing.T) {
	v := New(RegionNTSC)

	start := uint16(0x3FFE)
	v.WriteControl(uint8(start))
	v.WriteControl(uint8(start>>8) | 0x40) // code 1, VRAM write

	data := []uint8{0x11, 0x22, 0x33, 0x44}
	for _, b := range data {
		v.WriteData(b)
	}

	for i, want := range data {
		addr := (start + uint16(i)) & 0x3FFF
		if got := v.VRAMByte(addr); got != want {
			t.Fatalf("vram[0x%04X] = 0x%02X, want 0x%02X", addr, got, want)
		}
	}
}

func TestVRAMReadPrefetchesAndRefills(t *testing.T) {
	v := New(RegionNTSC)
	v.WriteControl(0x00)
	v.WriteControl(0x41)
	v.WriteData(0xAB)
	v.WriteData(0xCD)

	v.WriteControl(0x00)
	v.WriteControl(0x01) // code 0, VRAM read: prefetches vram[0x100]

	if got := v.ReadData(); got != 0xAB {
		t.Fatalf("first ReadData = 0x%02X, want 0xAB", got)
	}
	if got := v.ReadData(); got != 0xCD {
		t.Fatalf("second ReadData = 0x%02X, want 0xCD", got)
	}
}

func TestCRAMWriteMasksTo6Bits(t *testing.T) {
	v := New(RegionNTSC)
	v.WriteControl(0x00)
	v.WriteControl(0xC0) // code 3, CRAM write
	v.WriteData(0xFF)

	if got := v.CRAMByte(0); got != 0x3F {
		t.Fatalf("cram[0] = 0x%02X, want 0x3F", got)
	}
}

func TestStatusReadClearsInterruptFlags(t *testing.T) {
	v := New(RegionNTSC)
	v.frameInterrupt = true
	v.lineInterrupt = true
	v.spriteOverflow = true
	v.spriteCollision = true

	status := v.ReadControl()
	if status != 0xFF {
		t.Fatalf("status = 0x%02X, want 0xFF", status)
	}
	if v.frameInterrupt || v.lineInterrupt || v.spriteOverflow || v.spriteCollision {
		t.Fatal("ReadControl should clear all four status-derived flags")
	}

	status = v.ReadControl()
	if status != 0x1F {
		t.Fatalf("status after clear = 0x%02X, want 0x1F", status)
	}
}

func TestVCounterUnchangedAfterFullFrame(t *testing.T) {
	v := New(RegionNTSC)
	before := v.VCounter()
	v.Step(v.cyclesPerLine * v.timing.Scanlines)
	if v.VCounter() != before {
		t.Fatalf("VCounter = %d after a full frame, want unchanged at %d", v.VCounter(), before)
	}
}

func TestLineInterruptFiresOnUnderflow(t *testing.T) {
	v := New(RegionNTSC)
	v.register[10] = 0 // reload value 0: every active line raises line_interrupt
	v.lineCounter = 0   // force underflow on the very next decrement

	v.Step(v.cyclesPerLine)
	if !v.lineInterrupt {
		t.Fatal("expected line_interrupt to be set once the line counter underflows")
	}
	if v.lineCounter != 0 {
		t.Fatalf("lineCounter = %d after reload from register 10=0, want 0", v.lineCounter)
	}
}

func TestFrameInterruptAtActiveHeightBoundary(t *testing.T) {
	v := New(RegionNTSC)
	for i := 0; i < 193; i++ { // runs scanline() for vcounter 0..192 inclusive
		v.Step(v.cyclesPerLine)
	}
	if !v.frameInterrupt {
		t.Fatal("expected frame_interrupt to be set once vcounter reaches the active/vblank boundary")
	}
}

func TestInterruptPendingRespectsEnableBits(t *testing.T) {
	v := New(RegionNTSC)
	v.frameInterrupt = true
	if v.InterruptPending() {
		t.Fatal("frame interrupt should not be pending with frame-IE (register 1 bit 5) clear")
	}
	v.register[1] = 0x20
	if !v.InterruptPending() {
		t.Fatal("frame interrupt should be pending once frame-IE is set")
	}
}

func TestHCounterTableJumpsAtHBlank(t *testing.T) {
	if HCounterForCycle(0) != 0x00 {
		t.Fatalf("HCounterForCycle(0) = 0x%02X, want 0x00", HCounterForCycle(0))
	}
	// The table must jump from the $93 plateau to $E9, never count through
	// $94-$E8 linearly.
	sawPlateau, sawJump := false, false
	for c := 0; c < 228; c++ {
		h := HCounterForCycle(c)
		if h == 0x93 {
			sawPlateau = true
		}
		if sawPlateau && h == 0xE9 {
			sawJump = true
		}
	}
	if !sawPlateau || !sawJump {
		t.Fatal("expected the H-counter table to plateau at 0x93 then jump to 0xE9")
	}
}
