package membus

import "testing"

type stubPorts struct {
	inVal  uint8
	outLog []uint8
}

func (s *stubPorts) In(port uint8) uint8 { return s.inVal }
func (s *stubPorts) Out(port uint8, v uint8) {
	s.outLog = append(s.outLog, v)
}

func makeROM(size int, fill func(i int) uint8) []uint8 {
	rom := make([]uint8, size)
	for i := range rom {
		rom[i] = fill(i)
	}
	return rom
}

func TestReadSlot0DefaultsToBankZero(t *testing.T) {
	rom := makeROM(0x10000, func(i int) uint8 { return uint8(i / 0x4000) })
	bus := NewBus(rom, nil, &stubPorts{})
	if got := bus.ReadByte(0x0000); got != 0 {
		t.Fatalf("expected bank 0 byte, got %d", got)
	}
}

func TestSegaMapperBankSwitch(t *testing.T) {
	rom := makeROM(0x10000, func(i int) uint8 { return uint8(i / 0x4000) })
	bus := NewBus(rom, nil, &stubPorts{})

	// Slot 1 ($4000-$7FFF) defaults to bank 1.
	if got := bus.ReadByte(0x4000); got != 1 {
		t.Fatalf("slot1 default bank: got %d", got)
	}

	// Select bank 3 for slot 1 via $FFFE.
	bus.WriteByte(0xFFFE, 3)
	if got := bus.ReadByte(0x4000); got != 3 {
		t.Fatalf("slot1 after bank switch: got %d", got)
	}
}

func TestWritesBelow0xC000Ignored(t *testing.T) {
	rom := makeROM(0x8000, func(i int) uint8 { return 0xAA })
	bus := NewBus(rom, nil, &stubPorts{})
	bus.WriteByte(0x1000, 0x55)
	if got := bus.ReadByte(0x1000); got != 0xAA {
		t.Fatalf("ROM write should be ignored, got 0x%02X", got)
	}
}

func TestRAMMirror(t *testing.T) {
	rom := makeROM(0x8000, func(i int) uint8 { return 0 })
	bus := NewBus(rom, nil, &stubPorts{})
	bus.WriteByte(0xC123, 0x42)
	if got := bus.ReadByte(0xE123); got != 0x42 {
		t.Fatalf("RAM mirror mismatch: got 0x%02X", got)
	}
}

func TestDisabledBIOSReadsFF(t *testing.T) {
	rom := makeROM(0x8000, func(i int) uint8 { return 0x00 })
	bios := makeROM(0x2000, func(i int) uint8 { return 0x11 })
	bus := NewBus(rom, bios, &stubPorts{})

	// cart is also disabled in this test so only BIOS-vs-disabled is checked
	bus.PortOut(0x3E, ctrlCartDisable)
	if got := bus.ReadByte(0x0000); got != 0x11 {
		t.Fatalf("expected BIOS byte, got 0x%02X", got)
	}

	bus.PortOut(0x3E, ctrlCartDisable|ctrlBIOSDisable)
	if got := bus.ReadByte(0x0000); got != 0xFF {
		t.Fatalf("expected 0xFF with both disabled, got 0x%02X", got)
	}
}

func TestMapperControlBytesProgramBankOffsets(t *testing.T) {
	rom := makeROM(0x10000, func(i int) uint8 { return 0 })
	bus := NewBus(rom, nil, &stubPorts{})
	bus.WriteByte(0xFFFD, 2)
	bus.WriteByte(0xFFFE, 5)
	bus.WriteByte(0xFFFF, 1)

	sm := bus.Mapper().(*SegaMapper)
	offs := sm.BankOffsets()
	if offs[0] != 2*0x4000 || offs[1] != 5*0x4000 || offs[2] != 1*0x4000 {
		t.Fatalf("unexpected bank offsets: %v", offs)
	}
}

func TestPortOut3EDoesNotReachPortHandler(t *testing.T) {
	rom := makeROM(0x8000, func(i int) uint8 { return 0 })
	ports := &stubPorts{}
	bus := NewBus(rom, nil, ports)
	bus.PortOut(0x3E, 0x12)
	if len(ports.outLog) != 0 {
		t.Fatalf("port 0x3E should be intercepted by the bus, not forwarded")
	}
}

func TestCodemastersDetection(t *testing.T) {
	rom := makeROM(0x8000, func(i int) uint8 { return 0 })
	// checksum 0x1234, complement so sum == 0xFFFF
	rom[0x7FE6] = 0x34
	rom[0x7FE7] = 0x12
	complement := uint16(0xFFFF) - 0x1234
	rom[0x7FE8] = uint8(complement)
	rom[0x7FE9] = uint8(complement >> 8)

	if !DetectCodemasters(rom) {
		t.Fatal("expected Codemasters detection to succeed")
	}

	bus := NewBus(rom, nil, &stubPorts{})
	if _, ok := bus.Mapper().(*CodemastersMapper); !ok {
		t.Fatalf("expected CodemastersMapper, got %T", bus.Mapper())
	}
}
