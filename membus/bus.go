// Package membus implements the SMS 16-bit memory map and 8-bit port
// space: BIOS/RAM/cartridge dispatch, the memory-enable control register,
// and the pluggable cartridge mapper.
package membus

// Memory-enable control bits (port 0x3E). A set bit disables that source,
// matching real SMS hardware.
const (
	ctrlIODisable   uint8 = 1 << 2
	ctrlBIOSDisable uint8 = 1 << 3
	ctrlRAMDisable  uint8 = 1 << 4
	ctrlCardDisable uint8 = 1 << 5
	ctrlCartDisable uint8 = 1 << 6
	ctrlExtDisable  uint8 = 1 << 7
)

// PortHandler lets the bus dispatch port I/O to the VDP/PSG/controller
// port router without importing it directly.
type PortHandler interface {
	In(port uint8) uint8
	Out(port uint8, v uint8)
}

// Bus is the SMS memory and port bus: BIOS overlay, 8KiB work RAM
// (mirrored at 0xE000-0xFFFF), the cartridge mapper, and memory-enable
// control. It implements the z80.Bus interface.
type Bus struct {
	bios []uint8
	rom  []uint8
	ram  [0x2000]uint8
	ctrl uint8 // port 0x3E memory-enable control

	mapper Mapper
	ports  PortHandler
}

// NewBus constructs a bus over the given cartridge ROM image, detecting
// the mapper to use by the conventions DetectCodemasters applies. bios may
// be nil; a missing BIOS simply contributes 0xFF to every read (spec.md §7
// class 3: recoverable, reported by the caller, not by Bus itself).
func NewBus(rom []uint8, bios []uint8, ports PortHandler) *Bus {
	b := &Bus{
		rom:    rom,
		bios:   bios,
		ports:  ports,
		mapper: NewSegaMapper(),
	}
	if DetectCodemasters(rom) {
		b.mapper = NewCodemastersMapper()
	}
	return b
}

// SetMapper overrides the auto-detected mapper; used by tests and by
// hosts with their own ROM database.
func (b *Bus) SetMapper(m Mapper) { b.mapper = m }

// ReadByte implements the bus contract of spec.md §4.2: below 0xC000 the
// BIOS and cartridge contributions are combined with a bitwise AND, each
// defaulting to 0xFF when its source is disabled or absent.
func (b *Bus) ReadByte(addr uint16) uint8 {
	if addr < 0xC000 {
		biosByte := uint8(0xFF)
		if b.ctrl&ctrlBIOSDisable == 0 && b.bios != nil {
			biosByte = b.bios[addr&0x1FFF]
		}
		cartByte := uint8(0xFF)
		if b.ctrl&ctrlCartDisable == 0 {
			cartByte = b.mapper.ReadROM(b.rom, addr)
		}
		return biosByte & cartByte
	}
	if b.ctrl&ctrlRAMDisable != 0 {
		return 0xFF
	}
	return b.ram[addr&0x1FFF]
}

// WriteByte implements the bus contract of spec.md §4.2: writes below
// 0xC000 are routed to the mapper (a no-op write for Sega-mapper carts,
// a bank select for Codemasters carts) and never touch cart memory;
// 0xC000-0xDFFF and the 0xE000-0xFFFF mirror write RAM, and addresses
// from 0xFFFC up additionally program the Sega mapper.
func (b *Bus) WriteByte(addr uint16, v uint8) {
	if addr < 0xC000 {
		b.mapper.WriteROM(addr, v)
		return
	}
	b.ram[addr&0x1FFF] = v
	if addr >= 0xFFFC {
		b.mapper.WriteCtrl(addr, v)
	}
}

// PortIn dispatches an 8-bit port read: every port is delegated to the
// PortHandler (0xFF when there is none). The memory-enable control port
// is write-only and is handled in PortOut.
func (b *Bus) PortIn(port uint8) uint8 {
	if b.ports != nil {
		return b.ports.In(port)
	}
	return 0xFF
}

// PortOut dispatches an 8-bit port write. Writes to 0x3E reprogram the
// memory-enable mask directly; everything else is delegated.
func (b *Bus) PortOut(port uint8, v uint8) {
	if port == 0x3E {
		b.ctrl = v
		return
	}
	if b.ports != nil {
		b.ports.Out(port, v)
	}
}

// RAM exposes the 8KiB work RAM for save states and test inspection.
func (b *Bus) RAM() *[0x2000]uint8 { return &b.ram }

// Mapper exposes the active cartridge mapper for save states and tests.
func (b *Bus) Mapper() Mapper { return b.mapper }

// ControlRegister returns the current memory-enable control byte.
func (b *Bus) ControlRegister() uint8 { return b.ctrl }
