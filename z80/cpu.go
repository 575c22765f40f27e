package z80

import "github.com/dillonb/sms-go/z80reg"

// CPU is the Z80 register file, flags and step loop. One CPU instance
// drives one Bus; nothing here is global.
type CPU struct {
	A uint8
	F z80reg.Flags

	BC z80reg.Pair
	DE z80reg.Pair
	HL z80reg.Pair
	IX z80reg.Pair
	IY z80reg.Pair

	SP uint16
	PC uint16

	I uint8
	R uint8

	IM int // interrupt mode: 0, 1 or 2

	// Shadow register set, swapped wholesale by EX AF,AF' / EXX.
	A2 uint8
	F2 z80reg.Flags
	BC2 z80reg.Pair
	DE2 z80reg.Pair
	HL2 z80reg.Pair

	interruptsEnabled     bool // IFF1
	iff2                  bool // IFF2, preserved across NMI for RETN
	nextInterruptsEnabled bool // EI's one-instruction-delayed enable

	halted          bool
	interruptPending bool // raised by RaiseInterrupt, serviced and cleared by Step
	nmiPending      bool

	bus Bus

	prevImmediate uint8 // DDCB/FDCB: displacement fetched before the sub-opcode byte

	// Fatal/unsupported condition surfaced to the host instead of a panic
	// mid-instruction. Set by unsupported opcodes/interrupt modes; the host
	// is expected to check this after Step returns (spec.md §7 class 1).
	Fault error
}

// NewCPU constructs a CPU wired to bus and puts it in the reset state.
func NewCPU(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

// Reset puts the CPU into its post-power-on state: A=F=0xFF, SP=0xFFFF,
// PC=0, interrupts disabled, IM 0, R and shadow registers cleared.
func (c *CPU) Reset() {
	c.A = 0xFF
	c.F.Unpack(0xFF)
	c.BC = z80reg.Pair{}
	c.DE = z80reg.Pair{}
	c.HL = z80reg.Pair{}
	c.IX = z80reg.Pair{}
	c.IY = z80reg.Pair{}
	c.SP = 0xFFFF
	c.PC = 0
	c.I = 0
	c.R = 0
	c.IM = 0
	c.A2 = 0
	c.F2 = z80reg.Flags{}
	c.BC2 = z80reg.Pair{}
	c.DE2 = z80reg.Pair{}
	c.HL2 = z80reg.Pair{}
	c.interruptsEnabled = false
	c.iff2 = false
	c.nextInterruptsEnabled = false
	c.halted = false
	c.interruptPending = false
	c.nmiPending = false
	c.Fault = nil
}

// SetPC forces the program counter, used by hosts to start execution at a
// fixed entry point (e.g. a CP/M .com file's 0x0100).
func (c *CPU) SetPC(addr uint16) { c.PC = addr }

// PC16 returns the current program counter.
func (c *CPU) PC16() uint16 { return c.PC }

// IFF1 reports whether maskable interrupts are currently enabled.
func (c *CPU) IFF1() bool { return c.interruptsEnabled }

// Halted reports whether the CPU is in the HALT state.
func (c *CPU) Halted() bool { return c.halted }

// RaiseInterrupt signals a pending maskable interrupt (the SMS VDP's
// level-triggered /INT line). The CPU clears it once serviced.
func (c *CPU) RaiseInterrupt() { c.interruptPending = true }

// ClearInterrupt cancels a pending-but-not-yet-serviced maskable
// interrupt, modeling the level-triggered VDP line going low again
// before the CPU reached an interrupt-acceptance point.
func (c *CPU) ClearInterrupt() { c.interruptPending = false }

// RaiseNMI signals a pending non-maskable interrupt (the SMS Pause
// button). NMI is edge-triggered and serviced unconditionally on the
// next Step.
func (c *CPU) RaiseNMI() { c.nmiPending = true }

func (c *CPU) fetch() uint8 {
	v := c.bus.ReadByte(c.PC)
	c.PC++
	c.bumpR()
	return v
}

// fetchOperand reads the next byte without bumping R or counting it as
// an opcode fetch (used for immediates/displacements already accounted
// for by the instruction's own cycle count).
func (c *CPU) fetchOperand() uint8 {
	v := c.bus.ReadByte(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetchSigned() int8 {
	return int8(c.fetchOperand())
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchOperand()
	hi := c.fetchOperand()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) bumpR() {
	c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := c.bus.ReadByte(addr)
	hi := c.bus.ReadByte(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) writeWord(addr uint16, v uint16) {
	c.bus.WriteByte(addr, uint8(v))
	c.bus.WriteByte(addr+1, uint8(v>>8))
}

func (c *CPU) push(v uint16) {
	c.SP--
	c.bus.WriteByte(c.SP, uint8(v>>8))
	c.SP--
	c.bus.WriteByte(c.SP, uint8(v))
}

func (c *CPU) pop() uint16 {
	lo := c.bus.ReadByte(c.SP)
	c.SP++
	hi := c.bus.ReadByte(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}
