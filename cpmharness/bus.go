// Package cpmharness runs CP/M .com programs (zexdoc, zexall, prelim)
// against the z80 package's CPU core, standing in for the handful of
// BDOS calls those test programs make. It is used both as a library and
// from cmd/zextest.
package cpmharness

import (
	"io"

	"github.com/dillonb/sms-go/z80"
)

// loadAddr is the fixed CP/M .com load address.
const loadAddr = 0x0100

// bdosStub is a 0-byte-modifying warm-boot/BDOS shim installed at two
// fixed locations every CP/M program expects:
//   - 0x0000: OUT (0),A -- a program returns here to terminate.
//   - 0x0005: IN A,(0) ; RET -- the BDOS entry point; CALL 5 with a
//     function number in C and an argument in DE/E is the standard
//     CP/M calling convention these test programs use.
var (
	warmBootStub = [2]uint8{0xD3, 0x00} // OUT (0),A
	bdosStub     = [3]uint8{0xDB, 0x00, 0xC9} // IN A,(0) ; RET
)

// bus is a flat 64KiB RAM Z80 bus with the BDOS/warm-boot port traps
// spec.md §6 describes. It implements z80.Bus.
type bus struct {
	mem  [0x10000]uint8
	cpu  *z80.CPU
	out  io.Writer
	done bool
}

func newBus(out io.Writer) *bus {
	b := &bus{out: out}
	copy(b.mem[0x0000:], warmBootStub[:])
	copy(b.mem[0x0005:], bdosStub[:])
	return b
}

// attach lets the bus read CPU registers when servicing a BDOS trap; set
// once, right after the CPU is constructed over this bus.
func (b *bus) attach(c *z80.CPU) { b.cpu = c }

func (b *bus) ReadByte(addr uint16) uint8     { return b.mem[addr] }
func (b *bus) WriteByte(addr uint16, v uint8) { b.mem[addr] = v }

// PortIn services the BDOS trap: a CALL 5 bottoms out in "IN A,(0)",
// landing here with the CPU's C register holding the function number.
func (b *bus) PortIn(port uint8) uint8 {
	if port != 0 {
		return 0xFF
	}
	switch b.cpu.BC.Lo {
	case 2: // print char in E
		io.WriteString(b.out, string(rune(b.cpu.DE.Lo)))
	case 9: // print $-terminated string at DE
		addr := b.cpu.DE.All()
		for {
			ch := b.mem[addr]
			if ch == '$' {
				break
			}
			io.WriteString(b.out, string(rune(ch)))
			addr++
		}
	}
	return 0
}

// PortOut services the warm-boot trap: jumping to 0x0000 runs
// "OUT (0),A", which this harness takes as program termination.
func (b *bus) PortOut(port uint8, v uint8) {
	if port == 0 {
		b.done = true
	}
}
