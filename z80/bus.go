// Package z80 implements a cycle-counted Zilog Z80 interpreter: the full
// unprefixed, CB, ED, DD, FD, DDCB and FDCB opcode tables, the documented
// and undocumented flag effects, block instructions, interrupts (IM 0 is
// unsupported, IM 1 and IM 2 plus NMI are), and the two index registers
// with displacement addressing.
package z80

// Bus is the host-provided memory and port interface. The CPU never
// touches memory or ports except through these four calls.
type Bus interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, v uint8)
	PortIn(port uint8) uint8
	PortOut(port uint8, v uint8)
}
