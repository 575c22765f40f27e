// Package z80reg provides the register and flag primitives shared by the
// Z80 core: 16-bit register pairs exposing their high/low halves, and the
// flag byte decomposed into its eight documented bits.
package z80reg

// Pair is a 16-bit register pair (BC, DE, HL, IX, IY and their shadows) that
// exposes its high and low halves independently. Writing a half leaves
// the other half, and therefore the pair's 16-bit identity, untouched.
type Pair struct {
	Hi uint8
	Lo uint8
}

// All returns the pair as a single 16-bit value, Hi:Lo.
func (p Pair) All() uint16 {
	return uint16(p.Hi)<<8 | uint16(p.Lo)
}

// SetAll overwrites both halves from a 16-bit value.
func (p *Pair) SetAll(v uint16) {
	p.Hi = uint8(v >> 8)
	p.Lo = uint8(v)
}

// Inc increments the pair as a 16-bit value, wrapping modulo 2^16.
func (p *Pair) Inc() {
	p.SetAll(p.All() + 1)
}

// Dec decrements the pair as a 16-bit value, wrapping modulo 2^16.
func (p *Pair) Dec() {
	p.SetAll(p.All() - 1)
}
