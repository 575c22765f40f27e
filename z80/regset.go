package z80

// regSet lets the generic 8/16-bit opcode handlers for the "H", "L" and
// "(HL)"-shaped operand slots be shared between the base table and the
// DD/FD-prefixed tables: a regSet binds those slots to HL, IX or IY via
// the three constructors below. Most handler code never checks which one
// is active; execCB branches on indexed for the DDCB/FDCB form.
type regSet struct {
	hi, lo  *uint8
	wide    *pairRef
	indexed bool
}

// pairRef abstracts reading/writing a 16-bit register pair so regSet can
// bind to HL, IX or IY without exposing z80reg.Pair's internals everywhere.
type pairRef struct {
	get func() uint16
	set func(uint16)
}

func hlRegSet(c *CPU) regSet {
	return regSet{
		hi: &c.HL.Hi, lo: &c.HL.Lo,
		wide:    &pairRef{get: c.HL.All, set: c.HL.SetAll},
		indexed: false,
	}
}

func ixRegSet(c *CPU) regSet {
	return regSet{
		hi: &c.IX.Hi, lo: &c.IX.Lo,
		wide:    &pairRef{get: c.IX.All, set: c.IX.SetAll},
		indexed: true,
	}
}

func iyRegSet(c *CPU) regSet {
	return regSet{
		hi: &c.IY.Hi, lo: &c.IY.Lo,
		wide:    &pairRef{get: c.IY.All, set: c.IY.SetAll},
		indexed: true,
	}
}

// addr resolves the effective address for the "(HL)"-shaped operand slot.
// For the base (HL) regSet it's simply HL; for IX/IY it fetches the signed
// displacement byte that follows the opcode (spec.md §4.5's indexed
// addressing) and also records it in prevImmediate. The DDCB/FDCB path
// does not call addr: dispatchIndexed fetches that displacement itself
// and resolves it with addrPrefetched.
func (r regSet) addr(c *CPU) uint16 {
	if !r.indexed {
		return r.wide.get()
	}
	d := c.fetchSigned()
	c.prevImmediate = uint8(d)
	return uint16(int32(r.wide.get()) + int32(d))
}

// addrPrefetched resolves the (IX+d)/(IY+d) address using a displacement
// that was already fetched earlier in this instruction (DDCB/FDCB, where
// the displacement precedes the sub-opcode byte rather than following it).
func (r regSet) addrPrefetched(c *CPU) uint16 {
	if !r.indexed {
		return r.wide.get()
	}
	d := int8(c.prevImmediate)
	return uint16(int32(r.wide.get()) + int32(d))
}
