package z80

// execCB implements the CB-prefixed opcode space: rotates/shifts (row
// x==0), BIT (x==1), RES (x==2) and SET (x==3), each applied to one of
// the eight r[z] slots. addr is the already-resolved address for the
// "(HL)" slot -- HL itself for plain CB, or the displacement-adjusted
// IX/IY address for DDCB/FDCB (resolved by the caller before the
// sub-opcode byte, per spec.md's indexed addressing order).
func (c *CPU) execCB(regs regSet, opcode uint8, addr uint16) {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7

	addrFn := func() uint16 { return addr }

	if !regs.indexed {
		val := c.getR(z, regs, addrFn)
		switch x {
		case 0:
			c.setR(z, regs, addrFn, c.shiftOp(y, val))
		case 1:
			c.bitTest(y, val, val)
		case 2:
			c.setR(z, regs, addrFn, val&^(1<<y))
		case 3:
			c.setR(z, regs, addrFn, val|(1<<y))
		}
		return
	}

	// DDCB/FDCB: the operand is always the (IX+d)/(IY+d) byte. For the
	// write-back opcodes (everything but BIT), z selects an additional
	// register -- always one of the plain B,C,D,E,H,L,A, never IXH/IXL --
	// that also receives the result. This is the well-documented
	// "undocumented" DDCB/FDCB register copy.
	val := c.bus.ReadByte(addr)
	switch x {
	case 0:
		res := c.shiftOp(y, val)
		c.bus.WriteByte(addr, res)
		if z != 6 {
			c.ldBlockWrite(z, regs, true, res)
		}
	case 1:
		c.bitTest(y, val, uint8(addr>>8))
	case 2:
		res := val &^ (1 << y)
		c.bus.WriteByte(addr, res)
		if z != 6 {
			c.ldBlockWrite(z, regs, true, res)
		}
	case 3:
		res := val | (1 << y)
		c.bus.WriteByte(addr, res)
		if z != 6 {
			c.ldBlockWrite(z, regs, true, res)
		}
	}
}

func (c *CPU) shiftOp(y uint8, v uint8) uint8 {
	var res uint8
	switch y {
	case 0:
		res = c.rlc(v)
	case 1:
		res = c.rrc(v)
	case 2:
		res = c.rl(v)
	case 3:
		res = c.rr(v)
	case 4:
		res = c.sla(v)
	case 5:
		res = c.sra(v)
	case 6:
		res = c.sll(v)
	case 7:
		res = c.srl(v)
	}
	c.setSZPXY(res)
	return res
}
