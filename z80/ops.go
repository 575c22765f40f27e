package z80

// execBase implements the unprefixed (and, shared via regs, the DD/FD
// indexed) opcode space using the classic x/y/z/p/q bitfield decomposition
// of the opcode byte: x = bits 6-7, y = bits 3-5, z = bits 0-2, p = y>>1,
// q = y&1. regs binds the "H", "L" and "(HL)" operand slots to HL, IX or
// IY; every opcode that doesn't touch one of those slots behaves
// identically regardless of which regs is active.
func (c *CPU) execBase(regs regSet, opcode uint8) {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7
	p := y >> 1
	q := y & 1

	var cachedAddr uint16
	var haveAddr bool
	getAddr := func() uint16 {
		if !haveAddr {
			cachedAddr = regs.addr(c)
			haveAddr = true
		}
		return cachedAddr
	}

	switch x {
	case 0:
		switch z {
		case 0:
			switch {
			case y == 0: // NOP
			case y == 1: // EX AF,AF'
				c.A, c.A2 = c.A2, c.A
				c.F, c.F2 = c.F2, c.F
			case y == 2: // DJNZ d
				d := c.fetchSigned()
				c.BC.Hi--
				if c.BC.Hi != 0 {
					c.PC = uint16(int32(c.PC) + int32(d))
				}
			case y == 3: // JR d
				d := c.fetchSigned()
				c.PC = uint16(int32(c.PC) + int32(d))
			default: // JR cc,d ; y=4..7 -> cc 0..3 (NZ,Z,NC,C)
				d := c.fetchSigned()
				if c.condTrue(y - 4) {
					c.PC = uint16(int32(c.PC) + int32(d))
				}
			}
		case 1:
			if q == 0 {
				c.writeRP(p, regs, c.fetchWord())
			} else {
				regs.wide.set(c.add16(regs.wide.get(), c.readRP(p, regs)))
			}
		case 2:
			switch {
			case q == 0 && p == 0:
				c.bus.WriteByte(c.BC.All(), c.A)
			case q == 0 && p == 1:
				c.bus.WriteByte(c.DE.All(), c.A)
			case q == 0 && p == 2:
				nn := c.fetchWord()
				c.writeWord(nn, regs.wide.get())
			case q == 0 && p == 3:
				nn := c.fetchWord()
				c.bus.WriteByte(nn, c.A)
			case q == 1 && p == 0:
				c.A = c.bus.ReadByte(c.BC.All())
			case q == 1 && p == 1:
				c.A = c.bus.ReadByte(c.DE.All())
			case q == 1 && p == 2:
				nn := c.fetchWord()
				regs.wide.set(c.readWord(nn))
			case q == 1 && p == 3:
				nn := c.fetchWord()
				c.A = c.bus.ReadByte(nn)
			}
		case 3:
			if q == 0 {
				c.writeRP(p, regs, c.readRP(p, regs)+1)
			} else {
				c.writeRP(p, regs, c.readRP(p, regs)-1)
			}
		case 4:
			v := c.getR(y, regs, getAddr)
			c.setR(y, regs, getAddr, c.inc8(v))
		case 5:
			v := c.getR(y, regs, getAddr)
			c.setR(y, regs, getAddr, c.dec8(v))
		case 6:
			if y == 6 {
				addr := getAddr()
				n := c.fetchOperand()
				c.bus.WriteByte(addr, n)
			} else {
				c.setR(y, regs, getAddr, c.fetchOperand())
			}
		case 7:
			switch y {
			case 0:
				c.A = c.rlc(c.A)
				c.F.SetXY(c.A)
			case 1:
				c.A = c.rrc(c.A)
				c.F.SetXY(c.A)
			case 2:
				c.A = c.rl(c.A)
				c.F.SetXY(c.A)
			case 3:
				c.A = c.rr(c.A)
				c.F.SetXY(c.A)
			case 4:
				c.daa()
			case 5:
				c.cpl()
			case 6:
				c.scf()
			case 7:
				c.ccf()
			}
		}
	case 1: // LD r[y],r[z], with opcode 0x76 replaced by HALT
		if opcode == 0x76 {
			c.halted = true
			return
		}
		indirect := y == 6 || z == 6
		var v uint8
		if z == 6 {
			v = c.bus.ReadByte(getAddr())
		} else {
			v = c.ldBlockRead(z, regs, indirect)
		}
		if y == 6 {
			c.bus.WriteByte(getAddr(), v)
		} else {
			c.ldBlockWrite(y, regs, indirect, v)
		}
	case 2: // alu[y] r[z]
		v := c.getR(z, regs, getAddr)
		c.aluOp(y, v)
	case 3:
		switch z {
		case 0: // RET cc[y]
			if c.condTrue(y) {
				c.PC = c.pop()
			}
		case 1:
			if q == 0 {
				c.writeRP2(p, regs, c.pop())
			} else {
				switch p {
				case 0: // RET
					c.PC = c.pop()
				case 1: // EXX (always the real BC/DE/HL, never index-affected)
					c.BC, c.BC2 = c.BC2, c.BC
					c.DE, c.DE2 = c.DE2, c.DE
					c.HL, c.HL2 = c.HL2, c.HL
				case 2: // JP (HL)/(IX)/(IY) -- a register jump, not a memory read
					c.PC = regs.wide.get()
				case 3: // LD SP,HL/IX/IY
					c.SP = regs.wide.get()
				}
			}
		case 2: // JP cc[y],nn
			nn := c.fetchWord()
			if c.condTrue(y) {
				c.PC = nn
			}
		case 3:
			switch y {
			case 0: // JP nn
				c.PC = c.fetchWord()
			case 2: // OUT (n),A
				n := c.fetchOperand()
				c.bus.PortOut(n, c.A)
			case 3: // IN A,(n)
				n := c.fetchOperand()
				c.A = c.bus.PortIn(n)
			case 4: // EX (SP),HL/IX/IY
				addr := c.SP
				lo := c.bus.ReadByte(addr)
				hi := c.bus.ReadByte(addr + 1)
				old := regs.wide.get()
				c.bus.WriteByte(addr, uint8(old))
				c.bus.WriteByte(addr+1, uint8(old>>8))
				regs.wide.set(uint16(hi)<<8 | uint16(lo))
			case 5: // EX DE,HL -- always the real HL, never index-affected
				c.DE, c.HL = c.HL, c.DE
			case 6: // DI
				c.interruptsEnabled = false
				c.nextInterruptsEnabled = false
			case 7: // EI
				c.nextInterruptsEnabled = true
			}
		case 4: // CALL cc[y],nn
			nn := c.fetchWord()
			if c.condTrue(y) {
				c.push(c.PC)
				c.PC = nn
			}
		case 5:
			if q == 0 {
				c.push(c.readRP2(p, regs))
			} else if p == 0 { // CALL nn
				nn := c.fetchWord()
				c.push(c.PC)
				c.PC = nn
			}
		case 6: // alu[y] n
			n := c.fetchOperand()
			c.aluOp(y, n)
		case 7: // RST y*8
			c.push(c.PC)
			c.PC = uint16(y) * 8
		}
	}
}

func (c *CPU) condTrue(cc uint8) bool {
	switch cc {
	case 0:
		return !c.F.Z
	case 1:
		return c.F.Z
	case 2:
		return !c.F.C
	case 3:
		return c.F.C
	case 4:
		return !c.F.P
	case 5:
		return c.F.P
	case 6:
		return !c.F.S
	case 7:
		return c.F.S
	}
	panic("z80: condition code out of range")
}

func (c *CPU) aluOp(y uint8, v uint8) {
	switch y {
	case 0:
		c.A = c.add8(c.A, v)
	case 1:
		c.A = c.adc8(c.A, v)
	case 2:
		c.A = c.sub8(c.A, v)
	case 3:
		c.A = c.sbc8(c.A, v)
	case 4:
		c.A = c.and8(c.A, v)
	case 5:
		c.A = c.xor8(c.A, v)
	case 6:
		c.A = c.or8(c.A, v)
	case 7:
		c.cp8(c.A, v)
	}
}

// readRP/writeRP address the rp[p] table: BC, DE, HL-or-index, SP.
func (c *CPU) readRP(p uint8, regs regSet) uint16 {
	switch p {
	case 0:
		return c.BC.All()
	case 1:
		return c.DE.All()
	case 2:
		return regs.wide.get()
	case 3:
		return c.SP
	}
	panic("z80: register pair index out of range")
}

func (c *CPU) writeRP(p uint8, regs regSet, v uint16) {
	switch p {
	case 0:
		c.BC.SetAll(v)
	case 1:
		c.DE.SetAll(v)
	case 2:
		regs.wide.set(v)
	case 3:
		c.SP = v
	}
}

// readRP2/writeRP2 address the rp2[p] table used by PUSH/POP: BC, DE,
// HL-or-index, AF.
func (c *CPU) readRP2(p uint8, regs regSet) uint16 {
	switch p {
	case 0:
		return c.BC.All()
	case 1:
		return c.DE.All()
	case 2:
		return regs.wide.get()
	case 3:
		return uint16(c.A)<<8 | uint16(c.F.Pack())
	}
	panic("z80: register pair index out of range")
}

func (c *CPU) writeRP2(p uint8, regs regSet, v uint16) {
	switch p {
	case 0:
		c.BC.SetAll(v)
	case 1:
		c.DE.SetAll(v)
	case 2:
		regs.wide.set(v)
	case 3:
		c.A = uint8(v >> 8)
		c.F.Unpack(uint8(v))
	}
}

// getR/setR address the r[y] table outside the LD r,r' block: B, C, D, E,
// H-or-index-high, L-or-index-low, (HL)-or-(index+d), A.
func (c *CPU) getR(y uint8, regs regSet, getAddr func() uint16) uint8 {
	switch y {
	case 0:
		return c.BC.Hi
	case 1:
		return c.BC.Lo
	case 2:
		return c.DE.Hi
	case 3:
		return c.DE.Lo
	case 4:
		return *regs.hi
	case 5:
		return *regs.lo
	case 6:
		return c.bus.ReadByte(getAddr())
	case 7:
		return c.A
	}
	panic("z80: register index out of range")
}

func (c *CPU) setR(y uint8, regs regSet, getAddr func() uint16, v uint8) {
	switch y {
	case 0:
		c.BC.Hi = v
	case 1:
		c.BC.Lo = v
	case 2:
		c.DE.Hi = v
	case 3:
		c.DE.Lo = v
	case 4:
		*regs.hi = v
	case 5:
		*regs.lo = v
	case 6:
		c.bus.WriteByte(getAddr(), v)
	case 7:
		c.A = v
	}
}

// ldBlockRead/ldBlockWrite address the r[y]/r[z] slots within the LD r,r'
// block specifically (x==1, excluding the memory slot itself, which the
// caller handles separately). When the instruction's OTHER operand is the
// indirect (HL)/(IX+d) slot, a H or L reference here means the real HL
// pair, not IXH/IXL/IYH/IYL -- a documented Z80 quirk: the index register
// only ever substitutes for HL when it supplies the address itself.
func (c *CPU) ldBlockRead(idx uint8, regs regSet, indirect bool) uint8 {
	switch idx {
	case 0:
		return c.BC.Hi
	case 1:
		return c.BC.Lo
	case 2:
		return c.DE.Hi
	case 3:
		return c.DE.Lo
	case 4:
		if indirect {
			return c.HL.Hi
		}
		return *regs.hi
	case 5:
		if indirect {
			return c.HL.Lo
		}
		return *regs.lo
	case 7:
		return c.A
	}
	panic("z80: register index out of range")
}

func (c *CPU) ldBlockWrite(idx uint8, regs regSet, indirect bool, v uint8) {
	switch idx {
	case 0:
		c.BC.Hi = v
	case 1:
		c.BC.Lo = v
	case 2:
		c.DE.Hi = v
	case 3:
		c.DE.Lo = v
	case 4:
		if indirect {
			c.HL.Hi = v
		} else {
			*regs.hi = v
		}
	case 5:
		if indirect {
			c.HL.Lo = v
		} else {
			*regs.lo = v
		}
	case 7:
		c.A = v
	}
}
