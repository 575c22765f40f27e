package z80

import "github.com/dillonb/sms-go/z80reg"

// execED implements the ED-prefixed opcode space: the meaningful 0x40-0x7F
// block, the 0xA0-0xBB block transfer/search/I/O instructions, and the
// remaining bytes as documented 8-T-state NOP equivalents. ED is never
// combined with DD/FD (that sequence is a fault caught by the caller), so
// every register-pair reference here is the real BC/DE/HL/SP, never an
// index register.
func (c *CPU) execED(op2 uint8) {
	x := op2 >> 6
	y := (op2 >> 3) & 7
	z := op2 & 7
	p := y >> 1
	q := y & 1

	hl := hlRegSet(c)
	hlAddr := func() uint16 { return c.HL.All() }

	switch {
	case x == 1:
		switch z {
		case 0: // IN r[y],(C) ; y==6 is the undocumented flags-only form
			v := c.bus.PortIn(c.BC.Lo)
			c.F.S = v&0x80 != 0
			c.F.Z = v == 0
			c.F.H = false
			c.F.P = z80reg.Parity(v)
			c.F.N = false
			c.F.SetXY(v)
			if y != 6 {
				c.setR(y, hl, hlAddr, v)
			}
		case 1: // OUT (C),r[y] ; y==6 outputs 0
			v := uint8(0)
			if y != 6 {
				v = c.getR(y, hl, hlAddr)
			}
			c.bus.PortOut(c.BC.Lo, v)
		case 2:
			rp := c.readRP(p, hl)
			if q == 0 {
				c.HL.SetAll(c.sbc16(c.HL.All(), rp))
			} else {
				c.HL.SetAll(c.adc16(c.HL.All(), rp))
			}
		case 3:
			nn := c.fetchWord()
			if q == 0 {
				c.writeWord(nn, c.readRP(p, hl))
			} else {
				c.writeRP(p, hl, c.readWord(nn))
			}
		case 4:
			c.neg()
		case 5: // y==1: RETI, else RETN -- both restore IFF1 from IFF2
			c.PC = c.pop()
			c.interruptsEnabled = c.iff2
			c.nextInterruptsEnabled = c.iff2
		case 6:
			imTable := [8]int{0, 0, 1, 2, 0, 0, 1, 2}
			c.IM = imTable[y]
		case 7:
			switch y {
			case 0:
				c.I = c.A
			case 1:
				c.R = c.A
			case 2:
				c.A = c.I
				c.setIRFlags()
			case 3:
				c.A = c.R
				c.setIRFlags()
			case 4:
				c.rrd()
			case 5:
				c.rld()
			}
		}
	case x == 2:
		switch op2 {
		case 0xA0:
			c.ldi()
		case 0xA1:
			c.cpi()
		case 0xA2:
			c.ini()
		case 0xA3:
			c.outi()
		case 0xA8:
			c.ldd()
		case 0xA9:
			c.cpd()
		case 0xAA:
			c.ind()
		case 0xAB:
			c.outd()
		case 0xB0:
			c.ldi()
			if c.BC.All() != 0 {
				c.PC -= 2
			}
		case 0xB1:
			c.cpi()
			if c.BC.All() != 0 && !c.F.Z {
				c.PC -= 2
			}
		case 0xB2:
			c.ini()
			if c.BC.Hi != 0 {
				c.PC -= 2
			}
		case 0xB3:
			c.outi()
			if c.BC.Hi != 0 {
				c.PC -= 2
			}
		case 0xB8:
			c.ldd()
			if c.BC.All() != 0 {
				c.PC -= 2
			}
		case 0xB9:
			c.cpd()
			if c.BC.All() != 0 && !c.F.Z {
				c.PC -= 2
			}
		case 0xBA:
			c.ind()
			if c.BC.Hi != 0 {
				c.PC -= 2
			}
		case 0xBB:
			c.outd()
			if c.BC.Hi != 0 {
				c.PC -= 2
			}
		}
	}
}

func (c *CPU) setIRFlags() {
	c.F.S = c.A&0x80 != 0
	c.F.Z = c.A == 0
	c.F.H = false
	c.F.N = false
	c.F.P = c.iff2
	c.F.SetXY(c.A)
}

func (c *CPU) ldi() {
	v := c.bus.ReadByte(c.HL.All())
	c.bus.WriteByte(c.DE.All(), v)
	c.HL.Inc()
	c.DE.Inc()
	c.BC.Dec()
	n := v + c.A
	c.F.N = false
	c.F.H = false
	c.F.Y = n&0x02 != 0
	c.F.X = n&0x08 != 0
	c.F.P = c.BC.All() != 0
}

func (c *CPU) ldd() {
	v := c.bus.ReadByte(c.HL.All())
	c.bus.WriteByte(c.DE.All(), v)
	c.HL.Dec()
	c.DE.Dec()
	c.BC.Dec()
	n := v + c.A
	c.F.N = false
	c.F.H = false
	c.F.Y = n&0x02 != 0
	c.F.X = n&0x08 != 0
	c.F.P = c.BC.All() != 0
}

func (c *CPU) cpi() {
	v := c.bus.ReadByte(c.HL.All())
	res := c.A - v
	halfBorrow := int(c.A&0x0F)-int(v&0x0F) < 0
	c.HL.Inc()
	c.BC.Dec()
	n := res
	if halfBorrow {
		n--
	}
	c.F.S = res&0x80 != 0
	c.F.Z = res == 0
	c.F.H = halfBorrow
	c.F.Y = n&0x02 != 0
	c.F.X = n&0x08 != 0
	c.F.P = c.BC.All() != 0
	c.F.N = true
}

func (c *CPU) cpd() {
	v := c.bus.ReadByte(c.HL.All())
	res := c.A - v
	halfBorrow := int(c.A&0x0F)-int(v&0x0F) < 0
	c.HL.Dec()
	c.BC.Dec()
	n := res
	if halfBorrow {
		n--
	}
	c.F.S = res&0x80 != 0
	c.F.Z = res == 0
	c.F.H = halfBorrow
	c.F.Y = n&0x02 != 0
	c.F.X = n&0x08 != 0
	c.F.P = c.BC.All() != 0
	c.F.N = true
}

// ini/ind/outi/outd implement the documented-undocumented flag rules from
// the standard Z80 reference (Sean Young's "The Undocumented Z80
// Documented"): a carry/half-carry pair derived from the transferred byte
// plus the post-adjustment C (INI/IND) or L (OUTI/OUTD), folded with the
// new B into the parity flag.
func (c *CPU) ini() {
	v := c.bus.PortIn(c.BC.Lo)
	c.bus.WriteByte(c.HL.All(), v)
	c.HL.Inc()
	c.BC.Hi--
	k := uint16(v) + uint16(c.BC.Lo+1)
	c.F.N = v&0x80 != 0
	c.F.H = k > 0xFF
	c.F.C = k > 0xFF
	c.F.P = z80reg.Parity(uint8(k&7) ^ c.BC.Hi)
	c.F.S = c.BC.Hi&0x80 != 0
	c.F.Z = c.BC.Hi == 0
	c.F.SetXY(c.BC.Hi)
}

func (c *CPU) ind() {
	v := c.bus.PortIn(c.BC.Lo)
	c.bus.WriteByte(c.HL.All(), v)
	c.HL.Dec()
	c.BC.Hi--
	k := uint16(v) + uint16(c.BC.Lo-1)
	c.F.N = v&0x80 != 0
	c.F.H = k > 0xFF
	c.F.C = k > 0xFF
	c.F.P = z80reg.Parity(uint8(k&7) ^ c.BC.Hi)
	c.F.S = c.BC.Hi&0x80 != 0
	c.F.Z = c.BC.Hi == 0
	c.F.SetXY(c.BC.Hi)
}

func (c *CPU) outi() {
	v := c.bus.ReadByte(c.HL.All())
	c.HL.Inc()
	c.BC.Hi--
	c.bus.PortOut(c.BC.Lo, v)
	k := uint16(v) + uint16(c.HL.Lo)
	c.F.N = v&0x80 != 0
	c.F.H = k > 0xFF
	c.F.C = k > 0xFF
	c.F.P = z80reg.Parity(uint8(k&7) ^ c.BC.Hi)
	c.F.S = c.BC.Hi&0x80 != 0
	c.F.Z = c.BC.Hi == 0
	c.F.SetXY(c.BC.Hi)
}

func (c *CPU) outd() {
	v := c.bus.ReadByte(c.HL.All())
	c.HL.Dec()
	c.BC.Hi--
	c.bus.PortOut(c.BC.Lo, v)
	k := uint16(v) + uint16(c.HL.Lo)
	c.F.N = v&0x80 != 0
	c.F.H = k > 0xFF
	c.F.C = k > 0xFF
	c.F.P = z80reg.Parity(uint8(k&7) ^ c.BC.Hi)
	c.F.S = c.BC.Hi&0x80 != 0
	c.F.Z = c.BC.Hi == 0
	c.F.SetXY(c.BC.Hi)
}

func (c *CPU) rrd() {
	m := c.bus.ReadByte(c.HL.All())
	newA := (c.A & 0xF0) | (m & 0x0F)
	newM := (c.A&0x0F)<<4 | (m >> 4)
	c.A = newA
	c.bus.WriteByte(c.HL.All(), newM)
	c.F.S = c.A&0x80 != 0
	c.F.Z = c.A == 0
	c.F.H = false
	c.F.P = z80reg.Parity(c.A)
	c.F.N = false
	c.F.SetXY(c.A)
}

func (c *CPU) rld() {
	m := c.bus.ReadByte(c.HL.All())
	newA := (c.A & 0xF0) | (m >> 4)
	newM := ((m << 4) & 0xF0) | (c.A & 0x0F)
	c.A = newA
	c.bus.WriteByte(c.HL.All(), newM)
	c.F.S = c.A&0x80 != 0
	c.F.Z = c.A == 0
	c.F.H = false
	c.F.P = z80reg.Parity(c.A)
	c.F.N = false
	c.F.SetXY(c.A)
}
