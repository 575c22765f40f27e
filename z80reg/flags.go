package z80reg

// Flag bit positions within the packed F register, SZYHXPNC order.
const (
	BitS uint8 = 0x80
	BitZ uint8 = 0x40
	BitY uint8 = 0x20
	BitH uint8 = 0x10
	BitX uint8 = 0x08
	BitP uint8 = 0x04
	BitN uint8 = 0x02
	BitC uint8 = 0x01
)

// Flags holds the eight Z80 flag bits as independent booleans. P doubles
// as the parity flag (logical ops) and the overflow flag (arithmetic).
type Flags struct {
	S bool
	Z bool
	Y bool
	H bool
	X bool
	P bool
	N bool
	C bool
}

// Pack assembles the flags into the conventional SZYHXPNC byte.
func (f Flags) Pack() uint8 {
	var b uint8
	if f.S {
		b |= BitS
	}
	if f.Z {
		b |= BitZ
	}
	if f.Y {
		b |= BitY
	}
	if f.H {
		b |= BitH
	}
	if f.X {
		b |= BitX
	}
	if f.P {
		b |= BitP
	}
	if f.N {
		b |= BitN
	}
	if f.C {
		b |= BitC
	}
	return b
}

// Unpack decomposes a byte into the eight flag booleans.
func (f *Flags) Unpack(b uint8) {
	f.S = b&BitS != 0
	f.Z = b&BitZ != 0
	f.Y = b&BitY != 0
	f.H = b&BitH != 0
	f.X = b&BitX != 0
	f.P = b&BitP != 0
	f.N = b&BitN != 0
	f.C = b&BitC != 0
}

// SetXY copies bits 3 and 5 of v into the X and Y flags, the standard
// "undocumented bits mirror the result" rule used throughout the Z80
// instruction set.
func (f *Flags) SetXY(v uint8) {
	f.X = v&BitX != 0
	f.Y = v&BitY != 0
}

// Parity reports whether v has an even number of set bits.
func Parity(v uint8) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}
