package vdp

// hCounterTable maps a CPU-cycle offset within a scanline (0-227 NTSC) to
// the 8-bit H-counter value a port $7E/$7F read observes. The VDP's
// internal counter runs at 3x the CPU clock and is 9 bits wide, which
// produces the hardware's well-known jump from $93 to $E9 entering
// H-blank rather than a linear wrap (SPEC_FULL.md §4.3).
var hCounterTable = buildHCounterTable()

func buildHCounterTable() [228]uint8 {
	var table [228]uint8
	for cycle := 0; cycle < 228; cycle++ {
		masterClock := cycle * 3
		var h int
		switch {
		case masterClock < 256:
			h = masterClock / 2
		case masterClock < 512:
			progress := masterClock - 256
			h = 0x80 + (progress * 20 / 256)
			if h > 0x93 {
				h = 0x93
			}
		default:
			progress := masterClock - 512
			h = 0xE9 + (progress * 32 / 172)
			if h > 0xFF {
				h -= 0x100
			}
		}
		table[cycle] = uint8(h)
	}
	return table
}

// HCounterForCycle returns the H-counter value for a cycle offset within
// the current scanline (clamped to the table's range).
func HCounterForCycle(cycle int) uint8 {
	if cycle < 0 {
		return 0
	}
	if cycle >= len(hCounterTable) {
		return hCounterTable[len(hCounterTable)-1]
	}
	return hCounterTable[cycle]
}

// SetHCounter overrides the latched H-counter value. Step refreshes the
// latch from the cycle position within the scanline after every call
// (ports $40-$7F odd read it back).
func (v *VDP) SetHCounter(h uint8) { v.hcounter = h }

// ReadHCounter returns the latched H-counter.
func (v *VDP) ReadHCounter() uint8 { return v.hcounter }

// ReadVCounter returns the V-counter with the hardware's non-linear
// VBlank wraparound: the 262 (NTSC) or 313 (PAL) scanline count doesn't
// fit an 8-bit counter, so real hardware jumps the top of the count
// during VBlank to land back at 0 for the next frame's active display.
func (v *VDP) ReadVCounter() uint8 {
	line := int(v.vcounter)
	activeHeight := v.activeHeight()

	if v.timing.Scanlines == 313 {
		switch activeHeight {
		case 192:
			if line <= 242 {
				return uint8(line)
			}
			return uint8(line - 57)
		case 224:
			if line <= 258 {
				return uint8(line)
			}
			return uint8(line - 57)
		}
	} else {
		switch activeHeight {
		case 192:
			if line <= 218 {
				return uint8(line)
			}
			return uint8(line - 6)
		case 224:
			if line <= 234 {
				return uint8(line)
			}
			return uint8(line - 6)
		}
	}
	return uint8(line)
}
