// Package vdp implements the SMS VDP: VRAM/CRAM storage, the two-byte
// control-port latch, scanline timing and interrupt generation, and the
// mode-4 background/sprite renderer.
package vdp

import "image"

// ScreenWidth and MaxScreenHeight bound the framebuffer; MaxScreenHeight
// covers the 224-line mode, the tallest active display the SMS supports.
const (
	ScreenWidth     = 256
	MaxScreenHeight = 224
)

// VDP holds all VDP state: VRAM, CRAM, the sixteen mode/control registers,
// the control-port latch, and the scanline/interrupt counters that drive
// mode-4 rendering. One VDP instance is driven by one host loop calling
// Step(cycles) after every CPU instruction, per spec.md §2's data flow.
type VDP struct {
	vram      [0x4000]uint8
	cram      [0x20]uint8
	cramLatch [0x20]uint8
	register  [16]uint8

	addr       uint16
	addrLatch  uint8
	ctrlHigh   bool
	code       uint8
	readBuffer uint8

	frameInterrupt  bool
	lineInterrupt   bool
	spriteOverflow  bool
	spriteCollision bool

	vcounter     uint16
	hcounter     uint8
	cycleCounter int
	lineCounter  int16

	// Per-scanline/per-frame register latches: real hardware samples
	// these at fixed points in the scanline so a line-interrupt handler
	// that pokes a register mid-line affects only the following line.
	hScrollLatch uint8
	reg2Latch    uint8
	reg7Latch    uint8
	vScrollLatch uint8

	bgPriority [ScreenWidth]bool
	spritePix  [ScreenWidth]bool

	region        Region
	timing        Timing
	cyclesPerLine int

	framebuffer *image.RGBA
}

// New constructs a VDP for the given region, reset to its post-power-on
// state (spec.md §3 Lifecycles: vram cleared, line_counter=0xFF).
func New(region Region) *VDP {
	v := &VDP{
		region:      region,
		timing:      TimingFor(region),
		framebuffer: image.NewRGBA(image.Rect(0, 0, ScreenWidth, MaxScreenHeight)),
	}
	v.cyclesPerLine = v.timing.CyclesPerLine()
	v.Reset()
	return v
}

// Reset restores the post-power-on state without reallocating the
// framebuffer.
func (v *VDP) Reset() {
	v.vram = [0x4000]uint8{}
	v.cram = [0x20]uint8{}
	v.cramLatch = [0x20]uint8{}
	v.register = [16]uint8{}
	v.addr = 0
	v.addrLatch = 0
	v.ctrlHigh = false
	v.code = 0
	v.readBuffer = 0
	v.frameInterrupt = false
	v.lineInterrupt = false
	v.spriteOverflow = false
	v.spriteCollision = false
	v.vcounter = 0
	v.hcounter = 0
	v.cycleCounter = 0
	v.lineCounter = 0xFF
	v.hScrollLatch = 0
	v.reg2Latch = 0
	v.reg7Latch = 0
	v.vScrollLatch = 0
}

// Framebuffer returns the renderer's output; valid rows are [0,ActiveHeight).
func (v *VDP) Framebuffer() *image.RGBA { return v.framebuffer }

// VCounter returns the raw (linear) scanline counter, spec.md §3 invariant
// 5's 0 <= vcounter < 262 (or 313 for PAL).
func (v *VDP) VCounter() uint16 { return v.vcounter }

// Address returns the current 14-bit VRAM/CRAM address latch.
func (v *VDP) Address() uint16 { return v.addr }

// VRAMByte returns vram[addr & 0x3FFF], for tests and save-state code.
func (v *VDP) VRAMByte(addr uint16) uint8 { return v.vram[addr&0x3FFF] }

// CRAMByte returns cram[addr & 0x1F].
func (v *VDP) CRAMByte(addr uint16) uint8 { return v.cram[addr&0x1F] }

// Register returns VDP register n (0-15), or 0 if out of range.
func (v *VDP) Register(n int) uint8 {
	if n < 0 || n >= len(v.register) {
		return 0
	}
	return v.register[n]
}

// activeHeight is 224 when both the extended-mode bits (reg0 bit1, reg1
// bit4) are set, 192 otherwise. 240-line mode (M2=1,M1=0) does not exist
// on SMS hardware and is not modeled.
func (v *VDP) activeHeight() int {
	m2 := v.register[0]&0x02 != 0
	m1 := v.register[1]&0x10 != 0
	if m2 && m1 {
		return 224
	}
	return 192
}

// mode4 reports whether register 0 bit 2 selects the SMS mode-4 display;
// spec.md §4.3's "modes 1010/1011" reduce, for this core's scope, to this
// single bit since no other display mode is emulated. When mode 4 is off,
// scanline() renders nothing and the framebuffer keeps its previous
// contents; no fault is raised for the unrecognized mode.
func (v *VDP) mode4() bool {
	return v.register[0]&0x04 != 0
}

// WriteControl implements the two-byte control-port FIFO (spec.md §4.3):
// the first write latches the low address byte; the second supplies the
// high 6 bits plus a 2-bit command code and completes the command.
func (v *VDP) WriteControl(value uint8) {
	if !v.ctrlHigh {
		v.addrLatch = value
		v.ctrlHigh = true
		return
	}
	v.ctrlHigh = false
	v.addr = uint16(v.addrLatch) | uint16(value&0x3F)<<8
	v.code = (value >> 6) & 0x03

	switch v.code {
	case 0: // VRAM read: prefetch into the read buffer, then advance
		v.readBuffer = v.vram[v.addr&0x3FFF]
		v.addr = (v.addr + 1) & 0x3FFF
	case 1: // VRAM write: nothing to do until the data byte arrives
	case 2: // register write: addrLatch (the first control byte) is the value
		regNum := value & 0x0F
		v.register[regNum] = v.addrLatch
	case 3: // CRAM write: nothing to do until the data byte arrives
	}
}

// ReadControl returns the status register and, as a side effect, clears
// the frame/line interrupt flags and the sprite overflow/collision bits
// (spec.md §4.3 "Status read"), and clears the control-port latch so a
// half-completed write sequence doesn't leak into the next one.
func (v *VDP) ReadControl() uint8 {
	status := uint8(0x1F)
	if v.frameInterrupt {
		status |= 0x80
	}
	if v.spriteOverflow {
		status |= 0x40
	}
	if v.spriteCollision {
		status |= 0x20
	}
	v.frameInterrupt = false
	v.lineInterrupt = false
	v.spriteOverflow = false
	v.spriteCollision = false
	v.ctrlHigh = false
	return status
}

// WriteData writes to VRAM or CRAM depending on the latched command code,
// then advances address, and also refills the read buffer (matching real
// hardware: a data-port write is visible to a following data-port read).
func (v *VDP) WriteData(value uint8) {
	v.ctrlHigh = false
	v.readBuffer = value
	if v.code == 3 {
		v.cram[v.addr&0x1F] = value & 0x3F
	} else {
		v.vram[v.addr&0x3FFF] = value
	}
	v.addr = (v.addr + 1) & 0x3FFF
}

// ReadData returns the buffered byte and refills it from the new address.
func (v *VDP) ReadData() uint8 {
	v.ctrlHigh = false
	data := v.readBuffer
	v.readBuffer = v.vram[v.addr&0x3FFF]
	v.addr = (v.addr + 1) & 0x3FFF
	return data
}

// InterruptPending reports whether the VDP's /INT line should be
// asserted: a latched frame interrupt with the frame-IE bit set (register
// 1 bit 5), or a latched line interrupt with the line-IE bit set
// (register 0 bit 4).
func (v *VDP) InterruptPending() bool {
	frameIE := v.register[1]&0x20 != 0
	lineIE := v.register[0]&0x10 != 0
	return (v.frameInterrupt && frameIE) || (v.lineInterrupt && lineIE)
}

// Step advances the VDP by cycles CPU T-states, running scanline() once
// per cycles_per_line boundary crossed (spec.md §4.3 "Scanline timing").
func (v *VDP) Step(cycles int) {
	v.cycleCounter += cycles
	for v.cycleCounter >= v.cyclesPerLine {
		v.cycleCounter -= v.cyclesPerLine
		v.scanline()
	}
	v.hcounter = HCounterForCycle(v.cycleCounter)
}

// scanline implements spec.md §4.3's scanline() body: render (mode 4
// only) and decrement the line counter while in the active display,
// reload it otherwise; raise the frame interrupt at the active/vblank
// boundary; advance vcounter.
func (v *VDP) scanline() {
	activeHeight := v.activeHeight()

	v.latchPerLine()
	v.hcounter = 0

	if int(v.vcounter) <= activeHeight {
		if v.mode4() && int(v.vcounter) < activeHeight {
			v.renderScanline(int(v.vcounter))
		}
		v.lineCounter--
		if v.lineCounter < 0 {
			v.lineCounter = int16(v.register[10])
			v.lineInterrupt = true
		}
	} else {
		v.lineCounter = int16(v.register[10])
	}

	if int(v.vcounter) == activeHeight {
		v.frameInterrupt = true
	}

	v.vcounter = (v.vcounter + 1) % uint16(v.timing.Scanlines)
	if v.vcounter == 0 {
		v.vScrollLatch = v.register[9]
	}
}

func (v *VDP) latchPerLine() {
	v.hScrollLatch = v.register[8]
	v.reg2Latch = v.register[2]
	v.reg7Latch = v.register[7]
	v.cramLatch = v.cram
}
