package vdp

import "image/color"

// paletteScale maps the SMS's 2-bit-per-channel CRAM color to 8-bit RGB.
var paletteScale = [4]uint8{0, 85, 170, 255}

func (v *VDP) colorFromCRAM(index uint8) color.RGBA {
	c := v.cramLatch[index&0x1F]
	r := (c >> 0) & 0x03
	g := (c >> 2) & 0x03
	b := (c >> 4) & 0x03
	return color.RGBA{R: paletteScale[r], G: paletteScale[g], B: paletteScale[b], A: 255}
}

// renderScanline renders the background then composites sprites on top,
// per spec.md §4.3's mode-4 background render plus SPEC_FULL.md §3's
// additive sprite layer.
func (v *VDP) renderScanline(line int) {
	for i := range v.bgPriority {
		v.bgPriority[i] = false
	}

	if v.register[1]&0x40 == 0 {
		bg := v.colorFromCRAM(16 + (v.reg7Latch & 0x0F))
		for x := 0; x < ScreenWidth; x++ {
			v.framebuffer.SetRGBA(x, line, bg)
		}
		return
	}

	v.renderBackground(line)
	v.renderSprites(line)

	if v.register[0]&0x20 != 0 {
		bg := v.colorFromCRAM(16 + (v.reg7Latch & 0x0F))
		for x := 0; x < 8; x++ {
			v.framebuffer.SetRGBA(x, line, bg)
		}
	}
}

// renderBackground draws the mode-4 tile background for one line. The
// nametable lives at VRAM 0x3800 in 192-line mode (generalized below for
// 224-line mode, where bit 1 of register 2 is ignored and OR'd with
// 0x0700); each 16-bit entry is (pattern index[9], hflip, vflip,
// palette select, priority), and each pattern is 32 bytes (8 rows of 4
// bit-planes), per spec.md §4.3.
func (v *VDP) renderBackground(line int) {
	activeHeight := v.activeHeight()
	reg2 := v.reg2Latch
	var nameTableBase uint16
	if activeHeight == 192 {
		nameTableBase = uint16(reg2&0x0E) << 10
	} else {
		nameTableBase = (uint16(reg2&0x0C) << 10) | 0x0700
	}

	hScroll := v.hScrollLatch
	vScroll := v.vScrollLatch
	topRowLock := v.register[0]&0x40 != 0
	rightColLock := v.register[0]&0x80 != 0

	for x := 0; x < ScreenWidth; x++ {
		effHScroll := hScroll
		effVScroll := vScroll
		if topRowLock && line < 16 {
			effHScroll = 0
		}
		if rightColLock && x >= 192 {
			effVScroll = 0
		}

		var effY uint16
		if activeHeight == 224 {
			effY = (uint16(line) + uint16(effVScroll)) & 0xFF
		} else {
			effY = uint16(line) + uint16(effVScroll)
			if effY >= 224 {
				effY -= 224
			}
		}
		tileRow := effY / 8
		tileLine := effY % 8

		effX := (uint16(x) - uint16(effHScroll)) & 0xFF
		tileCol := effX / 8
		tilePixel := effX % 8

		nameAddr := nameTableBase + (tileRow*32+tileCol)*2
		lo := v.vram[nameAddr&0x3FFF]
		hi := v.vram[(nameAddr+1)&0x3FFF]

		patternIndex := uint16(lo) | (uint16(hi&0x01) << 8)
		hFlip := hi&0x02 != 0
		vFlip := hi&0x04 != 0
		paletteSel := (hi & 0x08) >> 3
		priority := hi&0x10 != 0

		patternLine := tileLine
		if vFlip {
			patternLine = 7 - tileLine
		}
		pixelPos := tilePixel
		if hFlip {
			pixelPos = 7 - tilePixel
		}

		patternAddr := patternIndex*32 + patternLine*4
		bp0 := v.vram[patternAddr&0x3FFF]
		bp1 := v.vram[(patternAddr+1)&0x3FFF]
		bp2 := v.vram[(patternAddr+2)&0x3FFF]
		bp3 := v.vram[(patternAddr+3)&0x3FFF]

		shift := 7 - pixelPos
		colorIndex := ((bp0 >> shift) & 1) |
			(((bp1 >> shift) & 1) << 1) |
			(((bp2 >> shift) & 1) << 2) |
			(((bp3 >> shift) & 1) << 3)

		cramIndex := uint8(paletteSel)*16 + colorIndex
		v.framebuffer.SetRGBA(x, line, v.colorFromCRAM(cramIndex))

		if priority && colorIndex != 0 {
			v.bgPriority[x] = true
		}
	}
}

// renderSprites composites up to 8 sprites per scanline from the Sprite
// Attribute Table (base from register 5), honoring the 8x16/zoom bits in
// register 1, and sets the status register's overflow/collision bits
// (SPEC_FULL.md §3's additive sprite layer).
func (v *VDP) renderSprites(line int) {
	satBase := uint16(v.register[5]&0x7E) << 7

	spriteHeight := 8
	if v.register[1]&0x02 != 0 {
		spriteHeight = 16
	}
	zoom := 1
	zoomShift := 0
	if v.register[1]&0x01 != 0 {
		zoom = 2
		zoomShift = 1
	}
	effectiveHeight := spriteHeight * zoom

	patternBase := uint16(v.register[6]&0x04) << 11
	spriteShift := 0
	if v.register[0]&0x08 != 0 {
		spriteShift = 8
	}

	activeHeight := v.activeHeight()

	type sprite struct {
		x       int
		pattern uint8
		line    int
	}
	var sprites [8]sprite
	count := 0

	for i := 0; i < 64; i++ {
		y := int(v.vram[(satBase+uint16(i))&0x3FFF])
		if activeHeight == 192 && y == 208 {
			break
		}
		spriteY := y + 1
		if line >= spriteY && line < spriteY+effectiveHeight {
			if count >= 8 {
				v.spriteOverflow = true
				break
			}
			addr2 := satBase + 0x80 + uint16(i)*2
			x := int(v.vram[addr2&0x3FFF]) - spriteShift
			pattern := v.vram[(addr2+1)&0x3FFF]
			if spriteHeight == 16 {
				pattern &= 0xFE
			}
			sprites[count] = sprite{x: x, pattern: pattern, line: (line - spriteY) >> zoomShift}
			count++
		}
	}

	for i := range v.spritePix {
		v.spritePix[i] = false
	}

	for i := count - 1; i >= 0; i-- {
		s := sprites[i]
		pattern := uint16(s.pattern)
		sline := s.line
		if spriteHeight == 16 && sline >= 8 {
			pattern++
			sline -= 8
		}
		patternAddr := patternBase + pattern*32 + uint16(sline)*4
		bp0 := v.vram[patternAddr&0x3FFF]
		bp1 := v.vram[(patternAddr+1)&0x3FFF]
		bp2 := v.vram[(patternAddr+2)&0x3FFF]
		bp3 := v.vram[(patternAddr+3)&0x3FFF]

		for px := 0; px < 8*zoom; px++ {
			screenX := s.x + px
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}
			patternPx := px >> zoomShift
			shift := uint(7 - patternPx)
			colorIndex := ((bp0 >> shift) & 1) |
				(((bp1 >> shift) & 1) << 1) |
				(((bp2 >> shift) & 1) << 2) |
				(((bp3 >> shift) & 1) << 3)
			if colorIndex == 0 {
				continue
			}
			if v.spritePix[screenX] {
				v.spriteCollision = true
			}
			v.spritePix[screenX] = true
			if v.bgPriority[screenX] {
				continue
			}
			v.framebuffer.SetRGBA(screenX, line, v.colorFromCRAM(colorIndex+16))
		}
	}
}
