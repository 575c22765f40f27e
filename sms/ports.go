package sms

import "github.com/dillonb/sms-go/vdp"

// ports routes the 8-bit I/O space to the VDP (and, for everything this
// module's scope doesn't model, a fixed no-input/no-sound response), per
// spec.md §6's port map. PSG writes are accepted and discarded: audio
// synthesis is an explicit spec.md §1 non-goal.
type ports struct {
	vdp *vdp.VDP
}

func newPorts(v *vdp.VDP) *ports { return &ports{vdp: v} }

// In implements membus.PortHandler. SMS I/O uses partial address
// decoding: bits 7-6 select the port group, bit 0 selects even/odd.
func (p *ports) In(port uint8) uint8 {
	switch port & 0xC1 {
	case 0x40: // $40-$7F even: V counter
		return p.vdp.ReadVCounter()
	case 0x41: // $40-$7F odd: H counter
		return p.vdp.ReadHCounter()
	case 0x80: // $80-$BF even: VDP data
		return p.vdp.ReadData()
	case 0x81: // $80-$BF odd: VDP status
		return p.vdp.ReadControl()
	}
	switch port {
	case 0xDC, 0xDD: // joystick data: no input modeled
		return 0xFF
	}
	return 0xFF
}

// Out implements membus.PortHandler.
func (p *ports) Out(port uint8, v uint8) {
	switch port & 0xC1 {
	case 0x80: // $80-$BF even: VDP data
		p.vdp.WriteData(v)
		return
	case 0x81: // $80-$BF odd: VDP control
		p.vdp.WriteControl(v)
		return
	}
	// 0x40-0x7F: PSG, ignored (audio is out of scope).
}
