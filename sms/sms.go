// Package sms wires the Z80 core, VDP and memory bus into one SMS
// console: a single-threaded, cooperative run loop driving CPU.Step() ->
// VDP.Step(cycles) (spec.md §5), plus the Pause-button NMI and the
// NTSC/PAL region switch SPEC_FULL.md §3 adds.
package sms

import (
	"github.com/dillonb/sms-go/membus"
	"github.com/dillonb/sms-go/vdp"
	"github.com/dillonb/sms-go/z80"
)

// System is one SMS console instance: CPU + VDP + bus + ports, wired
// together and ready to run.
type System struct {
	CPU *z80.CPU
	VDP *vdp.VDP
	Bus *membus.Bus

	region vdp.Region
}

// New constructs a System for the given cartridge ROM, optional BIOS
// image (nil for none), and region. The mapper is auto-detected from the
// ROM header per membus.NewBus.
func New(rom, bios []uint8, region vdp.Region) *System {
	v := vdp.New(region)
	p := newPorts(v)
	bus := membus.NewBus(rom, bios, p)
	cpu := z80.NewCPU(bus)

	return &System{
		CPU:    cpu,
		VDP:    v,
		Bus:    bus,
		region: region,
	}
}

// Reset restores the CPU and VDP to their post-power-on state (spec.md §3
// Lifecycles). Mapper bank state is left as the cartridge programmed it,
// matching real hardware (mapper banks start undefined until boot code
// programs them; a reset line doesn't reprogram cartridge hardware).
func (s *System) Reset() {
	s.CPU.Reset()
	s.VDP.Reset()
}

// Step runs exactly one CPU instruction and feeds its T-state count to
// the VDP, then raises or clears the CPU's maskable-interrupt line from
// the VDP's latched interrupt state. This is spec.md §2's data flow:
// "host calls step() on the CPU... feeds that count to Vdp::step(cycles),
// which... may assert an interrupt line visible to the CPU on its next
// step."
func (s *System) Step() int {
	cycles := s.CPU.Step()
	s.VDP.Step(cycles)
	if s.VDP.InterruptPending() {
		s.CPU.RaiseInterrupt()
	} else {
		s.CPU.ClearInterrupt()
	}
	return cycles
}

// RunFrame steps the system until the VDP completes one full frame
// (cyclesPerLine * total scanlines worth of CPU cycles), or until the CPU
// raises a Fault. It returns nothing; the rendered frame is left in
// s.VDP.Framebuffer().
func (s *System) RunFrame() {
	timing := vdp.TimingFor(s.region)
	target := timing.CyclesPerLine() * timing.Scanlines
	executed := 0
	for executed < target {
		executed += s.Step()
		if s.CPU.Fault != nil {
			return
		}
	}
}

// TriggerNMI raises the non-maskable interrupt the SMS wires to the
// Pause button.
func (s *System) TriggerNMI() {
	s.CPU.RaiseNMI()
}
