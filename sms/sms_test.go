package sms

import (
	"testing"

	"github.com/dillonb/sms-go/vdp"
)

func testROM() []uint8 {
	rom := make([]uint8, 0x8000)
	// TMR SEGA signature so DetectCodemasters returns false and the
	// auto-detected mapper is the standard Sega one.
	copy(rom[0x7FF0:], []byte("TMR SEGA"))
	return rom
}

func TestNewSystemWiresComponents(t *testing.T) {
	s := New(testROM(), nil, vdp.RegionNTSC)
	if s.CPU == nil || s.VDP == nil || s.Bus == nil {
		t.Fatal("New should construct CPU, VDP and Bus")
	}
	cycles := s.CPU.Step()
	if cycles <= 0 {
		t.Fatal("CPU should execute at least one instruction")
	}
}

func TestStepFeedsCyclesToVDP(t *testing.T) {
	s := New(testROM(), nil, vdp.RegionNTSC)
	before := s.VDP.VCounter()
	timing := vdp.TimingFor(vdp.RegionNTSC)
	for i := 0; i < timing.CyclesPerLine(); i++ {
		s.Step()
		if s.VDP.VCounter() != before {
			return
		}
	}
	t.Fatal("VDP should have advanced at least one scanline after a full line's worth of CPU cycles")
}

func TestRunFrameAdvancesRoughlyOneFrame(t *testing.T) {
	// RunFrame stops as soon as cumulative cycles reach the frame target,
	// which can overshoot by the last instruction's T-states (at most a
	// few dozen, well under one scanline), so VCounter should land back
	// near 0 rather than at an exact value.
	s := New(testROM(), nil, vdp.RegionNTSC)
	s.RunFrame()
	if v := s.VDP.VCounter(); v > 2 {
		t.Fatalf("VCounter = %d after one RunFrame, want it to have wrapped back near 0", v)
	}
}

func TestTriggerNMIVectorsTo0x0066(t *testing.T) {
	s := New(testROM(), nil, vdp.RegionNTSC)
	s.TriggerNMI()
	s.CPU.Step()
	if s.CPU.PC16() != 0x0066 {
		t.Fatalf("PC = 0x%04X after NMI, want 0x0066", s.CPU.PC16())
	}
}
