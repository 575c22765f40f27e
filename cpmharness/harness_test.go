package cpmharness

import (
	"testing"

	"github.com/spf13/afero"
)

func writeCom(t *testing.T, fs afero.Fs, name string, program []uint8) {
	t.Helper()
	if err := afero.WriteFile(fs, name, program, 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
}

func TestBDOSFunction9PrintsDollarTerminatedString(t *testing.T) {
	fs := afero.NewMemMapFs()
	// LD C,9 ; LD DE,0x010B ; CALL 5 ; JP 0x0000 ; "HI$"
	program := []uint8{
		0x0E, 0x09,
		0x11, 0x0B, 0x01,
		0xCD, 0x05, 0x00,
		0xC3, 0x00, 0x00,
		'H', 'I', '$',
	}
	writeCom(t, fs, "msg.com", program)

	h := New()
	if err := h.Load(fs, "msg.com"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	result, err := h.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Output != "HI" {
		t.Fatalf("Output = %q, want %q", result.Output, "HI")
	}
	if result.ExitCode != 0 {
		t.Fatalf("ExitCode = %d, want 0", result.ExitCode)
	}
}

func TestBDOSFunction2PrintsSingleChar(t *testing.T) {
	fs := afero.NewMemMapFs()
	// LD C,2 ; LD E,'A' ; CALL 5 ; JP 0x0000
	program := []uint8{
		0x0E, 0x02,
		0x1E, 'A',
		0xCD, 0x05, 0x00,
		0xC3, 0x00, 0x00,
	}
	writeCom(t, fs, "char.com", program)

	h := New()
	if err := h.Load(fs, "char.com"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	result, err := h.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Output != "A" {
		t.Fatalf("Output = %q, want %q", result.Output, "A")
	}
}

func TestLoadRejectsOversizedProgram(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeCom(t, fs, "huge.com", make([]uint8, 0x10000))

	h := New()
	if err := h.Load(fs, "huge.com"); err == nil {
		t.Fatal("expected Load to reject a program too large to fit at 0x0100")
	}
}

func TestRunFaultsOnUnsupportedInterruptMode0(t *testing.T) {
	// DI (F3) isn't needed; just directly raise an interrupt in IM0 to
	// exercise the fatal path. Simplest trigger: EI then an instruction
	// with IM already at 0 (the reset default) and a pending interrupt.
	fs := afero.NewMemMapFs()
	program := []uint8{0xFB, 0x00, 0x00, 0x00} // EI ; NOP x3
	writeCom(t, fs, "im0.com", program)

	h := New()
	if err := h.Load(fs, "im0.com"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	h.cpu.RaiseInterrupt()
	h.MaxInstructions = 10
	_, err := h.Run()
	if err == nil {
		t.Fatal("expected Run to surface the IM0 fault")
	}
}
