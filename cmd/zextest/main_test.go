package main

import (
	"testing"

	"github.com/spf13/afero"
)

func TestRunOnePrintsBDOSOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	// LD C,9 ; LD DE,0x010B ; CALL 5 ; JP 0x0000 ; "OK$"
	program := []uint8{
		0x0E, 0x09,
		0x11, 0x0B, 0x01,
		0xCD, 0x05, 0x00,
		0xC3, 0x00, 0x00,
		'O', 'K', '$',
	}
	if err := afero.WriteFile(fs, "ok.com", program, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := runOne(fs, "ok.com", false); err != nil {
		t.Fatalf("runOne: %v", err)
	}
}

func TestRunOneSurfacesLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := runOne(fs, "missing.com", false); err == nil {
		t.Fatal("expected an error for a missing .com file")
	}
}
