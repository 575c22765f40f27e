package cpmharness

import (
	"bytes"
	"fmt"

	"github.com/spf13/afero"

	"github.com/dillonb/sms-go/z80"
)

// Result is the outcome of running a .com program to completion.
type Result struct {
	Output   string
	ExitCode int
}

// Harness loads and runs a single CP/M .com program against the z80
// core, per spec.md §6's "CP/M test harness" and §8's zexdoc/zexall/
// prelim scenarios.
type Harness struct {
	bus *bus
	cpu *z80.CPU
	out bytes.Buffer

	// MaxInstructions bounds a run that never hits the warm-boot trap
	// (a programmer fault in the test program itself, or a core bug);
	// zero means unbounded. zexall/zexdoc run tens of billions of
	// T-states but a handful of billion instructions at most, so a
	// caller driving a CI timeout should set this.
	MaxInstructions int
}

// New constructs a Harness ready to Load a program.
func New() *Harness {
	h := &Harness{}
	h.bus = newBus(&h.out)
	h.cpu = z80.NewCPU(h.bus)
	h.bus.attach(h.cpu)
	return h
}

// Load reads path from fs, installs it at 0x0100 (spec.md §6), and sets
// PC to the entry point. SP is set to 0xF000, well above the loaded
// program, so the stack has room before the test program sets its own.
func (h *Harness) Load(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("cpmharness: reading %s: %w", path, err)
	}
	if len(data) > len(h.bus.mem)-loadAddr {
		return fmt.Errorf("cpmharness: %s is %d bytes, too large to fit at 0x%04X", path, len(data), loadAddr)
	}
	copy(h.bus.mem[loadAddr:], data)
	h.cpu.SetPC(loadAddr)
	h.cpu.SP = 0xF000
	return nil
}

// Run steps the CPU until the program jumps to the warm-boot trap
// (0x0000) or a fatal Fault is raised. A Fault aborts the run and is
// returned as an error, per spec.md §7 class 1 (programmer faults).
func (h *Harness) Run() (Result, error) {
	steps := 0
	for {
		done, err := h.Step()
		if err != nil {
			return Result{Output: h.out.String()}, err
		}
		if done {
			return Result{Output: h.out.String(), ExitCode: 0}, nil
		}
		steps++
		if h.MaxInstructions != 0 && steps >= h.MaxInstructions {
			return Result{Output: h.out.String()}, fmt.Errorf("cpmharness: exceeded %d instructions without reaching warm boot", h.MaxInstructions)
		}
	}
}

// Step executes a single instruction, for hosts that want to trace
// execution (cmd/zextest's --trace). done reports whether the program
// has just reached the warm-boot trap; it is also true when the CPU
// raised a Fault, in which case err is non-nil.
func (h *Harness) Step() (done bool, err error) {
	h.cpu.Step()
	if h.cpu.Fault != nil {
		return true, fmt.Errorf("cpmharness: %w", h.cpu.Fault)
	}
	return h.bus.done, nil
}

// Output returns everything written through the BDOS console stubs so far.
func (h *Harness) Output() string { return h.out.String() }

// PeekByte returns the byte at addr without side effects, for trace
// logging hosts.
func (h *Harness) PeekByte(addr uint16) uint8 { return h.bus.mem[addr] }

// PC returns the CPU's current program counter, for trace logging.
func (h *Harness) PC() uint16 { return h.cpu.PC16() }
