// Command zextest runs CP/M test programs (zexdoc, zexall, prelim)
// against the z80 core via cpmharness, per spec.md §6/§8.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dillonb/sms-go/cpmharness"
)

// suiteFiles lists the standard CP/M conformance programs in the order
// `suite` runs them; spec.md §8's three concrete scenarios.
var suiteFiles = []string{"zexdoc.com", "zexall.com", "prelim.com"}

func main() {
	var (
		biosPath string
		region   string
		trace    bool
	)

	root := &cobra.Command{
		Use:   "zextest",
		Short: "Run CP/M Z80 conformance tests against the sms-go core",
	}
	// bios/region are accepted for interface parity with a full SMS ROM
	// runner; the CP/M harness itself never touches the VDP or BIOS, so
	// their values are neither checked nor used here.
	root.PersistentFlags().StringVar(&biosPath, "bios", "", "path to an SMS BIOS image (unused by the CP/M harness)")
	root.PersistentFlags().StringVar(&region, "region", "ntsc", "console region: ntsc or pal (unused by the CP/M harness)")
	root.PersistentFlags().BoolVar(&trace, "trace", false, "log every executed instruction's PC and opcode")

	root.AddCommand(
		newRunCmd(&trace),
		newSuiteCmd(&trace),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd(trace *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run [path.com]",
		Short: "Run a single CP/M .com file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOne(afero.NewOsFs(), args[0], *trace)
		},
	}
}

func newSuiteCmd(trace *bool) *cobra.Command {
	var dir string
	c := &cobra.Command{
		Use:   "suite",
		Short: "Run zexdoc, zexall and prelim in sequence, stopping at the first failure",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			for _, name := range suiteFiles {
				path := name
				if dir != "" {
					path = dir + "/" + name
				}
				fmt.Printf("=== %s ===\n", name)
				if err := runOne(fs, path, *trace); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}
			return nil
		},
	}
	c.Flags().StringVar(&dir, "dir", "", "directory containing zexdoc.com/zexall.com/prelim.com")
	return c
}

func runOne(fs afero.Fs, path string, trace bool) error {
	h := cpmharness.New()
	if err := h.Load(fs, path); err != nil {
		return err
	}

	if trace {
		result, err := runTraced(h)
		fmt.Print(result.Output)
		if err != nil {
			return err
		}
		return nil
	}

	result, err := h.Run()
	fmt.Print(result.Output)
	if err != nil {
		return err
	}
	return nil
}

func runTraced(h *cpmharness.Harness) (cpmharness.Result, error) {
	for {
		pc := h.PC()
		opcode := h.PeekByte(pc)
		log.Printf("PC=%04X opcode=%02X", pc, opcode)
		done, err := h.Step()
		if err != nil {
			return cpmharness.Result{Output: h.Output()}, err
		}
		if done {
			return cpmharness.Result{Output: h.Output(), ExitCode: 0}, nil
		}
	}
}
