package vdp

// Region selects the console's video timing: NTSC (262 scanlines, 60Hz)
// or PAL (313 scanlines, 50Hz). spec.md §4.3's scanline constants are the
// NTSC case; Region generalizes them to both.
type Region int

const (
	RegionNTSC Region = iota
	RegionPAL
)

func (r Region) String() string {
	switch r {
	case RegionNTSC:
		return "NTSC"
	case RegionPAL:
		return "PAL"
	default:
		return "Unknown"
	}
}

// Timing holds the per-region constants spec.md §4.3 fixes at
// num_scanlines=262, fps=60, cycles_per_line=3579545/262/60.
type Timing struct {
	CPUClockHz int
	Scanlines  int
	FPS        int
}

var ntscTiming = Timing{CPUClockHz: 3579545, Scanlines: 262, FPS: 60}
var palTiming = Timing{CPUClockHz: 3546893, Scanlines: 313, FPS: 50}

// TimingFor returns the timing table for r.
func TimingFor(r Region) Timing {
	if r == RegionPAL {
		return palTiming
	}
	return ntscTiming
}

// CyclesPerLine is spec.md §4.3's cycles_per_line, generalized per region.
func (t Timing) CyclesPerLine() int {
	return t.CPUClockHz / t.Scanlines / t.FPS
}
