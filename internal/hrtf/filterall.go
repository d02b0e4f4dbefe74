package hrtf

import "github.com/sal-audio/sal/internal/dsp"

// FilterAll runs every stored impulse response in the grid through f,
// resetting f's state between entries so one IR's tail never bleeds into
// the next. Grounded on original_source's BinauralMic::FilterAll, which
// lets a host pre-apply a correction filter (e.g. an inverse headphone
// response) across the whole HRIR database.
func (g *Grid) FilterAll(f *dsp.IIRFilter) {
	f.ResetState()
	for _, row := range g.left {
		for i, ir := range row {
			row[i] = runThrough(f, ir)
		}
	}
	for _, row := range g.right {
		for i, ir := range row {
			row[i] = runThrough(f, ir)
		}
	}
}

func runThrough(f *dsp.IIRFilter, ir []float64) []float64 {
	out := make([]float64, len(ir))
	f.ProcessBlock(ir, out)
	f.ResetState()
	return out
}
