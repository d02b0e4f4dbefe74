// Package dsp implements the engine's per-sample filtering primitives: FIR
// convolution with click-free impulse-response crossfading, direct-form-II
// IIR biquads, a graphic equaliser built from a cascade of biquads, and the
// wall-absorption filter presets used by the room model.
package dsp

import (
	"github.com/sal-audio/sal/internal/delay"
	"github.com/sal-audio/sal/internal/logging"
)

// FIRFilter is an online FIR convolver with a ring-buffered delay line
// (algorithm 1 of the three permitted by the public contract: direct
// per-sample convolution). Grounded on internal/delay for the buffer and
// on thesyncim-gopus's plc package for the monotonic-counter crossfade
// shape, generalised here from "fade to silence" to "fade between two
// arbitrary impulse responses."
type FIRFilter struct {
	old, new       []float64
	length         int
	maxInputLength int
	line           *delay.Line

	updateLength int
	updateIndex  int
	updating     bool

	log *logging.Logger
}

// New constructs an FIRFilter with the given impulse response. maxInputLength
// bounds the block size ProcessBlock will be called with; it is validated,
// not used to preallocate a scratch buffer, since the direct per-sample
// algorithm needs none.
func New(impulseResponse []float64, maxInputLength int, log *logging.Logger) *FIRFilter {
	if log == nil {
		log = logging.Discard()
	}
	ir := append([]float64(nil), impulseResponse...)
	length := len(ir)
	if length == 0 {
		length = 1
		ir = []float64{0}
	}
	return &FIRFilter{
		old:            append([]float64(nil), ir...),
		new:            ir,
		length:         length,
		maxInputLength: maxInputLength,
		line:           delay.New(0, length-1, log),
		log:            log,
	}
}

// NewGain returns a one-tap FIR that multiplies its input by gain.
func NewGain(gain float64, maxInputLength int, log *logging.Logger) *FIRFilter {
	return New([]float64{gain}, maxInputLength, log)
}

// NewIdentity returns a one-tap FIR that passes its input through unchanged.
func NewIdentity(maxInputLength int, log *logging.Logger) *FIRFilter {
	return New([]float64{1}, maxInputLength, log)
}

// Length returns the filter's current impulse-response length.
func (f *FIRFilter) Length() int { return f.length }

func (f *FIRFilter) currentCoefficient(i int) float64 {
	if !f.updating {
		return f.new[i]
	}
	w := float64(f.updateIndex+1) / float64(f.updateLength+1)
	return w*f.new[i] + (1-w)*f.old[i]
}

// ProcessSample applies the filter to one input sample.
func (f *FIRFilter) ProcessSample(x float64) float64 {
	f.line.Write(x)

	var y float64
	for i := 0; i < f.length; i++ {
		y += f.currentCoefficient(i) * f.line.ReadAt(i)
	}

	if f.updating {
		f.updateIndex++
		f.updating = f.updateIndex <= f.updateLength
		if !f.updating {
			f.old = append([]float64(nil), f.new...)
		}
	}

	f.line.Tick()
	return y
}

// ProcessBlock convolves a contiguous block. output must be the same length
// as input; it is filled by repeated calls to ProcessSample, so it is
// bit-identical to sample-by-sample processing by construction.
func (f *FIRFilter) ProcessBlock(input, output []float64) {
	if len(output) != len(input) {
		f.log.Error("dsp: fir process_block length mismatch", "input", len(input), "output", len(output))
		return
	}
	if len(input) > f.maxInputLength && f.maxInputLength > 0 {
		f.log.Warn("dsp: fir process_block exceeds max_input_length", "len", len(input), "max", f.maxInputLength)
	}
	for i, x := range input {
		output[i] = f.ProcessSample(x)
	}
}

// SetImpulseResponse begins a crossfade toward newIR over updateLength
// samples. If newIR's length differs from the current length the filter is
// reset instead: state cleared, counters zeroed, newIR used immediately. If
// a crossfade is already in progress, the new fade originates from the
// currently interpolated coefficients so there is no audible discontinuity.
func (f *FIRFilter) SetImpulseResponse(newIR []float64, updateLength int) {
	if updateLength < 0 {
		updateLength = 0
	}
	if len(newIR) != f.length {
		f.length = len(newIR)
		f.old = append([]float64(nil), newIR...)
		f.new = append([]float64(nil), newIR...)
		f.updateIndex = 0
		f.updateLength = 0
		f.updating = false
		f.line = delay.New(0, max(f.length-1, 0), f.log)
		return
	}

	cur := make([]float64, f.length)
	for i := range cur {
		cur[i] = f.currentCoefficient(i)
	}
	f.old = cur
	f.new = append([]float64(nil), newIR...)
	f.updateIndex = 0
	f.updateLength = updateLength
	f.updating = true
}

// ResetState zeroes the delay line only; crossfade state is untouched.
func (f *FIRFilter) ResetState() {
	f.line.ResetState()
}
