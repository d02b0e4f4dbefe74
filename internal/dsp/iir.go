package dsp

import (
	"math"
	"math/cmplx"

	"github.com/sal-audio/sal/internal/logging"
)

// IIRFilter is a direct-form-II IIR filter with real coefficients.
// Grounded on original_source's iirfilter.cpp Filter()/state-shift loop
// (the branch-index convention i=0 is the tap nearest the output); B and A
// are normalised internally to A[0]=1 but the original A[0] is retained so
// NumeratorCoefficient/DenominatorCoefficient can report the un-normalised
// values.
type IIRFilter struct {
	b, a  []float64 // normalised, a[0] == 1
	a0    float64   // original A[0] before normalisation
	state []float64
	log   *logging.Logger
}

// NewIIR constructs a filter from numerator B and denominator A. len(B) must
// equal len(A); the shorter is zero-padded with a warning if not.
func NewIIR(b, a []float64, log *logging.Logger) *IIRFilter {
	if log == nil {
		log = logging.Discard()
	}
	b = append([]float64(nil), b...)
	a = append([]float64(nil), a...)
	if len(b) != len(a) {
		log.Warn("dsp: iir numerator/denominator length mismatch, zero-padding", "len_b", len(b), "len_a", len(a))
		n := len(b)
		if len(a) > n {
			n = len(a)
		}
		for len(b) < n {
			b = append(b, 0)
		}
		for len(a) < n {
			a = append(a, 0)
		}
	}
	a0 := a[0]
	if a0 != 0 && a0 != 1 {
		for i := range b {
			b[i] /= a0
		}
		for i := range a {
			a[i] /= a0
		}
	}
	return &IIRFilter{
		b:     b,
		a:     a,
		a0:    a0,
		state: make([]float64, len(b)),
		log:   log,
	}
}

// IdentityFilter returns a filter for which output == input always.
func IdentityFilter(log *logging.Logger) *IIRFilter {
	return NewIIR([]float64{1}, []float64{1}, log)
}

// GainFilter returns a filter for which output == gain*input always.
func GainFilter(gain float64, log *logging.Logger) *IIRFilter {
	return NewIIR([]float64{gain}, []float64{1}, log)
}

// Order returns the filter's order (len(B)-1).
func (f *IIRFilter) Order() int { return len(f.b) - 1 }

// ProcessSample applies the filter to one input sample.
func (f *IIRFilter) ProcessSample(x float64) float64 {
	n := len(f.b)
	if n == 1 {
		return x * f.b[0]
	}
	v := x
	var y float64
	for i := 1; i < n; i++ {
		v += f.state[i-1] * (-f.a[i])
		y += f.state[i-1] * f.b[i]
	}
	for i := n - 1; i >= 1; i-- {
		f.state[i] = f.state[i-1]
	}
	f.state[0] = v
	y += v * f.b[0]
	return y
}

// ProcessBlock filters a contiguous block sample by sample.
func (f *IIRFilter) ProcessBlock(input, output []float64) {
	if len(output) != len(input) {
		f.log.Error("dsp: iir process_block length mismatch", "input", len(input), "output", len(output))
		return
	}
	for i, x := range input {
		output[i] = f.ProcessSample(x)
	}
}

// ResetState zeroes the filter's internal state.
func (f *IIRFilter) ResetState() {
	for i := range f.state {
		f.state[i] = 0
	}
}

// SetCoefficients replaces B and A. Coefficients may cause audible artifacts
// if changed too rapidly while processing; this is a raw parameter update,
// not a crossfade. The filter state is kept when the order is unchanged.
func (f *IIRFilter) SetCoefficients(b, a []float64) {
	state := f.state
	*f = *NewIIR(b, a, f.log)
	if len(state) == len(f.state) {
		copy(f.state, state)
	}
}

// NumeratorCoefficient returns the original (un-normalised) B[i].
func (f *IIRFilter) NumeratorCoefficient(i int) float64 { return f.b[i] * f.a0 }

// DenominatorCoefficient returns the original (un-normalised) A[i].
func (f *IIRFilter) DenominatorCoefficient(i int) float64 { return f.a[i] * f.a0 }

// FrequencyResponse evaluates the filter's transfer function at the given
// frequencies (Hz), for the given sample rate.
func (f *IIRFilter) FrequencyResponse(freqs []float64, sampleRate float64) []complex128 {
	out := make([]complex128, len(freqs))
	for fi, freq := range freqs {
		w := 2 * math.Pi * freq / sampleRate
		var num, den complex128
		for i, bi := range f.b {
			num += complex(bi, 0) * cmplx.Exp(complex(0, -w*float64(i)))
		}
		for i, ai := range f.a {
			den += complex(ai, 0) * cmplx.Exp(complex(0, -w*float64(i)))
		}
		out[fi] = num / den
	}
	return out
}
