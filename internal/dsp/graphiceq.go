package dsp

import (
	"math"

	"github.com/sal-audio/sal/internal/logging"
)

// peakingFilter builds an RBJ audio-EQ-cookbook peaking biquad at centre
// frequency fc, Q factor q, linear gain, and sample rate fs.
func peakingFilter(fc, q, gain, fs float64, log *logging.Logger) *IIRFilter {
	w0 := 2 * math.Pi * fc / fs
	A := math.Sqrt(gain)
	alpha := math.Sin(w0) / (2 * q)
	cosw0 := math.Cos(w0)

	b := []float64{1 + alpha*A, -2 * cosw0, 1 - alpha*A}
	a := []float64{1 + alpha/A, -2 * cosw0, 1 - alpha/A}
	return NewIIR(b, a, log)
}

// lowShelfFilter builds an RBJ cookbook low-shelf biquad (shelf slope S=1).
func lowShelfFilter(fc, q, gain, fs float64, log *logging.Logger) *IIRFilter {
	w0 := 2 * math.Pi * fc / fs
	A := math.Sqrt(gain)
	cosw0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	sqrtA := math.Sqrt(A)

	b := []float64{
		A * ((A + 1) - (A-1)*cosw0 + 2*sqrtA*alpha),
		2 * A * ((A - 1) - (A+1)*cosw0),
		A * ((A + 1) - (A-1)*cosw0 - 2*sqrtA*alpha),
	}
	a := []float64{
		(A + 1) + (A-1)*cosw0 + 2*sqrtA*alpha,
		-2 * ((A - 1) + (A+1)*cosw0),
		(A + 1) + (A-1)*cosw0 - 2*sqrtA*alpha,
	}
	return NewIIR(b, a, log)
}

// highShelfFilter builds an RBJ cookbook high-shelf biquad (shelf slope S=1).
func highShelfFilter(fc, q, gain, fs float64, log *logging.Logger) *IIRFilter {
	w0 := 2 * math.Pi * fc / fs
	A := math.Sqrt(gain)
	cosw0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	sqrtA := math.Sqrt(A)

	b := []float64{
		A * ((A + 1) + (A-1)*cosw0 + 2*sqrtA*alpha),
		-2 * A * ((A - 1) + (A+1)*cosw0),
		A * ((A + 1) + (A-1)*cosw0 - 2*sqrtA*alpha),
	}
	a := []float64{
		(A + 1) - (A-1)*cosw0 + 2*sqrtA*alpha,
		2 * ((A - 1) - (A+1)*cosw0),
		(A + 1) - (A-1)*cosw0 - 2*sqrtA*alpha,
	}
	return NewIIR(b, a, log)
}

// gainRamp is a small per-filter linear ramp, independent of (and
// structurally identical to) internal/propagation.Smoother: dsp stays free
// of a dependency on the propagation package, which has no reason to know
// about equaliser gains.
type gainRamp struct {
	current, target float64
	remaining        int
	step             float64
}

func (r *gainRamp) setTarget(target float64, rampSamples int) {
	r.target = target
	if rampSamples <= 0 {
		r.remaining = 0
		return
	}
	r.remaining = rampSamples
	r.step = (target - r.current) / float64(rampSamples)
}

func (r *gainRamp) advance() float64 {
	if r.remaining <= 0 {
		r.current = r.target
		return r.current
	}
	r.current += r.step
	r.remaining--
	if r.remaining == 0 {
		r.current = r.target
	}
	return r.current
}

// GraphicEQ cascades a low shelf, N peaking bands, and a high shelf.
// Target per-band dB gains are converted to per-filter gains by multiplying
// by a precomputed inverse of the bands' cross-coupling response matrix
// (each band filter's response leaks into its neighbours' measured gain).
// Grounded on original_source's graphiceq.h contract; the matrix solve is a
// small closed-form Gauss-Jordan inversion local to this package, not a
// generic linear-algebra dependency (out of scope per the spec's numeric
// layer notes).
type GraphicEQ struct {
	fc       []float64
	q        float64
	fs       float64
	low      *IIRFilter
	peaking  []*IIRFilter
	high     *IIRFilter
	invM     [][]float64
	rampsDB  []gainRamp
	log      *logging.Logger
}

// NewGraphicEQ builds a graphic EQ with a low shelf, high shelf, and one
// peaking filter per interior centre frequency in fc (fc must have at least
// 2 entries: fc[0] is the low-shelf corner, fc[len(fc)-1] the high-shelf
// corner, the rest are peaking centre frequencies).
func NewGraphicEQ(fc []float64, q, sampleRate float64, log *logging.Logger) *GraphicEQ {
	if log == nil {
		log = logging.Discard()
	}
	n := len(fc)
	eq := &GraphicEQ{
		fc:      append([]float64(nil), fc...),
		q:       q,
		fs:      sampleRate,
		low:     lowShelfFilter(fc[0], q, 1, sampleRate, log),
		high:    highShelfFilter(fc[n-1], q, 1, sampleRate, log),
		peaking: make([]*IIRFilter, n-2),
		rampsDB: make([]gainRamp, n),
		log:     log,
	}
	for i := 1; i < n-1; i++ {
		eq.peaking[i-1] = peakingFilter(fc[i], q, 1, sampleRate, log)
	}
	eq.invM = invert(eq.responseMatrix())
	return eq
}

// responseMatrix builds the per-dB sensitivity matrix M[i][j]: the dB
// response of filter j at centre frequency fc[i], for a reference dB boost,
// normalised to that reference so M approximates a linear per-dB map.
func (eq *GraphicEQ) responseMatrix() [][]float64 {
	const refDB = 12.0
	refGain := math.Pow(10, refDB/20)
	n := len(eq.fc)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		var filt *IIRFilter
		switch {
		case j == 0:
			filt = lowShelfFilter(eq.fc[0], eq.q, refGain, eq.fs, eq.log)
		case j == n-1:
			filt = highShelfFilter(eq.fc[n-1], eq.q, refGain, eq.fs, eq.log)
		default:
			filt = peakingFilter(eq.fc[j], eq.q, refGain, eq.fs, eq.log)
		}
		resp := filt.FrequencyResponse(eq.fc, eq.fs)
		for i, h := range resp {
			mag := math.Hypot(real(h), imag(h))
			db := 20 * math.Log10(math.Max(mag, 1e-12))
			m[i][j] = db / refDB
		}
	}
	return m
}

// SetGain retargets each band's dB gain toward target, ramping linearly over
// rampSamples samples (0 = instantaneous). The per-filter gains are solved
// via the precomputed inverse response matrix; bands already at target are
// left alone.
func (eq *GraphicEQ) SetGain(targetDB []float64, rampSamples int) {
	filterDB := applyMatrix(eq.invM, targetDB)
	for i, g := range filterDB {
		eq.rampsDB[i].setTarget(g, rampSamples)
	}
}

func (eq *GraphicEQ) applyRampedGains() {
	n := len(eq.fc)
	for i := 0; i < n; i++ {
		r := &eq.rampsDB[i]
		if r.remaining <= 0 && r.current == r.target {
			continue
		}
		gainDB := r.advance()
		gain := math.Pow(10, gainDB/20)
		switch {
		case i == 0:
			eq.low.SetCoefficients(lowShelfCoefficients(eq.fc[0], eq.q, gain, eq.fs))
		case i == n-1:
			eq.high.SetCoefficients(highShelfCoefficients(eq.fc[n-1], eq.q, gain, eq.fs))
		default:
			eq.peaking[i-1].SetCoefficients(peakingCoefficients(eq.fc[i], eq.q, gain, eq.fs))
		}
	}
}

// ProcessSample runs the cascade for one input sample.
func (eq *GraphicEQ) ProcessSample(x float64) float64 {
	eq.applyRampedGains()
	y := eq.low.ProcessSample(x)
	for _, p := range eq.peaking {
		y = p.ProcessSample(y)
	}
	return eq.high.ProcessSample(y)
}

// ProcessBlock runs the cascade over a contiguous block.
func (eq *GraphicEQ) ProcessBlock(input, output []float64) {
	if len(output) != len(input) {
		eq.log.Error("dsp: graphiceq process_block length mismatch", "input", len(input), "output", len(output))
		return
	}
	for i, x := range input {
		output[i] = eq.ProcessSample(x)
	}
}

// ResetState zeroes every stage's filter state.
func (eq *GraphicEQ) ResetState() {
	eq.low.ResetState()
	for _, p := range eq.peaking {
		p.ResetState()
	}
	eq.high.ResetState()
}

func lowShelfCoefficients(fc, q, gain, fs float64) ([]float64, []float64) {
	f := lowShelfFilter(fc, q, gain, fs, nil)
	return f.b, f.a
}

func highShelfCoefficients(fc, q, gain, fs float64) ([]float64, []float64) {
	f := highShelfFilter(fc, q, gain, fs, nil)
	return f.b, f.a
}

func peakingCoefficients(fc, q, gain, fs float64) ([]float64, []float64) {
	f := peakingFilter(fc, q, gain, fs, nil)
	return f.b, f.a
}

// invert returns the inverse of a square matrix via Gauss-Jordan
// elimination with partial pivoting. Local to this package: the engine's
// numeric layer deliberately excludes a general linear-algebra dependency,
// and graphic-EQ band counts are small (a handful of bands), so a plain
// O(n^3) elimination is adequate.
func invert(m [][]float64) [][]float64 {
	n := len(m)
	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], m[i])
		aug[i][n+i] = 1
	}
	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug[r][col]); v > best {
				pivot, best = r, v
			}
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		p := aug[col][col]
		if p == 0 {
			p = 1e-12
		}
		for k := 0; k < 2*n; k++ {
			aug[col][k] /= p
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			for k := 0; k < 2*n; k++ {
				aug[r][k] -= factor * aug[col][k]
			}
		}
	}
	inv := make([][]float64, n)
	for i := range inv {
		inv[i] = append([]float64(nil), aug[i][n:]...)
	}
	return inv
}

func applyMatrix(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(m))
	for i := range m {
		var sum float64
		for j, mij := range m[i] {
			sum += mij * v[j]
		}
		out[i] = sum
	}
	return out
}
