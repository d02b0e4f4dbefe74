package ambisonics

import (
	"math"

	"github.com/sal-audio/sal/internal/directivity"
	"github.com/sal-audio/sal/internal/geom"
)

// Encoder writes a plane wave's contribution into every HOA channel up to
// Order. HorizontalOnly selects the classical sqrt(2)*cos(m*theta) /
// sqrt(2)*sin(m*theta) pair encoding (original_source's
// AmbisonicsMic::HorizontalEncoding); the full-3D path evaluates real
// spherical harmonics under Normalization.
type Encoder struct {
	Order          int
	HorizontalOnly bool
	Ordering       ChannelOrdering
	Normalization  Normalization
}

// EncodeInto adds sample, weighted by the plane-wave encoding coefficients
// for incidence direction p, into every channel of buf at sampleIndex.
func (e Encoder) EncodeInto(sample float64, p geom.Point, buf *HoaBuffer, sampleIndex int) {
	if e.HorizontalOnly {
		e.encodeHorizontal(sample, p, buf, sampleIndex)
		return
	}
	e.encode3D(sample, p, buf, sampleIndex)
}

func (e Encoder) encodeHorizontal(sample float64, p geom.Point, buf *HoaBuffer, sampleIndex int) {
	theta := p.Phi()
	buf.AddSample(0, 0, sampleIndex, sample)
	for i := 1; i <= e.Order; i++ {
		fi := float64(i)
		buf.AddSample(i, 1, sampleIndex, sample*math.Sqrt2*math.Cos(fi*theta))
		buf.AddSample(i, -1, sampleIndex, sample*math.Sqrt2*math.Sin(fi*theta))
	}
}

// encode3D evaluates real spherical harmonics at p's (colatitude, azimuth)
// — geom.Point.Theta() (angle from +z) and geom.Point.Phi() (azimuth from
// +x) — under the real-SH convention with the selected normalisation.
func (e Encoder) encode3D(sample float64, p geom.Point, buf *HoaBuffer, sampleIndex int) {
	theta := p.Theta()
	phi := p.Phi()
	cosTheta := math.Cos(theta)
	for n := 0; n <= e.Order; n++ {
		for m := -n; m <= n; m++ {
			y := realSphericalHarmonic(n, m, cosTheta, phi, e.Normalization)
			buf.AddSample(n, m, sampleIndex, sample*y)
		}
	}
}

// ReceiveAndAdd satisfies internal/directivity.Directivity structurally:
// localInput is the plane-wave sample and out is the current sample's HOA
// channel row (length ChannelCount(Order, HorizontalOnly)).
func (e Encoder) ReceiveAndAdd(localInput float64, relativePoint geom.Point, out []float64) {
	n := ChannelCount(e.Order, e.HorizontalOnly)
	tmp := NewHoaBuffer(e.Order, e.HorizontalOnly, e.Ordering, e.Normalization, 1)
	e.EncodeInto(localInput, relativePoint, tmp, 0)
	for ch := 0; ch < n && ch < len(out); ch++ {
		out[ch] += tmp.Channel(ch)[0]
	}
}

// ResetState is a no-op: the encoder itself is stateless.
func (e Encoder) ResetState() {}

// Copy returns e unchanged: Encoder is a stateless value type.
func (e Encoder) Copy() directivity.Directivity { return e }

// realSphericalHarmonic evaluates the normalised real spherical harmonic of
// degree n, order m at (cosTheta, phi).
func realSphericalHarmonic(n, m int, cosTheta, phi float64, norm Normalization) float64 {
	absM := m
	if absM < 0 {
		absM = -m
	}
	p := associatedLegendre(n, absM, cosTheta)
	k := normalizationFactor(n, absM, norm)
	if m == 0 {
		return k * p
	}
	if m > 0 {
		return k * p * math.Sqrt2 * math.Cos(float64(m)*phi)
	}
	return k * p * math.Sqrt2 * math.Sin(float64(absM)*phi)
}

func normalizationFactor(n, absM int, norm Normalization) float64 {
	ratio := factorialRatio(n-absM, n+absM)
	switch norm {
	case N3D:
		return math.Sqrt(float64(2*n+1) / (4 * math.Pi) * ratio)
	default: // SN3D and FuMaNorm share the Schmidt semi-normalisation here
		return math.Sqrt(ratio)
	}
}

func factorialRatio(numFact, denomFact int) float64 {
	// (numFact)! / (denomFact)!, numFact <= denomFact always here.
	r := 1.0
	for i := numFact + 1; i <= denomFact; i++ {
		r *= float64(i)
	}
	return 1 / r
}

// associatedLegendre evaluates P_n^m(x) without the Condon-Shortley phase,
// via the standard three-term recurrence.
func associatedLegendre(n, m int, x float64) float64 {
	pmm := 1.0
	if m > 0 {
		somx2 := math.Sqrt(math.Max(0, 1-x*x))
		fact := 1.0
		for i := 1; i <= m; i++ {
			pmm *= fact * somx2
			fact += 2
		}
	}
	if n == m {
		return pmm
	}
	pmmp1 := x * float64(2*m+1) * pmm
	if n == m+1 {
		return pmmp1
	}
	var pnn float64
	pnm2, pnm1 := pmm, pmmp1
	for ni := m + 2; ni <= n; ni++ {
		pnn = (x*float64(2*ni-1)*pnm1 - float64(ni+m-1)*pnm2) / float64(ni-m)
		pnm2, pnm1 = pnm1, pnn
	}
	return pnn
}
