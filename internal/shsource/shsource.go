// Package shsource implements the spherical-harmonic directional source:
// a table of per-frequency SH coefficient vectors whose real-part transfer
// function drives a per-wave-id graphic EQ. Grounded on
// original_source/src/shsource.cpp.
package shsource

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/sal-audio/sal/internal/dsp"
	"github.com/sal-audio/sal/internal/geom"
	"github.com/sal-audio/sal/internal/logging"
)

// Source carries the centre-frequency table and per-frequency SH
// coefficient vectors (index l*l+l+m within each frequency's vector).
type Source struct {
	CentreFrequencies []float64
	Coefficients      [][]complex128
	SampleRate        float64
	Q                 float64
	Log               *logging.Logger
}

func freqIndex(centres []float64, f float64) int {
	i := sort.SearchFloat64s(centres, f)
	if i >= len(centres) {
		i = len(centres) - 1
	}
	return i
}

// TransferFunction evaluates H(f, p) = Σ c_{n,m}(f) · Y_n^m(theta(p), phi(p))
// and returns its real part. theta/phi follow original_source's front-pole
// convention: theta is the angle from the source's +x (look) axis, phi
// wraps around that axis through the y-z plane.
func (s *Source) TransferFunction(f float64, p geom.Point) float64 {
	n := p.Norm()
	if n == 0 {
		n = 1
	}
	theta := math.Acos(clamp(p.X/n, -1, 1))
	phi := math.Atan2(p.Y, p.Z)

	idx := freqIndex(s.CentreFrequencies, f)
	coeffs := s.Coefficients[idx]
	out := coeffs[0] * sphericalHarmonic(0, 0, theta, phi)
	degrees := int(math.Sqrt(float64(len(coeffs))))
	for l := 1; l < degrees; l++ {
		for m := -l; m <= l; m++ {
			sh := sphericalHarmonic(l, m, theta, phi)
			shIndex := l*l + l + m
			if shIndex < len(coeffs) {
				out += coeffs[shIndex] * sh
			}
		}
	}
	return real(out)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// TransferFunctionAll evaluates TransferFunction at every entry of freqs.
func (s *Source) TransferFunctionAll(freqs []float64, p geom.Point) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = s.TransferFunction(f, p)
	}
	return out
}

// Gains returns the directivity gain at each of the source's own centre
// frequencies, for observation point p.
func (s *Source) Gains(p geom.Point) []float64 {
	return s.TransferFunctionAll(s.CentreFrequencies, p)
}

// GraphicEQ builds a fresh graphic EQ whose bands sit at the source's
// centre frequencies, initialised to the forward-axis (1,0,0) gains.
func (s *Source) GraphicEQ() *dsp.GraphicEQ {
	eq := dsp.NewGraphicEQ(s.CentreFrequencies, s.Q, s.SampleRate, s.Log)
	gains := s.Gains(geom.NewPoint(1, 0, 0))
	eq.SetGain(gainsToDB(gains), 0)
	return eq
}

// gainsToDB converts linear transfer-function values to dB magnitude for
// dsp.GraphicEQ.SetGain. This is a magnitude-only approximation: a negative
// real part (a phase-inverted lobe of the directivity pattern) collapses to
// the same dB value as its positive counterpart, since a biquad cascade's
// dB-parameterised gain can't express a sign flip. Acceptable here because
// the engine's audible output only cares about magnitude response.
func gainsToDB(gains []float64) []float64 {
	db := make([]float64, len(gains))
	for i, g := range gains {
		db[i] = 20 * math.Log10(math.Max(math.Abs(g), 1e-12))
	}
	return db
}

// sphericalHarmonic evaluates the complex spherical harmonic Y_l^m(theta,
// phi) with the Condon-Shortley phase, matching original_source's
// dsp::SphericalHarmonic used directly (not the ambisonic real-SH
// convention in internal/ambisonics, which omits the phase and combines
// +-m into cos/sin pairs).
func sphericalHarmonic(l, m int, theta, phi float64) complex128 {
	absM := m
	if absM < 0 {
		absM = -m
	}
	norm := math.Sqrt(float64(2*l+1) / (4 * math.Pi) * factorialRatio(l-absM, l+absM))
	p := associatedLegendreCS(l, absM, math.Cos(theta))
	y := complex(norm*p, 0) * cmplx.Exp(complex(0, float64(m)*phi))
	if m < 0 {
		sign := 1.0
		if absM%2 == 1 {
			sign = -1.0
		}
		return complex(sign, 0) * cmplx.Conj(sphericalHarmonicPositiveM(l, absM, theta, phi))
	}
	return y
}

func sphericalHarmonicPositiveM(l, m int, theta, phi float64) complex128 {
	norm := math.Sqrt(float64(2*l+1) / (4 * math.Pi) * factorialRatio(l-m, l+m))
	p := associatedLegendreCS(l, m, math.Cos(theta))
	return complex(norm*p, 0) * cmplx.Exp(complex(0, float64(m)*phi))
}

func factorialRatio(numFact, denomFact int) float64 {
	r := 1.0
	for i := numFact + 1; i <= denomFact; i++ {
		r *= float64(i)
	}
	return 1 / r
}

// associatedLegendreCS evaluates P_l^m(x) WITH the Condon-Shortley (-1)^m
// phase, per the standard physics convention sphericalHarmonic needs.
func associatedLegendreCS(l, m int, x float64) float64 {
	pmm := 1.0
	if m > 0 {
		somx2 := math.Sqrt(math.Max(0, 1-x*x))
		fact := 1.0
		sign := -1.0
		for i := 1; i <= m; i++ {
			pmm *= sign * fact * somx2
			fact += 2
		}
	}
	if l == m {
		return pmm
	}
	pmmp1 := x * float64(2*m+1) * pmm
	if l == m+1 {
		return pmmp1
	}
	var pll float64
	pnm2, pnm1 := pmm, pmmp1
	for ll := m + 2; ll <= l; ll++ {
		pll = (x*float64(2*ll-1)*pnm1 - float64(ll+m-1)*pnm2) / float64(ll-m)
		pnm2, pnm1 = pnm1, pll
	}
	return pll
}
