package ism

import (
	"math"

	"github.com/sal-audio/sal/internal/delay"
	"github.com/sal-audio/sal/internal/dsp"
	"github.com/sal-audio/sal/internal/geom"
	"github.com/sal-audio/sal/internal/logging"
)

// Interpolation selects how an image's sub-sample delay is represented.
type Interpolation int

const (
	// NoInterpolation writes a single rounded-delay tap.
	NoInterpolation Interpolation = iota
	// Peterson writes a Hann-windowed, bandlimited-sinc tap spread over a
	// short window around the true delay.
	Peterson
)

// Config parameterises a Model. Room, SourcePosition, and ReceiverPosition
// determine the enumerated images; RIRLength/SampleRate/SoundSpeed bound
// which images survive; Rand is an optional host-supplied jitter source
// (random-number generation is an external collaborator, per spec, so
// this package never seeds its own).
type Config struct {
	Room              Room
	SourcePosition    geom.Point
	ReceiverPosition  geom.Point
	ReceiverChannels  int
	RIRLength         int
	SampleRate        float64
	SoundSpeed        float64
	Interpolation     Interpolation
	RandomDistance    float64
	Rand              RandomSource
	PetersonWindow    float64 // seconds; defaults to 0.004 (Peterson's paper value)
	MaxInputLength    int
	Log               *logging.Logger
}

type image struct {
	position    geom.Point
	line        *delay.Line
	fir         *dsp.FIRFilter
	attenuation float64
}

// Model enumerates a cuboid room's image sources for one source/receiver
// pair and drives each through an integer delay line plus a fractional
// FIR into the receiver's directivity. Grounded on
// original_source/src/ism.cpp's Ism class, generalised from that file's
// single-convolution omni-only fast path to the spec's per-image,
// direction-preserving routing (each image calls the receiver's
// directivity at its own relative position, not a pre-summed flat RIR).
type Model struct {
	cfg     Config
	images  []image
	stale   bool
	scratch []float64
}

// NewModel builds a Model. The image list is computed lazily, on first
// ProcessBlock or explicit Recompute.
func NewModel(cfg Config) *Model {
	if cfg.PetersonWindow == 0 {
		cfg.PetersonWindow = 0.004
	}
	if cfg.Log == nil {
		cfg.Log = logging.Discard()
	}
	return &Model{cfg: cfg, stale: true, scratch: make([]float64, cfg.ReceiverChannels)}
}

// SetSourcePosition updates the source position and marks the image list
// stale.
func (m *Model) SetSourcePosition(p geom.Point) {
	m.cfg.SourcePosition = p
	m.stale = true
}

// SetReceiverPosition updates the receiver position and marks the image
// list stale.
func (m *Model) SetReceiverPosition(p geom.Point) {
	m.cfg.ReceiverPosition = p
	m.stale = true
}

// Update marks the image list stale; it is recomputed on the next
// ProcessBlock or Recompute call.
func (m *Model) Update() { m.stale = true }

// Recompute forces immediate recomputation of the image list.
func (m *Model) Recompute() { m.recompute(); m.stale = false }

func (m *Model) ensure() {
	if m.stale {
		m.recompute()
		m.stale = false
	}
}

// NumImages returns the number of images surviving truncation to
// RIRLength, after ensuring the list is current.
func (m *Model) NumImages() int {
	m.ensure()
	return len(m.images)
}

// Attenuations exposes each surviving image's scalar attenuation, for
// testing spec.md §8 property 9 (the image-source energy bound).
func (m *Model) Attenuations() []float64 {
	m.ensure()
	out := make([]float64, len(m.images))
	for i, im := range m.images {
		out[i] = im.attenuation
	}
	return out
}

func (m *Model) recompute() {
	rx, ry, rz := m.cfg.Room.Dimensions()
	fs := m.cfg.SampleRate
	c := m.cfg.SoundSpeed
	rirTime := float64(m.cfg.RIRLength) / fs

	n1 := int(math.Floor(rirTime*c/(rx*2))) + 1
	n2 := int(math.Floor(rirTime*c/(ry*2))) + 1
	n3 := int(math.Floor(rirTime*c/(rz*2))) + 1

	filters := m.cfg.Room.WallFilters()
	var beta [2][3]float64
	beta[0][0] = filters[0].NumeratorCoefficient(0)
	beta[1][0] = filters[1].NumeratorCoefficient(0)
	beta[0][1] = filters[2].NumeratorCoefficient(0)
	beta[1][1] = filters[3].NumeratorCoefficient(0)
	beta[0][2] = filters[4].NumeratorCoefficient(0)
	beta[1][2] = filters[5].NumeratorCoefficient(0)

	images := make([]image, 0, 8*(2*n1+1)*(2*n2+1)*(2*n3+1))

	for mx := -n1; mx <= n1; mx++ {
		for my := -n2; my <= n2; my++ {
			for mz := -n3; mz <= n3; mz++ {
				for px := 0; px <= 1; px++ {
					for py := 0; py <= 1; py++ {
						for pz := 0; pz <= 1; pz++ {
							pos := m.cfg.Room.ImageSourcePosition(m.cfg.SourcePosition, mx, my, mz, px, py, pz)
							delaySec := geom.Distance(pos, m.cfg.ReceiverPosition) / c
							if m.cfg.RandomDistance != 0 && m.cfg.Rand != nil {
								delaySec += (m.cfg.Rand.Float64()*2 - 1) * m.cfg.RandomDistance
							}
							delaySamples := delaySec * fs
							idRound := math.Round(delaySamples)
							if idRound < 0 || idRound >= float64(m.cfg.RIRLength) {
								continue
							}

							gain := imageGain(beta, mx, my, mz, px, py, pz)
							attenuation := attenuationFor(gain, delaySamples)

							var intDelay int
							var coeffs []float64
							if m.cfg.Interpolation == Peterson {
								intDelay, coeffs = petersonCoefficients(delaySamples, m.cfg.PetersonWindow, 0.9*fs/2, fs, m.cfg.RIRLength, attenuation)
							} else {
								intDelay = int(idRound)
								coeffs = []float64{attenuation}
							}

							line := delay.New(intDelay, intDelay, m.cfg.Log)
							fir := dsp.New(coeffs, m.cfg.MaxInputLength, m.cfg.Log)
							images = append(images, image{position: pos, line: line, fir: fir, attenuation: attenuation})
						}
					}
				}
			}
		}
	}
	m.images = images
}

// imageGain is the classical Allen-Berkley wall-reflection gain: each
// wall's coefficient raised to the number of times that wall is struck
// by the (mx,my,mz,px,py,pz) image, read off beta[side][axis] where
// side 0 is the negative face and 1 the positive face. Grounded on
// original_source/src/ism.cpp's WriteSample gain computation.
func imageGain(beta [2][3]float64, mx, my, mz, px, py, pz int) float64 {
	return math.Pow(beta[0][0], math.Abs(float64(mx-px))) *
		math.Pow(beta[1][0], math.Abs(float64(mx))) *
		math.Pow(beta[0][1], math.Abs(float64(my-py))) *
		math.Pow(beta[1][1], math.Abs(float64(my))) *
		math.Pow(beta[0][2], math.Abs(float64(mz-pz))) *
		math.Pow(beta[1][2], math.Abs(float64(mz)))
}

// attenuationFor is gain scaled by the inverse of the image's delay in
// samples, with a zero-distance image (the source and receiver
// coincide) treated as a one-sample reference distance rather than
// dividing by zero — the same convention internal/propagation uses.
func attenuationFor(gain, delaySamples float64) float64 {
	divisor := delaySamples
	if divisor <= 0 {
		divisor = 1
	}
	return gain / divisor
}

// ProcessBlock runs input (zero-padded if shorter than out's sample
// count) through every image's delay+FIR chain and accumulates each
// image's contribution into out (channel-major: out[channel][sample])
// via receiver's directivity, keyed by a stable wave_id per image so a
// directional receiver's per-image filter state persists across calls.
func (m *Model) ProcessBlock(input []float64, receiver Receiver, waveIDBase int, out [][]float64) {
	m.ensure()
	if len(out) == 0 {
		return
	}
	numSamples := len(out[0])
	for k := 0; k < numSamples; k++ {
		var x float64
		if k < len(input) {
			x = input[k]
		}
		for idx := range m.images {
			im := m.images[idx]
			im.line.Write(x)
			y := im.line.Read()
			z := im.fir.ProcessSample(y)

			for c := range m.scratch {
				m.scratch[c] = 0
			}
			rel := im.position.Sub(m.cfg.ReceiverPosition)
			receiver.ReceiveAndAdd(waveIDBase+idx, z, rel, m.scratch)
			for c, v := range m.scratch {
				out[c][k] += v
			}
		}
		for idx := range m.images {
			m.images[idx].line.Tick()
		}
	}
}

// ResetState clears every image's delay line and FIR state without
// discarding the image list itself.
func (m *Model) ResetState() {
	for _, im := range m.images {
		im.line.ResetState()
		im.fir.ResetState()
	}
}
