package dsp

import "github.com/sal-audio/sal/internal/logging"

// WallType names a wall-absorption filter preset.
type WallType int

const (
	Rigid WallType = iota
	CarpetPile
	CarpetCotton
	WallBricks
	CeilingTile
)

// wallCoefficients are the tabulated biquad coefficients at 44.1kHz,
// transcribed verbatim from original_source's iirfilter.cpp WallFilter
// (spec.md §8 property 12: implementations must reproduce these exactly).
var wallCoefficients = map[WallType]struct{ b, a []float64 }{
	Rigid: {b: []float64{1}, a: []float64{1}},
	CarpetPile: {
		b: []float64{0.562666833756030, -1.032627191365576, 0.469961155406544},
		a: []float64{1.000000000000000, -1.896102349247713, 0.896352947528892},
	},
	CarpetCotton: {
		b: []float64{0.687580695329600, -1.920746652319969, 1.789915765926473, -0.556749690855965},
		a: []float64{1.000000000000000, -2.761840732459190, 2.536820778736938, -0.774942833868750},
	},
	WallBricks: {
		b: []float64{0.978495798553620, -1.817487798457697, 0.839209660516074},
		a: []float64{1.000000000000000, -1.858806492488240, 0.859035906864860},
	},
	CeilingTile: {
		b: []float64{0.168413736374283, -0.243270224986791, 0.074863520490536},
		a: []float64{1.000000000000000, -1.845049094190385, 0.845565720138466},
	},
}

// WallFilter returns the preset filter for wallType at sampleRate, scaled by
// gain. Only 44.1kHz coefficients are tabulated; other sample rates reuse
// the same coefficients with a logged warning, matching the original
// implementation's "TODO: implement for frequencies other than 44100."
func WallFilter(wallType WallType, sampleRate, gain float64, log *logging.Logger) *IIRFilter {
	if log == nil {
		log = logging.Discard()
	}
	if sampleRate != 0 && sampleRate != 44100 {
		log.Warn("dsp: wall filter coefficients are only tabulated at 44100Hz", "sample_rate", sampleRate)
	}
	c, ok := wallCoefficients[wallType]
	if !ok {
		log.Error("dsp: unknown wall type, falling back to rigid", "wall_type", int(wallType))
		c = wallCoefficients[Rigid]
	}
	b := append([]float64(nil), c.b...)
	for i := range b {
		b[i] *= gain
	}
	return NewIIR(b, c.a, log)
}
