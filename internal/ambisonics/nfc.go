package ambisonics

import (
	"github.com/sal-audio/sal/internal/dsp"
	"github.com/sal-audio/sal/internal/logging"
)

// nfcZeros tabulates X_Mq(n), the complex zeros from J. Daniel's 2003 AES
// paper "Spatial Sound Encoding Including Near Field Effect", transcribed
// verbatim from original_source's ambisonics.cpp NFCFilter (orders 0-6).
var nfcZeros = map[int][]complex128{
	0: {},
	1: {complex(-2.0, 0.0)},
	2: {complex(-3.0000, 1.7321), complex(-3.0000, -1.7321)},
	3: {complex(-3.6778, 3.5088), complex(-3.6778, -3.5088), complex(-4.6444, 0.0)},
	4: {complex(-4.2076, 5.3148), complex(-4.2076, -5.3148), complex(-5.7924, 1.7345), complex(-5.7924, -1.7345)},
	5: {
		complex(-4.6493, 7.1420), complex(-4.6493, -7.1420),
		complex(-6.7039, 3.4853), complex(-6.7039, -3.4853),
		complex(-7.2935, 0.0),
	},
	6: {
		complex(-5.0319, 8.9853), complex(-5.0319, -8.9853),
		complex(-7.4714, 5.2525), complex(-7.4714, -5.2525),
		complex(-8.4967, 1.7350), complex(-8.4967, -1.7350),
	},
}

func polyFromRoots(roots []complex128) []complex128 {
	coeffs := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] += -r * c
		}
		coeffs = next
	}
	return coeffs
}

func realParts(cs []complex128) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = real(c)
	}
	return out
}

// NFCFilter builds the order-th near-field-correction filter for a
// loudspeaker array at loudspeakerDistance metres, per Daniel (2003).
// Orders above 6 aren't tabulated in the source material and fall back to
// the identity filter with a logged warning.
func NFCFilter(order int, loudspeakerDistance, sampleRate, soundSpeed float64, log *logging.Logger) *dsp.IIRFilter {
	if log == nil {
		log = logging.Discard()
	}
	zeros, ok := nfcZeros[order]
	if !ok {
		log.Warn("ambisonics: nfc filter not tabulated for order, using identity", "order", order)
		return dsp.IdentityFilter(log)
	}
	if order == 0 {
		return dsp.IdentityFilter(log)
	}

	a := 4.0 * sampleRate * loudspeakerDistance / soundSpeed
	poles := make([]complex128, len(zeros))
	prod := complex(1, 0)
	for i, x := range zeros {
		ratio := x / complex(a, 0)
		poles[i] = (complex(1, 0) + ratio) / (complex(1, 0) - ratio)
		prod *= complex(1, 0) - ratio
	}

	ones := make([]complex128, len(zeros))
	for i := range ones {
		ones[i] = complex(1, 0)
	}
	bComplex := polyFromRoots(ones)
	aComplex := polyFromRoots(poles)
	for i := range aComplex {
		aComplex[i] *= prod
	}

	b := realParts(bComplex)
	aReal := realParts(aComplex)
	return dsp.NewIIR(b, aReal, log)
}
