package ism

import "math"

// petersonWindow evaluates the Hann-windowed, cutoff-bandlimited sinc tap
// value at offset t (seconds) from the true delay: attenuation is applied
// by the caller. Grounded on original_source/src/ism.cpp's WriteSample
// peterson case; spec.md §8 property 10 names this exact formula.
func petersonWindow(t, windowSeconds, cutoffHz float64) float64 {
	arg := 2 * math.Pi * cutoffHz * t
	var s float64
	if arg == 0 {
		s = 1
	} else {
		s = math.Sin(arg) / arg
	}
	return 0.5 * (1 + math.Cos(2*math.Pi*t/windowSeconds)) * s
}

// petersonCoefficients builds the integer-delay/FIR-coefficient pair for
// a Peterson-windowed image tap. delaySamples is the image's exact
// (possibly jittered) delay in samples; rirLength bounds which absolute
// sample indices are kept (matching the original's flat-RIR truncation).
// Returns the delay line's integer latency and the FIR's coefficient
// slice, indexed relative to that latency.
func petersonCoefficients(delaySamples, windowSeconds, cutoffHz, sampleRate float64, rirLength int, attenuation float64) (integerDelay int, coefficients []float64) {
	tau := delaySamples / sampleRate

	startN := int(math.Floor(sampleRate*(-windowSeconds/2+tau))) + 1
	endNExclusive := int(math.Floor(sampleRate * (windowSeconds/2 + tau)))

	integerDelay = startN - 1
	if integerDelay < 0 {
		integerDelay = 0
	}

	maxRel := -1
	type tap struct {
		rel int
		val float64
	}
	var taps []tap
	for n := startN; n < endNExclusive; n++ {
		if n < 0 || n >= rirLength {
			continue
		}
		t := float64(n)/sampleRate - tau
		val := attenuation * petersonWindow(t, windowSeconds, cutoffHz)
		rel := n - integerDelay
		if rel > maxRel {
			maxRel = rel
		}
		taps = append(taps, tap{rel, val})
	}
	if maxRel < 0 {
		return integerDelay, []float64{0}
	}
	coefficients = make([]float64, maxRel+1)
	for _, tp := range taps {
		coefficients[tp.rel] += tp.val
	}
	return integerDelay, coefficients
}
