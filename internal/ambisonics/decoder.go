package ambisonics

import (
	"math"

	"github.com/sal-audio/sal/internal/dsp"
	"github.com/sal-audio/sal/internal/logging"
)

// HorizDecoder decodes a horizontal-only HoaBuffer into loudspeaker feeds
// for a regular ring of loudspeakers. Grounded on original_source's
// AmbisonicsHorizDec, with the mode-matching matrix's normalisation
// generalised to spec.md's `(1/L)·Eᵀ` (see DESIGN.md) instead of the
// original's `1/(2N+1)`, so over-sampled arrays (L > 2N+1) decode
// correctly too.
type HorizDecoder struct {
	order              int
	loudspeakerAngles  []float64
	energyDecoding     bool
	nearFieldCorrection bool

	modeMatching [][]float64 // [loudspeaker][hoa channel]
	maxEnergy    []float64   // diagonal, one weight per hoa channel

	nfcFilters      []*dsp.IIRFilter // one per hoa channel
	crossoverLow    []*dsp.IIRFilter // one per loudspeaker
	crossoverHigh   []*dsp.IIRFilter // one per loudspeaker

	log *logging.Logger
}

// HorizDecoderConfig configures a new HorizDecoder.
type HorizDecoderConfig struct {
	Order               int
	LoudspeakerAngles    []float64 // radians
	EnergyDecoding       bool
	CutoffFrequency      float64 // Hz, used only if EnergyDecoding
	NearFieldCorrection  bool
	LoudspeakerDistance  float64 // metres, used only if NearFieldCorrection
	SampleRate           float64
	SoundSpeed           float64 // m/s, 0 defaults to 343
	Log                  *logging.Logger
}

func maxEnergyWeight(n, order int) float64 {
	return math.Cos(float64(n) * math.Pi / (2 * float64(order+1)))
}

// NewHorizDecoder builds a decoder for the given configuration.
func NewHorizDecoder(cfg HorizDecoderConfig) *HorizDecoder {
	if cfg.Log == nil {
		cfg.Log = logging.Discard()
	}
	if cfg.SoundSpeed == 0 {
		cfg.SoundSpeed = 343.0
	}
	numChannels := ChannelCount(cfg.Order, true)
	numSpeakers := len(cfg.LoudspeakerAngles)

	d := &HorizDecoder{
		order:               cfg.Order,
		loudspeakerAngles:   append([]float64(nil), cfg.LoudspeakerAngles...),
		energyDecoding:      cfg.EnergyDecoding,
		nearFieldCorrection: cfg.NearFieldCorrection,
		log:                 cfg.Log,
	}

	// E[l][k]: the k-th horizontal-encoding coefficient at loudspeaker l's angle.
	e := make([][]float64, numSpeakers)
	for l, angle := range cfg.LoudspeakerAngles {
		e[l] = horizontalEncodingRow(cfg.Order, angle)
	}
	d.modeMatching = make([][]float64, numSpeakers)
	for l := 0; l < numSpeakers; l++ {
		d.modeMatching[l] = make([]float64, numChannels)
		for k := 0; k < numChannels; k++ {
			d.modeMatching[l][k] = e[l][k] / float64(numSpeakers)
		}
	}

	d.maxEnergy = make([]float64, numChannels)
	d.maxEnergy[0] = maxEnergyWeight(0, cfg.Order)
	k := 1
	for n := 1; n <= cfg.Order; n++ {
		w := maxEnergyWeight(n, cfg.Order)
		d.maxEnergy[k] = w
		k++
		d.maxEnergy[k] = w
		k++
	}

	if cfg.NearFieldCorrection {
		d.nfcFilters = make([]*dsp.IIRFilter, numChannels)
		d.nfcFilters[0] = NFCFilter(0, cfg.LoudspeakerDistance, cfg.SampleRate, cfg.SoundSpeed, cfg.Log)
		k = 1
		for n := 1; n <= cfg.Order; n++ {
			d.nfcFilters[k] = NFCFilter(n, cfg.LoudspeakerDistance, cfg.SampleRate, cfg.SoundSpeed, cfg.Log)
			k++
			d.nfcFilters[k] = NFCFilter(n, cfg.LoudspeakerDistance, cfg.SampleRate, cfg.SoundSpeed, cfg.Log)
			k++
		}
	}

	if cfg.EnergyDecoding {
		d.crossoverLow = make([]*dsp.IIRFilter, numSpeakers)
		d.crossoverHigh = make([]*dsp.IIRFilter, numSpeakers)
		lowB, lowA := crossoverLowCoefficients(cfg.CutoffFrequency, cfg.SampleRate)
		highB, _ := crossoverHighCoefficients(cfg.CutoffFrequency, cfg.SampleRate)
		for i := 0; i < numSpeakers; i++ {
			d.crossoverLow[i] = dsp.NewIIR(lowB, lowA, cfg.Log)
			d.crossoverHigh[i] = dsp.NewIIR(highB, lowA, cfg.Log)
		}
	}

	return d
}

// horizontalEncodingRow returns [1, sqrt2*cos(theta), sqrt2*sin(theta), ...]
// up to the given order, matching Encoder.encodeHorizontal's channel
// layout exactly (n=0 first, then (n,+1),(n,-1) pairs).
func horizontalEncodingRow(order int, theta float64) []float64 {
	row := make([]float64, 2*order+1)
	row[0] = 1
	k := 1
	for i := 1; i <= order; i++ {
		fi := float64(i)
		row[k] = math.Sqrt2 * math.Cos(fi*theta)
		k++
		row[k] = math.Sqrt2 * math.Sin(fi*theta)
		k++
	}
	return row
}

func crossoverLowCoefficients(cutoff, sampleRate float64) (b, a []float64) {
	k := math.Tan(math.Pi * cutoff / sampleRate)
	k2 := k * k
	denom := k2 + 2*k + 1
	b0 := k2 / denom
	b = []float64{b0, 2 * b0, b0}
	a = []float64{1, 2 * (k2 - 1) / denom, (k2 - 2*k + 1) / denom}
	return b, a
}

func crossoverHighCoefficients(cutoff, sampleRate float64) (b, a []float64) {
	k := math.Tan(math.Pi * cutoff / sampleRate)
	k2 := k * k
	denom := k2 + 2*k + 1
	b0 := 1.0 / denom
	// Sign-flipped relative to the textbook high-pass so the low/high paths
	// add rather than subtract when recombined (original_source's comment
	// in AmbisonicsHorizDec::CrossoverFilterHigh).
	b = []float64{-b0, 2 * b0, -b0}
	_, a = crossoverLowCoefficients(cutoff, sampleRate)
	return b, a
}

// Decode fills output[l] for every loudspeaker l from input. output must
// already have numSpeakers rows, each numSamples long.
func (d *HorizDecoder) Decode(input *HoaBuffer, output [][]float64) {
	numSamples := input.NumSamples()
	numChannels := input.NumChannels()
	numSpeakers := len(d.loudspeakerAngles)

	frame := make([]float64, numChannels)
	frameHigh := make([]float64, numChannels)

	for s := 0; s < numSamples; s++ {
		for ch := 0; ch < numChannels; ch++ {
			v := input.Channel(ch)[s]
			if d.nearFieldCorrection {
				v = d.nfcFilters[ch].ProcessSample(v)
			}
			frame[ch] = v
			frameHigh[ch] = v * d.maxEnergy[ch]
		}

		for l := 0; l < numSpeakers; l++ {
			var low float64
			for ch := 0; ch < numChannels; ch++ {
				low += d.modeMatching[l][ch] * frame[ch]
			}
			if !d.energyDecoding {
				output[l][s] = low
				continue
			}
			var high float64
			for ch := 0; ch < numChannels; ch++ {
				high += d.modeMatching[l][ch] * frameHigh[ch]
			}
			output[l][s] = d.crossoverLow[l].ProcessSample(low) + d.crossoverHigh[l].ProcessSample(high)
		}
	}
}

// ModeMatchingRow returns the l-th loudspeaker's mode-matching decoding
// row, exposed so property 6 (the Poletti panning-law round trip) can be
// checked directly.
func (d *HorizDecoder) ModeMatchingRow(l int) []float64 { return d.modeMatching[l] }
