package shsource

import (
	"github.com/sal-audio/sal/internal/directivity"
	"github.com/sal-audio/sal/internal/dsp"
	"github.com/sal-audio/sal/internal/geom"
)

// Directivity is the per-wave-id graphic-EQ instance an SH source presents
// to a receiver. It recomputes the EQ's band gains only when the
// observation point changes, per original_source's ShSourceInstance::
// UpdateFilter ("only update the filter when the incoming point differs
// from the cached one").
type Directivity struct {
	source      *Source
	eq          *dsp.GraphicEQ
	hasPoint    bool
	lastPoint   geom.Point
	rampSamples int
}

// NewDirectivity builds the prototype instance cloned per wave_id.
// rampSamples controls how long a point-change re-target takes to ramp in.
func NewDirectivity(source *Source, rampSamples int) *Directivity {
	return &Directivity{source: source, eq: source.GraphicEQ(), rampSamples: rampSamples}
}

// ReceiveAndAdd implements internal/directivity.Directivity.
func (d *Directivity) ReceiveAndAdd(localInput float64, relativePoint geom.Point, out []float64) {
	if !d.hasPoint || !relativePoint.Equals(d.lastPoint, 1e-9) {
		d.eq.SetGain(gainsToDB(d.source.Gains(relativePoint)), d.rampSamples)
		d.lastPoint = relativePoint
		d.hasPoint = true
	}
	if len(out) > 0 {
		out[0] += d.eq.ProcessSample(localInput)
	}
}

// ResetState clears the EQ's filter state.
func (d *Directivity) ResetState() { d.eq.ResetState() }

// Copy returns a fresh per-wave-id instance sharing the same source table.
func (d *Directivity) Copy() directivity.Directivity {
	return NewDirectivity(d.source, d.rampSamples)
}
