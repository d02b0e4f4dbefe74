package hrtf

import (
	"github.com/sal-audio/sal/internal/directivity"
	"github.com/sal-audio/sal/internal/dsp"
	"github.com/sal-audio/sal/internal/geom"
	"github.com/sal-audio/sal/internal/logging"
)

// Receiver is a binaural per-wave-id directivity: two FIR filters (left,
// right ear) whose impulse responses are looked up from a Dataset and
// crossfaded in only when the local direction changes. Grounded on
// original_source's BinauralMicInstance::RecordPlaneWaveRelative.
type Receiver struct {
	dataset         Dataset
	orientation     directivity.Orientation
	normalisingGain float64
	updateLength    int
	maxInputLength  int

	left, right *dsp.FIRFilter

	hasPoint  bool
	lastPoint geom.Point

	log *logging.Logger
}

// NewReceiver builds a binaural receiver instance. dataset is expected to
// be shared read-only across every instance cloned from this prototype.
// updateLength is the crossfade length (in samples) passed to
// SetImpulseResponse on every direction change.
func NewReceiver(dataset Dataset, orientation directivity.Orientation, normalisingGain float64, updateLength, maxInputLength int, log *logging.Logger) *Receiver {
	if log == nil {
		log = logging.Discard()
	}
	return &Receiver{
		dataset:         dataset,
		orientation:     orientation,
		normalisingGain: normalisingGain,
		updateLength:    updateLength,
		maxInputLength:  maxInputLength,
		left:            dsp.NewIdentity(maxInputLength, log),
		right:           dsp.NewIdentity(maxInputLength, log),
		log:             log,
	}
}

// ReceiveAndAdd implements directivity.Directivity. out[0] accumulates the
// left-ear signal, out[1] the right-ear signal.
func (r *Receiver) ReceiveAndAdd(localInput float64, relativePoint geom.Point, out []float64) {
	if !r.hasPoint || !relativePoint.Equals(r.lastPoint, 1e-9) {
		az, el := localAngles(relativePoint, r.orientation)
		leftIR, rightIR := r.dataset.Lookup(az, el)
		r.left.SetImpulseResponse(scaled(leftIR, r.normalisingGain), r.updateLength)
		r.right.SetImpulseResponse(scaled(rightIR, r.normalisingGain), r.updateLength)
		r.lastPoint = relativePoint
		r.hasPoint = true
	}
	if len(out) > 0 {
		out[0] += r.left.ProcessSample(localInput)
	}
	if len(out) > 1 {
		out[1] += r.right.ProcessSample(localInput)
	}
}

// ResetState clears both ears' filter state (not their impulse response).
func (r *Receiver) ResetState() {
	r.left.ResetState()
	r.right.ResetState()
}

// Copy builds a fresh per-wave-id instance sharing this receiver's
// dataset, orientation, and gain settings.
func (r *Receiver) Copy() directivity.Directivity {
	return NewReceiver(r.dataset, r.orientation, r.normalisingGain, r.updateLength, r.maxInputLength, r.log)
}

func scaled(ir []float64, gain float64) []float64 {
	out := make([]float64, len(ir))
	for i, v := range ir {
		out[i] = v * gain
	}
	return out
}
