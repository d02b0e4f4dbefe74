package sal

import (
	"github.com/sal-audio/sal/internal/directivity"
	"github.com/sal-audio/sal/internal/geom"
)

// Receiver is a Point, a Quaternion, a Handedness, and a directivity
// prototype (spec.md §4.5): a listening point in the scene that turns each
// incoming plane wave into one or more output channels. A directivity with
// filter state (hrtf.Receiver, shsource.Directivity, ...) keeps that state
// per plane wave, so Receiver lazily clones its
// prototype once per distinct wave_id and reuses that clone for every
// later sample of the same wave, the way a real-time host calls it once
// per (source, image) pair per block.
type Receiver struct {
	Position    geom.Point
	Orientation geom.Quaternion
	Handedness  Handedness
	Channels    int

	prototype directivity.Directivity
	pool      []directivity.Directivity
}

// NewReceiver builds a Receiver at position with the given orientation,
// handedness, and directivity prototype. channels is the number of output
// channels the directivity writes (1 for Omni/Gain/Trig, 2 for a binaural
// receiver, an HOA buffer's channel count for an ambisonic one).
func NewReceiver(position geom.Point, orientation geom.Quaternion, handedness Handedness, prototype directivity.Directivity, channels int) (*Receiver, error) {
	if prototype == nil {
		return nil, ErrMissingDirectivity
	}
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	return &Receiver{
		Position:    position,
		Orientation: orientation,
		Handedness:  handedness,
		Channels:    channels,
		prototype:   prototype,
	}, nil
}

func (r *Receiver) instanceFor(waveID int) directivity.Directivity {
	for len(r.pool) <= waveID {
		r.pool = append(r.pool, nil)
	}
	if r.pool[waveID] == nil {
		r.pool[waveID] = r.prototype.Copy()
	}
	return r.pool[waveID]
}

// ReceiveAndAdd routes one plane wave's sample into out. relativePoint is
// the source's position relative to the receiver, in world-frame axes
// (i.e. source position minus receiver position, not yet rotated); it is
// rotated into the receiver's own local frame here, before reaching the
// directivity, per spec.md §4.5's translate-then-rotate contract. This
// satisfies both the Simulator's free-field path and
// internal/ism.Receiver, which pass relativePoint already translated but
// not yet rotated.
func (r *Receiver) ReceiveAndAdd(waveID int, localInput float64, relativePoint geom.Point, out []float64) {
	local := r.Orientation.Rotate(relativePoint, r.Handedness)
	r.instanceFor(waveID).ReceiveAndAdd(localInput, local, out)
}

// ResetState clears every wave's directivity instance; the pooled
// instances themselves are kept and reused.
func (r *Receiver) ResetState() {
	for _, d := range r.pool {
		if d != nil {
			d.ResetState()
		}
	}
}

// ReceiverArray groups several Receivers that share a scene, for hosts
// modelling a microphone array or a set of listeners as one unit (spec.md
// §9's supplemented microphone-array feature).
type ReceiverArray struct {
	Receivers []*Receiver
}

// NewReceiverArray wraps a slice of Receivers.
func NewReceiverArray(receivers []*Receiver) *ReceiverArray {
	return &ReceiverArray{Receivers: receivers}
}

// ResetState resets every Receiver in the array.
func (a *ReceiverArray) ResetState() {
	for _, r := range a.Receivers {
		r.ResetState()
	}
}
