package sal

import (
	"github.com/sal-audio/sal/internal/directivity"
	"github.com/sal-audio/sal/internal/geom"
)

// Source is a Point (position), a Quaternion (look direction), and
// optionally a directivity describing how its radiated level varies with
// emission angle (spec.md §3's data model; §4.6). A nil directivity
// behaves as an omnidirectional emitter: Emit returns the input sample
// unchanged, matching the free-field driver's base pseudocode, which
// never references a source-side radiation pattern at all.
//
// A directional source keeps per-receiver filter state symmetrically to
// how Receiver keeps per-wave-id state: each receiver the source radiates
// toward gets its own lazily-cloned directivity instance, indexed by that
// receiver's position in the Simulator's receiver list.
type Source struct {
	Position    geom.Point
	Orientation geom.Quaternion
	Handedness  Handedness

	prototype directivity.Directivity
	pool      []directivity.Directivity
	scratch   []float64
}

// NewSource builds an omnidirectional Source.
func NewSource(position geom.Point, orientation geom.Quaternion) *Source {
	return &Source{Position: position, Orientation: orientation, Handedness: LeftHanded}
}

// NewDirectionalSource builds a Source with a radiation-pattern
// directivity, evaluated in the source's own local frame: relativePoint is
// the receiver's position relative to the source, rotated into the
// source's frame exactly as Receiver rotates a source's position into its
// own frame.
func NewDirectionalSource(position geom.Point, orientation geom.Quaternion, handedness Handedness, prototype directivity.Directivity) (*Source, error) {
	if prototype == nil {
		return nil, ErrMissingDirectivity
	}
	return &Source{
		Position:    position,
		Orientation: orientation,
		Handedness:  handedness,
		prototype:   prototype,
		scratch:     make([]float64, 1),
	}, nil
}

func (s *Source) instanceFor(receiverIndex int) directivity.Directivity {
	for len(s.pool) <= receiverIndex {
		s.pool = append(s.pool, nil)
	}
	if s.pool[receiverIndex] == nil {
		s.pool[receiverIndex] = s.prototype.Copy()
	}
	return s.pool[receiverIndex]
}

// Emit returns x as radiated toward receiverIndex, given that receiver's
// position relative to this source (world-frame, not yet rotated). An
// omnidirectional source (no prototype) returns x unchanged.
func (s *Source) Emit(receiverIndex int, x float64, relativePoint geom.Point) float64 {
	if s.prototype == nil {
		return x
	}
	local := s.Orientation.Rotate(relativePoint, s.Handedness)
	s.scratch[0] = 0
	s.instanceFor(receiverIndex).ReceiveAndAdd(x, local, s.scratch)
	return s.scratch[0]
}

// ResetState clears every receiver-indexed directivity instance.
func (s *Source) ResetState() {
	for _, d := range s.pool {
		if d != nil {
			d.ResetState()
		}
	}
}
