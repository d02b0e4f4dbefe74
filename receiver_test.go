package sal

import (
	"math"
	"testing"

	"github.com/sal-audio/sal/internal/directivity"
)

// TestRotatedReceiverEncodingEquivalence covers spec.md §8 property 7: a
// default-orientation receiver hearing a wave from its own +x axis and a
// receiver rotated pi/2 about +z hearing a wave from world +y must
// produce equal output, since the rotation exactly compensates for the
// change in arrival direction. Checked to float64 tolerance rather than
// literal bit equality, since the rotated case passes the wave direction
// through Quaternion.Rotate first and a pi/2 sine/cosine pair isn't exact
// in floating point.
func TestRotatedReceiverEncodingEquivalence(t *testing.T) {
	pattern := directivity.Trig{Coefficients: []float64{0.5, 0.5}, Orientation: directivity.Standard}

	front, err := NewReceiver(NewPoint(0, 0, 0), Identity, LeftHanded, pattern, 1)
	if err != nil {
		t.Fatalf("NewReceiver(front): %v", err)
	}
	rotated, err := NewReceiver(NewPoint(0, 0, 0), FromAxisAngle(NewPoint(0, 0, 1), math.Pi/2), LeftHanded, pattern, 1)
	if err != nil {
		t.Fatalf("NewReceiver(rotated): %v", err)
	}

	outFront := make([]float64, 1)
	front.ReceiveAndAdd(0, 1.0, NewPoint(1, 0, 0), outFront)

	outRotated := make([]float64, 1)
	rotated.ReceiveAndAdd(0, 1.0, NewPoint(0, 1, 0), outRotated)

	if math.Abs(outFront[0]-outRotated[0]) > 1e-9 {
		t.Errorf("front-facing output %v != rotated output %v", outFront[0], outRotated[0])
	}
}

func TestReceiverPoolIsPerWaveID(t *testing.T) {
	r, err := NewReceiver(NewPoint(0, 0, 0), Identity, LeftHanded, directivity.Bypass{}, 1)
	if err != nil {
		t.Fatalf("NewReceiver: %v", err)
	}

	out := make([]float64, 1)
	r.ReceiveAndAdd(5, 1.0, NewPoint(1, 0, 0), out)
	if out[0] != 1.0 {
		t.Fatalf("out = %v, want 1 (first call at a fresh wave_id)", out[0])
	}
	if len(r.pool) != 6 {
		t.Errorf("pool length = %d, want 6 (indices 0..5 allocated)", len(r.pool))
	}
}
