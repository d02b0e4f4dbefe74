package shsource

import (
	"math"
	"testing"

	"github.com/sal-audio/sal/internal/geom"
	"github.com/sal-audio/sal/internal/logging"
)

func omniSource() *Source {
	// A degree-0-only source is a pure omni directivity: Y_0^0 =
	// 1/sqrt(4*pi), so the transfer function is constant over all
	// observation points regardless of coefficient phase. Two centre
	// frequencies, since dsp.NewGraphicEQ needs at least a low-shelf and a
	// high-shelf band.
	c := 1 / math.Sqrt(4*math.Pi)
	return &Source{
		CentreFrequencies: []float64{1000, 4000},
		Coefficients:      [][]complex128{{complex(1/c, 0)}, {complex(1/c, 0)}},
		SampleRate:        48000,
		Q:                 1.4142,
		Log:               logging.Discard(),
	}
}

func TestTransferFunctionOmniIsConstant(t *testing.T) {
	s := omniSource()
	points := []geom.Point{
		geom.NewPoint(1, 0, 0),
		geom.NewPoint(0, 1, 0),
		geom.NewPoint(0, 0, 1),
		geom.NewPoint(-1, -1, -1),
	}
	for _, p := range points {
		got := s.TransferFunction(1000, p)
		if diff := got - 1; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("omni transfer at %v = %v, want 1", p, got)
		}
	}
}

func TestGainsToDBCollapsesSign(t *testing.T) {
	db := gainsToDB([]float64{0.5, -0.5, 0})
	if db[0] != db[1] {
		t.Errorf("gainsToDB(0.5) = %v, gainsToDB(-0.5) = %v, want equal magnitude-only dB", db[0], db[1])
	}
	if db[2] >= db[0] {
		t.Errorf("gainsToDB(0) = %v should floor below gainsToDB(0.5) = %v", db[2], db[0])
	}
}

func TestDirectivityUpdatesOnlyWhenPointChanges(t *testing.T) {
	s := omniSource()
	d := NewDirectivity(s, 0)

	out := make([]float64, 1)
	d.ReceiveAndAdd(1.0, geom.NewPoint(1, 0, 0), out)
	first := out[0]

	// Same point again: no retarget, output should accumulate identically.
	out2 := make([]float64, 1)
	d.ReceiveAndAdd(1.0, geom.NewPoint(1, 0, 0), out2)
	if diff := out2[0] - first; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("repeated identical point changed output: %v vs %v", out2[0], first)
	}

	// Different point: directivity is omni here, so magnitude is unchanged,
	// but the update path must still run without panicking or desyncing
	// hasPoint/lastPoint bookkeeping.
	out3 := make([]float64, 1)
	d.ReceiveAndAdd(1.0, geom.NewPoint(0, 1, 0), out3)
	if diff := out3[0] - first; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("omni directivity changed output after point change: %v vs %v", out3[0], first)
	}
}

func TestDirectivityCopyIsIndependentInstance(t *testing.T) {
	s := omniSource()
	d := NewDirectivity(s, 0)
	out := make([]float64, 1)
	d.ReceiveAndAdd(1.0, geom.NewPoint(1, 0, 0), out)

	clone := d.Copy()
	out2 := make([]float64, 1)
	clone.ReceiveAndAdd(1.0, geom.NewPoint(1, 0, 0), out2)

	if diff := out2[0] - out[0]; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("cloned directivity produced %v, want %v", out2[0], out[0])
	}

	// Mutating the original's cached point must not affect the clone's.
	d.ReceiveAndAdd(1.0, geom.NewPoint(0, 0, 1), out)
	out3 := make([]float64, 1)
	clone.ReceiveAndAdd(1.0, geom.NewPoint(1, 0, 0), out3)
	if diff := out3[0] - out2[0]; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("clone state diverged after original's update: %v vs %v", out3[0], out2[0])
	}
}
