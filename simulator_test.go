package sal

import (
	"math"
	"testing"

	"github.com/sal-audio/sal/internal/directivity"
)

// TestFreeFieldPropagationInvariant covers spec.md §8 property 5, grounded
// directly on original_source/src/test/freefieldsimulation_test.cpp's two
// source / two receiver scene: source_a one sample-space behind the
// origin, source_b three sample-spaces ahead of it, mic_a at the origin,
// mic_b one sample-space ahead of it, both sources pushing a single
// 0.5-amplitude impulse.
func TestFreeFieldPropagationInvariant(t *testing.T) {
	const fs = 44100.0
	const c = 343.0
	d := c / fs

	sourceA := NewSource(NewPoint(-d, 0, 0), Identity)
	sourceB := NewSource(NewPoint(3*d, 0, 0), Identity)

	micA, err := NewReceiver(NewPoint(0, 0, 0), Identity, LeftHanded, directivity.Omni{}, 1)
	if err != nil {
		t.Fatalf("NewReceiver(micA): %v", err)
	}
	micB, err := NewReceiver(NewPoint(d, 0, 0), Identity, LeftHanded, directivity.Omni{}, 1)
	if err != nil {
		t.Fatalf("NewReceiver(micB): %v", err)
	}

	sim, err := NewSimulator(
		[]*Source{sourceA, sourceB},
		[]*Receiver{micA, micB},
		SimulatorConfig{SampleRate: fs, SoundSpeed: c, Attenuation: InverseSquareLaw, Interp: Rounding},
	)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}

	inputs := [][]float64{{0.5}, {0.5}}
	outputs := [][][]float64{
		{make([]float64, 4)},
		{make([]float64, 4)},
	}
	sim.ProcessBlock(inputs, outputs)

	wantA := []float64{0, 0.5, 0, 0.5 / 3.0}
	wantB := []float64{0, 0, 0.5/2.0 + 0.5/2.0, 0}

	for k := 0; k < 4; k++ {
		if math.Abs(outputs[0][0][k]-wantA[k]) > 1e-12 {
			t.Errorf("micA tap %d = %v, want %v", k, outputs[0][0][k], wantA[k])
		}
		if math.Abs(outputs[1][0][k]-wantB[k]) > 1e-12 {
			t.Errorf("micB tap %d = %v, want %v", k, outputs[1][0][k], wantB[k])
		}
	}
}

func TestSimulatorRoomRoutesThroughIsm(t *testing.T) {
	room, err := NewRoom(5, 4, 3, Faces{}, FaceGains{}, 44100, nil)
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}

	src := NewSource(NewPoint(1, 1, 1), Identity)
	recv, err := NewReceiver(NewPoint(3, 1, 1), Identity, LeftHanded, directivity.Omni{}, 1)
	if err != nil {
		t.Fatalf("NewReceiver: %v", err)
	}

	sim, err := NewSimulator([]*Source{src}, []*Receiver{recv}, SimulatorConfig{
		SampleRate: 8000, SoundSpeed: 343, Room: room, RIRLength: 256,
		IsmInterpolation: NoInterpolation, MaxInputLength: 32,
	})
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}

	input := make([]float64, 32)
	input[0] = 1
	outputs := [][][]float64{{make([]float64, 32)}}
	sim.ProcessBlock([][]float64{input}, outputs)

	var energy float64
	for _, v := range outputs[0][0] {
		energy += v * v
	}
	if energy == 0 {
		t.Fatalf("no energy reached the room-attached simulator's output")
	}
}
