package propagation

import "testing"

const eps = 1e-9

// TestFreeFieldInvariant is spec.md §8 property 5. Ground truth (see
// original_source/src/test/freefieldsimulation_test.cpp): with a receiver
// at the origin and two sources at distances of one and three "sample
// spaces" (the distance sound travels in one sample period), each pushing
// a single impulse of amplitude 0.5, the receiver's output is
// [0, 0.5, 0, 0.5/3].
func TestFreeFieldInvariant(t *testing.T) {
	const fs = 44100.0
	oneSampleSpace := defaultSoundSpeed / fs

	cfg := Config{SampleRate: fs, Attenuation: InverseSquareLaw, Interp: Rounding}
	near := New(oneSampleSpace, 4*oneSampleSpace, cfg)
	far := New(3*oneSampleSpace, 4*oneSampleSpace, cfg)

	near.Write(0.5)
	far.Write(0.5)

	want := []float64{0, 0.5, 0, 0.5 / 3.0}
	got := make([]float64, len(want))
	for k := range want {
		got[k] = near.Read() + far.Read()
		near.Tick()
		far.Tick()
		near.Write(0)
		far.Write(0)
	}

	for k := range want {
		if diff := got[k] - want[k]; diff > eps || diff < -eps {
			t.Errorf("tap %d = %v, want %v", k, got[k], want[k])
		}
	}
}

func TestConstantLOSIgnoresDistance(t *testing.T) {
	const fs = 44100.0
	cfg := Config{SampleRate: fs, Attenuation: ConstantLOS, Interp: Rounding}
	l := New(1.0, 10.0, cfg)
	if g := l.CurrentAttenuation(); g != 1.0 {
		t.Errorf("attenuation = %v, want 1", g)
	}
	l.SetDistance(5.0, 0)
	if g := l.CurrentAttenuation(); g != 1.0 {
		t.Errorf("attenuation after SetDistance = %v, want 1", g)
	}
}

func TestSetDistanceRampsAttenuation(t *testing.T) {
	const fs = 44100.0
	oneSampleSpace := defaultSoundSpeed / fs
	cfg := Config{SampleRate: fs, Attenuation: InverseSquareLaw, Interp: Rounding}
	l := New(oneSampleSpace, 8*oneSampleSpace, cfg)
	if g := l.CurrentAttenuation(); g != 1.0 {
		t.Fatalf("initial attenuation = %v, want 1", g)
	}

	l.SetDistance(4*oneSampleSpace, 4)
	want := 1.0 / 4.0
	for i := 0; i < 4; i++ {
		l.Tick()
	}
	if g := l.CurrentAttenuation(); g < want-eps || g > want+eps {
		t.Errorf("attenuation after ramp = %v, want %v", g, want)
	}
}

func TestSetDistanceClampsToMaxLatency(t *testing.T) {
	const fs = 44100.0
	oneSampleSpace := defaultSoundSpeed / fs
	cfg := Config{SampleRate: fs, Attenuation: InverseSquareLaw, Interp: Rounding}
	l := New(oneSampleSpace, 2*oneSampleSpace, cfg)
	l.SetDistance(100*oneSampleSpace, 0)
	if got, want := l.CurrentDelaySamples(), float64(l.delay.MaxLatency()); got != want {
		t.Errorf("delay samples = %v, want clamp to max_latency = %v", got, want)
	}
}
