package delay

import (
	"testing"

	"pgregory.net/rapid"
)

// TestDelayLineIdentity is spec.md §8 property 1: for any delay L and any
// input stream, reading after writing x[k] and ticking k times yields
// y[k] = x[k-L] for k >= L and 0 otherwise.
func TestDelayLineIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		maxLatency := rapid.IntRange(0, 64).Draw(t, "maxLatency")
		latency := rapid.IntRange(0, maxLatency).Draw(t, "latency")
		K := rapid.IntRange(1, 128).Draw(t, "K")
		xs := make([]float64, K)
		for i := range xs {
			xs[i] = rapid.Float64Range(-1, 1).Draw(t, "x")
		}

		line := New(latency, maxLatency, nil)
		for k := 0; k < K; k++ {
			line.Write(xs[k])
			y := line.Read()
			line.Tick()

			var want float64
			if k >= latency {
				want = xs[k-latency]
			}
			if y != want {
				t.Fatalf("k=%d latency=%d: y=%v want=%v", k, latency, y, want)
			}
		}
	})
}

// TestFractionalReadLinearity is spec.md §8 property 2.
func TestFractionalReadLinearity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		maxLatency := rapid.IntRange(2, 64).Draw(t, "maxLatency")
		line := New(0, maxLatency, nil)

		n := rapid.IntRange(1, maxLatency).Draw(t, "n")
		for i := 0; i < n; i++ {
			line.Write(rapid.Float64Range(-1, 1).Draw(t, "x"))
			line.Tick()
		}

		i := rapid.IntRange(0, maxLatency-1).Draw(t, "i")
		alpha := rapid.Float64Range(0, 1).Draw(t, "alpha")

		got := line.FractionalReadAt(float64(i) + alpha)
		want := (1-alpha)*line.ReadAt(i) + alpha*line.ReadAt(i+1)
		if diff := got - want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("FractionalReadAt(%v+%v) = %v, want %v", i, alpha, got, want)
		}
	})
}

func TestReadAtClampsToMaxLatency(t *testing.T) {
	line := New(0, 4, nil)
	for i := 0; i < 4; i++ {
		line.Write(float64(i + 1))
		line.Tick()
	}
	if got, want := line.ReadAt(100), line.ReadAt(4); got != want {
		t.Errorf("ReadAt(100) = %v, want clamp to ReadAt(max_latency) = %v", got, want)
	}
}

func TestSetLatencyDoesNotShiftSamples(t *testing.T) {
	line := New(0, 8, nil)
	for i := 0; i < 8; i++ {
		line.Write(float64(i + 1))
		line.Tick()
	}
	before := line.ReadAt(3)
	line.SetLatency(5)
	after := line.ReadAt(3)
	if before != after {
		t.Errorf("SetLatency shifted stored samples: before=%v after=%v", before, after)
	}
}

func TestResetStateKeepsIndices(t *testing.T) {
	line := New(2, 8, nil)
	line.Write(1)
	line.Tick()
	line.Write(2)
	line.Tick()
	latencyBefore := line.Latency()
	line.ResetState()
	if line.Latency() != latencyBefore {
		t.Errorf("ResetState changed latency: got %v want %v", line.Latency(), latencyBefore)
	}
	if line.Read() != 0 {
		t.Errorf("ResetState left non-zero sample: %v", line.Read())
	}
}
