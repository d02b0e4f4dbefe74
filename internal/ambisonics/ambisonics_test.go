package ambisonics

import (
	"math"
	"testing"

	"github.com/sal-audio/sal/internal/geom"
)

const eps = 1e-9

// TestHoaBufferAddressing is spec.md §8 property 8.
func TestHoaBufferAddressing(t *testing.T) {
	fuMaWant := map[[2]int]int{
		{0, 0}: 0,
		{1, 1}: 1, {1, -1}: 2, {1, 0}: 3,
		{2, 0}: 4, {2, 1}: 5, {2, -1}: 6, {2, 2}: 7, {2, -2}: 8,
	}
	for k, want := range fuMaWant {
		if got := ChannelID(FuMa, k[0], k[1]); got != want {
			t.Errorf("FuMa channel_id(%d,%d) = %d, want %d", k[0], k[1], got, want)
		}
	}

	for n := 0; n <= 3; n++ {
		for m := -n; m <= n; m++ {
			want := n*n + n + m
			if got := ChannelID(ACN, n, m); got != want {
				t.Errorf("ACN channel_id(%d,%d) = %d, want %d", n, m, got, want)
			}
		}
	}
}

// TestAmbisonicRoundTrip is spec.md §8 property 6: a regular horizontal
// ring of L >= 2N+1 loudspeakers, encoding a plane wave at angle theta and
// decoding with the mode-matching matrix, reproduces the Poletti panning
// law on loudspeaker 0.
func TestAmbisonicRoundTrip(t *testing.T) {
	const order = 2
	const L = 7 // > 2*order+1 = 5, exercising the over-sampled case
	angles := make([]float64, L)
	for l := range angles {
		angles[l] = 2 * math.Pi * float64(l) / float64(L)
	}

	dec := NewHorizDecoder(HorizDecoderConfig{
		Order:             order,
		LoudspeakerAngles: angles,
	})

	thetas := []float64{0, 0.3, 1.1, math.Pi / 2, 2.9}
	for _, theta := range thetas {
		buf := NewHoaBuffer(order, true, FuMa, N3D, 1)
		enc := Encoder{Order: order, HorizontalOnly: true, Ordering: FuMa, Normalization: N3D}
		enc.EncodeInto(1.0, geom.NewPoint(math.Cos(theta), math.Sin(theta), 0), buf, 0)

		output := make([][]float64, L)
		for l := range output {
			output[l] = make([]float64, 1)
		}
		dec.Decode(buf, output)

		var want float64 = 1
		for i := 1; i <= order; i++ {
			want += 2 * math.Cos(float64(i)*theta)
		}
		want /= float64(L)

		if diff := output[0][0] - want; diff > 1e-10 || diff < -1e-10 {
			t.Errorf("theta=%v: loudspeaker 0 = %v, want %v", theta, output[0][0], want)
		}
	}
}
