// Package ambisonics implements higher-order-ambisonic encoding and
// horizontal decoding: the HoaBuffer channel-addressing conventions, the
// plane-wave encoder, and a mode-matching/max-rE decoder with optional
// near-field correction and a Linkwitz-Riley energy crossover. Grounded on
// original_source's ambisonics.cpp (AmbisonicsMic/AmbisonicsHorizDec), with
// the mode-matching normalisation generalised from a critically-sampled
// (L = 2N+1) assumption to the spec's stated `D_mm = (1/L)·Eᵀ` for any
// regular array of L >= 2N+1 loudspeakers — see DESIGN.md.
package ambisonics

// ChannelOrdering selects how (degree n, order m) pairs map to a channel
// index in an HoaBuffer.
type ChannelOrdering int

const (
	FuMa ChannelOrdering = iota
	ACN
)

// Normalization selects the scaling convention applied to stored
// coefficients.
type Normalization int

const (
	N3D Normalization = iota
	SN3D
	FuMaNorm
)

var fuMaTable = map[[2]int]int{
	{0, 0}: 0,
	{1, 1}: 1, {1, -1}: 2, {1, 0}: 3,
	{2, 0}: 4, {2, 1}: 5, {2, -1}: 6, {2, 2}: 7, {2, -2}: 8,
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// fuMaChannelID implements spec.md §8 property 8's table for n <= 2 exactly.
// Degrees above 2 aren't named by the spec's table; channels for them
// continue immediately after index 8, in the same "m=0, then +-1, +-2, ..."
// layout the n=2 row uses.
func fuMaChannelID(n, m int) int {
	if id, ok := fuMaTable[[2]int{n, m}]; ok {
		return id
	}
	base := 9
	for deg := 3; deg < n; deg++ {
		base += 2*deg + 1
	}
	if m == 0 {
		return base
	}
	off := 2*abs(m) - 1
	if m < 0 {
		off++
	}
	return base + off
}

// acnChannelID implements spec.md §8 property 8's ACN formula.
func acnChannelID(n, m int) int {
	return n*n + n + m
}

// ChannelID maps (degree n, order m) to a channel index under ordering.
func ChannelID(ordering ChannelOrdering, n, m int) int {
	if ordering == ACN {
		return acnChannelID(n, m)
	}
	return fuMaChannelID(n, m)
}

// horizontalChannelID is the dense 0..2*order layout used by
// horizontal-only buffers (matching Encoder.encodeHorizontal's emission
// order): n=0 at 0, then each degree n>=1 contributes (n,+1) then (n,-1)
// at 2n-1 and 2n. The full FuMa/ACN tables are sparse across the 3-D
// channel set and aren't contiguous for the horizontal-only subset, so a
// horizontal-only buffer always uses this layout regardless of Ordering.
func horizontalChannelID(n, m int) int {
	if n == 0 {
		return 0
	}
	if m > 0 {
		return 2*n - 1
	}
	return 2 * n
}

// ChannelCount returns the number of HOA channels for a given order.
// Horizontal-only encodes degree-0 and, per degree up to order, a cosine
// and sine pair: 2*order+1 channels. Full 3-D uses every (n,m) pair up to
// order: (order+1)^2 channels.
func ChannelCount(order int, horizontalOnly bool) int {
	if horizontalOnly {
		return 2*order + 1
	}
	return (order + 1) * (order + 1)
}

// HoaBuffer stores ambisonic channels, each a slice of samples, addressed
// by spherical-harmonic (degree, order) pairs through a ChannelOrdering.
type HoaBuffer struct {
	order          int
	horizontalOnly bool
	ordering       ChannelOrdering
	normalization  Normalization
	data           [][]float64
}

// NewHoaBuffer allocates a buffer of ChannelCount(order, horizontalOnly)
// channels, each numSamples long and zero-initialised.
func NewHoaBuffer(order int, horizontalOnly bool, ordering ChannelOrdering, normalization Normalization, numSamples int) *HoaBuffer {
	n := ChannelCount(order, horizontalOnly)
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, numSamples)
	}
	return &HoaBuffer{
		order:          order,
		horizontalOnly: horizontalOnly,
		ordering:       ordering,
		normalization:  normalization,
		data:           data,
	}
}

// Order returns the buffer's HOA order.
func (b *HoaBuffer) Order() int { return b.order }

// NumChannels returns the buffer's channel count.
func (b *HoaBuffer) NumChannels() int { return len(b.data) }

// NumSamples returns the buffer's per-channel sample count.
func (b *HoaBuffer) NumSamples() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data[0])
}

// ChannelID maps (n, m) to this buffer's channel index under its ordering
// (or the horizontal-only dense layout, if that's how the buffer was
// constructed).
func (b *HoaBuffer) ChannelID(n, m int) int {
	if b.horizontalOnly {
		return horizontalChannelID(n, m)
	}
	return ChannelID(b.ordering, n, m)
}

// AddSample accumulates value into channel (n, m) at sampleIndex.
func (b *HoaBuffer) AddSample(n, m, sampleIndex int, value float64) {
	b.data[b.ChannelID(n, m)][sampleIndex] += value
}

// SetSample overwrites channel (n, m) at sampleIndex.
func (b *HoaBuffer) SetSample(n, m, sampleIndex int, value float64) {
	b.data[b.ChannelID(n, m)][sampleIndex] = value
}

// GetSample reads channel (n, m) at sampleIndex.
func (b *HoaBuffer) GetSample(n, m, sampleIndex int) float64 {
	return b.data[b.ChannelID(n, m)][sampleIndex]
}

// Channel returns the raw per-sample slice for a channel index (not an
// (n, m) pair) — used by the decoder, which iterates channels directly.
func (b *HoaBuffer) Channel(channelIndex int) []float64 { return b.data[channelIndex] }

// Reset zeroes every channel.
func (b *HoaBuffer) Reset() {
	for _, ch := range b.data {
		for i := range ch {
			ch[i] = 0
		}
	}
}
