package sal

import "github.com/sal-audio/sal/internal/ambisonics"

// Buffer is a channel-major block of audio: data[channel][sample].
// Sub-buffers (MakeSubBuffer) re-slice the backing arrays rather than
// copying, so a view written by one component is visible to whoever holds
// the parent Buffer, matching spec.md §6's zero-copy sub-buffer contract.
type Buffer struct {
	data [][]float64
}

// NewBuffer allocates a Buffer of numChannels channels, each numSamples
// long and zero-initialised.
func NewBuffer(numChannels, numSamples int) *Buffer {
	data := make([][]float64, numChannels)
	for i := range data {
		data[i] = make([]float64, numSamples)
	}
	return &Buffer{data: data}
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.data) }

// NumSamples returns the per-channel sample count, or 0 for a channel-less
// buffer.
func (b *Buffer) NumSamples() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data[0])
}

// GetSample reads channel ch at sample k.
func (b *Buffer) GetSample(ch, k int) float64 { return b.data[ch][k] }

// SetSample overwrites channel ch at sample k.
func (b *Buffer) SetSample(ch, k int, v float64) { b.data[ch][k] = v }

// AddSample accumulates v into channel ch at sample k.
func (b *Buffer) AddSample(ch, k int, v float64) { b.data[ch][k] += v }

// GetReadView returns channel ch's samples as a read-only-by-convention
// slice (Go has no read-only slices; callers must not mutate it).
func (b *Buffer) GetReadView(ch int) []float64 { return b.data[ch] }

// GetWriteView returns channel ch's samples as a mutable slice.
func (b *Buffer) GetWriteView(ch int) []float64 { return b.data[ch] }

// MakeSubBuffer returns a Buffer viewing a channel and sample range of b
// without copying: writes through the sub-buffer are visible in b.
func (b *Buffer) MakeSubBuffer(firstChannel, numChannels, firstSample, numSamples int) *Buffer {
	data := make([][]float64, numChannels)
	for i := 0; i < numChannels; i++ {
		full := b.data[firstChannel+i]
		data[i] = full[firstSample : firstSample+numSamples]
	}
	return &Buffer{data: data}
}

// Reset zeroes every sample.
func (b *Buffer) Reset() {
	for _, ch := range b.data {
		for i := range ch {
			ch[i] = 0
		}
	}
}

// MonoBuffer is a single-channel Buffer, the shape every Source's input and
// every plane wave driven into a Receiver takes.
type MonoBuffer struct {
	*Buffer
}

// NewMonoBuffer allocates a zero-initialised mono buffer of numSamples.
func NewMonoBuffer(numSamples int) MonoBuffer {
	return MonoBuffer{Buffer: NewBuffer(1, numSamples)}
}

// Samples returns the buffer's single channel.
func (m MonoBuffer) Samples() []float64 { return m.data[0] }

// StereoBuffer is a two-channel Buffer, the shape a binaural Receiver's
// output takes.
type StereoBuffer struct {
	*Buffer
}

// NewStereoBuffer allocates a zero-initialised stereo buffer of numSamples.
func NewStereoBuffer(numSamples int) StereoBuffer {
	return StereoBuffer{Buffer: NewBuffer(2, numSamples)}
}

// Left returns the left channel's samples.
func (s StereoBuffer) Left() []float64 { return s.data[0] }

// Right returns the right channel's samples.
func (s StereoBuffer) Right() []float64 { return s.data[1] }

// HoaBuffer is a higher-order-ambisonic buffer, addressed by
// spherical-harmonic (degree, order) pairs rather than a flat channel
// index. internal/ambisonics already implements the full contract spec.md
// §6 asks of it, so the top level re-exports it directly rather than
// wrapping it a second time.
type HoaBuffer = ambisonics.HoaBuffer

// NewHoaBuffer allocates an HoaBuffer of the given order, channel layout,
// and sample count.
func NewHoaBuffer(order int, horizontalOnly bool, ordering HoaOrdering, normalisation HoaNormalisation, numSamples int) *HoaBuffer {
	return ambisonics.NewHoaBuffer(order, horizontalOnly, ordering, normalisation, numSamples)
}
