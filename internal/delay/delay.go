// Package delay implements the engine's fractional delay line: a fixed
// capacity ring buffer with a resizable read tap. Grounded on the comb
// filter history buffer in the teacher's celt/postfilter.go (modular
// index arithmetic over a preallocated history slice, no reallocation on
// the hot path) and the circular-history bookkeeping in plc/celt_plc.go.
package delay

import "github.com/sal-audio/sal/internal/logging"

// Line is a ring-buffered fractional delay line. The zero value is not
// usable; construct one with New.
type Line struct {
	buf        []float64
	maxLatency int
	latency    int
	writeIndex int
	readIndex  int
	log        *logging.Logger
}

// New allocates a delay line with maxLatency+1 zero-initialised slots and
// an initial read tap `latency` samples behind the write index. latency is
// clamped to [0, maxLatency].
func New(latency, maxLatency int, log *logging.Logger) *Line {
	if maxLatency < 0 {
		maxLatency = 0
	}
	if log == nil {
		log = logging.Discard()
	}
	l := &Line{
		buf:        make([]float64, maxLatency+1),
		maxLatency: maxLatency,
		log:        log,
	}
	l.SetLatency(latency)
	return l
}

func (l *Line) capacity() int { return l.maxLatency + 1 }

func mod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// MaxLatency returns the line's fixed capacity minus one.
func (l *Line) MaxLatency() int { return l.maxLatency }

// Latency returns the current read latency in samples.
func (l *Line) Latency() int { return l.latency }

// Write stores x at the write index.
func (l *Line) Write(x float64) {
	l.buf[l.writeIndex] = x
}

// Read returns the sample at the current read index.
func (l *Line) Read() float64 {
	return l.buf[l.readIndex]
}

// ReadAt returns the sample k taps behind the write index. k is clamped to
// [0, maxLatency] with a logged warning if it was out of range.
func (l *Line) ReadAt(k int) float64 {
	n := l.capacity()
	if k > l.maxLatency {
		l.log.Warn("delay: read_at clamped", "requested", k, "max_latency", l.maxLatency)
		k = l.maxLatency
	}
	if k < 0 {
		l.log.Warn("delay: read_at clamped", "requested", k, "max_latency", l.maxLatency)
		k = 0
	}
	idx := mod(l.writeIndex-k, n)
	return l.buf[idx]
}

// FractionalReadAt linearly interpolates between ReadAt(floor(tau)) and
// ReadAt(floor(tau)+1) using the fractional part of tau.
func (l *Line) FractionalReadAt(tau float64) float64 {
	if tau < 0 {
		tau = 0
	}
	i := int(tau)
	frac := tau - float64(i)
	a := l.ReadAt(i)
	b := l.ReadAt(i + 1)
	return (1-frac)*a + frac*b
}

// Tick advances both indices by one sample, modulo the line's capacity.
func (l *Line) Tick() {
	l.TickN(1)
}

// TickN advances both indices by n samples, modulo the line's capacity.
func (l *Line) TickN(n int) {
	capacity := l.capacity()
	l.writeIndex = mod(l.writeIndex+n, capacity)
	l.readIndex = mod(l.readIndex+n, capacity)
}

// SetLatency re-derives the read index from the current write index; it
// neither shifts nor zeroes stored samples. latency is clamped to
// [0, maxLatency] with a logged warning if it was out of range.
func (l *Line) SetLatency(latency int) {
	if latency < 0 {
		l.log.Warn("delay: set_latency clamped", "requested", latency)
		latency = 0
	}
	if latency > l.maxLatency {
		l.log.Warn("delay: set_latency clamped", "requested", latency, "max_latency", l.maxLatency)
		latency = l.maxLatency
	}
	l.latency = latency
	l.readIndex = mod(l.writeIndex-latency, l.capacity())
}

// ResetState zeroes all stored samples but keeps the write/read indices.
func (l *Line) ResetState() {
	for i := range l.buf {
		l.buf[i] = 0
	}
}
