// Package ism implements the image-source reflection model: enumerating a
// cuboid room's image sources up to a target response length, and driving
// each image through an integer delay line plus a short fractional-delay
// FIR into a receiver's directivity. Grounded on
// original_source/src/ism.cpp.
package ism

import (
	"github.com/sal-audio/sal/internal/dsp"
	"github.com/sal-audio/sal/internal/geom"
)

// Room is the minimal geometry contract ism needs from the top-level
// cuboid Room type — a narrow interface so this package never imports the
// top-level package (which imports ism).
type Room interface {
	// Dimensions returns the room's side lengths along x, y, z.
	Dimensions() (x, y, z float64)
	// WallFilters returns the six per-face IIR filters in axis-major,
	// negative-side-first order: [x-, x+, y-, y+, z-, z+].
	WallFilters() [6]*dsp.IIRFilter
	// ImageSourcePosition is the classical Allen-Berkley image position
	// for reflection order (mx, my, mz) and polarity (px, py, pz) in
	// {0,1}^3, given the true source position.
	ImageSourcePosition(source geom.Point, mx, my, mz, px, py, pz int) geom.Point
}

// Receiver is the minimal contract ism needs from the top-level Receiver
// type: routing one plane wave, identified by a stable wave_id so a
// directional receiver's per-image directivity instance persists across
// samples, into its output.
type Receiver interface {
	ReceiveAndAdd(waveID int, localInput float64, relativePoint geom.Point, out []float64)
}

// RandomSource is the host-supplied uniform random generator used for
// optional delay jitter (random-number generation is an external
// collaborator per spec, not implemented in this package). Satisfied by
// *math/rand.Rand.
type RandomSource interface {
	Float64() float64
}
