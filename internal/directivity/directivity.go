// Package directivity defines the per-plane-wave directivity contract
// shared by every receiver type, and implements the simple variants that
// don't need their own package: Omni, Gain, Trig (polynomial-in-cos-theta),
// and Bypass. The richer variants (HOA encoder, binaural HRTF, spherical-
// harmonic source) live in internal/ambisonics, internal/hrtf, and
// internal/shsource respectively and satisfy this interface structurally,
// so this package never imports them.
package directivity

import (
	"math"

	"github.com/sal-audio/sal/internal/geom"
)

// Orientation selects which local axes a directivity measures its angle
// against. Grounded on spec.md §4.5's two head reference conventions.
type Orientation int

const (
	// Standard points the acoustic axis along +x, azimuth in the x-y plane.
	Standard Orientation = iota
	// YZ points the acoustic axis along +y, elevation in the y-z plane.
	YZ
)

// Directivity is the polymorphic per-plane-wave filtering contract every
// receiver variant implements.
type Directivity interface {
	// ReceiveAndAdd filters localInput (the plane wave's sample, already
	// translated into the receiver's local frame with relativePoint as the
	// source's local-frame position) and accumulates the result into out.
	ReceiveAndAdd(localInput float64, relativePoint geom.Point, out []float64)
	// ResetState clears internal filter state.
	ResetState()
	// Copy deep-clones this instance as a fresh per-wave-id prototype copy.
	Copy() Directivity
}

func axisAngle(p geom.Point, orientation Orientation) float64 {
	switch orientation {
	case YZ:
		return math.Atan2(math.Hypot(p.X, p.Z), p.Y)
	default:
		return math.Atan2(math.Hypot(p.Y, p.Z), p.X)
	}
}

// Omni is the identity-gain, single-channel directivity.
type Omni struct{}

func (Omni) ReceiveAndAdd(x float64, _ geom.Point, out []float64) {
	if len(out) > 0 {
		out[0] += x
	}
}
func (Omni) ResetState()          {}
func (o Omni) Copy() Directivity  { return o }

// Gain is a fixed-scalar directivity into channel 0.
type Gain struct {
	Value float64
}

func (g Gain) ReceiveAndAdd(x float64, _ geom.Point, out []float64) {
	if len(out) > 0 {
		out[0] += x * g.Value
	}
}
func (Gain) ResetState()         {}
func (g Gain) Copy() Directivity { return g }

// Trig is the polynomial directivity `Σ_i c_i · cos(θ)^i`, θ measured from
// the receiver's acoustic axis per Orientation.
type Trig struct {
	Coefficients []float64
	Orientation  Orientation
}

func (t Trig) ReceiveAndAdd(x float64, p geom.Point, out []float64) {
	if len(out) == 0 {
		return
	}
	theta := axisAngle(p, t.Orientation)
	c := math.Cos(theta)
	var gain, power float64
	power = 1
	for _, ci := range t.Coefficients {
		gain += ci * power
		power *= c
	}
	out[0] += x * gain
}
func (Trig) ResetState() {}
func (t Trig) Copy() Directivity {
	return Trig{Coefficients: append([]float64(nil), t.Coefficients...), Orientation: t.Orientation}
}

// Bypass copies per-wave input straight to every output channel; a debug
// and latency reference directivity.
type Bypass struct{}

func (Bypass) ReceiveAndAdd(x float64, _ geom.Point, out []float64) {
	for i := range out {
		out[i] += x
	}
}
func (Bypass) ResetState()         {}
func (b Bypass) Copy() Directivity { return b }
