// Package hrtf implements HRIR dataset lookup (Kemar, CIPIC, and a SOFA
// adapter stub behind a single Dataset interface) and the binaural receiver
// that drives a pair of crossfading FIR filters from it. Grounded on
// original_source/src/kemarmic.cpp and binauralmic.cpp.
package hrtf

import "math"

// Dataset maps a local direction, given as azimuth/elevation in degrees,
// to a mono HRIR pair. Implementations are expected to be read-only and
// safe to share across receivers and wave-ids.
type Dataset interface {
	Lookup(azimuthDeg, elevationDeg float64) (left, right []float64)
}

// Grid is an equirectangular elevation-then-azimuth HRIR table: one row of
// impulse responses per elevation, each row addressed by its own list of
// azimuth angles (so rows may carry different counts and non-uniform
// spacing, e.g. CIPIC's irregular azimuth set vs Kemar's uniform one).
// KemarDataset and CipicDataset both wrap a Grid; nearestIndex generalises
// kemarmic.cpp's FindElevationIndex/FindAzimuthIndex (which only handled a
// uniform per-row resolution) into a single nearest-match lookup that
// works for either layout.
type Grid struct {
	elevations []float64
	azimuths   [][]float64
	left       [][][]float64
	right      [][][]float64
}

// NewGrid validates that elevations, azimuths, left, and right all agree
// on row/column counts before building the grid.
func NewGrid(elevations []float64, azimuths [][]float64, left, right [][][]float64) *Grid {
	n := len(elevations)
	if len(azimuths) != n || len(left) != n || len(right) != n {
		panic("hrtf: grid row count mismatch between elevations, azimuths, left, and right")
	}
	for i := range elevations {
		if len(azimuths[i]) != len(left[i]) || len(azimuths[i]) != len(right[i]) {
			panic("hrtf: grid column count mismatch at elevation row")
		}
	}
	return &Grid{elevations: elevations, azimuths: azimuths, left: left, right: right}
}

func nearestIndex(values []float64, target float64, circular bool) int {
	best, bestDist := 0, math.Inf(1)
	for i, v := range values {
		d := math.Abs(v - target)
		if circular {
			d = math.Mod(d, 360)
			d = math.Min(d, 360-d)
		}
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// Lookup implements Dataset: nearest elevation row, then nearest azimuth
// column within that row (azimuth distance wraps at 360).
func (g *Grid) Lookup(azimuthDeg, elevationDeg float64) (left, right []float64) {
	ei := nearestIndex(g.elevations, elevationDeg, false)
	az := math.Mod(azimuthDeg, 360)
	if az < 0 {
		az += 360
	}
	ai := nearestIndex(g.azimuths[ei], az, true)
	return g.left[ei][ai], g.right[ei][ai]
}
