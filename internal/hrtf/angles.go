package hrtf

import (
	"math"

	"github.com/sal-audio/sal/internal/directivity"
	"github.com/sal-audio/sal/internal/geom"
)

// localAngles maps a local-frame direction to (azimuth, elevation) in
// degrees, azimuth wrapped to [0, 360). Grounded on kemarmic.cpp's
// GetBrir ("for forward looking direction, azimuth = 0 and elevation =
// 0", elevation from an arcsine of the up-axis component, azimuth from
// the forward/right-axis pair) but generalised two ways: it takes
// directivity.Orientation so it works for either head reference, and it
// replaces the original's asin/acos-with-quadrant-correction azimuth
// formula with an equivalent atan2 (same [0,360) wrap, one branch
// instead of two).
func localAngles(p geom.Point, orientation directivity.Orientation) (azimuthDeg, elevationDeg float64) {
	n := p.Norm()
	if n == 0 {
		n = 1
	}
	x, y, z := p.X/n, p.Y/n, p.Z/n

	var forward, right, up float64
	if orientation == directivity.YZ {
		forward, right, up = y, z, x
	} else {
		forward, right, up = x, y, z
	}

	elevationDeg = math.Asin(clampUnit(up)) / math.Pi * 180
	azimuthDeg = math.Atan2(right, forward) / math.Pi * 180
	if azimuthDeg < 0 {
		azimuthDeg += 360
	}
	return azimuthDeg, elevationDeg
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
