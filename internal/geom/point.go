// Package geom implements the minimal 3-D point and orientation primitives
// the engine needs: a Euclidean point with the handful of operations the
// rest of the engine calls (norm, spherical angles, rotation, projection,
// line/plane intersection) and a unit quaternion for receiver/source
// orientation. It intentionally does not attempt to be a general-purpose
// geometry or linear-algebra library.
package geom

import "math"

// Point is an immutable 3-tuple in a right- or left-handed Cartesian frame.
type Point struct {
	X, Y, Z float64
}

// Origin is the zero point.
var Origin = Point{}

// NewPoint builds a Point from Cartesian coordinates.
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Norm returns the Euclidean length of the point treated as a vector.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Theta returns the angle between p and the +z axis, in [0, pi].
// NaN (e.g. p at the origin) is treated as zero per the numerical
// edge-case policy: a collocated source/receiver has no well-defined
// angle, so we fall back to the acoustic axis.
func (p Point) Theta() float64 {
	n := p.Norm()
	if n == 0 {
		return 0
	}
	v := p.Z / n
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return math.Acos(v)
}

// Phi returns the azimuth of p from the +x axis, right-handed about +z,
// in (-pi, pi].
func (p Point) Phi() float64 {
	if p.X == 0 && p.Y == 0 {
		return 0
	}
	return math.Atan2(p.Y, p.X)
}

// Add returns the pointwise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p minus q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p scaled by k.
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k, p.Z * k}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return p.Sub(q).Norm()
}

// Equals reports whether p and q are equal to within eps.
func (p Point) Equals(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps && math.Abs(p.Z-q.Z) <= eps

}

// RotateAboutX rotates p by angle radians (right-hand rule) about the x axis.
func (p Point) RotateAboutX(angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{
		X: p.X,
		Y: p.Y*c - p.Z*s,
		Z: p.Y*s + p.Z*c,
	}
}

// RotateAboutY rotates p by angle radians (right-hand rule) about the y axis.
func (p Point) RotateAboutY(angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{
		X: p.X*c + p.Z*s,
		Y: p.Y,
		Z: -p.X*s + p.Z*c,
	}
}

// RotateAboutZ rotates p by angle radians (right-hand rule) about the z axis.
func (p Point) RotateAboutZ(angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
		Z: p.Z,
	}
}

// Project returns p projected onto the plane through the origin with the
// given unit normal.
func (p Point) Project(normal Point) Point {
	n := normal.Norm()
	if n == 0 {
		return p
	}
	unit := normal.Scale(1 / n)
	return p.Sub(unit.Scale(p.Dot(unit)))
}

// LineIntersect returns the point where the line through lineA and lineB
// crosses the plane with the given point and normal, and whether the line
// is not parallel to the plane.
func (p Point) LineIntersect(lineA, lineB, planePoint, planeNormal Point) (Point, bool) {
	dir := lineB.Sub(lineA)
	denom := dir.Dot(planeNormal)
	if denom == 0 {
		return Point{}, false
	}
	t := planePoint.Sub(lineA).Dot(planeNormal) / denom
	return lineA.Add(dir.Scale(t)), true
}

// PlaneIntersect is an alias kept for symmetry with the spec's naming; it
// intersects the line from p through other with the given plane.
func (p Point) PlaneIntersect(other, planePoint, planeNormal Point) (Point, bool) {
	return p.LineIntersect(p, other, planePoint, planeNormal)
}
