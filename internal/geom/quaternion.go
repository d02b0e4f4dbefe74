package geom

import "math"

// Handedness selects which sandwich product Quaternion.Rotate uses.
type Handedness int

const (
	// RightHanded rotates p by q using q p q*.
	RightHanded Handedness = iota
	// LeftHanded rotates p by the inverse of q, using q* p q.
	LeftHanded
)

// Axis identifies one of the three Cartesian axes, used to build Euler
// rotation sequences.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// EulerOrder names one of the twelve standard Euler/Tait-Bryan rotation
// sequences. The three angles passed to FromEuler are always, positionally,
// (angle about x, angle about y, angle about z); the order's axis sequence
// controls only how the three single-axis quaternions are composed, reading
// the sequence as applied innermost-axis-first to outermost-axis-last.
type EulerOrder [3]Axis

var (
	OrderXYX = EulerOrder{AxisX, AxisY, AxisX}
	OrderXYZ = EulerOrder{AxisX, AxisY, AxisZ}
	OrderXZX = EulerOrder{AxisX, AxisZ, AxisX}
	OrderXZY = EulerOrder{AxisX, AxisZ, AxisY}
	OrderYXY = EulerOrder{AxisY, AxisX, AxisY}
	OrderYXZ = EulerOrder{AxisY, AxisX, AxisZ}
	OrderYZX = EulerOrder{AxisY, AxisZ, AxisX}
	OrderYZY = EulerOrder{AxisY, AxisZ, AxisY}
	OrderZXY = EulerOrder{AxisZ, AxisX, AxisY}
	OrderZXZ = EulerOrder{AxisZ, AxisX, AxisZ}
	// OrderZYX is the default order (spec.md §6's "zyx (default)").
	OrderZYX = EulerOrder{AxisZ, AxisY, AxisX}
	OrderZYZ = EulerOrder{AxisZ, AxisY, AxisZ}
)

// Quaternion is a unit (or near-unit; Rotate renormalises) quaternion
// W + Xi + Yj + Zk used for source/receiver orientation.
type Quaternion struct {
	W, X, Y, Z float64
}

// Identity is the no-rotation quaternion.
var Identity = Quaternion{W: 1}

// FromAxisAngle builds the quaternion rotating by angle radians about the
// given (not necessarily normalised) axis.
func FromAxisAngle(axis Point, angle float64) Quaternion {
	n := axis.Norm()
	if n == 0 {
		return Identity
	}
	s := math.Sin(angle / 2)
	c := math.Cos(angle / 2)
	return Quaternion{W: c, X: s * axis.X / n, Y: s * axis.Y / n, Z: s * axis.Z / n}
}

func axisQuaternion(axis Axis, angle float64) Quaternion {
	s := math.Sin(angle / 2)
	c := math.Cos(angle / 2)
	switch axis {
	case AxisX:
		return Quaternion{W: c, X: s}
	case AxisY:
		return Quaternion{W: c, Y: s}
	default:
		return Quaternion{W: c, Z: s}
	}
}

func angleFor(axis Axis, x, y, z float64) float64 {
	switch axis {
	case AxisX:
		return x
	case AxisY:
		return y
	default:
		return z
	}
}

// FromEuler builds the orientation quaternion for the three angles
// (angleX, angleY, angleZ), composed according to order.
func FromEuler(order EulerOrder, angleX, angleY, angleZ float64) Quaternion {
	q := Identity
	for _, axis := range order {
		q = Multiply(q, axisQuaternion(axis, angleFor(axis, angleX, angleY, angleZ)))
	}
	return q
}

// Multiply returns the Hamilton product q*r.
func Multiply(q, r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conj returns the conjugate of q.
func (q Quaternion) Conj() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Norm returns the quaternion's magnitude.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized returns q scaled to unit length; the identity if q is zero.
func (q Quaternion) Normalized() Quaternion {
	n := q.Norm()
	if n == 0 {
		return Identity
	}
	return Quaternion{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Rotate rotates point p by q under the given handedness. RightHanded
// applies the active rotation q p q*; LeftHanded applies its inverse,
// q* p q, which is the convention receivers use (spec.md §4.5) to bring a
// world-frame point into their own oriented frame.
func (q Quaternion) Rotate(p Point, handedness Handedness) Point {
	n := q.Normalized()
	v := Quaternion{X: p.X, Y: p.Y, Z: p.Z}
	var result Quaternion
	if handedness == RightHanded {
		result = Multiply(Multiply(n, v), n.Conj())
	} else {
		result = Multiply(Multiply(n.Conj(), v), n)
	}
	return Point{X: result.X, Y: result.Y, Z: result.Z}
}
