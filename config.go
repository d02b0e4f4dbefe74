package sal

import (
	"github.com/sal-audio/sal/internal/ambisonics"
	"github.com/sal-audio/sal/internal/directivity"
	"github.com/sal-audio/sal/internal/dsp"
	"github.com/sal-audio/sal/internal/geom"
	"github.com/sal-audio/sal/internal/ism"
	"github.com/sal-audio/sal/internal/propagation"
)

// The enums below are aliases onto the internal packages that own them
// (spec.md §6's configuration table), so a host only ever imports the
// top-level package, the way gopus re-exports its sub-package enums.

// Interpolation selects how a free-field propagation line realises a
// fractional delay.
type Interpolation = propagation.Interpolation

const (
	Rounding = propagation.Rounding
	Linear   = propagation.Linear
)

// AttenuationType selects how a free-field propagation line maps distance
// to gain.
type AttenuationType = propagation.AttenuationType

const (
	InverseSquareLaw = propagation.InverseSquareLaw
	ConstantLOS      = propagation.ConstantLOS
)

// Point is a 3-D Cartesian coordinate, used for every source and receiver
// position.
type Point = geom.Point

// NewPoint builds a Point from Cartesian coordinates.
func NewPoint(x, y, z float64) Point { return geom.NewPoint(x, y, z) }

// Quaternion is a unit orientation, used for every source and receiver
// look direction.
type Quaternion = geom.Quaternion

// Identity is the no-rotation orientation.
var Identity = geom.Identity

// FromAxisAngle builds the Quaternion rotating by angle radians about axis.
func FromAxisAngle(axis Point, angle float64) Quaternion { return geom.FromAxisAngle(axis, angle) }

// FromEuler builds the orientation Quaternion for three angles, composed
// per order.
func FromEuler(order EulerOrder, angleX, angleY, angleZ float64) Quaternion {
	return geom.FromEuler(order, angleX, angleY, angleZ)
}

// Handedness selects which quaternion sandwich product a receiver's
// orientation applies when bringing a world-frame point into its local
// frame.
type Handedness = geom.Handedness

const (
	RightHanded = geom.RightHanded
	LeftHanded  = geom.LeftHanded
)

// EulerOrder names one of the twelve standard Euler/Tait-Bryan rotation
// sequences used to build a Quaternion from three angles.
type EulerOrder = geom.EulerOrder

var (
	OrderXYX = geom.OrderXYX
	OrderXYZ = geom.OrderXYZ
	OrderXZX = geom.OrderXZX
	OrderXZY = geom.OrderXZY
	OrderYXY = geom.OrderYXY
	OrderYXZ = geom.OrderYXZ
	OrderYZX = geom.OrderYZX
	OrderYZY = geom.OrderYZY
	OrderZXY = geom.OrderZXY
	OrderZXZ = geom.OrderZXZ
	OrderZYX = geom.OrderZYX
	OrderZYZ = geom.OrderZYZ
)

// WallType names a wall-absorption filter preset for a Room's faces.
type WallType = dsp.WallType

const (
	Rigid        = dsp.Rigid
	CarpetPile   = dsp.CarpetPile
	CarpetCotton = dsp.CarpetCotton
	WallBricks   = dsp.WallBricks
	CeilingTile  = dsp.CeilingTile
)

// HeadRefOrientation selects which local axes a directivity measures its
// angle against.
type HeadRefOrientation = directivity.Orientation

const (
	StandardOrientation = directivity.Standard
	YZOrientation       = directivity.YZ
)

// IsmInterpolation selects how an image-source model represents an image's
// sub-sample delay.
type IsmInterpolation = ism.Interpolation

const (
	NoInterpolation = ism.NoInterpolation
	Peterson        = ism.Peterson
)

// HoaOrdering selects the channel-to-(degree,order) mapping an ambisonic
// buffer uses.
type HoaOrdering = ambisonics.ChannelOrdering

const (
	ACN  = ambisonics.ACN
	FuMa = ambisonics.FuMa
)

// HoaNormalisation selects the per-channel scaling convention an ambisonic
// buffer uses.
type HoaNormalisation = ambisonics.Normalization

const (
	N3D      = ambisonics.N3D
	SN3D     = ambisonics.SN3D
	FuMaNorm = ambisonics.FuMaNorm
)
