package sal

import (
	"github.com/sal-audio/sal/internal/dsp"
	"github.com/sal-audio/sal/internal/geom"
	"github.com/sal-audio/sal/internal/logging"
)

// Room is a rectangular cuboid from the origin to (Lx, Ly, Lz), with one
// wall-absorption filter per face. It satisfies internal/ism.Room, so any
// Simulator with a Room attached routes sources and receivers through the
// image-source model instead of a direct free-field propagation line.
type Room struct {
	lx, ly, lz float64
	filters    [6]*dsp.IIRFilter
}

// Faces names a Room's six sides, in the axis-major, negative-side-first
// order internal/ism.Room.WallFilters requires.
type Faces struct {
	XNeg, XPos, YNeg, YPos, ZNeg, ZPos WallType
}

// FaceGains is a per-face linear gain multiplying each face's preset
// filter, for absorption coefficients between presets. A zero entry
// defaults to 1 (no extra attenuation).
type FaceGains struct {
	XNeg, XPos, YNeg, YPos, ZNeg, ZPos float64
}

// NewRoom builds a cuboid Room of side lengths (lx, ly, lz), with each
// face's wall filter drawn from faces and scaled by gains (zero entries
// default to unit gain). sampleRate selects which tabulated filter
// coefficients apply (only 44.1kHz is tabulated; see internal/dsp.WallFilter).
func NewRoom(lx, ly, lz float64, faces Faces, gains FaceGains, sampleRate float64, log *logging.Logger) (*Room, error) {
	if lx <= 0 || ly <= 0 || lz <= 0 {
		return nil, ErrInvalidRoomDimensions
	}
	g := [6]float64{gains.XNeg, gains.XPos, gains.YNeg, gains.YPos, gains.ZNeg, gains.ZPos}
	for i := range g {
		if g[i] == 0 {
			g[i] = 1
		}
	}
	wt := [6]WallType{faces.XNeg, faces.XPos, faces.YNeg, faces.YPos, faces.ZNeg, faces.ZPos}
	var filters [6]*dsp.IIRFilter
	for i := range filters {
		filters[i] = dsp.WallFilter(wt[i], sampleRate, g[i], log)
	}
	return &Room{lx: lx, ly: ly, lz: lz, filters: filters}, nil
}

// Dimensions returns the room's side lengths along x, y, z.
func (r *Room) Dimensions() (x, y, z float64) { return r.lx, r.ly, r.lz }

// WallFilters returns the six per-face IIR filters in [x-, x+, y-, y+, z-,
// z+] order.
func (r *Room) WallFilters() [6]*dsp.IIRFilter { return r.filters }

// ImageSourcePosition is the classical Allen-Berkley image position for
// reflection order (mx, my, mz) and polarity (px, py, pz) in {0,1}^3:
// along each axis, image = (1-2p)*source + 2*m*L. p=0,m=0 is the true
// source; p=1,m=0 and p=1,m=1 are the two first-order (single-reflection)
// images off that axis's near and far wall respectively.
func (r *Room) ImageSourcePosition(source geom.Point, mx, my, mz, px, py, pz int) geom.Point {
	return geom.NewPoint(
		imageAxis(source.X, r.lx, mx, px),
		imageAxis(source.Y, r.ly, my, py),
		imageAxis(source.Z, r.lz, mz, pz),
	)
}

func imageAxis(s, l float64, m, p int) float64 {
	sign := 1.0
	if p == 1 {
		sign = -1.0
	}
	return sign*s + 2*float64(m)*l
}

// ResetState clears every wall filter's state.
func (r *Room) ResetState() {
	for _, f := range r.filters {
		f.ResetState()
	}
}
