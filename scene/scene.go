// Package scene loads a declarative YAML description of a spatial-audio
// scene — sources, receivers, and an optional room — so a host
// application can configure an engine without hand-wiring Go literals.
// This is additive scaffolding around the engine, not a requirement of
// it: nothing in the top-level package imports scene, and a host that
// prefers to build Source/Receiver/Room/Simulator values directly never
// needs it.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vec3 is a 3-element [x, y, z] coordinate or angle triple, written in
// YAML as a flow sequence: `[1, 2, 3]`.
type Vec3 [3]float64

// Orientation describes a look direction as three Euler angles, in
// radians, applied in the given order ("xyz", "zyx", ...; see
// EulerOrder). Order defaults to "zyx" when empty, the engine's default.
type Orientation struct {
	Order  string `yaml:"order,omitempty"`
	Angles Vec3   `yaml:"angles"`
}

// SourceConfig describes one emitter.
type SourceConfig struct {
	Name        string       `yaml:"name,omitempty"`
	Position    Vec3         `yaml:"position"`
	Orientation *Orientation `yaml:"orientation,omitempty"`

	// Directivity optionally names a radiation pattern ("omni", "gain",
	// "trig"); empty means omnidirectional (no directivity prototype).
	Directivity  string    `yaml:"directivity,omitempty"`
	Gain         float64   `yaml:"gain,omitempty"`
	Coefficients []float64 `yaml:"coefficients,omitempty"`
}

// ReceiverConfig describes one listening point.
type ReceiverConfig struct {
	Name        string       `yaml:"name,omitempty"`
	Position    Vec3         `yaml:"position"`
	Orientation *Orientation `yaml:"orientation,omitempty"`

	// Handedness selects the receiver's world-to-local rotation
	// convention: "left" (default) or "right".
	Handedness string `yaml:"handedness,omitempty"`

	// Directivity names the receiver's directivity kind: "omni", "gain",
	// "trig", "binaural", or "hoa". Binaural and HOA receivers need a
	// dataset or order the scene file can't name portably, so Load
	// leaves those two for the host to construct; Channels still
	// records how many output channels to allocate.
	Directivity  string    `yaml:"directivity,omitempty"`
	Gain         float64   `yaml:"gain,omitempty"`
	Coefficients []float64 `yaml:"coefficients,omitempty"`
	Channels     int       `yaml:"channels,omitempty"`
}

// FacesConfig names each of a room's six faces' wall-absorption preset:
// "rigid" (default), "carpet_pile", "carpet_cotton", "wall_bricks", or
// "ceiling_tile".
type FacesConfig struct {
	XNeg string `yaml:"x_neg,omitempty"`
	XPos string `yaml:"x_pos,omitempty"`
	YNeg string `yaml:"y_neg,omitempty"`
	YPos string `yaml:"y_pos,omitempty"`
	ZNeg string `yaml:"z_neg,omitempty"`
	ZPos string `yaml:"z_pos,omitempty"`
}

// FaceGainsConfig is a per-face linear gain multiplying each face's preset
// filter; zero means "use the preset's own gain".
type FaceGainsConfig struct {
	XNeg float64 `yaml:"x_neg,omitempty"`
	XPos float64 `yaml:"x_pos,omitempty"`
	YNeg float64 `yaml:"y_neg,omitempty"`
	YPos float64 `yaml:"y_pos,omitempty"`
	ZNeg float64 `yaml:"z_neg,omitempty"`
	ZPos float64 `yaml:"z_pos,omitempty"`
}

// RoomConfig describes an optional cuboid room. A nil Room in Description
// means the free-field driver, not the image-source model, applies.
type RoomConfig struct {
	Dimensions Vec3            `yaml:"dimensions"`
	Faces      FacesConfig     `yaml:"faces,omitempty"`
	Gains      FaceGainsConfig `yaml:"gains,omitempty"`
	RIRLength  int             `yaml:"rir_length,omitempty"`
}

// Description is the parsed contents of a scene file: a host-friendly,
// engine-agnostic record the caller converts into Source/Receiver/Room/
// Simulator values.
type Description struct {
	SampleRate float64          `yaml:"sample_rate"`
	SoundSpeed float64          `yaml:"sound_speed,omitempty"`
	Sources    []SourceConfig   `yaml:"sources"`
	Receivers  []ReceiverConfig `yaml:"receivers"`
	Room       *RoomConfig      `yaml:"room,omitempty"`
}

// Load reads and parses the YAML scene file at path.
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: reading %s: %w", path, err)
	}
	var d Description
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("scene: parsing %s: %w", path, err)
	}
	if d.SoundSpeed == 0 {
		d.SoundSpeed = 343
	}
	return &d, nil
}
