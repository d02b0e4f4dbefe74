// Package sal implements a real-time spatial-audio simulation engine:
// propagating one or more point sources to one or more receivers over
// either a free-field (direct line-of-sight) path or a rectangular room's
// image-source reflections, and turning each arriving plane wave into
// output audio through a receiver's directivity (omnidirectional, gain,
// trig-polynomial, binaural HRTF, or higher-order-ambisonic encoding).
//
// # Scene graph
//
// A scene is a set of Sources and Receivers, each a Point plus a
// Quaternion orientation, wired together by a Simulator. Attaching a Room
// to the Simulator's configuration switches every source/receiver pair
// from a single propagation.Line to an image-source Model enumerating that
// room's reflections up to a target response length.
//
// # Buffers
//
// Buffer, MonoBuffer, and StereoBuffer are channel-major sample blocks;
// HoaBuffer instead addresses channels by spherical-harmonic (degree,
// order) pair. Sub-buffers view a parent Buffer's backing slices rather
// than copying, so writes through a sub-buffer are visible to whoever
// holds the parent.
//
// # Directivities
//
// Receiver and a directional Source each hold a directivity.Directivity
// prototype and lazily clone one instance per distinct wave, so per-wave
// filter state (an HRTF's convolution tail, a spherical-harmonic source's
// equaliser state) persists correctly across a streaming ProcessBlock call.
//
// # Configuration and errors
//
// Enums (Interpolation, AttenuationType, Handedness, WallType, ...) are
// aliases onto the internal package that owns each concern. Construction
// errors are sentinel values in errors.go; ProcessBlock itself never
// returns an error: configuration problems are caught at construction
// time, and out-of-range delays or distances at run time are clamped and
// logged.
package sal
