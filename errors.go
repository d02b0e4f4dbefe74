package sal

import "errors"

// Public error types for source, receiver, room, and simulator
// construction. Configuration errors (spec.md §7) abort at construction
// with one of these sentinels; callers decide whether to panic.
var (
	// ErrInvalidSampleRate indicates a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("sal: invalid sample rate (must be > 0)")

	// ErrInvalidSoundSpeed indicates a non-positive sound speed.
	ErrInvalidSoundSpeed = errors.New("sal: invalid sound speed (must be > 0)")

	// ErrMissingDirectivity indicates a Receiver or Source was constructed
	// without a directivity prototype.
	ErrMissingDirectivity = errors.New("sal: missing directivity prototype")

	// ErrInvalidChannels indicates a non-positive receiver channel count.
	ErrInvalidChannels = errors.New("sal: invalid channel count (must be > 0)")

	// ErrInvalidRoomDimensions indicates a non-positive room side length.
	ErrInvalidRoomDimensions = errors.New("sal: invalid room dimensions (sides must be > 0)")

	// ErrNoSources indicates a Simulator was constructed with no sources.
	ErrNoSources = errors.New("sal: simulator requires at least one source")

	// ErrNoReceivers indicates a Simulator was constructed with no receivers.
	ErrNoReceivers = errors.New("sal: simulator requires at least one receiver")

	// ErrInvalidRIRLength indicates a non-positive room-impulse-response
	// target length was given for a room-attached simulator.
	ErrInvalidRIRLength = errors.New("sal: invalid RIR length (must be > 0)")
)
