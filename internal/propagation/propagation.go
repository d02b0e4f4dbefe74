// Package propagation implements the free-field propagation line: a delay
// line driven by a source-receiver distance, paired with a click-free gain
// ramp for the associated distance attenuation. Grounded on the teacher's
// plc package for sample-driven state transitions and on
// internal/delay for the underlying ring buffer.
package propagation

import (
	"math"

	"github.com/sal-audio/sal/internal/delay"
	"github.com/sal-audio/sal/internal/logging"
)

// AttenuationType selects how distance maps to gain.
type AttenuationType int

const (
	// InverseSquareLaw attenuates by the reciprocal of the delay in
	// samples, i.e. the reference distance that yields unit gain is the
	// distance sound travels in one sample period (SoundSpeed/SampleRate).
	InverseSquareLaw AttenuationType = iota
	// ConstantLOS pins the gain of direct line-of-sight components to the
	// 1-metre reference value (i.e. always 1), irrespective of distance.
	ConstantLOS
)

// Interpolation selects how a fractional delay is realised.
type Interpolation int

const (
	// Rounding reads the nearest integer-sample tap.
	Rounding Interpolation = iota
	// Linear interpolates between the two adjacent integer-sample taps.
	Linear
)

const defaultSoundSpeed = 343.0 // m/s

// Config configures a Line's physics and interpolation policy.
type Config struct {
	SoundSpeed  float64 // m/s; 0 defaults to 343
	SampleRate  float64 // Hz
	Attenuation AttenuationType
	Interp      Interpolation
	Log         *logging.Logger
}

func (c Config) soundSpeed() float64 {
	if c.SoundSpeed > 0 {
		return c.SoundSpeed
	}
	return defaultSoundSpeed
}

// Line is a single propagation path: a delay line whose latency and gain
// track a caller-supplied source-receiver distance, with the gain smoothed
// by a ramp so that SetDistance calls made mid-stream don't click.
type Line struct {
	cfg         Config
	delay       *delay.Line
	ramp        Smoother
	curDelay    float64 // current (possibly fractional) delay in samples
	log         *logging.Logger
}

// New returns a Line whose delay buffer can represent distances up to
// maxDistance metres, initialised at distance minDistance.
func New(minDistance, maxDistance float64, cfg Config) *Line {
	if cfg.Log == nil {
		cfg.Log = logging.Discard()
	}
	maxLatency := int(math.Ceil(maxDistance*cfg.SampleRate/cfg.soundSpeed())) + 1
	l := &Line{
		cfg:   cfg,
		delay: delay.New(0, maxLatency, cfg.Log),
		log:   cfg.Log,
	}
	l.SetDistance(minDistance, 0)
	l.ramp = NewSmoother(l.ramp.target)
	return l
}

// attenuationFor returns the gain for a source-receiver distance, given the
// unrounded delay in samples it corresponds to.
func (l *Line) attenuationFor(distance, delaySamples float64) float64 {
	switch l.cfg.Attenuation {
	case ConstantLOS:
		return 1.0
	default: // InverseSquareLaw
		if delaySamples <= 0 {
			return 1.0
		}
		return 1.0 / delaySamples
	}
}

// SetDistance updates the line's target delay and attenuation for a new
// source-receiver distance. The delay tap moves immediately (rounding mode
// repositions the integer tap right away; linear mode simply changes the
// fractional read offset used on the next Read); the attenuation ramps to
// its new target over rampSamples samples, or jumps to it on the next Tick
// if rampSamples <= 0.
func (l *Line) SetDistance(distance float64, rampSamples int) {
	if distance < 0 {
		distance = 0
	}
	delaySamples := distance * l.cfg.SampleRate / l.cfg.soundSpeed()
	maxLatency := float64(l.delay.MaxLatency())
	if delaySamples > maxLatency {
		l.log.Warn("propagation: distance exceeds max_distance, clamping",
			"distance", distance, "delay_samples", delaySamples, "max_latency", maxLatency)
		delaySamples = maxLatency
	}

	switch l.cfg.Interp {
	case Linear:
		l.curDelay = delaySamples
	default: // Rounding
		rounded := math.Round(delaySamples)
		l.delay.SetLatency(int(rounded))
		l.curDelay = rounded
	}

	target := l.attenuationFor(distance, delaySamples)
	l.ramp.SetTarget(target, rampSamples)
}

// Write stores one input sample.
func (l *Line) Write(x float64) { l.delay.Write(x) }

// Read returns the delayed, attenuated output sample for the current tick.
func (l *Line) Read() float64 {
	var tap float64
	if l.cfg.Interp == Linear {
		tap = l.delay.FractionalReadAt(l.curDelay)
	} else {
		tap = l.delay.Read()
	}
	return tap * l.ramp.Current()
}

// Tick advances the delay line and the attenuation ramp by one sample.
func (l *Line) Tick() {
	l.delay.Tick()
	l.ramp.Step()
}

// ResetState clears stored samples and snaps the attenuation ramp to its
// current target (no audible artifact since the buffer is silent anyway).
func (l *Line) ResetState() {
	l.delay.ResetState()
	l.ramp = NewSmoother(l.ramp.target)
}

// CurrentAttenuation returns the ramp's current (possibly mid-ramp) gain.
func (l *Line) CurrentAttenuation() float64 { return l.ramp.Current() }

// CurrentDelaySamples returns the line's current delay in samples.
func (l *Line) CurrentDelaySamples() float64 { return l.curDelay }
