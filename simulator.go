package sal

import (
	"github.com/sal-audio/sal/internal/geom"
	"github.com/sal-audio/sal/internal/ism"
	"github.com/sal-audio/sal/internal/logging"
	"github.com/sal-audio/sal/internal/propagation"
)

// SimulatorConfig parameterises a Simulator. Leaving Room nil selects the
// free-field driver (spec.md §4.9): one propagation.Line per
// (source, receiver) pair. Attaching a Room instead drives every pair
// through an internal/ism.Model, so reflections replace the direct-path
// delay line.
type SimulatorConfig struct {
	SampleRate float64
	SoundSpeed float64

	Room *Room

	// Free-field-only fields.
	Attenuation AttenuationType
	Interp      Interpolation
	// MaxDistance bounds the delay buffer every propagation.Line
	// allocates; 0 derives it from the sources' and receivers' initial
	// positions, doubled, so later movement has headroom before a
	// SetSourcePosition/SetReceiverPosition call clamps.
	MaxDistance float64
	RampSamples int

	// Room-only fields, forwarded to each ism.Model.
	RIRLength        int
	IsmInterpolation IsmInterpolation
	PetersonWindow   float64
	RandomDistance   float64
	Rand             ism.RandomSource
	MaxInputLength   int

	Log *logging.Logger
}

// Simulator is the engine's free-field driver: it owns every
// (source, receiver) propagation path and, on ProcessBlock, advances them
// all by one block, dispatching each path's output into its receiver's
// directivity.
type Simulator struct {
	cfg       SimulatorConfig
	sources   []*Source
	receivers []*Receiver

	lines [][]*propagation.Line // [source][receiver], free-field only
	models [][]*ism.Model       // [source][receiver], room only
	waveIDBase [][]int          // [source][receiver], room only

	scratch [][]float64 // [receiver][channel], reused per sample
}

// NewSimulator builds a Simulator wiring every source to every receiver.
// With cfg.Room nil this preallocates one propagation.Line per pair, sized
// by the sources' and receivers' initial positions; with a Room attached
// it instead preallocates one ism.Model per pair and assigns each source a
// reserved block of wave_ids in every receiver's pool, sized to that
// model's image count, so two sources' images at the same receiver never
// collide (spec.md §4.5's "stable wave_id" contract, generalised from one
// source to M).
func NewSimulator(sources []*Source, receivers []*Receiver, cfg SimulatorConfig) (*Simulator, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if len(receivers) == 0 {
		return nil, ErrNoReceivers
	}
	if cfg.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if cfg.SoundSpeed <= 0 {
		return nil, ErrInvalidSoundSpeed
	}
	if cfg.Log == nil {
		cfg.Log = logging.Discard()
	}
	if cfg.Room != nil && cfg.RIRLength <= 0 {
		return nil, ErrInvalidRIRLength
	}

	s := &Simulator{cfg: cfg, sources: sources, receivers: receivers}

	s.scratch = make([][]float64, len(receivers))
	for j, r := range receivers {
		s.scratch[j] = make([]float64, r.Channels)
	}

	if cfg.Room == nil {
		s.buildFreeField()
	} else {
		s.buildRoom()
	}
	return s, nil
}

func (s *Simulator) buildFreeField() {
	maxD := s.cfg.MaxDistance
	if maxD <= 0 {
		for _, src := range s.sources {
			for _, recv := range s.receivers {
				if d := geom.Distance(src.Position, recv.Position); d > maxD {
					maxD = d
				}
			}
		}
		maxD *= 2
		if maxD == 0 {
			maxD = 1
		}
	}

	pcfg := propagation.Config{
		SoundSpeed:  s.cfg.SoundSpeed,
		SampleRate:  s.cfg.SampleRate,
		Attenuation: s.cfg.Attenuation,
		Interp:      s.cfg.Interp,
		Log:         s.cfg.Log,
	}

	s.lines = make([][]*propagation.Line, len(s.sources))
	for i, src := range s.sources {
		s.lines[i] = make([]*propagation.Line, len(s.receivers))
		for j, recv := range s.receivers {
			d := geom.Distance(src.Position, recv.Position)
			line := propagation.New(d, maxD, pcfg)
			line.SetDistance(d, 0)
			s.lines[i][j] = line
		}
	}
}

func (s *Simulator) buildRoom() {
	s.models = make([][]*ism.Model, len(s.sources))
	s.waveIDBase = make([][]int, len(s.sources))
	for i := range s.sources {
		s.models[i] = make([]*ism.Model, len(s.receivers))
		s.waveIDBase[i] = make([]int, len(s.receivers))
	}

	for j, recv := range s.receivers {
		base := 0
		for i, src := range s.sources {
			m := ism.NewModel(ism.Config{
				Room:             s.cfg.Room,
				SourcePosition:   src.Position,
				ReceiverPosition: recv.Position,
				ReceiverChannels: recv.Channels,
				RIRLength:        s.cfg.RIRLength,
				SampleRate:       s.cfg.SampleRate,
				SoundSpeed:       s.cfg.SoundSpeed,
				Interpolation:    s.cfg.IsmInterpolation,
				RandomDistance:   s.cfg.RandomDistance,
				Rand:             s.cfg.Rand,
				PetersonWindow:   s.cfg.PetersonWindow,
				MaxInputLength:   s.cfg.MaxInputLength,
				Log:              s.cfg.Log,
			})
			m.Recompute()
			s.models[i][j] = m
			s.waveIDBase[i][j] = base
			base += m.NumImages()
		}
	}
}

// ProcessBlock advances every propagation path by len(outputs[0][0])
// samples. inputs[i] is source i's dry input (zero-padded if shorter than
// the block); outputs[j] is receiver j's channel-major output buffer,
// accumulated into (not overwritten), matching internal/ism.Model's own
// accumulate-into-out convention.
func (s *Simulator) ProcessBlock(inputs [][]float64, outputs [][][]float64) {
	if len(outputs) == 0 || len(outputs[0]) == 0 {
		return
	}
	k := len(outputs[0][0])
	if s.cfg.Room == nil {
		s.processFreeField(inputs, outputs, k)
		return
	}
	s.processRoom(inputs, outputs)
}

func (s *Simulator) processFreeField(inputs [][]float64, outputs [][][]float64, numSamples int) {
	for k := 0; k < numSamples; k++ {
		for i, src := range s.sources {
			var x float64
			if k < len(inputs[i]) {
				x = inputs[i][k]
			}
			for j, recv := range s.receivers {
				toReceiver := recv.Position.Sub(src.Position)
				emitted := src.Emit(j, x, toReceiver)

				line := s.lines[i][j]
				line.Write(emitted)
				y := line.Read()

				scratch := s.scratch[j]
				for c := range scratch {
					scratch[c] = 0
				}
				recv.ReceiveAndAdd(i, y, toReceiver.Scale(-1), scratch)
				for c, v := range scratch {
					outputs[j][c][k] += v
				}
			}
		}
		for i := range s.sources {
			for j := range s.receivers {
				s.lines[i][j].Tick()
			}
		}
	}
}

// processRoom routes every source's dry input through its own ism.Model
// per receiver; each model accumulates its images' contributions directly
// into outputs[j], keyed by that source's reserved wave_id block. A
// directional source's radiation pattern (Source.Emit) does not apply
// here: the image model needs one dry signal per source to enumerate
// reflections from, and a per-image emission angle would require a
// separate radiation lookup per image rather than per source.
func (s *Simulator) processRoom(inputs [][]float64, outputs [][][]float64) {
	for j, recv := range s.receivers {
		for i := range s.sources {
			s.models[i][j].ProcessBlock(inputs[i], recv, s.waveIDBase[i][j], outputs[j])
		}
	}
}

// SetSourcePosition moves source i and updates every propagation path
// touching it.
func (s *Simulator) SetSourcePosition(i int, p geom.Point) {
	s.sources[i].Position = p
	if s.cfg.Room == nil {
		for j, recv := range s.receivers {
			s.lines[i][j].SetDistance(geom.Distance(p, recv.Position), s.cfg.RampSamples)
		}
		return
	}
	for j := range s.receivers {
		s.models[i][j].SetSourcePosition(p)
	}
}

// SetReceiverPosition moves receiver j and updates every propagation path
// touching it.
func (s *Simulator) SetReceiverPosition(j int, p geom.Point) {
	s.receivers[j].Position = p
	if s.cfg.Room == nil {
		for i, src := range s.sources {
			s.lines[i][j].SetDistance(geom.Distance(src.Position, p), s.cfg.RampSamples)
		}
		return
	}
	for i := range s.sources {
		s.models[i][j].SetReceiverPosition(p)
	}
}

// ResetState clears every source's, receiver's, and propagation path's
// internal state without discarding the wiring built at construction.
func (s *Simulator) ResetState() {
	for _, src := range s.sources {
		src.ResetState()
	}
	for _, recv := range s.receivers {
		recv.ResetState()
	}
	if s.cfg.Room == nil {
		for i := range s.lines {
			for j := range s.lines[i] {
				s.lines[i][j].ResetState()
			}
		}
		return
	}
	for i := range s.models {
		for j := range s.models[i] {
			s.models[i][j].ResetState()
		}
	}
}
