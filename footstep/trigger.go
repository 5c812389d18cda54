// Package footstep turns motion flags into paced, non-overlapping footstep
// audio triggers.
package footstep

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/milk9111/footfall/motion"
)

const (
	DefaultRate = 0.5
	MinRate     = 0.01

	PitchMin = 0.9
	PitchMax = 1.1
)

// Clip is a handle to one footstep sound.
type Clip struct {
	Name   string
	File   string
	Volume float64
}

// Output is the audio collaborator that plays the selected clip.
type Output interface {
	IsPlaying() bool
	PlayOneShot(clip Clip, pitch float64)
}

// Event describes one fired footstep.
type Event struct {
	Index int
	Clip  Clip
	Pitch float64
}

type Config struct {
	// Rate is the cooldown in seconds between footsteps.
	Rate float64
	// InitialDelay is the starting cooldown; zero arms the trigger immediately.
	InitialDelay float64
	Thresholds   motion.Thresholds
	Clips        []Clip
}

func DefaultConfig() Config {
	return Config{
		Rate:       DefaultRate,
		Thresholds: motion.DefaultThresholds(),
	}
}

type State int

const (
	Armed State = iota
	Cooling
)

func (s State) String() string {
	if s == Cooling {
		return "cooling"
	}
	return "armed"
}

type Option func(*Trigger)

// WithRand replaces the pitch and clip selection source.
func WithRand(r *rand.Rand) Option {
	return func(t *Trigger) {
		if r != nil {
			t.rng = r
		}
	}
}

// Trigger is the cooldown gate for one body. It is not safe for concurrent
// use; the host ticks it from the goroutine that owns the body.
type Trigger struct {
	rate       float64
	thresholds motion.Thresholds
	clips      []Clip
	out        Output
	rng        *rand.Rand

	cooldown float64
	flags    motion.Flags
}

func New(cfg Config, out Output, opts ...Option) (*Trigger, error) {
	if len(cfg.Clips) == 0 {
		return nil, ErrEmptyClipSet
	}
	if out == nil {
		return nil, ErrNoOutput
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("footstep: %w", err)
	}

	rate := cfg.Rate
	if rate < MinRate || math.IsNaN(rate) {
		rate = MinRate
	}

	seed := uint64(time.Now().UnixNano())
	t := &Trigger{
		rate:       rate,
		thresholds: cfg.Thresholds,
		clips:      append([]Clip(nil), cfg.Clips...),
		out:        out,
		rng:        rand.New(rand.NewPCG(seed, seed>>1|1)),
		cooldown:   math.Max(cfg.InitialDelay, 0),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Tick advances the cooldown by dt and fires at most one footstep.
// ErrAlreadyPlaying is returned when the gate opened while the output was
// still busy; no event is emitted and the cooldown stays expired so the next
// tick retries.
func (t *Trigger) Tick(dt float64, flags motion.Flags) (*Event, error) {
	t.flags = flags
	t.advance(dt)
	if !t.gateOpen(flags) {
		return nil, nil
	}
	return t.fire()
}

// advance runs every tick, even while idle or falling, so a step can fire as
// soon as walking resumes.
func (t *Trigger) advance(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	t.cooldown -= dt
}

// gateOpen ignores Sprinting.
func (t *Trigger) gateOpen(flags motion.Flags) bool {
	return flags.Walking && !flags.Falling && t.cooldown < 0
}

func (t *Trigger) fire() (*Event, error) {
	if t.out.IsPlaying() {
		return nil, ErrAlreadyPlaying
	}

	t.cooldown = t.rate
	idx := t.rng.IntN(len(t.clips))
	ev := &Event{
		Index: idx,
		Clip:  t.clips[idx],
		Pitch: PitchMin + t.rng.Float64()*(PitchMax-PitchMin),
	}
	t.out.PlayOneShot(ev.Clip, ev.Pitch)
	return ev, nil
}

// Cooldown returns the seconds left until the gate may open. It goes
// negative once the gate is armed and nothing fires.
func (t *Trigger) Cooldown() float64 { return t.cooldown }

func (t *Trigger) Rate() float64 { return t.rate }

func (t *Trigger) Thresholds() motion.Thresholds { return t.thresholds }

// Flags returns the flags passed to the last Tick, Sprinting included.
func (t *Trigger) Flags() motion.Flags { return t.flags }

func (t *Trigger) Clips() []Clip {
	return append([]Clip(nil), t.clips...)
}

func (t *Trigger) State() State {
	if t.cooldown > 0 {
		return Cooling
	}
	return Armed
}

// Playing reports the output's playback state.
func (t *Trigger) Playing() bool { return t.out.IsPlaying() }
