package component

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/footfall/footstep"
	"github.com/milk9111/footfall/motion"
	"gopkg.in/yaml.v3"
)

// Footstep binds a velocity source to a footstep trigger. The latest sample
// and flags are kept for the snapshot only; the trigger receives them fresh
// each tick.
type Footstep struct {
	Prefab  string
	Source  motion.Source
	Trigger *footstep.Trigger

	Velocity mgl64.Vec3
	Flags    motion.Flags

	Fired     int
	Dropped   int
	LastEvent *footstep.Event
}

// FootstepSnapshot is a read-only view for inspectors and telemetry.
type FootstepSnapshot struct {
	Velocity  mgl64.Vec3
	Walking   bool
	Sprinting bool
	Falling   bool
	Cooldown  float64
	State     footstep.State
	Playing   bool
	Source    motion.SourceKind
	Fired     int
	Dropped   int
	LastEvent *footstep.Event
}

func (f *Footstep) Snapshot() FootstepSnapshot {
	if f == nil {
		return FootstepSnapshot{}
	}
	snap := FootstepSnapshot{
		Velocity:  f.Velocity,
		Walking:   f.Flags.Walking,
		Sprinting: f.Flags.Sprinting,
		Falling:   f.Flags.Falling,
		Fired:     f.Fired,
		Dropped:   f.Dropped,
	}
	if f.Source != nil {
		snap.Source = f.Source.Kind()
	}
	if f.Trigger != nil {
		snap.Cooldown = f.Trigger.Cooldown()
		snap.State = f.Trigger.State()
		snap.Playing = f.Trigger.Playing()
	}
	if f.LastEvent != nil {
		ev := *f.LastEvent
		snap.LastEvent = &ev
	}
	return snap
}

// Lines renders the snapshot for the debug overlay.
func (s FootstepSnapshot) Lines() []string {
	lines := []string{
		fmt.Sprintf("source   %s", s.Source),
		fmt.Sprintf("velocity %6.2f %6.2f %6.2f", s.Velocity.X(), s.Velocity.Y(), s.Velocity.Z()),
		fmt.Sprintf("walk %t  sprint %t  fall %t", s.Walking, s.Sprinting, s.Falling),
		fmt.Sprintf("cooldown %6.3f (%s)", s.Cooldown, s.State),
		fmt.Sprintf("playing %t  fired %d  dropped %d", s.Playing, s.Fired, s.Dropped),
	}
	if s.LastEvent != nil {
		lines = append(lines, fmt.Sprintf("last %s @ %.3f", s.LastEvent.Clip.Name, s.LastEvent.Pitch))
	}
	return lines
}

type snapshotDoc struct {
	Source    string     `yaml:"source"`
	Velocity  [3]float64 `yaml:"velocity,flow"`
	Walking   bool       `yaml:"walking"`
	Sprinting bool       `yaml:"sprinting"`
	Falling   bool       `yaml:"falling"`
	Cooldown  float64    `yaml:"cooldown"`
	State     string     `yaml:"state"`
	Playing   bool       `yaml:"playing"`
	Fired     int        `yaml:"fired"`
	Dropped   int        `yaml:"dropped"`
	LastClip  string     `yaml:"last_clip,omitempty"`
	LastPitch float64    `yaml:"last_pitch,omitempty"`
}

// YAML encodes the snapshot for pasting into bug reports.
func (s FootstepSnapshot) YAML() ([]byte, error) {
	doc := snapshotDoc{
		Source:    s.Source.String(),
		Velocity:  s.Velocity,
		Walking:   s.Walking,
		Sprinting: s.Sprinting,
		Falling:   s.Falling,
		Cooldown:  s.Cooldown,
		State:     s.State.String(),
		Playing:   s.Playing,
		Fired:     s.Fired,
		Dropped:   s.Dropped,
	}
	if s.LastEvent != nil {
		doc.LastClip = s.LastEvent.Clip.Name
		doc.LastPitch = s.LastEvent.Pitch
	}
	return yaml.Marshal(doc)
}

var FootstepComponent = NewComponent[Footstep]()
