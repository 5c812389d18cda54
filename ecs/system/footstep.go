package system

import (
	"errors"

	"github.com/milk9111/footfall/ecs"
	"github.com/milk9111/footfall/ecs/component"
	"github.com/milk9111/footfall/footstep"
	"github.com/milk9111/footfall/motion"
	"github.com/rs/zerolog"
)

// FootstepEvent is pushed on the world queue for every fired footstep.
type FootstepEvent struct {
	Time  float64
	Event footstep.Event
}

// ConsistencyEvent is pushed when a footstep was dropped because the output
// was still playing.
type ConsistencyEvent struct {
	Time     float64
	Cooldown float64
}

// FootstepSystem runs, for every Footstep component, the per-tick pipeline:
// sample velocity, classify it, then let the trigger decide.
type FootstepSystem struct {
	log zerolog.Logger
}

func NewFootstepSystem(log zerolog.Logger) *FootstepSystem {
	return &FootstepSystem{log: log}
}

func (s *FootstepSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.FootstepComponent.Kind(), func(e ecs.Entity, fs *component.Footstep) {
		if fs.Source == nil || fs.Trigger == nil {
			return
		}
		s.updateVelocity(fs)
		s.updateMovementStates(fs)
		s.playFootstep(w, e, fs, dt)
	})
}

func (s *FootstepSystem) updateVelocity(fs *component.Footstep) {
	fs.Velocity = fs.Source.Velocity()
}

func (s *FootstepSystem) updateMovementStates(fs *component.Footstep) {
	fs.Flags = motion.Classify(fs.Velocity, fs.Trigger.Thresholds())
}

func (s *FootstepSystem) playFootstep(w *ecs.World, e ecs.Entity, fs *component.Footstep, dt float64) {
	ev, err := fs.Trigger.Tick(dt, fs.Flags)
	switch {
	case errors.Is(err, footstep.ErrAlreadyPlaying):
		fs.Dropped++
		s.log.Error().
			Err(err).
			Stringer("entity", e).
			Float64("cooldown", fs.Trigger.Cooldown()).
			Msg("footstep dropped")
		w.Events().Push(ecs.Event{
			Type:   ecs.EventConsistency,
			Entity: e,
			Data:   ConsistencyEvent{Time: w.Elapsed(), Cooldown: fs.Trigger.Cooldown()},
		})
	case err != nil:
		s.log.Error().Err(err).Stringer("entity", e).Msg("footstep")
	case ev != nil:
		fs.Fired++
		fs.LastEvent = ev
		s.log.Debug().
			Stringer("entity", e).
			Str("clip", ev.Clip.Name).
			Float64("pitch", ev.Pitch).
			Msg("footstep")
		w.Events().Push(ecs.Event{
			Type:   ecs.EventFootstep,
			Entity: e,
			Data:   FootstepEvent{Time: w.Elapsed(), Event: *ev},
		})
	}
}

// Snapshot returns the inspection view of e's footstep component.
func Snapshot(w *ecs.World, e ecs.Entity) (component.FootstepSnapshot, bool) {
	fs, ok := ecs.Get(w, e, component.FootstepComponent.Kind())
	if !ok {
		return component.FootstepSnapshot{}, false
	}
	return fs.Snapshot(), true
}
