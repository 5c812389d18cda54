package system

import (
	"math"

	"github.com/milk9111/footfall/ecs"
	"github.com/milk9111/footfall/ecs/component"
	"github.com/rs/zerolog"
)

// TrackSystem samples velocity tracks into character controllers.
type TrackSystem struct {
	log    zerolog.Logger
	failed map[ecs.Entity]bool
}

func NewTrackSystem(log zerolog.Logger) *TrackSystem {
	return &TrackSystem{log: log, failed: make(map[ecs.Entity]bool)}
}

type erroringTrack interface {
	Err() error
}

func (s *TrackSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TrackComponent.Kind(), func(e ecs.Entity, tr *component.Track) {
		ctrl, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
		if !ok || tr.Source == nil {
			return
		}

		ctrl.Motion = tr.Source.At(tr.Time)
		if et, ok := tr.Source.(erroringTrack); ok {
			if err := et.Err(); err != nil && !s.failed[e] {
				s.failed[e] = true
				s.log.Error().Err(err).Stringer("entity", e).Msg("velocity track failed")
			}
		}

		if dt > 0 {
			tr.Time += dt
		}
		if d := tr.Source.Duration(); d > 0 && tr.Time >= d {
			if tr.Loop {
				tr.Time = math.Mod(tr.Time, d)
			} else {
				tr.Done = true
			}
		}
	})
}
