package entity

import (
	"fmt"

	"github.com/milk9111/footfall/ecs"
)

func NewPlayer(w *ecs.World, env Env) (ecs.Entity, error) {
	ent, err := BuildEntity(w, "player.yaml", env)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return ent, nil
}

// NewWalker builds the track-driven controller body.
func NewWalker(w *ecs.World, env Env) (ecs.Entity, error) {
	ent, err := BuildEntity(w, "walker.yaml", env)
	if err != nil {
		return 0, fmt.Errorf("walker: %w", err)
	}
	return ent, nil
}
