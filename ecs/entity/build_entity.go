package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/footfall/ecs"
	"github.com/milk9111/footfall/ecs/component"
	"github.com/milk9111/footfall/footstep"
	"github.com/milk9111/footfall/motion"
	"github.com/milk9111/footfall/prefabs"
	"github.com/milk9111/footfall/track"
	"github.com/rs/zerolog"
)

var ErrNoPhysics = errors.New("physics_body requires a physics system")

type entityPrefabSpec = prefabs.EntityBuildSpec

// OutputFactory creates the audio output for one footstep component.
type OutputFactory func(clips []footstep.Clip) (footstep.Output, error)

// BodyProvider creates Chipmunk bodies for freshly added PhysicsBody
// components.
type BodyProvider interface {
	EnsureBodies(w *ecs.World)
}

// Env carries the collaborators builders need.
type Env struct {
	Output  OutputFactory
	Physics BodyProvider
	Log     zerolog.Logger
	Options []footstep.Option
}

type buildContext struct {
	PrefabPath string
	Env        Env
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":            addTransform,
	"input":                addInput,
	"physics_body":         addPhysicsBody,
	"character_controller": addCharacterController,
	"track":                addTrack,
	"footstep":             addFootstep,
}

// footstep resolves its velocity source, so bodies come first.
var componentBuildOrder = []string{
	"transform",
	"input",
	"physics_body",
	"character_controller",
	"track",
	"footstep",
}

func BuildEntity(w *ecs.World, prefabPath string, env Env) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec, env)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec, env Env) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Env: env}

	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			// the physics system drops any body on its next step
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// RebuildFootstep reloads the footstep component of e from prefabPath. The
// old trigger is discarded; the new one starts armed.
func RebuildFootstep(w *ecs.World, e ecs.Entity, prefabPath string, env Env) error {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return fmt.Errorf("rebuild footstep: load %q: %w", prefabPath, err)
	}
	raw, ok := spec.Components["footstep"]
	if !ok {
		return fmt.Errorf("rebuild footstep: prefab %q has no footstep component", prefabPath)
	}
	return addFootstep(w, e, raw, &buildContext{PrefabPath: prefabPath, Env: env})
}

// Names lists the registered component builders, sorted.
func Names() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Z:        spec.Z,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	if ctx.Env.Physics == nil {
		return ErrNoPhysics
	}
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      spec.Width,
		Height:     spec.Height,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		MoveSpeed:  spec.MoveSpeed,
		JumpSpeed:  spec.JumpSpeed,
		Static:     spec.Static,
	}); err != nil {
		return err
	}
	ctx.Env.Physics.EnsureBodies(w)
	return nil
}

func addCharacterController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CharacterControllerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character controller spec: %w", err)
	}
	return ecs.Add(w, e, component.CharacterControllerComponent.Kind(), &component.CharacterController{
		MoveSpeed:   spec.MoveSpeed,
		SprintSpeed: spec.SprintSpeed,
		JumpSpeed:   spec.JumpSpeed,
		Gravity:     spec.Gravity,
		Grounded:    true,
	})
}

func addTrack(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TrackComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode track spec: %w", err)
	}

	var src track.Track
	switch {
	case spec.Script != "":
		data, err := prefabs.LoadScript(spec.Script)
		if err != nil {
			return fmt.Errorf("load track script %q: %w", spec.Script, err)
		}
		if src, err = track.NewScript(spec.Script, data); err != nil {
			return err
		}
	case len(spec.Segments) > 0:
		segments := make([]track.Segment, 0, len(spec.Segments))
		for _, s := range spec.Segments {
			segments = append(segments, track.Segment{Duration: s.Duration, Velocity: s.Velocity})
		}
		if src, err = track.NewKeyframes(segments); err != nil {
			return err
		}
	default:
		return fmt.Errorf("track needs a script or segments")
	}

	return ecs.Add(w, e, component.TrackComponent.Kind(), &component.Track{Source: src, Loop: spec.Loop})
}

// FootstepConfig converts a prefab spec into trigger configuration.
func FootstepConfig(spec prefabs.FootstepComponentSpec) footstep.Config {
	cfg := footstep.DefaultConfig()
	if spec.Rate != 0 {
		cfg.Rate = spec.Rate
	}
	cfg.InitialDelay = spec.InitialDelay
	if spec.WalkThreshold != nil {
		cfg.Thresholds.Walk = *spec.WalkThreshold
	}
	if spec.SprintThreshold != nil {
		cfg.Thresholds.Sprint = *spec.SprintThreshold
	}
	if spec.FallThreshold != nil {
		cfg.Thresholds.Fall = *spec.FallThreshold
	}
	for _, clip := range spec.Clips {
		cfg.Clips = append(cfg.Clips, footstep.Clip{Name: clip.Name, File: clip.File, Volume: clip.Volume})
	}
	return cfg
}

func addFootstep(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	log := ctx.Env.Log.With().Str("prefab", ctx.PrefabPath).Stringer("entity", e).Logger()

	spec, err := prefabs.DecodeComponentSpec[prefabs.FootstepComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode footstep spec: %w", err)
	}
	cfg := FootstepConfig(spec)

	var body *cp.Body
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body = pb.Body
	}
	var ctrl motion.ControllerBody
	if cc, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind()); ok {
		ctrl = cc
	}

	src, conflict, err := motion.ResolveSource(body, ctrl)
	if err != nil {
		log.Error().Err(err).Msg("footstep configuration")
		return err
	}
	if conflict {
		log.Warn().
			Str("using", src.Kind().String()).
			Msg("both physics body and character controller present, ignoring controller")
	}

	if len(cfg.Clips) == 0 {
		log.Error().Err(footstep.ErrEmptyClipSet).Msg("footstep configuration")
		return footstep.ErrEmptyClipSet
	}
	if ctx.Env.Output == nil {
		return footstep.ErrNoOutput
	}
	out, err := ctx.Env.Output(cfg.Clips)
	if err != nil {
		log.Error().Err(err).Msg("footstep output")
		return fmt.Errorf("footstep output: %w", err)
	}

	trigger, err := footstep.New(cfg, out, ctx.Env.Options...)
	if err != nil {
		log.Error().Err(err).Msg("footstep configuration")
		return err
	}

	return ecs.Add(w, e, component.FootstepComponent.Kind(), &component.Footstep{
		Prefab:  ctx.PrefabPath,
		Source:  src,
		Trigger: trigger,
	})
}
