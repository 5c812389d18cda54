package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec = TransformSpec

// FootstepComponentSpec mirrors footstep.Config. Nil thresholds fall back to
// the defaults.
type FootstepComponentSpec struct {
	Rate            float64     `yaml:"rate"`
	InitialDelay    float64     `yaml:"initial_delay"`
	WalkThreshold   *float64    `yaml:"walk_threshold"`
	SprintThreshold *float64    `yaml:"sprint_threshold"`
	FallThreshold   *float64    `yaml:"fall_threshold"`
	Clips           []AudioSpec `yaml:"clips"`
}

type PhysicsBodyComponentSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	MoveSpeed  float64 `yaml:"move_speed"`
	JumpSpeed  float64 `yaml:"jump_speed"`
	Static     bool    `yaml:"static"`
}

type CharacterControllerComponentSpec struct {
	MoveSpeed   float64 `yaml:"move_speed"`
	SprintSpeed float64 `yaml:"sprint_speed"`
	JumpSpeed   float64 `yaml:"jump_speed"`
	Gravity     float64 `yaml:"gravity"`
}

type TrackSegmentSpec struct {
	Duration float64    `yaml:"duration"`
	Velocity [3]float64 `yaml:"velocity"`
}

// TrackComponentSpec selects either a tengo script or inline segments.
type TrackComponentSpec struct {
	Script   string             `yaml:"script"`
	Segments []TrackSegmentSpec `yaml:"segments"`
	Loop     bool               `yaml:"loop"`
}
