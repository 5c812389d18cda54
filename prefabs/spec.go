package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// SimulationSpec configures a headless footsim run.
type SimulationSpec struct {
	Name     string  `yaml:"name"`
	Prefab   string  `yaml:"prefab"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	// ClipLength overrides decoded clip lengths for the recorder, seconds.
	ClipLength float64 `yaml:"clip_length"`
	// Holds mark times at which the output is kept busy externally.
	Holds []HoldSpec `yaml:"holds"`
}

type HoldSpec struct {
	At       float64 `yaml:"at"`
	Duration float64 `yaml:"duration"`
}

func LoadSimulationSpec(filename string) (SimulationSpec, error) {
	return LoadSpec[SimulationSpec](filename)
}
