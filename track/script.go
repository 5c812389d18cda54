package track

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
)

// Script evaluates a tengo program once per sample. The program reads `t`
// (seconds) and must assign `vx`, `vy` and `vz`; it may set `duration` to
// bound the track.
type Script struct {
	name     string
	compiled *tengo.Compiled
	duration float64
	err      error
}

func NewScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for _, v := range []string{"t", "vx", "vy", "vz", "duration"} {
		if err := script.Add(v, 0.0); err != nil {
			return nil, fmt.Errorf("track %q: add %s: %w", name, v, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("track %q: compile: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("track %q: run: %w", name, err)
	}

	return &Script{
		name:     name,
		compiled: compiled,
		duration: compiled.Get("duration").Float(),
	}, nil
}

// At runs the script for t. A runtime error freezes the body and is kept
// for Err.
func (s *Script) At(t float64) mgl64.Vec3 {
	if s == nil || s.compiled == nil {
		return mgl64.Vec3{}
	}
	if err := s.compiled.Set("t", t); err != nil {
		s.err = fmt.Errorf("track %q: set t: %w", s.name, err)
		return mgl64.Vec3{}
	}
	if err := s.compiled.Run(); err != nil {
		s.err = fmt.Errorf("track %q: run at t=%v: %w", s.name, t, err)
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{
		s.compiled.Get("vx").Float(),
		s.compiled.Get("vy").Float(),
		s.compiled.Get("vz").Float(),
	}
}

func (s *Script) Duration() float64 {
	if s == nil {
		return 0
	}
	return s.duration
}

// Err returns the last runtime error, if any.
func (s *Script) Err() error {
	if s == nil {
		return nil
	}
	return s.err
}
