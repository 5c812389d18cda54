// Package track supplies velocity timelines for bodies that are not driven by
// player input: keyframed segments from YAML or small tengo scripts.
package track

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var ErrEmptyTrack = errors.New("track: no segments")

// Track returns the velocity at time t seconds. Duration is zero for
// unbounded tracks.
type Track interface {
	At(t float64) mgl64.Vec3
	Duration() float64
}

// Segment holds a constant velocity for Duration seconds.
type Segment struct {
	Duration float64    `yaml:"duration"`
	Velocity [3]float64 `yaml:"velocity"`
}

// Keyframes plays segments back to back and holds the last velocity after
// the end.
type Keyframes struct {
	Segments []Segment `yaml:"segments"`
	total    float64
}

func NewKeyframes(segments []Segment) (*Keyframes, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyTrack
	}
	k := &Keyframes{Segments: append([]Segment(nil), segments...)}
	for i, s := range k.Segments {
		if s.Duration <= 0 {
			return nil, fmt.Errorf("track: segment %d: duration %v must be positive", i, s.Duration)
		}
		k.total += s.Duration
	}
	return k, nil
}

// ParseKeyframes decodes a `segments:` YAML document.
func ParseKeyframes(data []byte) (*Keyframes, error) {
	var doc struct {
		Segments []Segment `yaml:"segments"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("track: unmarshal: %w", err)
	}
	return NewKeyframes(doc.Segments)
}

func (k *Keyframes) At(t float64) mgl64.Vec3 {
	if k == nil || len(k.Segments) == 0 {
		return mgl64.Vec3{}
	}
	end := 0.0
	for _, s := range k.Segments {
		end += s.Duration
		if t < end {
			return mgl64.Vec3(s.Velocity)
		}
	}
	return mgl64.Vec3(k.Segments[len(k.Segments)-1].Velocity)
}

func (k *Keyframes) Duration() float64 {
	if k == nil {
		return 0
	}
	return k.total
}

// Constant is an unbounded track with a fixed velocity.
type Constant mgl64.Vec3

func (c Constant) At(float64) mgl64.Vec3 { return mgl64.Vec3(c) }
func (Constant) Duration() float64       { return 0 }
