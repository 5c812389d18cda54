// Package motion classifies a body's velocity into walking, sprinting and
// falling flags.
package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrNegativeThreshold = errors.New("motion: threshold must be non-negative")

// Thresholds are the per-axis speeds that separate the motion categories.
// Sprint is conventionally >= Walk but the ordering is not enforced.
type Thresholds struct {
	Walk   float64
	Sprint float64
	Fall   float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{Walk: 0.1, Sprint: 0.5, Fall: 0.2}
}

// Validate only rejects negative thresholds.
func (t Thresholds) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"walk", t.Walk},
		{"sprint", t.Sprint},
		{"fall", t.Fall},
	}
	for _, c := range checks {
		if c.value < 0 || math.IsNaN(c.value) {
			return fmt.Errorf("%s threshold %v: %w", c.name, c.value, ErrNegativeThreshold)
		}
	}
	return nil
}

// Flags are independent; a body can walk, sprint and fall in the same tick.
type Flags struct {
	Walking   bool
	Sprinting bool
	Falling   bool
}

// Classify maps a velocity sample to motion flags. X and Z are the lateral
// axes, Y is vertical.
func Classify(v mgl64.Vec3, th Thresholds) Flags {
	ax := math.Abs(v.X())
	ay := math.Abs(v.Y())
	az := math.Abs(v.Z())

	return Flags{
		Walking:   ax >= th.Walk || az >= th.Walk,
		Sprinting: ax >= th.Sprint && az >= th.Sprint,
		Falling:   ay >= th.Fall,
	}
}
