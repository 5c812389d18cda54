package component

import "github.com/go-gl/mathgl/mgl64"

// CharacterController is a kinematic body moved directly by its system
// rather than by the physics space. It tracks its own velocity.
type CharacterController struct {
	Motion      mgl64.Vec3
	MoveSpeed   float64
	SprintSpeed float64
	JumpSpeed   float64
	Gravity     float64
	// Height is meters above the floor; only input-driven controllers track it.
	Height   float64
	Grounded bool
}

// Velocity implements motion.ControllerBody.
func (c *CharacterController) Velocity() mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{}
	}
	return c.Motion
}

var CharacterControllerComponent = NewComponent[CharacterController]()
