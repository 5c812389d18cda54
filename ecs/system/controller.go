package system

import (
	"github.com/milk9111/footfall/common"
	"github.com/milk9111/footfall/ecs"
	"github.com/milk9111/footfall/ecs/component"
)

// ControllerSystem moves kinematic character controllers. Input-driven
// controllers get velocity from Input and gravity; track-driven ones keep
// the velocity the TrackSystem wrote. Controllers move in meters with Y up;
// transforms are in screen pixels.
type ControllerSystem struct{}

func NewControllerSystem() *ControllerSystem {
	return &ControllerSystem{}
}

func (c *ControllerSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}

	ecs.ForEach(w, component.CharacterControllerComponent.Kind(), func(e ecs.Entity, ctrl *component.CharacterController) {
		if !ecs.Has(w, e, component.TrackComponent.Kind()) {
			if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
				steer(ctrl, input, dt)
			}
		}

		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		transform.X += ctrl.Motion.X() * dt * common.PixelsPerMeter
		transform.Z += ctrl.Motion.Z() * dt * common.PixelsPerMeter
		transform.Y -= ctrl.Motion.Y() * dt * common.PixelsPerMeter
	})
}

// steer applies input and gravity to an untracked controller.
func steer(ctrl *component.CharacterController, input *component.Input, dt float64) {
	speed := ctrl.MoveSpeed
	if input.Sprint && ctrl.SprintSpeed > 0 {
		speed = ctrl.SprintSpeed
	}
	ctrl.Motion[0] = input.MoveX * speed
	ctrl.Motion[2] = input.MoveZ * speed

	if ctrl.Grounded && input.JumpPressed {
		ctrl.Motion[1] = ctrl.JumpSpeed
		ctrl.Grounded = false
	}
	if !ctrl.Grounded {
		ctrl.Motion[1] -= ctrl.Gravity * dt
	}

	ctrl.Height += ctrl.Motion[1] * dt
	if ctrl.Height <= 0 && ctrl.Motion[1] <= 0 {
		ctrl.Height = 0
		ctrl.Motion[1] = 0
		ctrl.Grounded = true
	}
}
