package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/footfall/common"
	"github.com/milk9111/footfall/ecs"
	"github.com/milk9111/footfall/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerSystemSteer(t *testing.T) {
	tests := []struct {
		name  string
		input component.Input
		want  mgl64.Vec3
	}{
		{"idle", component.Input{}, mgl64.Vec3{}},
		{"walk", component.Input{MoveX: 1}, mgl64.Vec3{2, 0, 0}},
		{"strafe", component.Input{MoveZ: -1}, mgl64.Vec3{0, 0, -2}},
		{"sprint", component.Input{MoveX: 1, MoveZ: 1, Sprint: true}, mgl64.Vec3{5, 0, 5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			ctrl := &component.CharacterController{MoveSpeed: 2, SprintSpeed: 5, Gravity: 10, Grounded: true}
			input := tc.input
			require.NoError(t, ecs.Add(w, e, component.CharacterControllerComponent.Kind(), ctrl))
			require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &input))
			require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))

			NewControllerSystem().Update(w, 0.5)
			assert.Equal(t, tc.want, ctrl.Velocity())

			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			assert.InDelta(t, tc.want.X()*0.5*common.PixelsPerMeter, tr.X, 1e-9)
			assert.InDelta(t, tc.want.Z()*0.5*common.PixelsPerMeter, tr.Z, 1e-9)
		})
	}
}

func TestControllerSystemJumpLands(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	ctrl := &component.CharacterController{MoveSpeed: 1, JumpSpeed: 4, Gravity: 10, Grounded: true}
	input := &component.Input{JumpPressed: true}
	require.NoError(t, ecs.Add(w, e, component.CharacterControllerComponent.Kind(), ctrl))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), input))

	sys := NewControllerSystem()
	sys.Update(w, 0.1)
	require.False(t, ctrl.Grounded)
	assert.Greater(t, ctrl.Velocity().Y(), 0.0)
	assert.Greater(t, ctrl.Height, 0.0)

	input.JumpPressed = false
	for i := 0; i < 20 && !ctrl.Grounded; i++ {
		sys.Update(w, 0.1)
	}
	assert.True(t, ctrl.Grounded)
	assert.Zero(t, ctrl.Height)
	assert.Zero(t, ctrl.Velocity().Y())
}

func TestControllerSystemLeavesTrackedMotion(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	ctrl := &component.CharacterController{Motion: mgl64.Vec3{0.5, 0, 0}, MoveSpeed: 3}
	require.NoError(t, ecs.Add(w, e, component.CharacterControllerComponent.Kind(), ctrl))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{MoveX: -1}))
	require.NoError(t, ecs.Add(w, e, component.TrackComponent.Kind(), &component.Track{}))

	NewControllerSystem().Update(w, 0.1)
	assert.Equal(t, mgl64.Vec3{0.5, 0, 0}, ctrl.Motion)
}
