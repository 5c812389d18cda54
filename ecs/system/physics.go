package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/footfall/common"
	"github.com/milk9111/footfall/ecs"
	"github.com/milk9111/footfall/ecs/component"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeSolid

	// groundSlop is how far above the floor a body still counts as grounded.
	groundSlop  = 2.0
	sprintScale = 1.8
)

// PhysicsSystem owns the Chipmunk2D space. It creates bodies for new
// PhysicsBody components, turns Input into body velocity, steps the space
// and writes body positions back to transforms.
type PhysicsSystem struct {
	space    *cp.Space
	groundY  float64
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	height float64
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(common.GroundY),
		groundY:  common.GroundY,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace(groundY float64) *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	floor := cp.NewSegment(space.StaticBody, cp.Vector{X: -100000, Y: groundY}, cp.Vector{X: 100000, Y: groundY}, 0)
	floor.SetFriction(1)
	floor.SetCollisionType(collisionTypeSolid)
	space.AddShape(floor)
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if ps == nil || w == nil || dt <= 0 {
		return
	}

	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.applyInput(w)

	ps.space.Step(dt)

	ps.syncTransforms(w)
}

// EnsureBodies creates bodies for any new PhysicsBody components without
// stepping, so builders can resolve velocity sources immediately.
func (ps *PhysicsSystem) EnsureBodies(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.syncEntities(w)
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil && info.body != ps.space.StaticBody {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			transform = &component.Transform{}
		}

		info := ps.createBodyInfo(transform, bodyComp)
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 32, 32
	}

	if bodyComp.Static {
		bb := cp.BB{L: transform.X - width/2, B: transform.Y - height/2, R: transform.X + width/2, T: transform.Y + height/2}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, height: height}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// infinite moment keeps the body upright
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeBody)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape, height: height}
}

func (ps *PhysicsSystem) applyInput(w *ecs.World) {
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil || bodyComp.Static {
			return
		}
		info := ps.entities[e]

		speed := bodyComp.MoveSpeed
		if input.Sprint {
			speed *= sprintScale
		}
		vel := bodyComp.Body.Velocity()
		vx := input.MoveX * speed
		vy := vel.Y
		if input.JumpPressed && info != nil && ps.grounded(info) {
			vy = -bodyComp.JumpSpeed
		}
		bodyComp.Body.SetVelocity(vx, vy)
	})
}

func (ps *PhysicsSystem) grounded(info *bodyInfo) bool {
	bottom := info.body.Position().Y + info.height/2
	return math.Abs(bottom-ps.groundY) <= groundSlop && math.Abs(info.body.Velocity().Y) < 1
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.body == nil || info.body == ps.space.StaticBody {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
	}
}
