package motion

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

var ErrNoVelocitySource = errors.New("motion: no physics body or controller bound")

type SourceKind int

const (
	SourcePhysicsBody SourceKind = iota + 1
	SourceController
)

func (k SourceKind) String() string {
	switch k {
	case SourcePhysicsBody:
		return "physics_body"
	case SourceController:
		return "controller"
	default:
		return "unknown"
	}
}

// Source supplies one velocity sample per tick. It is either a PhysicsBody or
// a Controller; the variant is fixed when the source is resolved.
type Source interface {
	Velocity() mgl64.Vec3
	Kind() SourceKind
	source()
}

// ControllerBody is a kinematic body that tracks its own velocity.
type ControllerBody interface {
	Velocity() mgl64.Vec3
}

// PhysicsBody reads a Chipmunk2D body. The planar (x, y) velocity maps to
// (x, y, 0).
type PhysicsBody struct {
	Body *cp.Body
}

func (p PhysicsBody) Velocity() mgl64.Vec3 {
	if p.Body == nil {
		return mgl64.Vec3{}
	}
	v := p.Body.Velocity()
	return mgl64.Vec3{v.X, v.Y, 0}
}

func (PhysicsBody) Kind() SourceKind { return SourcePhysicsBody }
func (PhysicsBody) source()          {}

type Controller struct {
	Body ControllerBody
}

func (c Controller) Velocity() mgl64.Vec3 {
	if c.Body == nil {
		return mgl64.Vec3{}
	}
	return c.Body.Velocity()
}

func (Controller) Kind() SourceKind { return SourceController }
func (Controller) source()          {}

// ResolveSource picks the velocity source for a body. The physics body wins
// when both are present; conflict reports that the controller was ignored.
func ResolveSource(body *cp.Body, ctrl ControllerBody) (src Source, conflict bool, err error) {
	hasCtrl := ctrl != nil
	switch {
	case body != nil:
		return PhysicsBody{Body: body}, hasCtrl, nil
	case hasCtrl:
		return Controller{Body: ctrl}, false, nil
	default:
		return nil, false, ErrNoVelocitySource
	}
}
