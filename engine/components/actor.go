package components

import (
	"github.com/spaghettifunk/affine/engine/core"
	"github.com/spaghettifunk/affine/engine/math"
)

// Actor is a named object placed in the world.
type Actor struct {
	ID        core.Identifier
	Name      string
	Transform *math.Transform
	// Spin is the rotation applied every second, as Euler degrees.
	Spin math.Vec3
}

func NewActor(name string, transform *math.Transform) *Actor {
	if transform == nil {
		transform = math.TransformCreate()
	}
	return &Actor{
		ID:        core.NewIdentifier(),
		Name:      name,
		Transform: transform,
	}
}

// Update advances the actor by deltaTime seconds.
func (a *Actor) Update(deltaTime float64) {
	if a.Spin == math.NewVec3Zero() {
		return
	}
	a.Transform.Rotate(a.Spin.MulScalar(float32(deltaTime)))
}

// AffineTransform returns the actor's final transform under viewProj.
func (a *Actor) AffineTransform(viewProj math.Mat4) math.Mat4 {
	return a.Transform.ModelViewProjection(viewProj)
}
