// pkg/entity/ball.go
package entity

import (
	"github.com/opd-ai/go-spindrum/pkg/physics"
)

// Ball is the point-mass disk bouncing inside the container. One
// instance lives for the whole simulation and is mutated in place by
// the integrator and by collision response.
type Ball struct {
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
}

// NewBall creates a ball with the given initial state.
func NewBall(position, velocity physics.Vector2D, radius float64) *Ball {
	return &Ball{
		Position: position,
		Velocity: velocity,
		Radius:   radius,
	}
}

// Integrate advances the ball by one fixed timestep using
// semi-implicit Euler: gravity accelerates the velocity first, the
// position moves with the updated velocity, and damping is applied
// last so the tick's displacement uses pre-damped velocity.
func (b *Ball) Integrate(dt, gravity, damping float64) {
	b.Velocity.Y += gravity * dt
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Velocity = b.Velocity.Scale(damping)
}

// Collider returns the ball's collision shape at its current position.
func (b *Ball) Collider() physics.Circle {
	return physics.Circle{
		Center: b.Position,
		Radius: b.Radius,
	}
}
