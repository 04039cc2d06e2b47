// pkg/entity/container.go
package entity

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-spindrum/pkg/physics"
)

// Container is the boundary the ball bounces inside. It produces the
// current edge segments and the instantaneous velocity of any material
// point on the boundary, which is all the collision pass needs — the
// same response code serves any convex rotating shape.
type Container interface {
	// Advance rotates the container by one timestep.
	Advance(dt float64)
	// Vertices returns the current vertex positions.
	Vertices() []physics.Vector2D
	// Edges returns the current edge segments, recomputed from the
	// current rotation. Edges are never cached.
	Edges() []physics.Segment
	// BoundaryVelocity returns the linear velocity of the boundary
	// material point at p under the container's rigid motion.
	BoundaryVelocity(p physics.Vector2D) physics.Vector2D
}

// RotatingPolygon is a regular convex polygon rotating at constant
// angular velocity about a fixed center. The rotation angle is the
// only mutable field.
type RotatingPolygon struct {
	center          physics.Vector2D
	circumradius    float64
	sides           int
	angle           float64
	angularVelocity float64
}

// NewRotatingPolygon creates a regular polygon container. The geometry
// is validated eagerly: a simulation must not run with undefined
// geometry.
func NewRotatingPolygon(center physics.Vector2D, circumradius float64, sides int, initialAngle, angularVelocity float64) (*RotatingPolygon, error) {
	if sides < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 sides, got %d", sides)
	}
	if circumradius <= 0 {
		return nil, fmt.Errorf("polygon circumradius must be positive, got %v", circumradius)
	}
	if math.IsNaN(initialAngle) || math.IsInf(initialAngle, 0) {
		return nil, fmt.Errorf("polygon initial angle must be finite, got %v", initialAngle)
	}
	if math.IsNaN(angularVelocity) || math.IsInf(angularVelocity, 0) {
		return nil, fmt.Errorf("polygon angular velocity must be finite, got %v", angularVelocity)
	}

	return &RotatingPolygon{
		center:          center,
		circumradius:    circumradius,
		sides:           sides,
		angle:           initialAngle,
		angularVelocity: angularVelocity,
	}, nil
}

// Advance rotates the polygon by angularVelocity * dt.
func (p *RotatingPolygon) Advance(dt float64) {
	p.angle += p.angularVelocity * dt
}

// Vertices returns the polygon's current vertices. Vertex i sits at
// center + circumradius * (cos, sin)(angle + i*2π/N).
func (p *RotatingPolygon) Vertices() []physics.Vector2D {
	vertices := make([]physics.Vector2D, p.sides)
	step := 2 * math.Pi / float64(p.sides)
	for i := 0; i < p.sides; i++ {
		vertices[i] = p.center.Add(physics.FromAngle(p.angle+float64(i)*step, p.circumradius))
	}
	return vertices
}

// Edges returns the polygon's current edge segments, vertex i to
// vertex (i+1) mod N.
func (p *RotatingPolygon) Edges() []physics.Segment {
	vertices := p.Vertices()
	edges := make([]physics.Segment, p.sides)
	for i := range vertices {
		edges[i] = physics.Segment{
			A: vertices[i],
			B: vertices[(i+1)%p.sides],
		}
	}
	return edges
}

// BoundaryVelocity returns ω × r for the material point at p, where
// r = p - center. In 2D that is (-ω·r.Y, ω·r.X).
func (p *RotatingPolygon) BoundaryVelocity(point physics.Vector2D) physics.Vector2D {
	r := point.Sub(p.center)
	return physics.Vector2D{
		X: -p.angularVelocity * r.Y,
		Y: p.angularVelocity * r.X,
	}
}

// Center returns the fixed rotation center.
func (p *RotatingPolygon) Center() physics.Vector2D {
	return p.center
}

// Circumradius returns the fixed center-to-vertex distance.
func (p *RotatingPolygon) Circumradius() float64 {
	return p.circumradius
}

// Angle returns the current rotation angle in radians. It increases
// monotonically for positive angular velocity.
func (p *RotatingPolygon) Angle() float64 {
	return p.angle
}
