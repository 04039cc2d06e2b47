// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Segment represents a line segment between two points.
// Container edges are segments recomputed every tick; they are
// never cached while the boundary rotates.
type Segment struct {
	A Vector2D
	B Vector2D
}

// Direction returns the vector from A to B
func (s Segment) Direction() Vector2D {
	return s.B.Sub(s.A)
}

// Length returns the length of the segment
func (s Segment) Length() float64 {
	return s.Direction().Length()
}

// ClosestPoint returns the point on the segment closest to p.
// The projection parameter is clamped to [0,1] so endpoints are
// handled correctly when p lies beyond either end.
func (s Segment) ClosestPoint(p Vector2D) Vector2D {
	dir := s.Direction()
	lenSq := dir.LengthSquared()
	if lenSq == 0 {
		// Degenerate segment: both endpoints coincide.
		return s.A
	}
	t := p.Sub(s.A).Dot(dir) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.A.Add(dir.Scale(t))
}

// CollisionResult contains information about a circle/segment collision
type CollisionResult struct {
	Collided     bool
	Normal       Vector2D // unit vector pointing from the wall into the circle
	Penetration  float64
	ContactPoint Vector2D
	Distance     float64
}

// CheckCircleSegment performs collision detection between a circle and
// a segment. A collision holds iff the distance from the circle center
// to the closest point on the segment is strictly less than the radius.
func CheckCircleSegment(c Circle, s Segment) CollisionResult {
	closest := s.ClosestPoint(c.Center)
	diff := c.Center.Sub(closest)
	distance := diff.Length()

	if distance >= c.Radius {
		return CollisionResult{Collided: false, ContactPoint: closest, Distance: distance}
	}

	normal := diff.Normalize()
	if normal == (Vector2D{}) {
		// Center exactly on the segment: the normal is undefined by
		// normalization. Fall back to the segment's left-hand
		// perpendicular so the result stays finite and stable.
		normal = s.Direction().Perp().Normalize()
	}

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  c.Radius - distance,
		ContactPoint: closest,
		Distance:     distance,
	}
}
