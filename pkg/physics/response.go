// pkg/physics/response.go
package physics

// Reflect computes the post-collision velocity of a body hitting a
// moving wall. It is a pure function of the current velocity, the wall
// velocity at the contact point, the collision normal (unit, wall to
// body), the restitution coefficient e in [0,1] and the tangential
// friction coefficient in [0,1].
//
// The work happens in the wall's frame: only an approaching body is
// resolved, the normal component is reflected scaled by (1+e), the
// tangential remainder is attenuated by (1-friction), and the result is
// recombined with the wall velocity back into the world frame. A body
// already separating from the wall is returned unchanged.
func Reflect(vel, wallVel, normal Vector2D, restitution, friction float64) Vector2D {
	relVel := vel.Sub(wallVel)
	vn := relVel.Dot(normal)
	if vn >= 0 {
		return vel
	}

	// v' = v - (1+e)(v·n)n
	relVel = relVel.Sub(normal.Scale((1 + restitution) * vn))

	// Attenuate the tangential component, keep the normal one.
	normalPart := normal.Scale(relVel.Dot(normal))
	tangent := relVel.Sub(normalPart).Scale(1 - friction)
	relVel = normalPart.Add(tangent)

	return wallVel.Add(relVel)
}
