// pkg/physics/collision_test.go
package physics

import (
	"math"
	"testing"
)

func TestSegment_ClosestPoint(t *testing.T) {
	segment := Segment{A: Vector2D{X: 0, Y: 0}, B: Vector2D{X: 10, Y: 0}}

	tests := []struct {
		name     string
		point    Vector2D
		expected Vector2D
	}{
		{
			name:     "projection_inside_segment",
			point:    Vector2D{X: 5, Y: 3},
			expected: Vector2D{X: 5, Y: 0},
		},
		{
			name:     "clamped_to_start",
			point:    Vector2D{X: -5, Y: 3},
			expected: Vector2D{X: 0, Y: 0},
		},
		{
			name:     "clamped_to_end",
			point:    Vector2D{X: 15, Y: -2},
			expected: Vector2D{X: 10, Y: 0},
		},
		{
			name:     "point_on_segment",
			point:    Vector2D{X: 7, Y: 0},
			expected: Vector2D{X: 7, Y: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := segment.ClosestPoint(tt.point)
			if result != tt.expected {
				t.Errorf("ClosestPoint() = %v, expected %v", result, tt.expected)
			}
		})
	}

	t.Run("clamped_distance", func(t *testing.T) {
		// P = (-5, 3) clamps to A, so distance is sqrt(25 + 9).
		p := Vector2D{X: -5, Y: 3}
		closest := segment.ClosestPoint(p)
		expected := math.Sqrt(34)
		if d := p.Distance(closest); math.Abs(d-expected) > 1e-12 {
			t.Errorf("distance to clamped point = %v, expected %v", d, expected)
		}
	})

	t.Run("degenerate_segment", func(t *testing.T) {
		point := Segment{A: Vector2D{X: 2, Y: 2}, B: Vector2D{X: 2, Y: 2}}
		result := point.ClosestPoint(Vector2D{X: 5, Y: 6})
		if result != (Vector2D{X: 2, Y: 2}) {
			t.Errorf("ClosestPoint() = %v, expected the collapsed endpoint", result)
		}
	})
}

func TestCheckCircleSegment(t *testing.T) {
	segment := Segment{A: Vector2D{X: 0, Y: 0}, B: Vector2D{X: 10, Y: 0}}

	t.Run("no_collision", func(t *testing.T) {
		circle := Circle{Center: Vector2D{X: 5, Y: 6}, Radius: 2}
		result := CheckCircleSegment(circle, segment)
		if result.Collided {
			t.Error("Expected no collision, but got collision")
		}
		if result.Distance != 6 {
			t.Errorf("Distance = %v, expected 6", result.Distance)
		}
	})

	t.Run("touching_is_not_collision", func(t *testing.T) {
		// Distance equals radius; collision logic uses strict <.
		circle := Circle{Center: Vector2D{X: 5, Y: 3}, Radius: 3}
		result := CheckCircleSegment(circle, segment)
		if result.Collided {
			t.Error("Expected no collision at exact touching distance")
		}
	})

	t.Run("collision_with_penetration", func(t *testing.T) {
		circle := Circle{Center: Vector2D{X: 5, Y: 2}, Radius: 3}
		result := CheckCircleSegment(circle, segment)

		if !result.Collided {
			t.Fatal("Expected collision, but got no collision")
		}
		if result.Penetration != 1 {
			t.Errorf("Penetration = %v, expected 1", result.Penetration)
		}
		if result.ContactPoint != (Vector2D{X: 5, Y: 0}) {
			t.Errorf("ContactPoint = %v, expected (5, 0)", result.ContactPoint)
		}
		if result.Normal != (Vector2D{X: 0, Y: 1}) {
			t.Errorf("Normal = %v, expected (0, 1)", result.Normal)
		}
	})

	t.Run("corner_collision_clamps_to_endpoint", func(t *testing.T) {
		circle := Circle{Center: Vector2D{X: -1, Y: 1}, Radius: 2}
		result := CheckCircleSegment(circle, segment)

		if !result.Collided {
			t.Fatal("Expected collision at the segment endpoint")
		}
		if result.ContactPoint != (Vector2D{X: 0, Y: 0}) {
			t.Errorf("ContactPoint = %v, expected (0, 0)", result.ContactPoint)
		}
		expected := Vector2D{X: -1, Y: 1}.Normalize()
		if math.Abs(result.Normal.X-expected.X) > 1e-12 ||
			math.Abs(result.Normal.Y-expected.Y) > 1e-12 {
			t.Errorf("Normal = %v, expected %v", result.Normal, expected)
		}
	})

	t.Run("center_on_segment_uses_fallback_normal", func(t *testing.T) {
		circle := Circle{Center: Vector2D{X: 5, Y: 0}, Radius: 3}
		result := CheckCircleSegment(circle, segment)

		if !result.Collided {
			t.Fatal("Expected collision for center lying on the segment")
		}
		if !result.Normal.IsFinite() {
			t.Fatalf("Normal = %v, expected a finite fallback normal", result.Normal)
		}
		if math.Abs(result.Normal.Length()-1) > 1e-12 {
			t.Errorf("Normal length = %v, expected unit length", result.Normal.Length())
		}
		// Left-hand perpendicular of the A->B direction.
		if result.Normal != (Vector2D{X: 0, Y: 1}) {
			t.Errorf("Normal = %v, expected (0, 1)", result.Normal)
		}
		if result.Penetration != 3 {
			t.Errorf("Penetration = %v, expected full radius 3", result.Penetration)
		}
	})
}
