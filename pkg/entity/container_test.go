// pkg/entity/container_test.go
package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-spindrum/pkg/physics"
)

func TestNewRotatingPolygon_Validation(t *testing.T) {
	tests := []struct {
		name         string
		circumradius float64
		sides        int
		angle        float64
		omega        float64
		wantErr      bool
	}{
		{
			name:         "valid_hexagon",
			circumradius: 200,
			sides:        6,
			wantErr:      false,
		},
		{
			name:         "valid_triangle",
			circumradius: 1,
			sides:        3,
			wantErr:      false,
		},
		{
			name:         "too_few_sides",
			circumradius: 200,
			sides:        2,
			wantErr:      true,
		},
		{
			name:         "zero_radius",
			circumradius: 0,
			sides:        6,
			wantErr:      true,
		},
		{
			name:         "negative_radius",
			circumradius: -5,
			sides:        6,
			wantErr:      true,
		},
		{
			name:         "nan_angle",
			circumradius: 200,
			sides:        6,
			angle:        math.NaN(),
			wantErr:      true,
		},
		{
			name:         "infinite_angular_velocity",
			circumradius: 200,
			sides:        6,
			omega:        math.Inf(1),
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRotatingPolygon(physics.Vector2D{}, tt.circumradius, tt.sides, tt.angle, tt.omega)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRotatingPolygon() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRotatingPolygon_Vertices(t *testing.T) {
	center := physics.Vector2D{X: 400, Y: 300}
	polygon, err := NewRotatingPolygon(center, 200, 6, 0, 1)
	if err != nil {
		t.Fatalf("NewRotatingPolygon() error = %v", err)
	}

	vertices := polygon.Vertices()
	if len(vertices) != 6 {
		t.Fatalf("len(Vertices()) = %d, expected 6", len(vertices))
	}

	// Vertex 0 at angle 0 sits circumradius to the right of center.
	if math.Abs(vertices[0].X-600) > 1e-9 || math.Abs(vertices[0].Y-300) > 1e-9 {
		t.Errorf("vertex 0 = %v, expected (600, 300)", vertices[0])
	}

	// All vertices sit exactly on the circumcircle.
	for i, v := range vertices {
		if d := v.Distance(center); math.Abs(d-200) > 1e-9 {
			t.Errorf("vertex %d distance from center = %v, expected 200", i, d)
		}
	}

	// Adjacent vertices are separated by 60°, so every edge of a
	// regular hexagon has length equal to the circumradius.
	edges := polygon.Edges()
	if len(edges) != 6 {
		t.Fatalf("len(Edges()) = %d, expected 6", len(edges))
	}
	for i, e := range edges {
		if math.Abs(e.Length()-200) > 1e-9 {
			t.Errorf("edge %d length = %v, expected 200", i, e.Length())
		}
	}
}

func TestRotatingPolygon_Advance(t *testing.T) {
	polygon, err := NewRotatingPolygon(physics.Vector2D{}, 100, 6, 0, 2)
	if err != nil {
		t.Fatalf("NewRotatingPolygon() error = %v", err)
	}

	before := polygon.Vertices()[0]
	polygon.Advance(0.25) // 0.5 radians

	if math.Abs(polygon.Angle()-0.5) > 1e-12 {
		t.Errorf("Angle() = %v, expected 0.5", polygon.Angle())
	}

	after := polygon.Vertices()[0]
	expected := before.Rotate(0.5)
	if math.Abs(after.X-expected.X) > 1e-9 || math.Abs(after.Y-expected.Y) > 1e-9 {
		t.Errorf("vertex 0 after Advance = %v, expected %v", after, expected)
	}

	// The angle only ever accumulates.
	for i := 0; i < 100; i++ {
		prev := polygon.Angle()
		polygon.Advance(1.0 / 60.0)
		if polygon.Angle() <= prev {
			t.Fatalf("angle did not increase monotonically at step %d", i)
		}
	}
}

func TestRotatingPolygon_BoundaryVelocity(t *testing.T) {
	center := physics.Vector2D{X: 10, Y: 20}
	polygon, err := NewRotatingPolygon(center, 100, 6, 0, 2)
	if err != nil {
		t.Fatalf("NewRotatingPolygon() error = %v", err)
	}

	t.Run("center_is_stationary", func(t *testing.T) {
		if v := polygon.BoundaryVelocity(center); v != (physics.Vector2D{}) {
			t.Errorf("BoundaryVelocity(center) = %v, expected zero", v)
		}
	})

	t.Run("omega_cross_r", func(t *testing.T) {
		// r = (5, 0), ω = 2: v = (-ω·r.Y, ω·r.X) = (0, 10).
		v := polygon.BoundaryVelocity(physics.Vector2D{X: 15, Y: 20})
		if v != (physics.Vector2D{X: 0, Y: 10}) {
			t.Errorf("BoundaryVelocity() = %v, expected (0, 10)", v)
		}
	})

	t.Run("tangential_to_radius", func(t *testing.T) {
		point := physics.Vector2D{X: 73, Y: -41}
		v := polygon.BoundaryVelocity(point)
		if dot := v.Dot(point.Sub(center)); math.Abs(dot) > 1e-9 {
			t.Errorf("boundary velocity not tangential: dot = %v", dot)
		}
	})

	t.Run("speed_scales_with_radius", func(t *testing.T) {
		v := polygon.BoundaryVelocity(physics.Vector2D{X: 10, Y: 120}) // r = 100
		if math.Abs(v.Length()-200) > 1e-9 {
			t.Errorf("|BoundaryVelocity| = %v, expected ω·|r| = 200", v.Length())
		}
	})
}
