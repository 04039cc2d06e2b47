// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// SimulationConfig contains the full configuration of one simulation.
// All values are fixed at construction time; the simulation never
// mutates its configuration.
type SimulationConfig struct {
	Container ContainerConfig `json:"container"`
	Ball      BallConfig      `json:"ball"`
	Physics   PhysicsConfig   `json:"physics"`
	Render    RenderConfig    `json:"render"`
}

// ContainerConfig describes the rotating polygon boundary.
type ContainerConfig struct {
	Sides           int     `json:"sides"`
	Circumradius    float64 `json:"circumradius"`
	CenterX         float64 `json:"centerX"`
	CenterY         float64 `json:"centerY"`
	InitialAngle    float64 `json:"initialAngle"`
	AngularVelocity float64 `json:"angularVelocity"` // radians/second
}

// BallConfig describes the ball's initial state.
type BallConfig struct {
	Radius    float64 `json:"radius"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VelocityX float64 `json:"velocityX"`
	VelocityY float64 `json:"velocityY"`
}

// PhysicsConfig contains the integrator and collision coefficients.
type PhysicsConfig struct {
	Gravity     float64 `json:"gravity"`     // downward acceleration, units/s^2
	Damping     float64 `json:"damping"`     // per-tick velocity factor, (0,1]
	Restitution float64 `json:"restitution"` // normal bounce factor, [0,1]
	Friction    float64 `json:"friction"`    // tangential attenuation at contact, [0,1]
	TimeStep    float64 `json:"timeStep"`    // fixed seconds per tick
	FloorY      float64 `json:"floorY"`      // defensive hard floor, world y
}

// RenderConfig sizes the external view of the simulation.
type RenderConfig struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimulationConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimulationConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock configuration: a hexagon of
// circumradius 200 spinning at 1 rad/s around (400, 300), a radius-10
// ball launched from the center, gravity 500, restitution 0.9.
func DefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		Container: ContainerConfig{
			Sides:           6,
			Circumradius:    200,
			CenterX:         400,
			CenterY:         300,
			InitialAngle:    0,
			AngularVelocity: 1.0,
		},
		Ball: BallConfig{
			Radius:    10,
			X:         400,
			Y:         300,
			VelocityX: 200,
			VelocityY: -150,
		},
		Physics: PhysicsConfig{
			Gravity:     500,
			Damping:     0.99,
			Restitution: 0.9,
			Friction:    0.1,
			TimeStep:    1.0 / 60.0,
			FloorY:      600,
		},
		Render: RenderConfig{
			Width:  80,
			Height: 40,
			Scale:  12,
		},
	}
}

// Validate rejects configurations the simulation cannot run with.
// Everything here is checked once, eagerly, at construction time.
func (c *SimulationConfig) Validate() error {
	if c.Container.Sides < 3 {
		return fmt.Errorf("container.sides must be at least 3, got %d", c.Container.Sides)
	}
	if c.Container.Circumradius <= 0 {
		return fmt.Errorf("container.circumradius must be positive, got %v", c.Container.Circumradius)
	}
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("ball.radius must be positive, got %v", c.Ball.Radius)
	}
	if c.Ball.Radius >= c.Container.Circumradius {
		return fmt.Errorf("ball.radius %v does not fit inside circumradius %v",
			c.Ball.Radius, c.Container.Circumradius)
	}
	if c.Physics.TimeStep <= 0 || math.IsNaN(c.Physics.TimeStep) || math.IsInf(c.Physics.TimeStep, 0) {
		return fmt.Errorf("physics.timeStep must be positive and finite, got %v", c.Physics.TimeStep)
	}
	if c.Physics.Damping <= 0 || c.Physics.Damping > 1 {
		return fmt.Errorf("physics.damping must be in (0,1], got %v", c.Physics.Damping)
	}
	if c.Physics.Restitution < 0 || c.Physics.Restitution > 1 {
		return fmt.Errorf("physics.restitution must be in [0,1], got %v", c.Physics.Restitution)
	}
	if c.Physics.Friction < 0 || c.Physics.Friction > 1 {
		return fmt.Errorf("physics.friction must be in [0,1], got %v", c.Physics.Friction)
	}
	for name, v := range map[string]float64{
		"container.centerX":         c.Container.CenterX,
		"container.centerY":         c.Container.CenterY,
		"container.initialAngle":    c.Container.InitialAngle,
		"container.angularVelocity": c.Container.AngularVelocity,
		"ball.x":                    c.Ball.X,
		"ball.y":                    c.Ball.Y,
		"ball.velocityX":            c.Ball.VelocityX,
		"ball.velocityY":            c.Ball.VelocityY,
		"physics.gravity":           c.Physics.Gravity,
		"physics.floorY":            c.Physics.FloorY,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %v", name, v)
		}
	}
	return nil
}
