// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ApplyEnvironmentOverrides overlays SPINDRUM_* environment variables
// onto a loaded configuration. A .env file in the working directory is
// loaded first if present, so local runs can be tuned without touching
// the config file.
func ApplyEnvironmentOverrides(config *SimulationConfig) error {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	overrides := []struct {
		key    string
		target *float64
	}{
		{"SPINDRUM_CIRCUMRADIUS", &config.Container.Circumradius},
		{"SPINDRUM_ANGULAR_VELOCITY", &config.Container.AngularVelocity},
		{"SPINDRUM_INITIAL_ANGLE", &config.Container.InitialAngle},
		{"SPINDRUM_BALL_RADIUS", &config.Ball.Radius},
		{"SPINDRUM_GRAVITY", &config.Physics.Gravity},
		{"SPINDRUM_DAMPING", &config.Physics.Damping},
		{"SPINDRUM_RESTITUTION", &config.Physics.Restitution},
		{"SPINDRUM_FRICTION", &config.Physics.Friction},
		{"SPINDRUM_TIME_STEP", &config.Physics.TimeStep},
		{"SPINDRUM_FLOOR_Y", &config.Physics.FloorY},
	}
	for _, o := range overrides {
		if err := overrideFloat(o.key, o.target); err != nil {
			return err
		}
	}

	if err := overrideInt("SPINDRUM_SIDES", &config.Container.Sides); err != nil {
		return err
	}

	return nil
}

func overrideFloat(key string, target *float64) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*target = value
	return nil
}

func overrideInt(key string, target *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*target = value
	return nil
}
