// pkg/engine/simulation.go
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/opd-ai/go-spindrum/pkg/config"
	"github.com/opd-ai/go-spindrum/pkg/entity"
	"github.com/opd-ai/go-spindrum/pkg/event"
	"github.com/opd-ai/go-spindrum/pkg/logging"
	"github.com/opd-ai/go-spindrum/pkg/physics"
)

// Simulation owns one ball and one container and advances them in
// fixed timesteps. It replaces any module-level state: every
// simulation is an independent context object, so multiple instances
// can run side by side and tests stay deterministic.
type Simulation struct {
	Config    *config.SimulationConfig
	Ball      *entity.Ball
	Container entity.Container
	EventBus  *event.Bus

	// stateLock guards Ball and Container. A tick holds it for the
	// whole pass; readers use Snapshot, which takes the read side, so
	// renders never observe a half-finished tick.
	stateLock   sync.RWMutex
	currentTick uint64
	running     bool
	runID       string
	logger      *logging.Logger
}

// Snapshot is the read-only view of the simulation state handed to
// renderers and diagnostics once per frame.
type Snapshot struct {
	Tick         uint64
	BallPosition physics.Vector2D
	BallVelocity physics.Vector2D
	BallRadius   float64
	Vertices     []physics.Vector2D
}

// NewSimulation creates a simulation from the given configuration.
// Invalid configurations are rejected here, eagerly: the simulation
// must never run with undefined geometry or coefficients.
func NewSimulation(cfg *config.SimulationConfig) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("simulation config must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "invalid simulation config")
	}

	container, err := entity.NewRotatingPolygon(
		physics.Vector2D{X: cfg.Container.CenterX, Y: cfg.Container.CenterY},
		cfg.Container.Circumradius,
		cfg.Container.Sides,
		cfg.Container.InitialAngle,
		cfg.Container.AngularVelocity,
	)
	if err != nil {
		return nil, logging.WrapError(err, "invalid container geometry")
	}

	ball := entity.NewBall(
		physics.Vector2D{X: cfg.Ball.X, Y: cfg.Ball.Y},
		physics.Vector2D{X: cfg.Ball.VelocityX, Y: cfg.Ball.VelocityY},
		cfg.Ball.Radius,
	)

	return &Simulation{
		Config:    cfg,
		Ball:      ball,
		Container: container,
		EventBus:  event.NewEventBus(),
		runID:     logging.GenerateRunID(),
		logger:    logging.NewLogger(),
	}, nil
}

// Start marks the simulation running and announces it.
func (s *Simulation) Start() {
	s.stateLock.Lock()
	s.running = true
	s.stateLock.Unlock()

	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationStarted,
		Source:    s,
	})
	s.logger.Info(logging.WithRunID(context.Background(), s.runID), "simulation started",
		"sides", s.Config.Container.Sides,
		"angular_velocity", s.Config.Container.AngularVelocity,
		"time_step", s.Config.Physics.TimeStep,
	)
}

// Stop marks the simulation stopped and announces it.
func (s *Simulation) Stop() {
	s.stateLock.Lock()
	s.running = false
	s.stateLock.Unlock()

	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationStopped,
		Source:    s,
	})
	s.logger.Info(logging.WithRunID(context.Background(), s.runID), "simulation stopped",
		"ticks", s.CurrentTick(),
	)
}

// Advance performs one fixed-step update: container rotation, then
// ball integration, then the collision pass, then the defensive floor
// clamp. It never panics for finite, non-negative dt. Event handlers
// fire inside the tick and must not call back into the simulation.
func (s *Simulation) Advance(dt float64) {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.Container.Advance(dt)
	s.Ball.Integrate(dt, s.Config.Physics.Gravity, s.Config.Physics.Damping)
	s.resolveEdgeCollisions()
	s.clampToFloor()
	s.currentTick++
}

// resolveEdgeCollisions tests the ball against every edge of the
// container and resolves each overlap independently, in edge-index
// order. Simultaneous multi-edge contacts (corner trapping) are not
// combined into a global solve; that approximation is inherited from
// the model and documented, not hidden.
func (s *Simulation) resolveEdgeCollisions() {
	restitution := s.Config.Physics.Restitution
	friction := s.Config.Physics.Friction

	for i, edge := range s.Container.Edges() {
		result := physics.CheckCircleSegment(s.Ball.Collider(), edge)
		if !result.Collided {
			continue
		}

		wallVel := s.Container.BoundaryVelocity(result.ContactPoint)
		impactSpeed := -s.Ball.Velocity.Sub(wallVel).Dot(result.Normal)

		s.Ball.Velocity = physics.Reflect(s.Ball.Velocity, wallVel, result.Normal, restitution, friction)

		// Push the ball out along the normal regardless of approach
		// direction so it never sinks into the wall.
		s.Ball.Position = s.Ball.Position.Add(result.Normal.Scale(result.Penetration))

		if impactSpeed > 0 {
			s.EventBus.Publish(event.NewCollisionEvent(
				s, s.currentTick, i, result.ContactPoint, result.Penetration, impactSpeed,
			))
		}
	}
}

// clampToFloor is the non-physical backstop of last resort: if the
// ball tunnels past every edge (fast rotation, high speed), pin it to
// the hard floor and bounce the vertical component.
func (s *Simulation) clampToFloor() {
	floor := s.Config.Physics.FloorY - s.Ball.Radius
	if s.Ball.Position.Y <= floor {
		return
	}

	s.Ball.Position.Y = floor
	s.Ball.Velocity.Y = -s.Ball.Velocity.Y * s.Config.Physics.Restitution
	s.EventBus.Publish(event.NewFloorContactEvent(s, s.currentTick, s.Ball.Position))
}

// Run drives the simulation at its configured fixed timestep until the
// context is cancelled.
func (s *Simulation) Run(ctx context.Context) error {
	dt := s.Config.Physics.TimeStep
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	s.Start()
	defer s.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Advance(dt)
		}
	}
}

// Snapshot returns a consistent copy of the renderable state. It
// blocks while a tick is in flight, which makes it the synchronization
// point between "tick complete" and "render read".
func (s *Simulation) Snapshot() Snapshot {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	return Snapshot{
		Tick:         s.currentTick,
		BallPosition: s.Ball.Position,
		BallVelocity: s.Ball.Velocity,
		BallRadius:   s.Ball.Radius,
		Vertices:     s.Container.Vertices(),
	}
}

// BallPosition returns the ball's current position.
func (s *Simulation) BallPosition() physics.Vector2D {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return s.Ball.Position
}

// BallVelocity returns the ball's current velocity, for diagnostics.
func (s *Simulation) BallVelocity() physics.Vector2D {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return s.Ball.Velocity
}

// Vertices returns the container's current vertex positions.
func (s *Simulation) Vertices() []physics.Vector2D {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return s.Container.Vertices()
}

// CurrentTick returns the number of completed ticks.
func (s *Simulation) CurrentTick() uint64 {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return s.currentTick
}

// Running reports whether the simulation has been started.
func (s *Simulation) Running() bool {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return s.running
}

// RunID returns the simulation's unique run identifier.
func (s *Simulation) RunID() string {
	return s.runID
}

// CheckState verifies the ball state is finite. NaN or Inf anywhere in
// position or velocity corrupts every subsequent tick, so it is the
// one condition worth watching from the outside.
func (s *Simulation) CheckState() error {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	if !s.Ball.Position.IsFinite() {
		return fmt.Errorf("ball position is not finite: %+v", s.Ball.Position)
	}
	if !s.Ball.Velocity.IsFinite() {
		return fmt.Errorf("ball velocity is not finite: %+v", s.Ball.Velocity)
	}
	return nil
}
