// Package health provides health check functionality for the spindrum
// host process. It implements HTTP endpoints for liveness and
// readiness probes, plus simulation-specific checks: a NaN anywhere in
// the ball state corrupts every subsequent tick, so state finiteness
// is the single most important thing to watch.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of the process.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a new health check. A check with the same name
// replaces the previous one.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth executes all registered health checks and returns the
// aggregated status. The overall status is "healthy" only if every
// individual check passes.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: "healthy",
			}
		}
	}

	return status
}

// LivenessHandler provides a simple liveness probe endpoint: 200 OK
// whenever the process is up and handling requests.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]string{"status": "alive"}
	json.NewEncoder(w).Encode(response)
}

// ReadinessHandler executes all health checks and returns 200 OK if
// every check passes, 503 Service Unavailable otherwise.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := hc.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")

	if health.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(health)
}

// SimulationStateHealthCheck verifies the simulation state is still
// finite. checkState should return an error on any NaN or Inf.
type SimulationStateHealthCheck struct {
	checkState func() error
}

// NewSimulationStateHealthCheck creates a health check over the
// simulation's numerical state.
func NewSimulationStateHealthCheck(checkState func() error) *SimulationStateHealthCheck {
	return &SimulationStateHealthCheck{
		checkState: checkState,
	}
}

// Name returns the name of this health check.
func (s *SimulationStateHealthCheck) Name() string {
	return "simulation_state"
}

// Check verifies the simulation state is finite.
func (s *SimulationStateHealthCheck) Check(ctx context.Context) error {
	return s.checkState()
}

// TickProgressHealthCheck verifies the simulation keeps advancing.
type TickProgressHealthCheck struct {
	currentTick func() uint64

	mu       sync.Mutex
	lastTick uint64
	lastSeen time.Time
	maxStall time.Duration
}

// NewTickProgressHealthCheck creates a health check that fails when
// the tick counter stops moving for longer than maxStall.
func NewTickProgressHealthCheck(currentTick func() uint64, maxStall time.Duration) *TickProgressHealthCheck {
	return &TickProgressHealthCheck{
		currentTick: currentTick,
		lastSeen:    time.Now(),
		maxStall:    maxStall,
	}
}

// Name returns the name of this health check.
func (t *TickProgressHealthCheck) Name() string {
	return "tick_progress"
}

// Check verifies the tick counter advanced since the last observation.
func (t *TickProgressHealthCheck) Check(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tick := t.currentTick()
	now := time.Now()

	if tick != t.lastTick {
		t.lastTick = tick
		t.lastSeen = now
		return nil
	}

	if stalled := now.Sub(t.lastSeen); stalled > t.maxStall {
		return fmt.Errorf("simulation stalled at tick %d for %v", tick, stalled)
	}
	return nil
}

// MemoryHealthCheck implements HealthCheck for memory usage monitoring.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a health check for memory usage.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within acceptable limits.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}
