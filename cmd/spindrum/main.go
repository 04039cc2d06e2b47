// cmd/spindrum/main.go
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/opd-ai/go-spindrum/pkg/config"
	"github.com/opd-ai/go-spindrum/pkg/engine"
	"github.com/opd-ai/go-spindrum/pkg/event"
	"github.com/opd-ai/go-spindrum/pkg/health"
	"github.com/opd-ai/go-spindrum/pkg/logging"
	"github.com/opd-ai/go-spindrum/pkg/physics"
	"github.com/opd-ai/go-spindrum/pkg/render"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	headless := flag.Bool("headless", false, "Run without the terminal view")
	ticks := flag.Uint64("ticks", 0, "Stop after this many ticks (0 = run until interrupted)")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	// Load configuration
	var simConfig *config.SimulationConfig

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", *configPath,
		)
		simConfig = config.DefaultConfig()
	} else {
		simConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}

	// Apply environment variable overrides
	if err := config.ApplyEnvironmentOverrides(simConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	// Create simulation; configuration errors are rejected here.
	sim, err := engine.NewSimulation(simConfig)
	if err != nil {
		logger.Error(ctx, "Failed to create simulation", err)
		os.Exit(1)
	}
	ctx = logging.WithRunID(ctx, sim.RunID())

	sim.EventBus.Subscribe(event.BallCollision, func(e event.Event) {
		if ce, ok := e.(*event.CollisionEvent); ok {
			logger.Debug(ctx, "ball collision",
				"tick", ce.Tick,
				"edge", ce.EdgeIndex,
				"impact_speed", ce.ImpactSpeed,
			)
		}
	})
	sim.EventBus.Subscribe(event.FloorContact, func(e event.Event) {
		if fe, ok := e.(*event.FloorContactEvent); ok {
			logger.Warn(ctx, "fallback floor engaged",
				"tick", fe.Tick,
				"x", fe.Position.X,
				"y", fe.Position.Y,
			)
		}
	})

	// Setup health checks
	healthChecker := health.NewHealthChecker()
	healthChecker.AddCheck(health.NewSimulationStateHealthCheck(sim.CheckState))
	healthChecker.AddCheck(health.NewTickProgressHealthCheck(sim.CurrentTick, 5*time.Second))
	healthChecker.AddCheck(health.NewMemoryHealthCheck(500, func() int64 {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return int64(m.Alloc / 1024 / 1024)
	}))

	startHealthServer(ctx, logger, healthChecker)

	var renderer render.Renderer
	if *headless {
		renderer = render.NewNullRenderer()
	} else {
		terminal := render.NewTerminalRenderer(
			simConfig.Render.Width,
			simConfig.Render.Height,
			simConfig.Render.Scale,
		)
		terminal.SetCenter(physics.Vector2D{
			X: simConfig.Container.CenterX,
			Y: simConfig.Container.CenterY,
		})
		renderer = terminal
	}

	runLoop(ctx, logger, sim, renderer, *ticks)
}

// startHealthServer exposes liveness/readiness probes on
// SPINDRUM_HEALTH_PORT (default 8080).
func startHealthServer(ctx context.Context, logger *logging.Logger, checker *health.HealthChecker) {
	healthPort := "8080"
	if envPort := os.Getenv("SPINDRUM_HEALTH_PORT"); envPort != "" {
		if _, err := strconv.Atoi(envPort); err == nil {
			healthPort = envPort
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", checker.LivenessHandler)
	mux.HandleFunc("/ready", checker.ReadinessHandler)

	server := &http.Server{
		Addr:         ":" + healthPort,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(ctx, "Starting health check server",
			"port", healthPort,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()
}

// runLoop drives the simulation at its fixed timestep and renders a
// frame after each completed tick, until the tick budget is exhausted
// or the process is interrupted.
func runLoop(ctx context.Context, logger *logging.Logger, sim *engine.Simulation, renderer render.Renderer, maxTicks uint64) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	dt := sim.Config.Physics.TimeStep
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	sim.Start()
	defer sim.Stop()

	for {
		select {
		case sig := <-sigCh:
			logger.Info(ctx, "Shutting down", "signal", sig.String())
			return
		case <-ticker.C:
			sim.Advance(dt)
			render.RenderFrame(renderer, sim.Snapshot())

			if maxTicks > 0 && sim.CurrentTick() >= maxTicks {
				logger.Info(ctx, "Tick budget reached", "ticks", sim.CurrentTick())
				return
			}
		}
	}
}
