// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-spindrum/pkg/engine"
	"github.com/opd-ai/go-spindrum/pkg/logging"
	"github.com/opd-ai/go-spindrum/pkg/physics"
)

// Renderer is the external collaborator boundary: it only ever reads a
// completed snapshot of the simulation, never the live state.
type Renderer interface {
	Clear()
	DrawContainer(vertices []physics.Vector2D)
	DrawBall(center physics.Vector2D, radius float64)
	Present()
}

// RenderFrame draws one snapshot through the given renderer.
func RenderFrame(r Renderer, snap engine.Snapshot) {
	r.Clear()
	r.DrawContainer(snap.Vertices)
	r.DrawBall(snap.BallPosition, snap.BallRadius)
	r.Present()
}

// NullRenderer is a Renderer that only logs, for headless runs.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {}

// DrawContainer implements Renderer.
func (d *NullRenderer) DrawContainer(vertices []physics.Vector2D) {
	d.logger.Debug(context.Background(), "DrawContainer called",
		"vertex_count", len(vertices),
	)
}

// DrawBall implements Renderer.
func (d *NullRenderer) DrawBall(center physics.Vector2D, radius float64) {
	d.logger.Debug(context.Background(), "DrawBall called",
		"x", center.X,
		"y", center.Y,
		"radius", radius,
	)
}

// Present implements Renderer.
func (d *NullRenderer) Present() {}
