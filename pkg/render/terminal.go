// pkg/render/terminal.go
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/opd-ai/go-spindrum/pkg/physics"
)

// TerminalRenderer provides a simple ASCII-based rendering for terminals
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos physics.Vector2D
}

// NewTerminalRenderer creates a new terminal renderer with the
// specified dimensions. scale is world units per character cell.
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
}

// SetCenter sets the world position mapped to the middle of the view.
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// worldToScreen converts world coordinates to screen coordinates
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2)
	screenY := int((pos.Y-r.centerPos.Y)/r.scale + float64(r.height)/2)
	return screenX, screenY
}

// Clear implements Renderer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// Present implements Renderer.
func (r *TerminalRenderer) Present() {
	// Clear terminal
	fmt.Print("\033[H\033[2J")

	fmt.Println("+" + strings.Repeat("-", r.width) + "+")
	for y := range r.buffer {
		fmt.Print("|")
		for x := range r.buffer[y] {
			fmt.Print(string(r.buffer[y][x]))
		}
		fmt.Println("|")
	}
	fmt.Println("+" + strings.Repeat("-", r.width) + "+")
}

// DrawContainer implements Renderer: edges between consecutive
// vertices, closing the loop.
func (r *TerminalRenderer) DrawContainer(vertices []physics.Vector2D) {
	for i := range vertices {
		a := vertices[i]
		b := vertices[(i+1)%len(vertices)]
		ax, ay := r.worldToScreen(a)
		bx, by := r.worldToScreen(b)
		r.drawLine(ax, ay, bx, by, '#')
	}
}

// DrawBall implements Renderer: a filled circle of '*' cells.
func (r *TerminalRenderer) DrawBall(center physics.Vector2D, radius float64) {
	cx, cy := r.worldToScreen(center)
	cells := int(math.Ceil(radius / r.scale))
	if cells < 1 {
		cells = 1
	}

	for dy := -cells; dy <= cells; dy++ {
		for dx := -cells; dx <= cells; dx++ {
			if dx*dx+dy*dy <= cells*cells {
				r.set(cx+dx, cy+dy, '*')
			}
		}
	}
}

// drawLine rasterizes a segment into the buffer with Bresenham's
// algorithm.
func (r *TerminalRenderer) drawLine(x0, y0, x1, y1 int, ch rune) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		r.set(x0, y0, ch)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// set writes a cell if it is within bounds.
func (r *TerminalRenderer) set(x, y int, ch rune) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = ch
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
