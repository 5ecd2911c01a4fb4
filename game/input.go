package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubblefield/renderer"
	"github.com/pthm-cable/bubblefield/scene"
)

// dragThreshold is how far the pointer must move before a press becomes a drag.
const dragThreshold = 3.0

// dragState tracks one mouse button press.
type dragState struct {
	active bool
	button rl.MouseButton
	start  rl.Vector2
	moved  bool
}

// handleInput processes keyboard and pointer input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}

	// Keys are for the search box while it has focus
	if g.controls != nil && !g.controls.Editing() {
		if rl.IsKeyPressed(rl.KeyEscape) {
			g.scene.ClickEmpty()
		}
	}

	if _, blocking := g.scene.Notice(); blocking {
		g.cancelDrag()
		return
	}

	g.handleCameraInput()
	g.handleHover()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
}

func (g *Game) resize(w, h float32) {
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.scene.Resize(float64(w), float64(h))
	if g.controls != nil {
		g.controls.Resize(w, h)
	}
	if g.perf != nil {
		g.perf.SetPosition(int32(w)-230, 10)
	}
}

// overUI reports whether the pointer is over a UI element.
func (g *Game) overUI(p rl.Vector2) bool {
	return g.controls != nil && g.controls.Contains(p)
}

// handleCameraInput maps drags to orbit (left) and pan (right), the wheel to
// zoom, and a left press without movement to a click.
func (g *Game) handleCameraInput() {
	ctrl := g.scene.Camera()
	mouse := rl.GetMousePosition()

	if !g.drag.active && !g.overUI(mouse) {
		for _, b := range []rl.MouseButton{rl.MouseButtonLeft, rl.MouseButtonRight} {
			if rl.IsMouseButtonPressed(b) {
				g.drag = dragState{active: true, button: b, start: mouse}
				break
			}
		}
	}

	if g.drag.active {
		if !g.drag.moved && dist(mouse, g.drag.start) > dragThreshold {
			g.drag.moved = true
			ctrl.BeginInteraction()
		}
		if g.drag.moved {
			d := rl.GetMouseDelta()
			if g.drag.button == rl.MouseButtonLeft {
				ctrl.Orbit(float64(d.X), float64(d.Y))
			} else {
				ctrl.Pan(float64(d.X), float64(d.Y))
			}
		}
		if rl.IsMouseButtonReleased(g.drag.button) {
			if g.drag.moved {
				ctrl.EndInteraction()
			} else if g.drag.button == rl.MouseButtonLeft {
				g.click(mouse)
			}
			g.drag = dragState{}
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !g.overUI(mouse) {
		ctrl.BeginInteraction()
		ctrl.Zoom(float64(wheel))
		ctrl.EndInteraction()
	}
}

func (g *Game) cancelDrag() {
	if g.drag.moved {
		g.scene.Camera().EndInteraction()
	}
	g.drag = dragState{}
}

// click selects the bubble under the pointer, or clears the selection.
func (g *Game) click(p rl.Vector2) {
	if id, ok := g.pick(p); ok {
		g.scene.Click(id)
		return
	}
	g.scene.ClickEmpty()
}

// handleHover tracks the bubble under the pointer. Entering is reapplied every
// frame so a pending release is cancelled when the pointer comes back.
func (g *Game) handleHover() {
	mouse := rl.GetMousePosition()

	if !g.drag.moved && !g.overUI(mouse) {
		if id, ok := g.pick(mouse); ok {
			g.scene.HoverEnter(id)
			return
		}
	}
	if current, ok := g.scene.Hovered(); ok {
		g.scene.HoverLeave(current)
	}
}

func (g *Game) pick(p rl.Vector2) (string, bool) {
	origin, dir := renderer.Ray(g.scene.Camera().Camera(), p)
	return scene.Pick(g.scene.Nodes(), origin, dir)
}

func dist(a, b rl.Vector2) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
