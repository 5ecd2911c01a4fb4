package renderer

import (
	"math"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubblefield/camera"
	"github.com/pthm-cable/bubblefield/scene"
)

// Shell drawing parameters.
const (
	shellAlpha = 0.35
	coreRatio  = 0.4
	rings      = 16
	slices     = 24
)

// BubbleRenderer draws bubbles, their labels and the star field.
type BubbleRenderer struct {
	stars *StarField
	order []int
}

// NewBubbleRenderer creates a renderer. seed fixes the star layout.
func NewBubbleRenderer(seed int64) *BubbleRenderer {
	return &BubbleRenderer{stars: NewStarField(seed)}
}

// DrawScene renders the 3D pass: stars, then bubbles back to front.
func (r *BubbleRenderer) DrawScene(cam *camera.Camera, nodes []scene.NodeView, clock float64) {
	rl.BeginMode3D(ToCamera3D(cam))
	r.stars.Draw(clock)

	r.order = DepthOrder(r.order, nodes, cam.Position)
	for _, i := range r.order {
		drawBubble(nodes[i])
	}
	rl.EndMode3D()
}

// DepthOrder fills order with node indices sorted farthest first.
func DepthOrder(order []int, nodes []scene.NodeView, eye r3.Vec) []int {
	order = order[:0]
	for i := range nodes {
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		da := r3.Norm2(r3.Sub(nodes[order[a]].Position, eye))
		db := r3.Norm2(r3.Sub(nodes[order[b]].Position, eye))
		return da > db
	})
	return order
}

func drawBubble(n scene.NodeView) {
	radius := n.Radius * n.Scale
	if radius <= 0 || n.Opacity <= 0 {
		return
	}
	center := Vec3(n.Position)
	glow := Glow(n.Color, n.Emissive)

	rl.DrawSphereEx(center, float32(radius*coreRatio), rings/2, slices/2, ToColor(n.Color, n.Opacity))
	rl.DrawSphereEx(center, float32(radius), rings, slices, ToColor(glow, shellAlpha*n.Opacity))
	rl.DrawSphereWires(center, float32(radius), rings/2, slices/2, ToColor(glow, 0.15*n.Opacity))
}

// DrawLabels renders symbol and change text over each visible bubble that
// is not hovered and large enough to read. Call outside BeginMode3D.
func (r *BubbleRenderer) DrawLabels(cam *camera.Camera, nodes []scene.NodeView) {
	rc := ToCamera3D(cam)
	fwd := cam.Forward()
	for _, n := range nodes {
		if !n.Visible || n.Hovered || n.Radius <= 0.5 {
			continue
		}
		// Behind the camera
		if r3.Dot(r3.Sub(n.Position, cam.Position), fwd) <= 0 {
			continue
		}
		screen := rl.GetWorldToScreen(Vec3(n.Position), rc)
		symbol, change := n.Label()

		symSize := int32(clampF(n.Radius*5, 8, 18))
		chgSize := int32(clampF(n.Radius*4, 7, 14))

		x := int32(screen.X)
		y := int32(screen.Y)
		rl.DrawText(symbol, x-rl.MeasureText(symbol, symSize)/2, y-symSize, symSize, rl.White)
		rl.DrawText(change, x-rl.MeasureText(change, chgSize)/2, y+2, chgSize, ToColor(n.Color, 1))
	}
}

// ScreenPoint projects a world point to the screen. ok is false when the
// point is behind the camera.
func ScreenPoint(cam *camera.Camera, p r3.Vec) (rl.Vector2, bool) {
	if r3.Dot(r3.Sub(p, cam.Position), cam.Forward()) <= 0 {
		return rl.Vector2{}, false
	}
	return rl.GetWorldToScreen(Vec3(p), ToCamera3D(cam)), true
}

// Ray returns the world ray under a screen point.
func Ray(cam *camera.Camera, screen rl.Vector2) (origin, dir r3.Vec) {
	ray := rl.GetScreenToWorldRay(screen, ToCamera3D(cam))
	return FromVec3(ray.Position), FromVec3(ray.Direction)
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
