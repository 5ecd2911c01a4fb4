// Package renderer draws the bubble scene with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubblefield/camera"
	"github.com/pthm-cable/bubblefield/palette"
)

// Background is the clear color behind the star field (#030014).
var Background = rl.Color{R: 3, G: 0, B: 20, A: 255}

// Vec3 converts a world vector to raylib.
func Vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// FromVec3 converts a raylib vector to world space.
func FromVec3(v rl.Vector3) r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// ToCamera3D builds the raylib camera for the current pose.
func ToCamera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   Vec3(c.Position),
		Target:     Vec3(c.Target),
		Up:         Vec3(c.Up()),
		Fovy:       float32(c.FOV),
		Projection: rl.CameraPerspective,
	}
}

// ToColor converts a palette color with alpha in [0, 1].
func ToColor(c palette.Color, alpha float64) rl.Color {
	r, g, b, a := c.RGBA8(alpha)
	return rl.Color{R: r, G: g, B: b, A: a}
}

// Glow brightens a color toward white by emissive intensity.
func Glow(c palette.Color, emissive float64) palette.Color {
	return palette.Lerp(c, palette.Color{R: 1, G: 1, B: 1}, clamp01(emissive)*0.35)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
