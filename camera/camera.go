// Package camera provides a 3D orbit camera and the selection-following controller.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubblefield/config"
)

// Params holds camera framing and input constants.
type Params struct {
	FOV               float64
	DefaultDistance   float64
	PortraitDistance  float64
	FollowFactor      float64
	MinFollowDistance float64
	FollowLerp        float64
	MinDistance       float64
	MaxDistance       float64
	OrbitSpeed        float64
	PanSpeed          float64
	ZoomStep          float64
}

// DefaultParams returns the stock camera constants.
func DefaultParams() Params {
	return Params{
		FOV:               50,
		DefaultDistance:   30,
		PortraitDistance:  60,
		FollowFactor:      6,
		MinFollowDistance: 6,
		FollowLerp:        0.1,
		MinDistance:       10,
		MaxDistance:       150,
		OrbitSpeed:        0.005,
		PanSpeed:          0.05,
		ZoomStep:          0.1,
	}
}

// ParamsFromConfig builds params from the camera config section.
func ParamsFromConfig(cfg config.CameraConfig) Params {
	return Params{
		FOV:               cfg.FOV,
		DefaultDistance:   cfg.DefaultDistance,
		PortraitDistance:  cfg.PortraitDistance,
		FollowFactor:      cfg.FollowFactor,
		MinFollowDistance: cfg.MinFollowDistance,
		FollowLerp:        cfg.FollowLerp,
		MinDistance:       cfg.MinDistance,
		MaxDistance:       cfg.MaxDistance,
		OrbitSpeed:        cfg.OrbitSpeed,
		PanSpeed:          cfg.PanSpeed,
		ZoomStep:          cfg.ZoomStep,
	}
}

// Camera is a perspective camera looking from Position at Target.
// Up is always +Y.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec

	// Vertical field of view in degrees
	FOV float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Distance constraints for user zoom
	MinDistance, MaxDistance float64

	params Params
}

// New creates a camera at the overview position for the given viewport.
func New(viewportW, viewportH float64, p Params) *Camera {
	c := &Camera{
		FOV:         p.FOV,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		MinDistance: p.MinDistance,
		MaxDistance: p.MaxDistance,
		params:      p,
	}
	c.Reset()
	return c
}

// Aspect returns viewport width over height.
func (c *Camera) Aspect() float64 {
	if c.ViewportH <= 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// Portrait reports whether the viewport is taller than wide.
func (c *Camera) Portrait() bool {
	return c.Aspect() < 1
}

// OverviewDistance is the default camera Z for the current aspect.
func (c *Camera) OverviewDistance() float64 {
	if c.Portrait() {
		return c.params.PortraitDistance
	}
	return c.params.DefaultDistance
}

// Distance returns the distance from position to target.
func (c *Camera) Distance() float64 {
	return r3.Norm(r3.Sub(c.Position, c.Target))
}

// Forward returns the unit view direction.
func (c *Camera) Forward() r3.Vec {
	d := r3.Sub(c.Target, c.Position)
	if r3.Norm(d) == 0 {
		return r3.Vec{Z: -1}
	}
	return r3.Unit(d)
}

// Right returns the unit screen-right direction.
func (c *Camera) Right() r3.Vec {
	r := r3.Cross(c.Forward(), r3.Vec{Y: 1})
	if r3.Norm(r) == 0 {
		return r3.Vec{X: 1}
	}
	return r3.Unit(r)
}

// Up returns the unit screen-up direction.
func (c *Camera) Up() r3.Vec {
	return r3.Cross(c.Right(), c.Forward())
}

// Orbit rotates the position around the target by yaw (about +Y) and pitch (radians).
// Pitch stays short of the poles so Up never degenerates.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	offset := r3.Sub(c.Position, c.Target)
	dist := r3.Norm(offset)
	if dist == 0 {
		return
	}

	yaw := math.Atan2(offset.X, offset.Z)
	pitch := math.Asin(clamp(offset.Y/dist, -1, 1))

	yaw += dYaw
	const limit = math.Pi/2 - 0.01
	pitch = clamp(pitch+dPitch, -limit, limit)

	c.Position = r3.Add(c.Target, r3.Vec{
		X: dist * math.Cos(pitch) * math.Sin(yaw),
		Y: dist * math.Sin(pitch),
		Z: dist * math.Cos(pitch) * math.Cos(yaw),
	})
}

// Pan moves position and target together by a screen-pixel delta.
// Pan speed scales with distance so drags feel the same at any zoom.
func (c *Camera) Pan(dx, dy float64) {
	scale := c.params.PanSpeed * c.Distance() / c.params.DefaultDistance
	move := r3.Add(r3.Scale(-dx*scale, c.Right()), r3.Scale(dy*scale, c.Up()))
	c.Position = r3.Add(c.Position, move)
	c.Target = r3.Add(c.Target, move)
}

// SetDistance moves the position along the view ray, clamped to min/max.
func (c *Camera) SetDistance(d float64) {
	d = clamp(d, c.MinDistance, c.MaxDistance)
	c.Position = r3.Sub(c.Target, r3.Scale(d, c.Forward()))
}

// ZoomBy multiplies the current distance by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetDistance(c.Distance() * factor)
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Reset returns the camera to the overview position.
func (c *Camera) Reset() {
	c.Position = r3.Vec{Z: c.OverviewDistance()}
	c.Target = r3.Vec{}
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// lerpVec moves a toward b by fraction t.
func lerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
