package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// Star field defaults.
const (
	StarRadius = 100.0
	StarDepth  = 50.0
	StarCount  = 5000
)

// Star is a single background point.
type Star struct {
	Position   r3.Vec
	Brightness float64
}

// GenerateStars scatters count stars uniformly over directions in a shell
// between radius and radius+depth.
func GenerateStars(rng *rand.Rand, count int, radius, depth float64) []Star {
	stars := make([]Star, count)
	for i := range stars {
		z := rng.Float64()*2 - 1
		phi := rng.Float64() * 2 * math.Pi
		s := math.Sqrt(1 - z*z)
		dir := r3.Vec{X: s * math.Cos(phi), Y: s * math.Sin(phi), Z: z}
		stars[i] = Star{
			Position:   r3.Scale(radius+rng.Float64()*depth, dir),
			Brightness: 0.4 + rng.Float64()*0.6,
		}
	}
	return stars
}

// StarField draws a fixed star shell. It rotates slowly around Y.
type StarField struct {
	stars  []Star
	points []rl.Vector3
	colors []rl.Color
	spin   float64 // radians per second
}

// NewStarField creates a star field with the default shell.
func NewStarField(seed int64) *StarField {
	stars := GenerateStars(rand.New(rand.NewSource(seed)), StarCount, StarRadius, StarDepth)
	f := &StarField{
		stars:  stars,
		points: make([]rl.Vector3, len(stars)),
		colors: make([]rl.Color, len(stars)),
		spin:   0.01,
	}
	for i, s := range stars {
		v := uint8(255 * s.Brightness)
		f.colors[i] = rl.Color{R: v, G: v, B: v, A: 255}
	}
	return f
}

// Draw renders the stars. Must be called inside BeginMode3D.
func (f *StarField) Draw(clock float64) {
	angle := clock * f.spin
	sin, cos := math.Sincos(angle)
	for i, s := range f.stars {
		p := s.Position
		f.points[i] = rl.Vector3{
			X: float32(p.X*cos + p.Z*sin),
			Y: float32(p.Y),
			Z: float32(-p.X*sin + p.Z*cos),
		}
		rl.DrawPoint3D(f.points[i], f.colors[i])
	}
}
