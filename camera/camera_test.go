package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func vecClose(a, b r3.Vec, eps float64) bool {
	return r3.Norm(r3.Sub(a, b)) < eps
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, DefaultParams())

	if !vecClose(cam.Position, r3.Vec{Z: 30}, 1e-9) {
		t.Errorf("expected camera at (0, 0, 30), got %+v", cam.Position)
	}
	if cam.Target != (r3.Vec{}) {
		t.Errorf("expected target at origin, got %+v", cam.Target)
	}
}

func TestNewPortrait(t *testing.T) {
	cam := New(390, 844, DefaultParams())

	if !vecClose(cam.Position, r3.Vec{Z: 60}, 1e-9) {
		t.Errorf("expected portrait camera at (0, 0, 60), got %+v", cam.Position)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, DefaultParams())

	cam.SetDistance(1) // Below min
	if math.Abs(cam.Distance()-10) > 1e-9 {
		t.Errorf("expected distance clamped to 10, got %f", cam.Distance())
	}

	cam.ZoomBy(100) // Above max
	if math.Abs(cam.Distance()-150) > 1e-9 {
		t.Errorf("expected distance clamped to 150, got %f", cam.Distance())
	}
}

func TestOrbitKeepsDistance(t *testing.T) {
	cam := New(1280, 720, DefaultParams())
	cam.Target = r3.Vec{X: 2, Y: -1, Z: 3}
	cam.Position = r3.Add(cam.Target, r3.Vec{Z: 25})

	for _, d := range []struct{ yaw, pitch float64 }{{0.3, 0}, {0, 0.4}, {-1.2, -0.9}, {2, 3}} {
		cam.Orbit(d.yaw, d.pitch)
		if math.Abs(cam.Distance()-25) > 1e-9 {
			t.Errorf("orbit(%f, %f) changed distance to %f", d.yaw, d.pitch, cam.Distance())
		}
	}

	// Pitch is clamped short of the pole
	up := r3.Sub(cam.Position, cam.Target)
	if math.Abs(up.Y) >= 25 {
		t.Errorf("camera reached the pole: %+v", up)
	}
}

func TestPanMovesTargetWithPosition(t *testing.T) {
	cam := New(1280, 720, DefaultParams())
	before := r3.Sub(cam.Position, cam.Target)

	cam.Pan(40, -20)

	after := r3.Sub(cam.Position, cam.Target)
	if !vecClose(before, after, 1e-9) {
		t.Errorf("pan changed the view offset from %+v to %+v", before, after)
	}
	if cam.Target.X >= 0 {
		t.Errorf("dragging right should move the camera left, target=%+v", cam.Target)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, DefaultParams())
	cam.Position = r3.Vec{X: 5, Y: 5, Z: 5}
	cam.Target = r3.Vec{X: 1}

	cam.Reset()

	if !vecClose(cam.Position, r3.Vec{Z: 30}, 1e-9) || cam.Target != (r3.Vec{}) {
		t.Errorf("expected overview pose, got pos=%+v target=%+v", cam.Position, cam.Target)
	}
}
