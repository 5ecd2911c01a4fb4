package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubblefield/components"
)

func hasNaN(v r3.Vec) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

func TestStepNodes_SingleNodeSpringOnly(t *testing.T) {
	p := DefaultLayoutParams()
	nodes := []layoutNode{{Pos: r3.Vec{X: 10}, Radius: 8}}

	stepNodes(nodes, 1.0/60, p, nil)

	// Hand-rolled integration of the spring alone
	sub := (1.0 / 60) / 5
	x, v := 10.0, 0.0
	for i := 0; i < 5; i++ {
		v += -p.Spring * x * sub
		v *= p.Damping
		x += v * sub
	}
	if math.Abs(nodes[0].Pos.X-x) > 1e-12 {
		t.Errorf("expected x=%.12f, got %.12f", x, nodes[0].Pos.X)
	}
	if nodes[0].Pos.Y != 0 || nodes[0].Pos.Z != 0 {
		t.Errorf("spring moved node off axis: %+v", nodes[0].Pos)
	}
	if nodes[0].Pos.X >= 10 {
		t.Errorf("node should move toward origin, got x=%f", nodes[0].Pos.X)
	}
}

func TestStepNodes_EmptyAndZeroDT(t *testing.T) {
	p := DefaultLayoutParams()
	stepNodes(nil, 1.0/60, p, nil)

	nodes := []layoutNode{{Pos: r3.Vec{X: 1, Y: 2, Z: 3}, Radius: 1}}
	stepNodes(nodes, 0, p, nil)
	if nodes[0].Pos != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Errorf("zero dt should not move node, got %+v", nodes[0].Pos)
	}
}

func TestStepNodes_CoincidentSeparates(t *testing.T) {
	p := DefaultLayoutParams()
	nodes := []layoutNode{
		{Pos: r3.Vec{}, Radius: 1},
		{Pos: r3.Vec{}, Radius: 1},
	}

	for i := 0; i < 60; i++ {
		stepNodes(nodes, 1.0/60, p, nil)
	}

	for i, n := range nodes {
		if hasNaN(n.Pos) || hasNaN(n.Vel) {
			t.Fatalf("node %d has NaN state: pos=%+v vel=%+v", i, n.Pos, n.Vel)
		}
	}
	d := r3.Norm(r3.Sub(nodes[0].Pos, nodes[1].Pos))
	if d <= 0 {
		t.Errorf("coincident nodes did not separate, d=%f", d)
	}
	if nodes[0].Pos.X >= nodes[1].Pos.X {
		t.Errorf("expected first node on -X side, got %f vs %f", nodes[0].Pos.X, nodes[1].Pos.X)
	}
}

func TestStepNodes_OverlappingPairSpreads(t *testing.T) {
	p := DefaultLayoutParams()
	nodes := []layoutNode{
		{Pos: r3.Vec{X: -0.5}, Radius: 1},
		{Pos: r3.Vec{X: 0.5}, Radius: 1},
	}

	// Simulate the full settling window at 60 fps
	for i := 0; i < 45*60; i++ {
		stepNodes(nodes, 1.0/60, p, nil)
	}

	d := r3.Norm(r3.Sub(nodes[0].Pos, nodes[1].Pos))
	if d < 5 {
		t.Errorf("expected pair to spread toward min distance 10, got d=%f", d)
	}
	if d > 10 {
		t.Errorf("pair overshot min distance, d=%f", d)
	}
	// Symmetric start stays symmetric about the origin
	if math.Abs(nodes[0].Pos.X+nodes[1].Pos.X) > 1e-9 {
		t.Errorf("expected symmetric layout, got %f and %f", nodes[0].Pos.X, nodes[1].Pos.X)
	}
}

func TestStepNodes_DistantPairIgnored(t *testing.T) {
	p := DefaultLayoutParams()
	p.Spring = 0
	nodes := []layoutNode{
		{Pos: r3.Vec{X: -20}, Radius: 1},
		{Pos: r3.Vec{X: 20}, Radius: 1},
	}
	stepNodes(nodes, 1.0/60, p, nil)
	for i, n := range nodes {
		if n.Vel != (r3.Vec{}) {
			t.Errorf("node %d should have no velocity, got %+v", i, n.Vel)
		}
	}
}

func newLayoutWorld(t *testing.T, positions []components.Position) (*ecs.World, []ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Position, components.Velocity, components.Body](w)
	entities := make([]ecs.Entity, len(positions))
	for i := range positions {
		pos := positions[i]
		vel := components.Velocity{X: 1, Y: 1, Z: 1}
		body := components.Body{Radius: 2}
		entities[i] = mapper.NewEntity(&pos, &vel, &body)
	}
	return w, entities
}

func TestLayoutSystem_FrozenAfterStabilization(t *testing.T) {
	start := []components.Position{{X: 1}, {X: 2}, {Y: -3}}
	w, entities := newLayoutWorld(t, start)
	layout := NewLayoutSystem(w, DefaultLayoutParams())

	layout.Update(50)
	if !layout.Settled() {
		t.Fatal("expected layout to be settled after 50s")
	}

	posMap := ecs.NewMap1[components.Position](w)
	velMap := ecs.NewMap1[components.Velocity](w)
	for frame := 0; frame < 3; frame++ {
		for i, e := range entities {
			if got := *posMap.Get(e); got != start[i] {
				t.Errorf("frame %d: entity %d moved from %+v to %+v", frame, i, start[i], got)
			}
			if got := *velMap.Get(e); got != (components.Velocity{}) {
				t.Errorf("frame %d: entity %d velocity not zero: %+v", frame, i, got)
			}
		}
		layout.Update(1.0 / 60)
	}
}

func TestLayoutSystem_IntegratesWhileSettling(t *testing.T) {
	w, entities := newLayoutWorld(t, []components.Position{{X: 1}, {X: 2}})
	layout := NewLayoutSystem(w, DefaultLayoutParams())

	layout.Update(1.0 / 60)
	if layout.Settled() {
		t.Fatal("layout should still be settling")
	}

	posMap := ecs.NewMap1[components.Position](w)
	if got := posMap.Get(entities[0]); got.X == 1 && got.Y == 0 && got.Z == 0 {
		t.Error("expected first entity to move")
	}
}

func TestLayoutSystem_Reheat(t *testing.T) {
	w, _ := newLayoutWorld(t, []components.Position{{X: 1}})
	layout := NewLayoutSystem(w, DefaultLayoutParams())

	layout.Update(45)
	if !layout.Settled() {
		t.Fatal("expected settled at exactly the stabilization time")
	}
	layout.Reheat()
	if layout.Settled() || layout.Elapsed() != 0 {
		t.Errorf("reheat should restart the clock, elapsed=%f", layout.Elapsed())
	}
}

func TestRandomPosition_WithinCube(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := RandomPosition(rng, 15)
		for _, c := range []float64{p.X, p.Y, p.Z} {
			if c < -7.5 || c >= 7.5 {
				t.Fatalf("coordinate %f outside [-7.5, 7.5)", c)
			}
		}
	}
}
