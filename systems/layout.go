// Package systems contains ECS systems for the bubble scene.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubblefield/components"
	"github.com/pthm-cable/bubblefield/config"
)

// LayoutParams holds the force-model constants.
type LayoutParams struct {
	Substeps          int
	Spring            float64
	Padding           float64
	Repulsion         float64
	Damping           float64
	StabilizationTime float64
}

// DefaultLayoutParams returns the stock force constants.
func DefaultLayoutParams() LayoutParams {
	return LayoutParams{
		Substeps:          5,
		Spring:            0.01,
		Padding:           8,
		Repulsion:         2,
		Damping:           0.98,
		StabilizationTime: 45,
	}
}

// LayoutParamsFromConfig builds params from the layout config section.
func LayoutParamsFromConfig(cfg config.LayoutConfig) LayoutParams {
	return LayoutParams{
		Substeps:          cfg.Substeps,
		Spring:            cfg.Spring,
		Padding:           cfg.Padding,
		Repulsion:         cfg.Repulsion,
		Damping:           cfg.Damping,
		StabilizationTime: cfg.StabilizationTime,
	}
}

// layoutNode is a snapshot of one entity taken before integration.
type layoutNode struct {
	Pos    r3.Vec
	Vel    r3.Vec
	Radius float64
}

// LayoutSystem integrates the centering spring and pairwise repulsion until
// the stabilization time has elapsed, then holds every entity still.
type LayoutSystem struct {
	filter  *ecs.Filter3[components.Position, components.Velocity, components.Body]
	params  LayoutParams
	elapsed float64
	nodes   []layoutNode
	grid    *SpatialGrid
}

// NewLayoutSystem creates a layout system over all positioned bodies in w.
func NewLayoutSystem(w *ecs.World, params LayoutParams) *LayoutSystem {
	if params.Substeps < 1 {
		params.Substeps = 1
	}
	return &LayoutSystem{
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Body](w),
		params: params,
		grid:   NewSpatialGrid(1),
	}
}

// Update advances the settle clock by dt, then either integrates one frame
// or, once settled, zeroes all velocities.
func (s *LayoutSystem) Update(dt float64) {
	s.elapsed += dt

	if s.Settled() {
		query := s.filter.Query()
		for query.Next() {
			_, vel, _ := query.Get()
			*vel = components.Velocity{}
		}
		return
	}

	s.nodes = s.nodes[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		s.nodes = append(s.nodes, layoutNode{Pos: pos.Vec(), Vel: vel.Vec(), Radius: body.Radius})
	}

	stepNodes(s.nodes, dt, s.params, s.grid)

	// Same archetype, same order: write back by index.
	i := 0
	query = s.filter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()
		*pos = components.Position(s.nodes[i].Pos)
		*vel = components.Velocity(s.nodes[i].Vel)
		i++
	}
}

// Reheat restarts the settle clock so newly added entities get placed.
func (s *LayoutSystem) Reheat() {
	s.elapsed = 0
}

// Elapsed returns the accumulated settle-clock time in seconds.
func (s *LayoutSystem) Elapsed() float64 {
	return s.elapsed
}

// Settled reports whether the stabilization time has been reached.
func (s *LayoutSystem) Settled() bool {
	return s.elapsed >= s.params.StabilizationTime
}

// Params returns the force constants in use.
func (s *LayoutSystem) Params() LayoutParams {
	return s.params
}

// stepNodes integrates one frame of dt split into p.Substeps substeps.
// Pair forces read positions from the start of the substep. With a grid,
// only pairs in neighboring cells are tested; candidates are visited in
// index order so the result matches a full scan.
func stepNodes(nodes []layoutNode, dt float64, p LayoutParams, grid *SpatialGrid) {
	substeps := p.Substeps
	if substeps < 1 {
		substeps = 1
	}
	sub := dt / float64(substeps)

	var maxRadius float64
	for i := range nodes {
		maxRadius = max(maxRadius, nodes[i].Radius)
	}

	all := make([]int, len(nodes))
	for i := range all {
		all[i] = i
	}
	var buf, candidates []int

	for step := 0; step < substeps; step++ {
		if grid != nil {
			grid.Reset(2*maxRadius + p.Padding)
			for i := range nodes {
				grid.Insert(i, nodes[i].Pos)
			}
		}

		for a := range nodes {
			na := &nodes[a]
			na.Vel = r3.Add(na.Vel, r3.Scale(-p.Spring*sub, na.Pos))

			candidates = all
			if grid != nil {
				buf = grid.QueryInto(buf[:0], na.Pos, na.Radius+maxRadius+p.Padding)
				candidates = buf
			}

			for _, b := range candidates {
				if a == b {
					continue
				}
				nb := &nodes[b]
				delta := r3.Sub(na.Pos, nb.Pos)
				d := r3.Norm(delta)
				minDistance := na.Radius + nb.Radius + p.Padding
				if d >= minDistance {
					continue
				}

				var dir r3.Vec
				if d > 0 {
					dir = r3.Scale(1/d, delta)
				} else {
					// Coincident: split along X by slice order.
					dir = r3.Vec{X: 1}
					if a < b {
						dir.X = -1
					}
				}
				strength := p.Repulsion * (1 - d/minDistance)
				na.Vel = r3.Add(na.Vel, r3.Scale(strength*sub, dir))
			}
		}

		for i := range nodes {
			n := &nodes[i]
			n.Vel = r3.Scale(p.Damping, n.Vel)
			n.Pos = r3.Add(n.Pos, r3.Scale(sub, n.Vel))
		}
	}
}

// RandomPosition returns a point uniform in a cube of edge extent centered at the origin.
func RandomPosition(rng *rand.Rand, extent float64) components.Position {
	return components.Position{
		X: (rng.Float64() - 0.5) * extent,
		Y: (rng.Float64() - 0.5) * extent,
		Z: (rng.Float64() - 0.5) * extent,
	}
}
