package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MinHitRadius keeps small bubbles clickable.
const MinHitRadius = 2.5

// HitRadius returns the pick radius for a node.
func (n NodeView) HitRadius() float64 {
	return math.Max(n.Radius*n.Scale, MinHitRadius)
}

// Pick returns the id of the nearest visible bubble hit by the ray from
// origin along dir. dir need not be normalized.
func Pick(nodes []NodeView, origin, dir r3.Vec) (string, bool) {
	if r3.Norm(dir) == 0 {
		return "", false
	}
	dir = r3.Unit(dir)

	best := math.Inf(1)
	var hit string
	for _, n := range nodes {
		if !n.Visible {
			continue
		}
		t, ok := raySphere(origin, dir, n.Position, n.HitRadius())
		if ok && t < best {
			best = t
			hit = n.ID
		}
	}
	return hit, hit != ""
}

// raySphere returns the distance along a unit ray to the first intersection
// in front of the origin.
func raySphere(origin, dir, center r3.Vec, radius float64) (float64, bool) {
	oc := r3.Sub(origin, center)
	b := r3.Dot(oc, dir)
	c := r3.Norm2(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
