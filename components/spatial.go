package components

import "gonum.org/v1/gonum/spatial/r3"

// Position represents an entity's world position.
type Position r3.Vec

// Velocity represents an entity's velocity in world units per second.
type Velocity r3.Vec

// Vec returns the position as an r3 vector.
func (p Position) Vec() r3.Vec { return r3.Vec(p) }

// Vec returns the velocity as an r3 vector.
func (v Velocity) Vec() r3.Vec { return r3.Vec(v) }
