package components

// Body holds the physical extent of a bubble.
// Radius is derived from the active metric and always lies in [MinRadius, MaxRadius].
type Body struct {
	Radius float64
}

// Radius bounds used when no configuration overrides them.
const (
	MinRadius = 1.0
	MaxRadius = 8.0
)
