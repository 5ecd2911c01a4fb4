package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bubblefield/components"
	"github.com/pthm-cable/bubblefield/palette"
)

// SizeRaw returns the signed metric value that drives bubble size.
func SizeRaw(a *components.Asset, tf components.Timeframe, m components.Metric) float64 {
	switch m {
	case components.MetricMarketCap:
		return a.MarketCapBillions
	case components.MetricVolume:
		return a.Volume24hMillions
	default:
		return a.Change(tf)
	}
}

// SizeValue is the magnitude of SizeRaw.
func SizeValue(a *components.Asset, tf components.Timeframe, m components.Metric) float64 {
	return math.Abs(SizeRaw(a, tf, m))
}

// MaxSizeValue returns the largest of values, floored at 1.
func MaxSizeValue(values []float64) float64 {
	maxValue := 1.0
	for _, v := range values {
		maxValue = math.Max(maxValue, v)
	}
	return maxValue
}

// Radius maps a size value onto [minR, maxR] relative to the largest value in the set.
// maxValue is floored at 1 so a set of tiny values stays small.
func Radius(value, maxValue, minR, maxR float64) float64 {
	if maxValue < 1 {
		maxValue = 1
	}
	return clampFloat(minR+(value/maxValue)*(maxR-minR), minR, maxR)
}

// SizingSystem recomputes Display and Body.Radius for every asset.
// Run it whenever the working set, timeframe or metric changes.
type SizingSystem struct {
	filter    *ecs.Filter3[components.Asset, components.Display, components.Body]
	palette   palette.Mapper
	minRadius float64
	maxRadius float64
	values    []float64
}

// NewSizingSystem creates a sizing system.
func NewSizingSystem(w *ecs.World, pal palette.Mapper, minRadius, maxRadius float64) *SizingSystem {
	return &SizingSystem{
		filter:    ecs.NewFilter3[components.Asset, components.Display, components.Body](w),
		palette:   pal,
		minRadius: minRadius,
		maxRadius: maxRadius,
	}
}

// Update derives display change, color, size and radius. Returns the max size value used.
func (s *SizingSystem) Update(tf components.Timeframe, metric components.Metric) float64 {
	s.values = s.values[:0]

	query := s.filter.Query()
	for query.Next() {
		asset, disp, _ := query.Get()
		change := asset.Change(tf)
		*disp = components.Display{
			Change:    change,
			SizeRaw:   SizeRaw(asset, tf, metric),
			SizeValue: SizeValue(asset, tf, metric),
			Color:     s.palette.For(change),
		}
		s.values = append(s.values, disp.SizeValue)
	}
	maxValue := MaxSizeValue(s.values)

	query = s.filter.Query()
	for query.Next() {
		_, disp, body := query.Get()
		body.Radius = Radius(disp.SizeValue, maxValue, s.minRadius, s.maxRadius)
	}
	return maxValue
}
