package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// LayoutStats holds aggregated layout statistics for one window.
type LayoutStats struct {
	Frame      int64   `csv:"frame"`
	SimTimeSec float64 `csv:"sim_time"`
	Frames     int     `csv:"frames"`

	Entities int     `csv:"entities"`
	Settled  bool    `csv:"settled"`
	Elapsed  float64 `csv:"settle_clock"`

	// Motion, sampled at window end except the energy mean
	MeanKinetic float64 `csv:"mean_kinetic"`
	SpeedP50    float64 `csv:"speed_p50"`
	SpeedP90    float64 `csv:"speed_p90"`
	SpeedMax    float64 `csv:"speed_max"`

	// Sphere intersections at window end and the window peak
	Overlaps    int `csv:"overlaps"`
	MaxOverlaps int `csv:"max_overlaps"`

	HasSelection bool `csv:"has_selection"`
	Locked       bool `csv:"locked"`
	Interacting  bool `csv:"interacting"`
}

// SpeedStats returns p50, p90 and max of the speeds. The slice is sorted in place.
func SpeedStats(speeds []float64) (p50, p90, max float64) {
	if len(speeds) == 0 {
		return 0, 0, 0
	}
	sort.Float64s(speeds)
	p50 = stat.Quantile(0.5, stat.Empirical, speeds, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, speeds, nil)
	return p50, p90, speeds[len(speeds)-1]
}

// KineticEnergy returns the mean of |v|²/2 over the velocities.
func KineticEnergy(vels []r3.Vec) float64 {
	if len(vels) == 0 {
		return 0
	}
	e := make([]float64, len(vels))
	for i, v := range vels {
		e[i] = 0.5 * r3.Norm2(v)
	}
	return stat.Mean(e, nil)
}

// CountOverlaps counts pairs of spheres that intersect.
func CountOverlaps(pos []r3.Vec, radii []float64) int {
	n := 0
	for i := range pos {
		for j := i + 1; j < len(pos); j++ {
			if r3.Norm(r3.Sub(pos[i], pos[j])) < radii[i]+radii[j] {
				n++
			}
		}
	}
	return n
}

// LogValue implements slog.LogValuer for structured logging.
func (s LayoutStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.Frame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("entities", s.Entities),
		slog.Bool("settled", s.Settled),
		slog.Float64("settle_clock", s.Elapsed),
		slog.Float64("mean_kinetic", s.MeanKinetic),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Int("overlaps", s.Overlaps),
		slog.Int("max_overlaps", s.MaxOverlaps),
		slog.Bool("has_selection", s.HasSelection),
		slog.Bool("locked", s.Locked),
	)
}

// LogStats logs the window stats using slog.
func (s LayoutStats) LogStats() {
	slog.Info("layout",
		"frame", s.Frame,
		"sim_time", s.SimTimeSec,
		"entities", s.Entities,
		"settled", s.Settled,
		"kinetic", s.MeanKinetic,
		"speed_p90", s.SpeedP90,
		"overlaps", s.Overlaps,
	)
}
