package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one scene tick.
const (
	PhaseIngest     = "ingest"
	PhaseLayout     = "layout"
	PhaseCamera     = "camera"
	PhaseAppearance = "appearance"
	PhaseTelemetry  = "telemetry"
)

// Phases lists every phase in tick order.
var Phases = []string{PhaseIngest, PhaseLayout, PhaseCamera, PhaseAppearance, PhaseTelemetry}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks tick timing over a rolling window of ticks.
// A nil collector ignores every call.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	lastPhase  string

	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		current:    make(map[string]time.Duration),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.tickStart = time.Now()
	p.current = make(map[string]time.Duration, len(Phases))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick closes the running phase and records the sample.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.samples[p.writeIndex] = PerfSample{TickDuration: now.Sub(p.tickStart), Phases: p.current}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records wall-clock frame timing in graphics mode.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated timing over the window.
type PerfStats struct {
	Samples int

	AvgTickDuration time.Duration
	P95TickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of average tick time, percent

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p == nil {
		return PerfStats{}
	}
	stats := PerfStats{
		Samples:       p.sampleCount,
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		stats.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return stats
	}

	ticks := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		ticks[i] = float64(s.TickDuration)
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}
	sort.Float64s(ticks)

	avg := stat.Mean(ticks, nil)
	stats.AvgTickDuration = time.Duration(avg)
	stats.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil))
	stats.MaxTickDuration = time.Duration(ticks[len(ticks)-1])

	for phase, sum := range phaseSum {
		mean := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[phase] = mean
		if avg > 0 {
			stats.PhasePct[phase] = float64(mean) / avg * 100
		}
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		attrs = append(attrs, slog.Float64(phase+"_pct", s.PhasePct[phase]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat row for perf.csv.
type PerfStatsCSV struct {
	Frame         int64   `csv:"frame"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	P95TickUS     int64   `csv:"p95_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	FPS           float64 `csv:"fps"`
	IngestPct     float64 `csv:"ingest_pct"`
	LayoutPct     float64 `csv:"layout_pct"`
	CameraPct     float64 `csv:"camera_pct"`
	AppearancePct float64 `csv:"appearance_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for frame.
func (s PerfStats) ToCSV(frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:         frame,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		P95TickUS:     s.P95TickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		FPS:           s.FPS,
		IngestPct:     s.PhasePct[PhaseIngest],
		LayoutPct:     s.PhasePct[PhaseLayout],
		CameraPct:     s.PhasePct[PhaseCamera],
		AppearancePct: s.PhasePct[PhaseAppearance],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
