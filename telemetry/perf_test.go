package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseIngest)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseLayout)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.Samples != 5 {
		t.Errorf("expected 5 samples, got %d", stats.Samples)
	}
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.MaxTickDuration < stats.AvgTickDuration {
		t.Errorf("max %v below average %v", stats.MaxTickDuration, stats.AvgTickDuration)
	}
	if _, ok := stats.PhaseAvg[PhaseIngest]; !ok {
		t.Error("expected ingest phase to be tracked")
	}
	if stats.PhaseAvg[PhaseLayout] < stats.PhaseAvg[PhaseIngest] {
		t.Errorf("layout (%v) should take longer than ingest (%v)",
			stats.PhaseAvg[PhaseLayout], stats.PhaseAvg[PhaseIngest])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseLayout)
		pc.EndTick()
	}

	if got := pc.Stats().Samples; got != 5 {
		t.Errorf("expected window capped at 5 samples, got %d", got)
	}
}

func TestPerfCollector_NilSafe(t *testing.T) {
	var pc *PerfCollector
	pc.StartTick()
	pc.StartPhase(PhaseLayout)
	pc.EndTick()
	pc.RecordFrame()
	if s := pc.Stats(); s.Samples != 0 {
		t.Errorf("nil collector should report no samples, got %d", s.Samples)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		PhasePct:        map[string]float64{PhaseLayout: 80, PhaseCamera: 5},
	}
	row := s.ToCSV(120)
	if row.Frame != 120 || row.AvgTickUS != 1500 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.LayoutPct != 80 || row.CameraPct != 5 || row.IngestPct != 0 {
		t.Errorf("unexpected phase columns %+v", row)
	}
}
