package telemetry

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestSpeedStats(t *testing.T) {
	tests := []struct {
		name    string
		speeds  []float64
		wantMax float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3}, 3},
		{"unsorted", []float64{5, 1, 9, 3, 7}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p50, p90, max := SpeedStats(tt.speeds)
			if max != tt.wantMax {
				t.Errorf("max = %v, want %v", max, tt.wantMax)
			}
			if p50 > p90 || p90 > max {
				t.Errorf("quantiles out of order: p50=%v p90=%v max=%v", p50, p90, max)
			}
		})
	}

	p50, p90, _ := SpeedStats([]float64{2, 2, 2, 2})
	if p50 != 2 || p90 != 2 {
		t.Errorf("constant speeds: p50=%v p90=%v, want 2", p50, p90)
	}
}

func TestKineticEnergy(t *testing.T) {
	got := KineticEnergy([]r3.Vec{{X: 2}, {Y: 0}})
	// (0.5*4 + 0) / 2
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("KineticEnergy = %v, want 1", got)
	}
	if KineticEnergy(nil) != 0 {
		t.Error("expected zero for empty input")
	}
}

func TestCountOverlaps(t *testing.T) {
	pos := []r3.Vec{{X: 0}, {X: 1.5}, {X: 10}}
	radii := []float64{1, 1, 1}
	if got := CountOverlaps(pos, radii); got != 1 {
		t.Errorf("CountOverlaps = %d, want 1", got)
	}
}

func TestCollector_Windows(t *testing.T) {
	c := NewCollector(1.0)

	for i := 0; i < 59; i++ {
		c.Record(1.0/60, FrameSample{Entities: 3, Kinetic: 2, Overlaps: i % 4, Speeds: []float64{1, 2, 3}})
	}
	if c.ShouldFlush() {
		t.Fatal("window should not be full after 59 frames")
	}
	c.Record(1.0/60+1e-9, FrameSample{Entities: 3, Kinetic: 2, Overlaps: 1, Speeds: []float64{1, 2, 3}, Locked: true})
	if !c.ShouldFlush() {
		t.Fatal("window should be full after 60 frames")
	}

	s := c.Flush()
	if s.Frames != 60 || s.Frame != 60 {
		t.Errorf("frames=%d frame=%d, want 60", s.Frames, s.Frame)
	}
	if math.Abs(s.MeanKinetic-2) > 1e-12 {
		t.Errorf("mean kinetic = %v, want 2", s.MeanKinetic)
	}
	if s.MaxOverlaps != 3 || s.Overlaps != 1 {
		t.Errorf("overlaps=%d max=%d, want 1 and 3", s.Overlaps, s.MaxOverlaps)
	}
	if s.SpeedMax != 3 || !s.Locked {
		t.Errorf("unexpected last-sample fields %+v", s)
	}
	if c.ShouldFlush() {
		t.Error("flush should start a new window")
	}
}

func TestWriteAssets(t *testing.T) {
	var buf bytes.Buffer
	err := WriteAssets(&buf, []AssetRow{{ID: "bitcoin", Symbol: "btc", Radius: 8, Color: "#6EBB6E"}})
	if err != nil {
		t.Fatalf("WriteAssets: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,symbol,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "bitcoin,btc,") {
		t.Errorf("unexpected row %q", lines[1])
	}
}
