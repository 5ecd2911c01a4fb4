package telemetry

// FrameSample is the layout state observed at the end of one tick.
type FrameSample struct {
	Entities     int
	Elapsed      float64 // layout settle clock
	Settled      bool
	Speeds       []float64
	Kinetic      float64 // mean kinetic energy this frame
	Overlaps     int
	HasSelection bool
	Locked       bool
	Interacting  bool
}

// Collector accumulates frame samples into windows of simulated time.
type Collector struct {
	windowSec float64

	frame      int64
	simTime    float64
	windowTime float64

	frames      int
	kineticSum  float64
	maxOverlaps int
	last        FrameSample
}

// NewCollector creates a collector that closes a window every windowSec seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 1
	}
	return &Collector{windowSec: windowSec}
}

// Record adds one tick of dt seconds.
func (c *Collector) Record(dt float64, s FrameSample) {
	c.frame++
	c.simTime += dt
	c.windowTime += dt
	c.frames++
	c.kineticSum += s.Kinetic
	if s.Overlaps > c.maxOverlaps {
		c.maxOverlaps = s.Overlaps
	}
	speeds := append(c.last.Speeds[:0], s.Speeds...)
	c.last = s
	c.last.Speeds = speeds
}

// ShouldFlush reports whether the current window is full.
func (c *Collector) ShouldFlush() bool {
	return c.windowTime >= c.windowSec
}

// Frame returns the number of recorded ticks.
func (c *Collector) Frame() int64 {
	return c.frame
}

// Flush produces stats for the current window and starts a new one.
func (c *Collector) Flush() LayoutStats {
	p50, p90, maxSpeed := SpeedStats(c.last.Speeds)

	var meanKinetic float64
	if c.frames > 0 {
		meanKinetic = c.kineticSum / float64(c.frames)
	}

	stats := LayoutStats{
		Frame:        c.frame,
		SimTimeSec:   c.simTime,
		Frames:       c.frames,
		Entities:     c.last.Entities,
		Settled:      c.last.Settled,
		Elapsed:      c.last.Elapsed,
		MeanKinetic:  meanKinetic,
		SpeedP50:     p50,
		SpeedP90:     p90,
		SpeedMax:     maxSpeed,
		Overlaps:     c.last.Overlaps,
		MaxOverlaps:  c.maxOverlaps,
		HasSelection: c.last.HasSelection,
		Locked:       c.last.Locked,
		Interacting:  c.last.Interacting,
	}

	c.windowTime = 0
	c.frames = 0
	c.kineticSum = 0
	c.maxOverlaps = 0
	return stats
}
