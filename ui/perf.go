package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubblefield/telemetry"
)

// PerfPanel renders per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	registry *telemetry.PhaseRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(registry *telemetry.PhaseRegistry) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: registry,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	lh := r.Theme.LineHeight
	phases := p.registry.All()

	width := int32(220)
	height := int32(len(phases)+2)*lh + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, p.y+r.Theme.Padding, "Tick Performance")
	rl.DrawText(fmt.Sprintf("avg %s  p95 %s  fps %.0f",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.P95TickDuration.Round(time.Microsecond),
		stats.FPS), x, y, r.Theme.FontSize, rl.Yellow)
	y += lh

	for _, info := range phases {
		pct := stats.PhasePct[info.ID]
		color := r.Theme.LabelColor
		if pct > 50 {
			color = rl.Red
		}
		rl.DrawText(fmt.Sprintf("%-10s %5.1f%%", info.Name, pct), x, y, r.Theme.FontSize, color)
		y += lh
	}
}
