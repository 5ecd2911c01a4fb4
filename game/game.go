// Package game wires the scene, renderer and UI into the frame loop.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubblefield/components"
	"github.com/pthm-cable/bubblefield/config"
	"github.com/pthm-cable/bubblefield/marketdata"
	"github.com/pthm-cable/bubblefield/renderer"
	"github.com/pthm-cable/bubblefield/scene"
	"github.com/pthm-cable/bubblefield/telemetry"
	"github.com/pthm-cable/bubblefield/ui"
)

// DT is the fixed headless tick in seconds.
const DT = 1.0 / 60.0

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool

	// Initial selectors and search, applied once the page loads
	Search    string
	Metric    components.Metric
	Timeframe components.Timeframe

	// Market data source; nil uses the configured HTTP client
	Source scene.Source
}

// Game holds the complete visualizer state.
type Game struct {
	cfg   *config.Config
	scene *scene.Scene

	headless      bool
	screenWidth   float32
	screenHeight  float32
	tick          int32
	pendingSearch string
	searchIssued  bool

	// Rendering (nil in headless mode)
	bubbles  *renderer.BubbleRenderer
	uiRender *ui.Renderer
	controls *ui.ControlPanel
	tooltip  *ui.Tooltip
	perf     *ui.PerfPanel
	showPerf bool

	// Pointer state
	drag dragState

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
}

// NewGameWithOptions creates a game and starts loading market data.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	source := opts.Source
	if source == nil {
		source = marketdata.NewClient(cfg.Market)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:           cfg,
		headless:      opts.Headless,
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
		pendingSearch: opts.Search,
		collector:     telemetry.NewCollector(statsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
	}

	g.scene = scene.New(cfg, scene.Options{
		Source:    source,
		Seed:      opts.Seed,
		Collector: g.collector,
		Perf:      g.perfCollector,
	})
	g.scene.SetMetric(opts.Metric)
	g.scene.SetTimeframe(opts.Timeframe)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.bubbles = renderer.NewBubbleRenderer(opts.Seed)
		g.uiRender = ui.NewRenderer()
		g.controls = ui.NewControlPanel(g.screenWidth, g.screenHeight)
		g.tooltip = ui.NewTooltip()
		g.perf = ui.NewPerfPanel(telemetry.NewPhaseRegistry())
		g.perf.SetPosition(int32(g.screenWidth)-230, 10)
		ui.ApplyGuiStyle(g.uiRender.Theme)
		if w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()); w > 0 && h > 0 {
			g.resize(w, h)
		}
	}

	g.scene.Load()
	slog.Info("visualizer started",
		"seed", opts.Seed,
		"headless", opts.Headless,
		"metric", opts.Metric.String(),
		"timeframe", opts.Timeframe.String(),
	)
	return g
}

// Update advances one rendered frame.
func (g *Game) Update() {
	g.handleInput()
	g.step(float64(rl.GetFrameTime()))
	g.perfCollector.RecordFrame()
}

// UpdateHeadless advances one fixed tick without raylib.
func (g *Game) UpdateHeadless() {
	g.step(DT)
}

func (g *Game) step(dt float64) {
	g.scene.Tick(dt)
	g.tick++
	g.issueInitialSearch()
	g.flushTelemetry()
}

// issueInitialSearch runs the startup search once the listing has arrived.
func (g *Game) issueInitialSearch() {
	if g.searchIssued || g.pendingSearch == "" || g.scene.PageLoading() {
		return
	}
	g.searchIssued = true
	g.scene.Search(g.pendingSearch)
}

// Idle reports whether a headless run has nothing left to wait for: the
// listing and any startup search have been applied and the layout settled.
func (g *Game) Idle() bool {
	if g.pendingSearch != "" && !g.searchIssued {
		return false
	}
	sc := g.scene
	return !sc.PageLoading() && !sc.SearchLoading() && sc.Layout().Settled()
}

// Scene returns the scene.
func (g *Game) Scene() *scene.Scene { return g.scene }

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 { return g.tick }

// Unload waits for and applies outstanding fetches, writes the final asset table and closes outputs.
func (g *Game) Unload() {
	g.scene.AwaitFetches()
	g.scene.ApplyFetches()
	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.WriteAssets(g.scene.AssetRows()); err != nil {
		slog.Error("failed to write assets", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output manager", "error", err)
	}
}
