// Package scene holds the visualizer state: the working set of assets, the
// selectors, selection and hover, loading flags and notices. It owns the ECS
// world and drives the layout, camera and appearance systems once per tick.
package scene

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubblefield/camera"
	"github.com/pthm-cable/bubblefield/components"
	"github.com/pthm-cable/bubblefield/config"
	"github.com/pthm-cable/bubblefield/palette"
	"github.com/pthm-cable/bubblefield/systems"
	"github.com/pthm-cable/bubblefield/telemetry"
)

// Source provides market data. *marketdata.Client satisfies it.
type Source interface {
	Top(ctx context.Context) ([]components.Asset, error)
	Lookup(ctx context.Context, id string) (components.Asset, error)
}

// Options configures a Scene.
type Options struct {
	Source Source
	Seed   int64

	// Optional telemetry; nil disables.
	Collector *telemetry.Collector
	Perf      *telemetry.PerfCollector

	// Context for fetches. Defaults to context.Background().
	Context context.Context
}

// NodeView is a read-only snapshot of one bubble for presentation.
type NodeView struct {
	ID     string
	Symbol string
	Asset  components.Asset

	Position r3.Vec // layout position plus display bob
	Radius   float64
	Color    palette.Color

	Scale    float64
	Opacity  float64
	Emissive float64

	Change  float64 // active-timeframe change, percent
	SizeRaw float64
	Metric  components.Metric

	Selected bool
	Hovered  bool
	Visible  bool // false while another bubble is selected
}

// Scene is the single owner of visualizer state. All methods except the
// fetch goroutines run on the frame thread.
type Scene struct {
	cfg *config.Config
	ctx context.Context
	rng *rand.Rand

	world   *ecs.World
	mapper  *ecs.Map6[components.Asset, components.Position, components.Velocity, components.Body, components.Display, components.Appearance]
	bodies  *ecs.Filter3[components.Position, components.Velocity, components.Body]
	assets  *ecs.Map1[components.Asset]
	posMap  *ecs.Map1[components.Position]
	bodyMap *ecs.Map1[components.Body]
	dispMap *ecs.Map1[components.Display]
	appMap  *ecs.Map1[components.Appearance]

	layout     *systems.LayoutSystem
	sizing     *systems.SizingSystem
	appearance *systems.AppearanceSystem
	camera     *camera.Controller

	source    Source
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	// Working set in insertion order, indexed by id
	order []ecs.Entity
	index map[string]ecs.Entity

	timeframe components.Timeframe
	metric    components.Metric

	pageLoading     bool
	pendingSearches int
	notice          string

	hovered      string
	hoverRelease float64 // seconds until hover drops; <= 0 means none pending

	clock float64

	// Fetch goroutines post here; drained in Tick
	mu      sync.Mutex
	inbox   []fetchResult
	fetches sync.WaitGroup
}

// New creates an empty scene.
func New(cfg *config.Config, opts Options) *Scene {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	world := ecs.NewWorld()
	camParams := camera.ParamsFromConfig(cfg.Camera)
	cam := camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), camParams)

	s := &Scene{
		cfg:   cfg,
		ctx:   ctx,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		world: world,
		mapper: ecs.NewMap6[
			components.Asset,
			components.Position,
			components.Velocity,
			components.Body,
			components.Display,
			components.Appearance,
		](world),
		bodies:  ecs.NewFilter3[components.Position, components.Velocity, components.Body](world),
		assets:  ecs.NewMap1[components.Asset](world),
		posMap:  ecs.NewMap1[components.Position](world),
		bodyMap: ecs.NewMap1[components.Body](world),
		dispMap: ecs.NewMap1[components.Display](world),
		appMap:  ecs.NewMap1[components.Appearance](world),

		layout:     systems.NewLayoutSystem(world, systems.LayoutParamsFromConfig(cfg.Layout)),
		sizing:     systems.NewSizingSystem(world, cfg.Derived.Palette, cfg.Sizing.MinRadius, cfg.Sizing.MaxRadius),
		appearance: systems.NewAppearanceSystem(world, systems.AppearanceParamsFromConfig(cfg.Appearance)),
		camera:     camera.NewController(cam, camParams),

		source:    opts.Source,
		collector: opts.Collector,
		perf:      opts.Perf,

		index:     make(map[string]ecs.Entity),
		timeframe: components.TimeframeDay,
		metric:    components.MetricPerformance,
	}
	return s
}

// Tick advances the scene by dt seconds: apply fetched data, integrate the
// layout, move the camera, animate appearance and record telemetry.
func (s *Scene) Tick(dt float64) {
	// The settle clock sees the clamped dt, so it lags wall time on slow frames.
	if limit := s.cfg.Layout.MaxFrameDT; limit > 0 && dt > limit {
		dt = limit
	}

	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseIngest)
	s.drainInbox()

	s.perf.StartPhase(telemetry.PhaseLayout)
	s.layout.Update(dt)

	s.perf.StartPhase(telemetry.PhaseCamera)
	s.updateHover(dt)
	s.camera.Update(s.focus())

	s.perf.StartPhase(telemetry.PhaseAppearance)
	s.appearance.Update(s.highlight())
	s.clock += dt

	if s.collector != nil {
		s.perf.StartPhase(telemetry.PhaseTelemetry)
		s.collector.Record(dt, s.sample())
	}

	s.perf.EndTick()
}

// addAssets appends assets that are not yet in the working set and
// recomputes sizing. Returns the number added.
func (s *Scene) addAssets(assets []components.Asset) int {
	added := 0
	for i := range assets {
		a := assets[i]
		if a.ID == "" {
			continue
		}
		if _, ok := s.index[a.ID]; ok {
			continue
		}
		pos := systems.RandomPosition(s.rng, s.cfg.Layout.SpawnExtent)
		vel := components.Velocity{}
		body := components.Body{Radius: s.cfg.Sizing.MinRadius}
		disp := components.Display{}
		app := systems.AppearanceParamsFromConfig(s.cfg.Appearance).InitialAppearance()

		e := s.mapper.NewEntity(&a, &pos, &vel, &body, &disp, &app)
		s.order = append(s.order, e)
		s.index[a.ID] = e
		added++
	}

	if added > 0 {
		s.resize()
		if s.cfg.Layout.ReheatOnChange {
			s.layout.Reheat()
		}
		slog.Info("assets added", "added", added, "total", len(s.order))
	}
	return added
}

// resize recomputes derived radius and color for the active selectors.
func (s *Scene) resize() {
	s.sizing.Update(s.timeframe, s.metric)
}

// focus returns the selected bubble for the camera, or nil.
func (s *Scene) focus() *camera.Focus {
	id, ok := s.camera.Selected()
	if !ok {
		return nil
	}
	e, ok := s.index[id]
	if !ok {
		return nil
	}
	return &camera.Focus{
		Position: s.posMap.Get(e).Vec(),
		Radius:   s.bodyMap.Get(e).Radius,
	}
}

func (s *Scene) highlight() systems.Highlight {
	var h systems.Highlight
	if id, ok := s.camera.Selected(); ok {
		h.Selected, h.HasSelected = s.index[id]
	}
	if s.hovered != "" {
		h.Hovered, h.HasHovered = s.index[s.hovered]
	}
	return h
}

func (s *Scene) sample() telemetry.FrameSample {
	n := len(s.order)
	pos := make([]r3.Vec, 0, n)
	vels := make([]r3.Vec, 0, n)
	radii := make([]float64, 0, n)
	speeds := make([]float64, 0, n)

	query := s.bodies.Query()
	for query.Next() {
		p, v, b := query.Get()
		pos = append(pos, p.Vec())
		vels = append(vels, v.Vec())
		radii = append(radii, b.Radius)
		speeds = append(speeds, r3.Norm(v.Vec()))
	}

	_, hasSel := s.camera.Selected()
	return telemetry.FrameSample{
		Entities:     n,
		Elapsed:      s.layout.Elapsed(),
		Settled:      s.layout.Settled(),
		Speeds:       speeds,
		Kinetic:      telemetry.KineticEnergy(vels),
		Overlaps:     telemetry.CountOverlaps(pos, radii),
		HasSelection: hasSel,
		Locked:       s.camera.Locked(),
		Interacting:  s.camera.Interacting(),
	}
}

// Nodes returns a view of every bubble in insertion order.
func (s *Scene) Nodes() []NodeView {
	selected, hasSel := s.camera.Selected()
	bob := s.appearance.Params()

	out := make([]NodeView, 0, len(s.order))
	for _, e := range s.order {
		a := s.assets.Get(e)
		p := s.posMap.Get(e).Vec()
		r := s.bodyMap.Get(e).Radius
		d := s.dispMap.Get(e)
		app := s.appMap.Get(e)

		p.Y += bob.BobOffset(s.clock, r)
		isSel := hasSel && selected == a.ID
		out = append(out, NodeView{
			ID:       a.ID,
			Symbol:   a.Symbol,
			Asset:    *a,
			Position: p,
			Radius:   r,
			Color:    d.Color,
			Scale:    app.Scale,
			Opacity:  app.Opacity,
			Emissive: app.Emissive,
			Change:   d.Change,
			SizeRaw:  d.SizeRaw,
			Metric:   s.metric,
			Selected: isSel,
			Hovered:  isSel || s.hovered == a.ID,
			Visible:  !hasSel || isSel,
		})
	}
	return out
}

// Node returns the view for id.
func (s *Scene) Node(id string) (NodeView, bool) {
	if _, ok := s.index[id]; !ok {
		return NodeView{}, false
	}
	for _, n := range s.Nodes() {
		if n.ID == id {
			return n, true
		}
	}
	return NodeView{}, false
}

// AssetRows returns the working set as CSV rows.
func (s *Scene) AssetRows() []telemetry.AssetRow {
	nodes := s.Nodes()
	rows := make([]telemetry.AssetRow, len(nodes))
	for i, n := range nodes {
		p := s.posMap.Get(s.index[n.ID]).Vec()
		rows[i] = telemetry.AssetRow{
			ID:                n.ID,
			Symbol:            n.Symbol,
			PriceUSD:          n.Asset.PriceUSD,
			MarketCapBillions: n.Asset.MarketCapBillions,
			Volume24hMillions: n.Asset.Volume24hMillions,
			ChangeDay:         n.Asset.ChangeDay,
			ChangeWeek:        n.Asset.ChangeWeek,
			ChangeMonth:       n.Asset.ChangeMonth,
			Radius:            n.Radius,
			Color:             n.Color.Hex(),
			X:                 p.X,
			Y:                 p.Y,
			Z:                 p.Z,
		}
	}
	return rows
}

// Len returns the size of the working set.
func (s *Scene) Len() int { return len(s.order) }

// Has reports whether id is in the working set.
func (s *Scene) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Camera returns the camera controller.
func (s *Scene) Camera() *camera.Controller { return s.camera }

// Layout returns the layout system.
func (s *Scene) Layout() *systems.LayoutSystem { return s.layout }

// Clock returns accumulated tick time in seconds.
func (s *Scene) Clock() float64 { return s.clock }
