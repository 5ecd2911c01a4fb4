package scene

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/bubblefield/components"
	"github.com/pthm-cable/bubblefield/config"
	"github.com/pthm-cable/bubblefield/marketdata"
	"github.com/pthm-cable/bubblefield/palette"
	"github.com/pthm-cable/bubblefield/telemetry"
)

type fakeSource struct {
	mu        sync.Mutex
	top       []components.Asset
	topErr    error
	assets    map[string]components.Asset
	lookupErr error
	lookups   []string
}

func (f *fakeSource) Top(ctx context.Context) ([]components.Asset, error) {
	if f.topErr != nil {
		return nil, f.topErr
	}
	return f.top, nil
}

func (f *fakeSource) Lookup(ctx context.Context, id string) (components.Asset, error) {
	f.mu.Lock()
	f.lookups = append(f.lookups, id)
	f.mu.Unlock()
	if f.lookupErr != nil {
		return components.Asset{}, f.lookupErr
	}
	a, ok := f.assets[id]
	if !ok {
		return components.Asset{}, fmt.Errorf("looking up %q: %w", id, marketdata.ErrNotFound)
	}
	return a, nil
}

func bitcoin() components.Asset {
	return components.Asset{ID: "bitcoin", Symbol: "btc", MarketCapBillions: 1200, Volume24hMillions: 35000, ChangeDay: 5}
}

func newTestScene(t *testing.T, src *fakeSource) *Scene {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return New(cfg, Options{Source: src, Seed: 7})
}

// settle applies all outstanding fetches.
func settle(s *Scene) {
	s.AwaitFetches()
	s.Tick(1.0 / 60)
}

func TestLoadSingleAsset(t *testing.T) {
	s := newTestScene(t, &fakeSource{top: []components.Asset{bitcoin()}})

	s.Load()
	assert.True(t, s.PageLoading())
	settle(s)

	require.False(t, s.PageLoading())
	require.Equal(t, 1, s.Len())

	n, ok := s.Node("bitcoin")
	require.True(t, ok)
	assert.InDelta(t, 8.0, n.Radius, 1e-9)
	assert.InDelta(t, 5.0, n.Change, 1e-9)

	want := palette.Lerp(palette.Neutral, palette.Positive, 0.5)
	assert.InDelta(t, want.R, n.Color.R, 1e-9)
	assert.InDelta(t, want.G, n.Color.G, 1e-9)
	assert.InDelta(t, want.B, n.Color.B, 1e-9)

	_, hasNotice := s.Notice()
	assert.False(t, hasNotice)
}

func TestLoadFailure(t *testing.T) {
	s := newTestScene(t, &fakeSource{topErr: errors.New("connection refused")})

	s.Load()
	settle(s)

	assert.False(t, s.PageLoading())
	assert.Zero(t, s.Len())
	msg, ok := s.Notice()
	require.True(t, ok)
	assert.Equal(t, NoticeLoadFailed, msg)

	s.DismissNotice()
	_, ok = s.Notice()
	assert.False(t, ok)
}

func TestSearchNotFound(t *testing.T) {
	src := &fakeSource{top: []components.Asset{bitcoin()}}
	s := newTestScene(t, src)
	s.Load()
	settle(s)

	s.Search("doesnotexist123")
	assert.True(t, s.SearchLoading())
	settle(s)

	assert.False(t, s.SearchLoading())
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Has("doesnotexist123"))
	msg, ok := s.Notice()
	require.True(t, ok)
	assert.Equal(t, "Asset not found: doesnotexist123", msg)
	_, selected := s.Selected()
	assert.False(t, selected)
}

func TestSearchResultWithoutIDKeepsSelection(t *testing.T) {
	src := &fakeSource{
		top:    []components.Asset{bitcoin()},
		assets: map[string]components.Asset{"ghost": {Symbol: "gst", ChangeDay: 1}},
	}
	s := newTestScene(t, src)
	s.Load()
	settle(s)

	s.Search("ghost")
	settle(s)

	assert.Equal(t, 1, s.Len())
	_, selected := s.Selected()
	assert.False(t, selected)
	msg, ok := s.Notice()
	require.True(t, ok)
	assert.Equal(t, "Asset not found: ghost", msg)
	for _, n := range s.Nodes() {
		assert.True(t, n.Visible, n.ID)
	}
}

func TestApplyFetchesWithoutTick(t *testing.T) {
	src := &fakeSource{
		top:    []components.Asset{bitcoin()},
		assets: map[string]components.Asset{"solana": {ID: "solana", Symbol: "sol"}},
	}
	s := newTestScene(t, src)
	s.Load()
	settle(s)

	s.Search("solana")
	s.AwaitFetches()
	clock := s.Clock()
	s.ApplyFetches()

	assert.False(t, s.SearchLoading())
	assert.True(t, s.Has("solana"))
	id, _ := s.Selected()
	assert.Equal(t, "solana", id)
	assert.Equal(t, clock, s.Clock())
}

func TestSearchFailureKeepsCameraUnlocked(t *testing.T) {
	s := newTestScene(t, &fakeSource{lookupErr: errors.New("timeout")})

	s.Camera().BeginInteraction()
	s.Camera().EndInteraction()
	require.False(t, s.Camera().Locked())

	s.Search("solana")
	settle(s)

	msg, _ := s.Notice()
	assert.Equal(t, NoticeSearchFailed, msg)
	assert.False(t, s.SearchLoading())
	assert.False(t, s.Camera().Locked())
	assert.Zero(t, s.Len())
}

func TestSearchLocalMatch(t *testing.T) {
	src := &fakeSource{top: []components.Asset{bitcoin(), {ID: "ethereum", Symbol: "eth"}}}
	s := newTestScene(t, src)
	s.Load()
	settle(s)

	s.Camera().BeginInteraction()
	s.Search("  BTC ")

	id, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "bitcoin", id)
	assert.True(t, s.Camera().Locked())
	assert.False(t, s.SearchLoading())
	assert.Empty(t, src.lookups)

	s.Search("Ethereum")
	id, _ = s.Selected()
	assert.Equal(t, "ethereum", id)
}

func TestSearchRemoteAddsAndSelects(t *testing.T) {
	src := &fakeSource{
		top:    []components.Asset{bitcoin()},
		assets: map[string]components.Asset{"solana": {ID: "solana", Symbol: "sol", ChangeDay: -2}},
	}
	s := newTestScene(t, src)
	s.Load()
	settle(s)

	s.Search("Solana")
	settle(s)

	assert.Equal(t, []string{"solana"}, src.lookups)
	assert.Equal(t, 2, s.Len())
	id, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "solana", id)
	assert.True(t, s.Camera().Locked())
	assert.False(t, s.SearchLoading())

	// New entities restart the settle clock
	assert.Less(t, s.Layout().Elapsed(), 1.0)
}

func TestSearchDuplicateResultsAppendOnce(t *testing.T) {
	src := &fakeSource{assets: map[string]components.Asset{"solana": {ID: "solana", Symbol: "sol"}}}
	s := newTestScene(t, src)

	s.Search("solana")
	s.Search("solana")
	assert.True(t, s.SearchLoading())
	settle(s)

	assert.Len(t, src.lookups, 2)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.SearchLoading())
	id, _ := s.Selected()
	assert.Equal(t, "solana", id)
}

func TestSearchEmptyIsNoop(t *testing.T) {
	src := &fakeSource{}
	s := newTestScene(t, src)

	s.Search("")
	s.Search("   ")

	assert.False(t, s.SearchLoading())
	assert.Empty(t, src.lookups)
}

func TestClickToggles(t *testing.T) {
	s := newTestScene(t, &fakeSource{top: []components.Asset{bitcoin()}})
	s.Load()
	settle(s)

	s.Camera().BeginInteraction()
	s.Click("bitcoin")
	id, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, "bitcoin", id)
	assert.True(t, s.Camera().Locked())

	s.Camera().BeginInteraction()
	s.Click("bitcoin")
	_, ok = s.Selected()
	assert.False(t, ok)
	assert.True(t, s.Camera().Locked())

	s.Click("bitcoin")
	s.ClickEmpty()
	_, ok = s.Selected()
	assert.False(t, ok)
	assert.True(t, s.Camera().Locked())
}

func TestCameraFrozenWhileInteracting(t *testing.T) {
	s := newTestScene(t, &fakeSource{top: []components.Asset{bitcoin()}})
	s.Load()
	settle(s)

	s.Camera().BeginInteraction()
	s.Click("bitcoin")
	cam := s.Camera().Camera()
	pos, target := cam.Position, cam.Target

	for i := 0; i < 30; i++ {
		s.Tick(1.0 / 60)
	}
	assert.Equal(t, pos, cam.Position)
	assert.Equal(t, target, cam.Target)

	// Releasing the gesture lets the locked camera move toward the selection
	s.Camera().EndInteraction()
	s.Tick(1.0 / 60)
	assert.NotEqual(t, pos, cam.Position)
}

func TestSelectionHidesOtherNodes(t *testing.T) {
	s := newTestScene(t, &fakeSource{top: []components.Asset{bitcoin(), {ID: "ethereum", Symbol: "eth", ChangeDay: 1}}})
	s.Load()
	settle(s)

	s.Click("bitcoin")
	for i := 0; i < 60; i++ {
		s.Tick(1.0 / 60)
	}

	btc, _ := s.Node("bitcoin")
	eth, _ := s.Node("ethereum")
	assert.True(t, btc.Visible)
	assert.True(t, btc.Hovered)
	assert.InDelta(t, 1.2, btc.Scale, 1e-3)
	assert.False(t, eth.Visible)
	assert.InDelta(t, 0, eth.Scale, 1e-3)
	assert.InDelta(t, 0, eth.Opacity, 1e-3)
}

func TestHoverRelease(t *testing.T) {
	s := newTestScene(t, &fakeSource{top: []components.Asset{bitcoin()}})
	s.Load()
	settle(s)

	s.HoverEnter("bitcoin")
	s.HoverLeave("bitcoin")
	s.Tick(0.05)
	id, ok := s.Hovered()
	assert.True(t, ok)
	assert.Equal(t, "bitcoin", id)

	// Re-entering cancels the pending release
	s.HoverEnter("bitcoin")
	s.Tick(0.08)
	_, ok = s.Hovered()
	assert.True(t, ok)

	s.HoverLeave("bitcoin")
	s.Tick(0.06)
	s.Tick(0.06)
	_, ok = s.Hovered()
	assert.False(t, ok)
}

func TestSelectorsRecomputeSizing(t *testing.T) {
	s := newTestScene(t, &fakeSource{top: []components.Asset{
		bitcoin(),
		{ID: "ethereum", Symbol: "eth", MarketCapBillions: 400, ChangeDay: -10, ChangeWeek: 2},
	}})
	s.Load()
	settle(s)

	eth, _ := s.Node("ethereum")
	assert.InDelta(t, 8.0, eth.Radius, 1e-9)
	assert.InDelta(t, palette.Negative.R, eth.Color.R, 1e-9)

	s.SetMetric(components.MetricMarketCap)
	eth, _ = s.Node("ethereum")
	btc, _ := s.Node("bitcoin")
	assert.InDelta(t, 8.0, btc.Radius, 1e-9)
	assert.InDelta(t, 1+400.0/1200*7, eth.Radius, 1e-9)
	assert.Equal(t, 400.0, eth.SizeRaw)

	s.SetTimeframe(components.TimeframeWeek)
	eth, _ = s.Node("ethereum")
	assert.Equal(t, 2.0, eth.Change)
	assert.Equal(t, components.MetricMarketCap, eth.Metric)
}

func TestFrozenAfterStabilization(t *testing.T) {
	s := newTestScene(t, &fakeSource{top: []components.Asset{bitcoin(), {ID: "ethereum", Symbol: "eth", ChangeDay: 1}}})
	s.Load()
	settle(s)

	for s.Layout().Elapsed() < 45 {
		s.Tick(0.1)
	}
	before := s.AssetRows()
	for i := 0; i < 10; i++ {
		s.Tick(1.0 / 60)
	}
	after := s.AssetRows()
	for i := range before {
		assert.Equal(t, before[i].X, after[i].X)
		assert.Equal(t, before[i].Y, after[i].Y)
		assert.Equal(t, before[i].Z, after[i].Z)
	}
}

func TestTelemetryRecorded(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	collector := telemetry.NewCollector(0.5)
	perf := telemetry.NewPerfCollector(10)
	s := New(cfg, Options{
		Source:    &fakeSource{top: []components.Asset{bitcoin()}},
		Collector: collector,
		Perf:      perf,
	})
	s.Load()
	settle(s)
	for i := 0; i < 40; i++ {
		s.Tick(1.0 / 60)
	}

	require.True(t, collector.ShouldFlush())
	stats := collector.Flush()
	assert.Equal(t, 1, stats.Entities)
	assert.Equal(t, int64(41), stats.Frame)
	assert.Equal(t, 10, perf.Stats().Samples)
}
