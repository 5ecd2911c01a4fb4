package ui

import (
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubblefield/components"
)

// CompactWidth is the widest viewport that still uses the compact layout.
const CompactWidth = 768

// SearchPlaceholder is shown in the empty search box.
const SearchPlaceholder = "Bitcoin, ETH..."

const (
	timeframeItems = "24h;7d;30d"
	metricItems    = "Market Cap;Volume;Performance"
	maxSearchLen   = 64
)

// metricOrder maps toggle indices to metrics.
var metricOrder = []components.Metric{
	components.MetricMarketCap,
	components.MetricVolume,
	components.MetricPerformance,
}

// timeframeOrder maps toggle indices to timeframes.
var timeframeOrder = []components.Timeframe{
	components.TimeframeDay,
	components.TimeframeWeek,
	components.TimeframeMonth,
}

// IsCompact reports whether a viewport gets the compact layout.
func IsCompact(w, h float32) bool {
	return w <= CompactWidth || w < h
}

// PanelState is the scene state the control panel reflects.
type PanelState struct {
	Timeframe     components.Timeframe
	Metric        components.Metric
	SearchLoading bool
}

// ControlAction is what the user asked for this frame.
type ControlAction struct {
	Search    string
	HasSearch bool

	Timeframe        components.Timeframe
	TimeframeChanged bool

	Metric        components.Metric
	MetricChanged bool
}

// ControlPanel holds the search box and the metric and timeframe selectors.
// In compact mode it starts hidden behind a toggle button and closes after a
// search.
type ControlPanel struct {
	renderer *Renderer

	searchText string
	editMode   bool
	visible    bool
	compact    bool

	screenW, screenH float32
}

// NewControlPanel creates a panel for the given viewport.
func NewControlPanel(screenW, screenH float32) *ControlPanel {
	c := &ControlPanel{renderer: NewRenderer()}
	c.Resize(screenW, screenH)
	c.visible = !c.compact
	return c
}

// Resize updates the layout. Switching to the wide layout always shows the panel.
func (c *ControlPanel) Resize(screenW, screenH float32) {
	c.screenW, c.screenH = screenW, screenH
	c.compact = IsCompact(screenW, screenH)
	if !c.compact {
		c.visible = true
	}
}

// Compact reports whether the compact layout is active.
func (c *ControlPanel) Compact() bool { return c.compact }

// Visible reports whether the panel body is shown.
func (c *ControlPanel) Visible() bool { return c.visible }

// Toggle shows or hides the panel in compact mode.
func (c *ControlPanel) Toggle() {
	if c.compact {
		c.visible = !c.visible
	}
}

// SetSearchText replaces the search box contents.
func (c *ControlPanel) SetSearchText(s string) { c.searchText = s }

// Editing reports whether the search box has keyboard focus.
func (c *ControlPanel) Editing() bool { return c.editMode }

// submit returns the trimmed search term. The compact panel closes.
func (c *ControlPanel) submit() (string, bool) {
	term := strings.TrimSpace(c.searchText)
	if term == "" {
		return "", false
	}
	c.editMode = false
	if c.compact {
		c.visible = false
	}
	return term, true
}

// Bounds returns the screen area the panel occupies, including the toggle
// button in compact mode.
func (c *ControlPanel) Bounds() rl.Rectangle {
	if c.compact {
		if !c.visible {
			return c.toggleRect()
		}
		return rl.Rectangle{X: 0, Y: 0, Width: c.screenW, Height: 186}
	}
	return rl.Rectangle{X: 10, Y: 10, Width: 320, Height: 150}
}

// Contains reports whether a screen point is over the panel.
func (c *ControlPanel) Contains(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, c.Bounds())
}

func (c *ControlPanel) toggleRect() rl.Rectangle {
	return rl.Rectangle{X: 10, Y: 10, Width: 80, Height: 28}
}

// Draw renders the panel and returns the user's actions.
func (c *ControlPanel) Draw(st PanelState) ControlAction {
	act := ControlAction{Timeframe: st.Timeframe, Metric: st.Metric}

	if c.compact {
		label := "Show"
		if c.visible {
			label = "Hide"
		}
		if gui.Button(c.toggleRect(), label) {
			c.Toggle()
		}
		if !c.visible {
			return act
		}
	}

	b := c.Bounds()
	r := c.renderer
	pad := float32(r.Theme.Padding)
	x := b.X + pad
	y := b.Y + pad
	w := b.Width - 2*pad
	if c.compact {
		y += 34
	} else {
		r.DrawPanel(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))
	}

	// Search
	r.DrawLabel(int32(x), int32(y), "Search")
	y += float32(r.Theme.LineHeight)
	boxRect := rl.Rectangle{X: x, Y: y, Width: w - 90, Height: 28}
	if c.searchText == "" && !c.editMode {
		rl.DrawText(SearchPlaceholder, int32(boxRect.X)+6, int32(boxRect.Y)+8, r.Theme.FontSize, rl.Gray)
	}
	if gui.TextBox(boxRect, &c.searchText, maxSearchLen, c.editMode) {
		c.editMode = !c.editMode
		if !c.editMode && rl.IsKeyPressed(rl.KeyEnter) && !st.SearchLoading {
			act.Search, act.HasSearch = c.submit()
		}
	}

	btnLabel := "Search"
	if st.SearchLoading {
		btnLabel = "..."
		gui.Disable()
	}
	if gui.Button(rl.Rectangle{X: x + w - 84, Y: y, Width: 84, Height: 28}, btnLabel) && !st.SearchLoading {
		act.Search, act.HasSearch = c.submit()
	}
	gui.Enable()
	y += 36

	// Size metric
	r.DrawLabel(int32(x), int32(y), "Size")
	y += float32(r.Theme.LineHeight)
	cur := int32(indexOfMetric(st.Metric))
	itemW := (w - 4) / 3
	if next := gui.ToggleGroup(rl.Rectangle{X: x, Y: y, Width: itemW, Height: 24}, metricItems, cur); next != cur {
		act.Metric, act.MetricChanged = MetricAt(int(next))
	}
	y += 32

	// Timeframe
	r.DrawLabel(int32(x), int32(y), "Timeframe")
	y += float32(r.Theme.LineHeight)
	cur = int32(indexOfTimeframe(st.Timeframe))
	if next := gui.ToggleGroup(rl.Rectangle{X: x, Y: y, Width: itemW, Height: 24}, timeframeItems, cur); next != cur {
		act.Timeframe, act.TimeframeChanged = TimeframeAt(int(next))
	}

	return act
}

// MetricAt returns the metric for a toggle index.
func MetricAt(i int) (components.Metric, bool) {
	if i < 0 || i >= len(metricOrder) {
		return 0, false
	}
	return metricOrder[i], true
}

// TimeframeAt returns the timeframe for a toggle index.
func TimeframeAt(i int) (components.Timeframe, bool) {
	if i < 0 || i >= len(timeframeOrder) {
		return 0, false
	}
	return timeframeOrder[i], true
}

func indexOfMetric(m components.Metric) int {
	for i, v := range metricOrder {
		if v == m {
			return i
		}
	}
	return 0
}

func indexOfTimeframe(tf components.Timeframe) int {
	for i, v := range timeframeOrder {
		if v == tf {
			return i
		}
	}
	return 0
}
