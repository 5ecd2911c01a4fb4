package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubblefield/renderer"
	"github.com/pthm-cable/bubblefield/ui"
)

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(renderer.Background)

	cam := g.scene.Camera().Camera()
	nodes := g.scene.Nodes()

	g.bubbles.DrawScene(cam, nodes, g.scene.Clock())
	g.bubbles.DrawLabels(cam, nodes)

	// Tooltip for the hovered or selected bubble
	for _, n := range nodes {
		if !n.Visible || !n.Hovered {
			continue
		}
		anchor := r3.Add(n.Position, r3.Vec{Y: n.Radius*n.Scale + 0.5})
		if p, ok := renderer.ScreenPoint(cam, anchor); ok {
			g.tooltip.Draw(p, n.TooltipLines(), renderer.ToColor(n.Color, 1), g.screenWidth, g.screenHeight)
		}
	}

	g.drawUI()
	rl.EndDrawing()
}

func (g *Game) drawUI() {
	act := g.controls.Draw(ui.PanelState{
		Timeframe:     g.scene.Timeframe(),
		Metric:        g.scene.Metric(),
		SearchLoading: g.scene.SearchLoading(),
	})
	if act.HasSearch {
		g.scene.Search(act.Search)
	}
	if act.MetricChanged {
		g.scene.SetMetric(act.Metric)
	}
	if act.TimeframeChanged {
		g.scene.SetTimeframe(act.Timeframe)
	}

	g.uiRender.DrawStatus(fmt.Sprintf("%d assets | %s | %s | FPS: %d",
		g.scene.Len(), g.scene.Metric(), g.scene.Timeframe().Label(), rl.GetFPS()), int32(g.screenHeight))

	if g.showPerf {
		g.perf.Draw(g.perfCollector.Stats())
	}
	if g.scene.PageLoading() {
		g.uiRender.DrawLoading(int32(g.screenWidth), int32(g.screenHeight))
	}
	if msg, ok := g.scene.Notice(); ok {
		if g.uiRender.DrawNotice(msg, g.screenWidth, g.screenHeight) {
			g.scene.DismissNotice()
		}
	}
}
