package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tooltip draws the hover card for a bubble.
type Tooltip struct {
	renderer *Renderer
}

// NewTooltip creates a tooltip renderer.
func NewTooltip() *Tooltip {
	return &Tooltip{renderer: NewRenderer()}
}

// TooltipRect places a card of size w×h centered above anchor, kept on screen.
func TooltipRect(anchor rl.Vector2, w, h, screenW, screenH float32) rl.Rectangle {
	x := anchor.X - w/2
	y := anchor.Y - h - 8
	if x < 10 {
		x = 10
	}
	if x+w > screenW-10 {
		x = screenW - 10 - w
	}
	if y < 10 {
		y = anchor.Y + 8
	}
	if y+h > screenH-10 {
		y = screenH - 10 - h
	}
	return rl.Rectangle{X: x, Y: y, Width: w, Height: h}
}

// Draw renders lines in a card anchored above a screen point. The change
// line (index 2) takes accent.
func (t *Tooltip) Draw(anchor rl.Vector2, lines []string, accent rl.Color, screenW, screenH float32) {
	th := t.renderer.Theme
	fontSize := th.FontSize + 2
	lineHeight := th.LineHeight + 2

	maxWidth := int32(0)
	for i, line := range lines {
		size := fontSize
		if i == 0 {
			size = th.HeaderFontSize + 2
		}
		if w := rl.MeasureText(line, size); w > maxWidth {
			maxWidth = w
		}
	}

	w := float32(maxWidth + th.Padding*2)
	h := float32(int32(len(lines))*lineHeight + th.Padding*2)
	rect := TooltipRect(anchor, w, h, screenW, screenH)

	t.renderer.DrawPanel(int32(rect.X), int32(rect.Y), int32(rect.Width), int32(rect.Height))
	for i, line := range lines {
		y := int32(rect.Y) + th.Padding + int32(i)*lineHeight
		color := th.LabelColor
		size := fontSize
		switch i {
		case 0:
			color, size = th.ValueColor, th.HeaderFontSize+2
		case 2:
			color = accent
		}
		rl.DrawText(line, int32(rect.X)+th.Padding, y, size, color)
	}
}
