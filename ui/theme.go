// Package ui draws the control panel, tooltip and overlays over the bubble scene.
package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	OverlayBg      rl.Color
	Padding        int32
	LineHeight     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Color{R: 147, G: 197, B: 253, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		OverlayBg:      rl.Color{R: 0, G: 0, B: 0, A: 160},
		Padding:        10,
		LineHeight:     16,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// ApplyGuiStyle sets raygui defaults to match the theme. Call once after
// the window is created.
func ApplyGuiStyle(t Theme) {
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, int64(t.HeaderFontSize))
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, int64(rl.ColorToInt(t.PanelBg)))
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabel draws a text label.
func (r *Renderer) DrawLabel(x, y int32, text string) {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LabelColor)
}
