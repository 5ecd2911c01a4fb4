package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// LoadingText is shown while the initial page loads.
const LoadingText = "Loading market data..."

// DrawLoading dims the screen and shows the loading message.
func (r *Renderer) DrawLoading(screenW, screenH int32) {
	rl.DrawRectangle(0, 0, screenW, screenH, r.Theme.OverlayBg)
	size := int32(20)
	w := rl.MeasureText(LoadingText, size)
	rl.DrawText(LoadingText, (screenW-w)/2, screenH/2-size/2, size, rl.White)
}

// DrawNotice shows a modal message. It returns true once dismissed.
func (r *Renderer) DrawNotice(msg string, screenW, screenH float32) bool {
	rl.DrawRectangle(0, 0, int32(screenW), int32(screenH), r.Theme.OverlayBg)

	w := float32(rl.MeasureText(msg, 10)) + 60
	if w < 260 {
		w = 260
	}
	if w > screenW-20 {
		w = screenW - 20
	}
	rect := rl.Rectangle{X: (screenW - w) / 2, Y: screenH/2 - 60, Width: w, Height: 120}
	return gui.MessageBox(rect, "#191#Notice", msg, "OK") >= 0
}

// DrawStatus writes a one-line status string at the bottom left.
func (r *Renderer) DrawStatus(text string, screenH int32) {
	rl.DrawText(text, 10, screenH-22, r.Theme.FontSize, rl.Gray)
}
