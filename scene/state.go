package scene

import "github.com/pthm-cable/bubblefield/components"

// Timeframe returns the active timeframe.
func (s *Scene) Timeframe() components.Timeframe { return s.timeframe }

// Metric returns the active size metric.
func (s *Scene) Metric() components.Metric { return s.metric }

// SetTimeframe switches the timeframe and recomputes sizing.
func (s *Scene) SetTimeframe(tf components.Timeframe) {
	if tf == s.timeframe {
		return
	}
	s.timeframe = tf
	s.resize()
}

// SetMetric switches the size metric and recomputes sizing.
func (s *Scene) SetMetric(m components.Metric) {
	if m == s.metric {
		return
	}
	s.metric = m
	s.resize()
}

// PageLoading reports whether the initial fetch is still outstanding.
func (s *Scene) PageLoading() bool { return s.pageLoading }

// SearchLoading reports whether a remote search is outstanding.
func (s *Scene) SearchLoading() bool { return s.pendingSearches > 0 }

// Notice returns the pending blocking notice, if any.
func (s *Scene) Notice() (string, bool) { return s.notice, s.notice != "" }

// DismissNotice clears the pending notice.
func (s *Scene) DismissNotice() { s.notice = "" }

// Selected returns the selected asset id, if any.
func (s *Scene) Selected() (string, bool) { return s.camera.Selected() }

// Click handles a click on a bubble. Clicking the selected bubble deselects it.
// Either way the camera locks.
func (s *Scene) Click(id string) {
	if cur, ok := s.camera.Selected(); ok && cur == id {
		s.camera.ClearSelection()
		return
	}
	s.camera.Select(id)
}

// ClickEmpty handles a click that hit no bubble.
func (s *Scene) ClickEmpty() {
	s.camera.ClearSelection()
}

// Hovered returns the hovered asset id, if any.
func (s *Scene) Hovered() (string, bool) { return s.hovered, s.hovered != "" }

// HoverEnter marks id as hovered immediately.
func (s *Scene) HoverEnter(id string) {
	s.hovered = id
	s.hoverRelease = 0
}

// HoverLeave schedules the hover on id to drop after the release delay,
// unless it is re-entered first.
func (s *Scene) HoverLeave(id string) {
	if s.hovered != id || s.hoverRelease > 0 {
		return
	}
	s.hoverRelease = s.cfg.Appearance.HoverRelease
	if s.hoverRelease <= 0 {
		s.hovered = ""
	}
}

func (s *Scene) updateHover(dt float64) {
	if s.hoverRelease <= 0 {
		return
	}
	s.hoverRelease -= dt
	if s.hoverRelease <= 0 {
		s.hoverRelease = 0
		s.hovered = ""
	}
}

// Resize forwards a viewport change to the camera.
func (s *Scene) Resize(w, h float64) {
	s.camera.Resize(w, h)
}
