package view

import "github.com/ThatOtherAndrew/Infinidesk/internal/canvas"

// SnapToView animates the viewport so the view's centre lands at screen
// centre, then focuses and raises it. Used by the switcher confirm path.
func (s *Stack) SnapToView(v *View, c *canvas.Canvas, outputWidth, outputHeight int, nowMs uint32) {
	if v == nil {
		return
	}
	centreX, centreY := v.Centre()
	c.SnapTo(centreX, centreY, outputWidth, outputHeight, nowMs)
	s.Focus(v, nowMs)
	s.Raise(v)
}
