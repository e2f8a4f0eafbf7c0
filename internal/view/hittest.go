package view

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
)

// At performs hit-testing against the rendered bounds of every view,
// front-to-back. The scene graph knows nothing about the canvas transform,
// so the test mirrors the rendering maths: a view occupies
// [render_x, render_x + geo.w*scale) x [render_y, render_y + geo.h*scale)
// in screen space.
//
// On a hit it resolves the exact surface under the cursor (subsurfaces and
// popups included) and returns surface-local coordinates.
func (s *Stack) At(c *canvas.Canvas, lx, ly float64) (*View, Surface, float64, float64) {
	for _, v := range s.views {
		if !v.Toplevel.Mapped() {
			continue
		}

		g := v.Toplevel.Geometry()
		screenX, screenY := c.ToScreen(v.X, v.Y)

		renderX := screenX - float64(g.X)*c.Scale
		renderY := screenY - float64(g.Y)*c.Scale
		renderW := float64(g.Width) * c.Scale
		renderH := float64(g.Height) * c.Scale

		if lx < renderX || lx >= renderX+renderW ||
			ly < renderY || ly >= renderY+renderH {
			continue
		}

		// Invert the combined transform to content-local coordinates, then
		// add the geometry offset back so the surface tree walker (which
		// works in buffer coordinates) can resolve subsurfaces.
		contentX := (lx - renderX) / c.Scale
		contentY := (ly - renderY) / c.Scale

		if surface, sx, sy, ok := v.Toplevel.SurfaceAt(contentX+float64(g.X), contentY+float64(g.Y)); ok {
			return v, surface, sx, sy
		}

		// Transparent CSD regions may miss every surface; fall back to the
		// main surface with content-local coordinates.
		return v, v.Toplevel.Surface(), contentX, contentY
	}

	return nil, nil, 0, 0
}
