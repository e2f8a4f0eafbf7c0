package view

import (
	"math"

	"github.com/ThatOtherAndrew/Infinidesk/internal/anim"
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
)

// Layout describes where a view's content lands on an output in physical
// pixels, with the map animation applied.
type Layout struct {
	Content geo.Box
	// Scale is the combined canvas * output * animation scale applied to
	// buffer-local coordinates.
	Scale float64
	// Border geometry around the content.
	Border       geo.Box
	BorderWidth  int
	CornerRadius int
	BorderRadius int
	Opacity      float32
}

// ComputeLayout works out the physical-pixel layout of the view for the
// current canvas transform and output scale. The map animation scales the
// window about its centre, so the animated box is offset by half the size
// difference from the unanimated one. Returns false when the content would
// be empty.
func (v *View) ComputeLayout(c *canvas.Canvas, outputScale float64) (Layout, bool) {
	g := v.Toplevel.Geometry()

	animScale := anim.Lerp(MapAnimScaleStart, 1.0, v.entry.progress)
	baseScale := c.Scale * outputScale
	combined := baseScale * animScale

	screenX, screenY := v.screenOrigin(c, outputScale)

	baseW := int(math.Round(float64(g.Width) * baseScale))
	baseH := int(math.Round(float64(g.Height) * baseScale))

	contentW := int(math.Round(float64(g.Width) * combined))
	contentH := int(math.Round(float64(g.Height) * combined))
	if contentW <= 0 || contentH <= 0 {
		return Layout{}, false
	}

	// Centre-anchored animation offset.
	offsetX := (baseW - contentW) / 2
	offsetY := (baseH - contentH) / 2

	contentX := int(math.Round(screenX)) - int(math.Round(float64(g.X)*combined)) + offsetX
	contentY := int(math.Round(screenY)) - int(math.Round(float64(g.Y)*combined)) + offsetY

	borderW := int(math.Round(render.BorderWidth * combined))
	if borderW < 1 {
		borderW = 1
	}
	radius := int(math.Round(render.CornerRadius * combined))
	if radius < 0 {
		radius = 0
	}

	return Layout{
		Content:      geo.Box{X: contentX, Y: contentY, Width: contentW, Height: contentH},
		Scale:        combined,
		Border:       geo.Box{X: contentX - borderW, Y: contentY - borderW, Width: contentW + 2*borderW, Height: contentH + 2*borderW},
		BorderWidth:  borderW,
		CornerRadius: radius,
		BorderRadius: radius + borderW,
		Opacity:      float32(v.entry.progress),
	}, true
}

func (v *View) screenOrigin(c *canvas.Canvas, outputScale float64) (float64, float64) {
	sx, sy := c.ToScreen(v.X, v.Y)
	return sx * outputScale, sy * outputScale
}

// BorderColor interpolates between the unfocused and focused border colour
// along the focus animation, with the map-in opacity applied.
func (v *View) BorderColor() render.Color {
	t := float32(v.focus.progress)
	opacity := float32(v.entry.progress)
	return render.Color{
		R: anim.Lerp32(render.BorderUnfocused.R, render.BorderFocused.R, t),
		G: anim.Lerp32(render.BorderUnfocused.G, render.BorderFocused.G, t),
		B: anim.Lerp32(render.BorderUnfocused.B, render.BorderFocused.B, t),
		A: anim.Lerp32(render.BorderUnfocused.A, render.BorderFocused.A, t) * opacity,
	}
}

// Render paints the view into the pass: the client surface tree, then the
// corner masks that round the content, then the border on top so it is
// never occluded by the texture.
func (v *View) Render(pass render.Pass, c *canvas.Canvas, outputScale float64) {
	if !v.Toplevel.Mapped() {
		return
	}

	layout, ok := v.ComputeLayout(c, outputScale)
	if !ok {
		return
	}

	g := v.Toplevel.Geometry()

	v.Toplevel.ForEachSurface(func(s render.Surface, sx, sy int) {
		renderSurface(pass, s, layout, g, sx, sy)
	})

	// Corner masks use the fixed background colour, unaffected by opacity.
	render.RenderCornerMasks(pass, layout.Content, layout.CornerRadius, render.BackgroundColor)

	render.RenderBorder(pass, layout.Border, layout.BorderWidth, layout.BorderRadius, v.BorderColor())
}

// RenderPopups paints the view's popup surfaces. They run as a separate
// pipeline stage after all view content, so popups are never occluded by
// another window's texture.
func (v *View) RenderPopups(pass render.Pass, c *canvas.Canvas, outputScale float64) {
	if !v.Toplevel.Mapped() {
		return
	}
	layout, ok := v.ComputeLayout(c, outputScale)
	if !ok {
		return
	}
	g := v.Toplevel.Geometry()
	v.Toplevel.ForEachPopupSurface(func(s render.Surface, sx, sy int) {
		renderSurface(pass, s, layout, g, sx, sy)
	})
}

func renderSurface(pass render.Pass, s render.Surface, layout Layout, g geo.Box, sx, sy int) {
	texture := s.Texture()
	if texture == nil {
		return
	}

	logicalW, logicalH := s.Size()
	if logicalW <= 0 || logicalH <= 0 {
		return
	}

	bufferScale := s.BufferScale()
	if bufferScale <= 0 {
		bufferScale = 1
	}

	// sx/sy are relative to the buffer origin; subtract the geometry offset
	// to get positions relative to the content origin.
	dst := geo.Box{
		X:      layout.Content.X + int(math.Round(float64(sx-g.X)*layout.Scale)),
		Y:      layout.Content.Y + int(math.Round(float64(sy-g.Y)*layout.Scale)),
		Width:  int(math.Round(float64(logicalW) * layout.Scale)),
		Height: int(math.Round(float64(logicalH) * layout.Scale)),
	}
	if dst.Empty() {
		return
	}

	filter := render.FilterBilinear
	if layout.Scale == 1.0 && bufferScale == 1 {
		filter = render.FilterNearest
	}

	pass.AddTexture(render.TextureOptions{
		Texture: texture,
		SrcBox:  s.SourceBox(),
		DstBox:  dst,
		Alpha:   layout.Opacity,
		Filter:  filter,
	})
}
