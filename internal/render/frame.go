package render

import (
	"math"

	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
)

// FrameHooks are the content stages of one composed frame. Nil hooks are
// skipped.
type FrameHooks struct {
	RenderLayer    func(pass Pass, layer int)
	RenderViews    func(pass Pass)
	RenderPopups   func(pass Pass)
	RenderStrokes  func(pass Pass)
	RenderUI       func(pass Pass)
	RenderSwitcher func(pass Pass)
}

// Frame layer indices, matching the layer-shell z-levels.
const (
	frameLayerBackground = iota
	frameLayerBottom
	frameLayerTop
	frameLayerOverlay
)

// ComposeFrame emits one output frame into the pass in the fixed paint
// order: clear, background and bottom layers, views back-to-front, view
// popups, top and overlay layers, annotation strokes, drawing UI, switcher
// overlay. Width and height are the output size in physical pixels.
func ComposeFrame(pass Pass, width, height int, hooks FrameHooks) {
	pass.AddRect(geo.Box{Width: width, Height: height}, BackgroundColor)

	if hooks.RenderLayer != nil {
		hooks.RenderLayer(pass, frameLayerBackground)
		hooks.RenderLayer(pass, frameLayerBottom)
	}
	if hooks.RenderViews != nil {
		hooks.RenderViews(pass)
	}
	if hooks.RenderPopups != nil {
		hooks.RenderPopups(pass)
	}
	if hooks.RenderLayer != nil {
		hooks.RenderLayer(pass, frameLayerTop)
		hooks.RenderLayer(pass, frameLayerOverlay)
	}
	if hooks.RenderStrokes != nil {
		hooks.RenderStrokes(pass)
	}
	if hooks.RenderUI != nil {
		hooks.RenderUI(pass)
	}
	if hooks.RenderSwitcher != nil {
		hooks.RenderSwitcher(pass)
	}
}

// RenderLayerSurface emits one layer-shell surface at its arranged
// position, in physical pixels. Layer content honours the client's
// viewporter source box and always blends premultiplied.
func RenderLayerSurface(pass Pass, s Surface, x, y int, outputScale float64) {
	texture := s.Texture()
	if texture == nil {
		return
	}

	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	dst := geo.Box{
		X:      int(math.Round(float64(x) * outputScale)),
		Y:      int(math.Round(float64(y) * outputScale)),
		Width:  int(math.Round(float64(w) * outputScale)),
		Height: int(math.Round(float64(h) * outputScale)),
	}
	if dst.Empty() {
		return
	}

	filter := FilterBilinear
	if outputScale == 1.0 && s.BufferScale() == 1 {
		filter = FilterNearest
	}

	pass.AddTexture(TextureOptions{
		Texture: texture,
		SrcBox:  s.SourceBox(),
		DstBox:  dst,
		Alpha:   1.0,
		Filter:  filter,
	})
}
