package view

import (
	"testing"

	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
)

type fakeTexture struct{ w, h int }

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }

type fakeSurface struct {
	texture     render.Texture
	w, h        int
	bufferScale int
	src         geo.FBox
}

func (f *fakeSurface) Texture() render.Texture { return f.texture }
func (f *fakeSurface) Size() (int, int)        { return f.w, f.h }
func (f *fakeSurface) BufferScale() int        { return f.bufferScale }
func (f *fakeSurface) SourceBox() geo.FBox     { return f.src }

// surfaceToplevel is a fakeToplevel with one renderable surface.
type surfaceToplevel struct {
	fakeToplevel
	surface *fakeSurface
}

func (s *surfaceToplevel) ForEachSurface(fn func(render.Surface, int, int)) {
	fn(s.surface, s.geo.X, s.geo.Y)
}

type recordPass struct {
	rects    []geo.Box
	colors   []render.Color
	textures []render.TextureOptions
}

func (r *recordPass) AddRect(box geo.Box, c render.Color) {
	r.rects = append(r.rects, box)
	r.colors = append(r.colors, c)
}
func (r *recordPass) AddTexture(o render.TextureOptions) { r.textures = append(r.textures, o) }

func newRenderFixture(t *testing.T) (*Stack, *View, *surfaceToplevel) {
	t.Helper()
	s := NewStack()
	top := &surfaceToplevel{
		fakeToplevel: fakeToplevel{geo: geo.Box{Width: 400, Height: 300}, mapped: true},
		surface: &fakeSurface{
			texture:     &fakeTexture{w: 400, h: 300},
			w:           400,
			h:           300,
			bufferScale: 1,
		},
	}
	v := s.Add(top)
	// Finished map animation: full size, full opacity.
	v.entry.progress = 1.0
	return s, v, top
}

func TestComputeLayoutIdentity(t *testing.T) {
	_, v, _ := newRenderFixture(t)
	c := canvas.New()
	v.X, v.Y = 100, 50

	layout, ok := v.ComputeLayout(c, 1.0)
	if !ok {
		t.Fatal("layout reported empty")
	}
	want := geo.Box{X: 100, Y: 50, Width: 400, Height: 300}
	if layout.Content != want {
		t.Errorf("content = %+v, want %+v", layout.Content, want)
	}
	if layout.Scale != 1.0 {
		t.Errorf("scale = %f, want 1.0", layout.Scale)
	}
	if layout.Border.X != 100-layout.BorderWidth || layout.Border.Width != 400+2*layout.BorderWidth {
		t.Errorf("border box %+v does not wrap content", layout.Border)
	}
}

func TestComputeLayoutAppliesCanvasAndOutputScale(t *testing.T) {
	_, v, _ := newRenderFixture(t)
	c := canvas.New()
	c.Scale = 2.0

	layout, ok := v.ComputeLayout(c, 1.5)
	if !ok {
		t.Fatal("layout reported empty")
	}
	if layout.Scale != 3.0 {
		t.Errorf("combined scale = %f, want 3.0", layout.Scale)
	}
	if layout.Content.Width != 1200 || layout.Content.Height != 900 {
		t.Errorf("content size %dx%d, want 1200x900", layout.Content.Width, layout.Content.Height)
	}
}

func TestComputeLayoutMapAnimationCentreAnchored(t *testing.T) {
	_, v, _ := newRenderFixture(t)
	c := canvas.New()
	v.entry.progress = 0 // start of map animation: 0.9 scale, 0 opacity

	layout, ok := v.ComputeLayout(c, 1.0)
	if !ok {
		t.Fatal("layout reported empty")
	}
	if layout.Content.Width != 360 || layout.Content.Height != 270 {
		t.Errorf("animated size %dx%d, want 360x270", layout.Content.Width, layout.Content.Height)
	}
	// The 40px width difference splits evenly around the centre.
	if layout.Content.X != 20 || layout.Content.Y != 15 {
		t.Errorf("animated origin (%d, %d), want (20, 15)", layout.Content.X, layout.Content.Y)
	}
	if layout.Opacity != 0 {
		t.Errorf("opacity = %f, want 0", layout.Opacity)
	}
}

func TestComputeLayoutGeometryOffset(t *testing.T) {
	_, v, top := newRenderFixture(t)
	c := canvas.New()
	top.geo = geo.Box{X: 12, Y: 8, Width: 400, Height: 300}
	v.X, v.Y = 0, 0

	layout, ok := v.ComputeLayout(c, 1.0)
	if !ok {
		t.Fatal("layout reported empty")
	}
	// The content origin backs out the geometry offset so CSD shadows land
	// outside the content box.
	if layout.Content.X != -12 || layout.Content.Y != -8 {
		t.Errorf("content origin (%d, %d), want (-12, -8)", layout.Content.X, layout.Content.Y)
	}
}

func TestRenderEmitsTextureMasksAndBorder(t *testing.T) {
	_, v, _ := newRenderFixture(t)
	c := canvas.New()
	pass := &recordPass{}

	v.Render(pass, c, 1.0)

	if len(pass.textures) != 1 {
		t.Fatalf("textures = %d, want 1", len(pass.textures))
	}
	if len(pass.rects) == 0 {
		t.Fatal("no decoration rects emitted")
	}
	// At identity scale with buffer scale 1 the filter is nearest.
	if pass.textures[0].Filter != render.FilterNearest {
		t.Error("identity-scale render did not use nearest filtering")
	}
	if pass.textures[0].Alpha != 1.0 {
		t.Errorf("alpha = %f, want 1.0", pass.textures[0].Alpha)
	}
}

func TestRenderUsesBilinearWhenScaled(t *testing.T) {
	_, v, _ := newRenderFixture(t)
	c := canvas.New()
	c.Scale = 1.5
	pass := &recordPass{}

	v.Render(pass, c, 1.0)
	if pass.textures[0].Filter != render.FilterBilinear {
		t.Error("scaled render did not use bilinear filtering")
	}
}

func TestRenderSkipsUnmapped(t *testing.T) {
	_, v, top := newRenderFixture(t)
	top.mapped = false
	pass := &recordPass{}

	v.Render(pass, canvas.New(), 1.0)
	if len(pass.textures) != 0 || len(pass.rects) != 0 {
		t.Error("unmapped view was rendered")
	}
}

func TestRenderSkipsTexturelessSurface(t *testing.T) {
	_, v, top := newRenderFixture(t)
	top.surface.texture = nil
	pass := &recordPass{}

	v.Render(pass, canvas.New(), 1.0)
	if len(pass.textures) != 0 {
		t.Error("surface without texture was rendered")
	}
}

func TestRenderSkipsZeroSizedSurface(t *testing.T) {
	_, v, top := newRenderFixture(t)
	top.surface.w = 0
	pass := &recordPass{}

	v.Render(pass, canvas.New(), 1.0)
	if len(pass.textures) != 0 {
		t.Error("zero-sized surface was rendered")
	}
}

func TestRenderTreatsInvalidBufferScaleAsOne(t *testing.T) {
	_, v, top := newRenderFixture(t)
	top.surface.bufferScale = 0
	pass := &recordPass{}

	v.Render(pass, canvas.New(), 1.0)
	if len(pass.textures) != 1 {
		t.Fatal("surface with invalid buffer scale skipped entirely")
	}
	if pass.textures[0].Filter != render.FilterNearest {
		t.Error("invalid buffer scale not treated as 1")
	}
}

func colorsClose(a, b render.Color) bool {
	near := func(x, y float32) bool {
		d := x - y
		return d < 1e-6 && d > -1e-6
	}
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func TestBorderColorFollowsFocusAnimation(t *testing.T) {
	s, v, _ := newRenderFixture(t)

	if got := v.BorderColor(); !colorsClose(got, render.BorderUnfocused) {
		t.Errorf("unfocused border = %+v", got)
	}

	s.Focus(v, 0)
	s.UpdateAnimations(FocusAnimDurationMs)
	if got := v.BorderColor(); !colorsClose(got, render.BorderFocused) {
		t.Errorf("focused border = %+v", got)
	}
}
