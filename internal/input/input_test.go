package input

import (
	"math"
	"testing"

	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/drawing"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/ThatOtherAndrew/Infinidesk/internal/keys"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
)

type fakeToplevel struct {
	geo    geo.Box
	mapped bool
}

func (f *fakeToplevel) Geometry() geo.Box     { return f.geo }
func (f *fakeToplevel) Mapped() bool          { return f.mapped }
func (f *fakeToplevel) Surface() view.Surface { return f }
func (f *fakeToplevel) SetActivated(bool)     {}
func (f *fakeToplevel) Close()                {}
func (f *fakeToplevel) Title() string         { return "" }
func (f *fakeToplevel) AppID() string         { return "" }
func (f *fakeToplevel) SetSize(int, int)      {}
func (f *fakeToplevel) SurfaceAt(x, y float64) (view.Surface, float64, float64, bool) {
	return f, x, y, true
}
func (f *fakeToplevel) ForEachSurface(func(s render.Surface, sx, sy int))      {}
func (f *fakeToplevel) ForEachPopupSurface(func(s render.Surface, sx, sy int)) {}

type axisEvent struct {
	orientation Orientation
	delta       float64
}

type fakeSeat struct {
	buttons      []uint32
	axes         []axisEvent
	entered      view.Surface
	motions      int
	focusCleared bool
}

func (f *fakeSeat) PointerNotifyButton(_ uint32, button uint32, pressed bool) {
	if pressed {
		f.buttons = append(f.buttons, button)
	}
}
func (f *fakeSeat) PointerNotifyEnter(surface view.Surface, _, _ float64) { f.entered = surface }
func (f *fakeSeat) PointerNotifyMotion(uint32, float64, float64)          { f.motions++ }
func (f *fakeSeat) PointerNotifyAxis(_ uint32, o Orientation, d float64, _ int32) {
	f.axes = append(f.axes, axisEvent{orientation: o, delta: d})
}
func (f *fakeSeat) PointerClearFocus() { f.focusCleared = true }

type fakeCursor struct {
	x, y  float64
	shape string
}

func (f *fakeCursor) Position() (float64, float64) { return f.x, f.y }
func (f *fakeCursor) SetShape(name string)         { f.shape = name }

type fixture struct {
	machine *Machine
	canvas  *canvas.Canvas
	views   *view.Stack
	drawing *drawing.Layer
	seat    *fakeSeat
	cursor  *fakeCursor
}

func newFixture() *fixture {
	c := canvas.New()
	views := view.NewStack()
	d := drawing.NewLayer()
	d.Panel.Place(1920, 1080)
	seat := &fakeSeat{}
	cursor := &fakeCursor{}
	return &fixture{
		machine: NewMachine(c, views, d, seat, cursor),
		canvas:  c,
		views:   views,
		drawing: d,
		seat:    seat,
		cursor:  cursor,
	}
}

// addView places a mapped view at canvas position (x, y) with size w x h.
func (f *fixture) addView(x, y float64, w, h int) *view.View {
	v := f.views.Add(&fakeToplevel{geo: geo.Box{Width: w, Height: h}, mapped: true})
	v.X, v.Y = x, y
	return v
}

func TestPlainClickFocusesRaisesAndForwards(t *testing.T) {
	f := newFixture()
	a := f.addView(0, 0, 200, 200)
	b := f.addView(300, 0, 200, 200)
	_ = b

	f.cursor.x, f.cursor.y = 100, 100
	f.machine.HandleButtonPress(1, BtnLeft, 1)

	if f.views.Top() != a || !a.Focused {
		t.Error("plain click did not focus and raise the view")
	}
	if len(f.seat.buttons) != 1 || f.seat.buttons[0] != BtnLeft {
		t.Error("plain click was not forwarded to the client")
	}
}

func TestClickOnEmptyCanvasForwardsOnly(t *testing.T) {
	f := newFixture()
	f.addView(500, 500, 100, 100)

	f.cursor.x, f.cursor.y = 10, 10
	f.machine.HandleButtonPress(1, BtnLeft, 1)

	if f.views.Focused() != nil {
		t.Error("click on empty canvas focused something")
	}
	if len(f.seat.buttons) != 1 {
		t.Error("click was not forwarded")
	}
}

func TestDragModifierMoveGesture(t *testing.T) {
	f := newFixture()
	v := f.addView(0, 0, 200, 200)

	f.machine.TrackModifierKey(keys.SymSuperL, true)
	f.cursor.x, f.cursor.y = 100, 100
	f.machine.HandleButtonPress(1, BtnLeft, 1)

	if f.machine.Mode() != ModeMove {
		t.Fatalf("mode = %d, want move", f.machine.Mode())
	}
	if !v.Focused || f.views.Top() != v {
		t.Error("move grab did not focus and raise")
	}
	if len(f.seat.buttons) != 0 {
		t.Error("move grab leaked the button to the client")
	}

	f.cursor.x, f.cursor.y = 150, 120
	f.machine.HandleMotion(2, 2)
	if v.X != 50 || v.Y != 20 {
		t.Errorf("view at (%f, %f), want (50, 20)", v.X, v.Y)
	}

	f.machine.HandleButtonRelease(3, BtnLeft)
	if f.machine.Mode() != ModePassthrough || v.Moving() {
		t.Error("release did not end the move")
	}
}

func TestDragModifierPanGesture(t *testing.T) {
	f := newFixture()

	f.machine.TrackModifierKey(keys.SymSuperL, true)
	f.cursor.x, f.cursor.y = 400, 300
	f.machine.HandleButtonPress(1, BtnRight, 1)
	if f.machine.Mode() != ModePan {
		t.Fatalf("mode = %d, want pan", f.machine.Mode())
	}

	f.cursor.x, f.cursor.y = 450, 320
	f.machine.HandleMotion(2, 2)
	if f.canvas.ViewportX != -50 || f.canvas.ViewportY != -20 {
		t.Errorf("viewport = (%f, %f), want (-50, -20)", f.canvas.ViewportX, f.canvas.ViewportY)
	}

	f.machine.HandleButtonRelease(3, BtnRight)
	if f.canvas.Panning() {
		t.Error("release did not end the pan")
	}
}

func TestModifierReleaseStopsDrag(t *testing.T) {
	f := newFixture()
	f.machine.TrackModifierKey(keys.SymSuperL, true)
	f.machine.TrackModifierKey(keys.SymSuperL, false)
	if f.machine.DragHeld() {
		t.Error("drag modifier still held after release")
	}
}

func TestDrawModeStroke(t *testing.T) {
	f := newFixture()
	f.drawing.ToggleMode()

	f.cursor.x, f.cursor.y = 500, 500
	f.machine.HandleButtonPress(1, BtnLeft, 1)
	if f.machine.Mode() != ModeDraw {
		t.Fatalf("mode = %d, want draw", f.machine.Mode())
	}

	f.cursor.x, f.cursor.y = 600, 500
	f.machine.HandleMotion(2, 2)
	f.machine.HandleButtonRelease(3, BtnLeft)

	if len(f.drawing.Strokes()) != 1 {
		t.Fatalf("strokes = %d, want 1", len(f.drawing.Strokes()))
	}
	if f.machine.Mode() != ModePassthrough {
		t.Error("release did not leave draw mode")
	}
}

func TestDrawModeUIClickWins(t *testing.T) {
	f := newFixture()
	f.drawing.ToggleMode()

	// Click inside the clear button (the last panel button) instead of
	// starting a stroke.
	p := &f.drawing.Panel
	f.cursor.x = float64(p.X + p.Width/2)
	f.cursor.y = float64(p.Y + p.Height - 15 - 25)

	f.machine.HandleButtonPress(1, BtnLeft, 1)
	if f.machine.Mode() == ModeDraw {
		t.Error("UI click started a stroke")
	}
	if f.drawing.Drawing() {
		t.Error("UI click began drawing")
	}
}

// Scenario: scroll over empty canvas starts a pan; within the timeout the
// gesture owns scrolls even over a view; after the timeout the scroll is
// forwarded to the client.
func TestScrollPanArbitration(t *testing.T) {
	f := newFixture()
	f.addView(100, 100, 200, 200)
	f.canvas.Scale = 2.0

	// Over empty canvas.
	f.cursor.x, f.cursor.y = 900, 900
	f.machine.HandleAxis(1, AxisVertical, 15, 1, 1000)

	if !f.machine.ScrollPanning(1000) {
		t.Fatal("scroll over empty canvas did not start a pan gesture")
	}
	if f.canvas.ViewportY != 7.5 {
		t.Errorf("viewport y = %f, want 7.5", f.canvas.ViewportY)
	}

	// Move over the view within 100ms: the gesture still owns the scroll.
	f.cursor.x, f.cursor.y = 300, 300
	f.machine.HandleAxis(2, AxisVertical, 10, 1, 1050)
	if len(f.seat.axes) != 0 {
		t.Error("gesture-owned scroll leaked to the client")
	}
	if f.canvas.ViewportY != 12.5 {
		t.Errorf("viewport y = %f, want 12.5", f.canvas.ViewportY)
	}

	// After 100ms of inactivity the same scroll goes to the client.
	f.machine.HandleAxis(3, AxisVertical, 10, 1, 1300)
	if len(f.seat.axes) != 1 {
		t.Fatal("post-timeout scroll over a view was not forwarded")
	}
	if f.canvas.ViewportY != 12.5 {
		t.Error("post-timeout scroll still panned the canvas")
	}
}

func TestScrollEventExtendsGesture(t *testing.T) {
	f := newFixture()
	f.cursor.x, f.cursor.y = 10, 10

	f.machine.HandleAxis(1, AxisVertical, 5, 1, 1000)
	f.machine.HandleAxis(2, AxisVertical, 5, 1, 1090)
	// The second event moved the deadline to 1190.
	if !f.machine.ScrollPanning(1150) {
		t.Error("gesture expired despite recent scroll")
	}
	if f.machine.ScrollPanning(1200) {
		t.Error("gesture survived past the extended deadline")
	}
}

// Scenario: focus-follows-mouse is suppressed while scroll-panning; the
// first motion after the gesture times out transfers focus without
// raising.
func TestFocusFollowsMouseSuppressedDuringScrollPan(t *testing.T) {
	f := newFixture()
	b := f.addView(0, 0, 400, 400)    // behind
	a := f.addView(300, 0, 400, 400)  // top (added later = head)
	f.views.Raise(a)

	f.views.Focus(a, 0)

	// Start a scroll-pan over empty canvas.
	f.cursor.x, f.cursor.y = 900, 900
	f.machine.HandleAxis(1, AxisVertical, 5, 1, 1000)

	// Motion over B's visible region while the gesture is active.
	f.cursor.x, f.cursor.y = 100, 100
	f.machine.HandleMotion(2, 1050)
	if f.views.Focused() != a {
		t.Error("scroll-pan did not suppress focus-follows-mouse")
	}

	// After the timeout, motion over B transfers focus without raising.
	f.machine.HandleMotion(3, 1200)
	if f.views.Focused() != b {
		t.Error("focus did not follow mouse after gesture end")
	}
	if f.views.Top() != a {
		t.Error("focus-follows-mouse raised the view")
	}
}

func TestDragModifierScrollZooms(t *testing.T) {
	f := newFixture()
	f.machine.TrackModifierKey(keys.SymSuperL, true)
	f.cursor.x, f.cursor.y = 400, 300

	f.machine.HandleAxis(1, AxisVertical, -1, -1, 1000)
	if f.canvas.Scale != canvas.ZoomScrollFactor {
		t.Errorf("scale = %f, want %f after scroll up", f.canvas.Scale, canvas.ZoomScrollFactor)
	}

	f.machine.HandleAxis(2, AxisVertical, 1, 1, 1010)
	if math.Abs(f.canvas.Scale-1.0) > 1e-9 {
		t.Errorf("scale = %f, want 1.0 after scroll down", f.canvas.Scale)
	}

	// Horizontal scroll with the modifier held is ignored.
	f.machine.HandleAxis(3, AxisHorizontal, 10, 1, 1020)
	if f.canvas.ViewportX != 0 {
		t.Error("horizontal scroll with modifier panned the canvas")
	}
	if len(f.seat.axes) != 0 {
		t.Error("modifier scroll leaked to the client")
	}
}

func TestPassthroughMotionUpdatesPointerFocus(t *testing.T) {
	f := newFixture()
	f.addView(0, 0, 200, 200)

	f.cursor.x, f.cursor.y = 100, 100
	f.machine.HandleMotion(1, 1)
	if f.seat.entered == nil || f.seat.motions != 1 {
		t.Error("motion over view did not notify the seat")
	}

	f.cursor.x, f.cursor.y = 900, 900
	f.machine.HandleMotion(2, 2)
	if !f.seat.focusCleared {
		t.Error("motion over empty canvas did not clear pointer focus")
	}
	if f.cursor.shape != "default" {
		t.Error("cursor image not reset over empty canvas")
	}
}

func TestViewUnmapCancelsGrab(t *testing.T) {
	f := newFixture()
	v := f.addView(0, 0, 200, 200)

	f.machine.TrackModifierKey(keys.SymSuperL, true)
	f.cursor.x, f.cursor.y = 100, 100
	f.machine.HandleButtonPress(1, BtnLeft, 1)
	if f.machine.Mode() != ModeMove {
		t.Fatal("setup: not in move mode")
	}

	f.machine.ViewUnmapped(v)
	if f.machine.Mode() != ModePassthrough {
		t.Error("unmap of grabbed view did not reset the cursor mode")
	}
}
