package drawing

import (
	"testing"

	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
)

// drawStroke commits a straight stroke from (x, 0) to (x+length, 0).
func drawStroke(l *Layer, x, length float64) {
	l.StrokeBegin(x, 0)
	l.StrokeAddPoint(x+length, 0)
	l.StrokeEnd()
}

func TestStrokeLifecycle(t *testing.T) {
	l := NewLayer()

	// Drawing without mode enabled does nothing.
	l.StrokeBegin(0, 0)
	if l.Drawing() {
		t.Fatal("stroke started while drawing mode is off")
	}

	l.ToggleMode()
	drawStroke(l, 0, 100)
	if len(l.Strokes()) != 1 {
		t.Fatalf("committed strokes = %d, want 1", len(l.Strokes()))
	}
	if got := l.Strokes()[0].Color; got != ColorRed {
		t.Errorf("stroke colour = %+v, want default red", got)
	}
}

func TestPointDecimation(t *testing.T) {
	l := NewLayer()
	l.ToggleMode()

	l.StrokeBegin(0, 0)
	l.StrokeAddPoint(1, 0)   // below threshold, dropped
	l.StrokeAddPoint(1.9, 0) // still below threshold from (0,0)
	l.StrokeAddPoint(2.5, 0) // kept
	l.StrokeAddPoint(3.0, 0) // close to last kept point, dropped
	l.StrokeAddPoint(5.0, 0) // kept
	l.StrokeEnd()

	points := l.Strokes()[0].Points
	if len(points) != 3 {
		t.Fatalf("kept points = %d, want 3", len(points))
	}
	if points[1].X != 2.5 || points[2].X != 5.0 {
		t.Errorf("unexpected kept points: %+v", points)
	}
}

func TestShortStrokeDiscarded(t *testing.T) {
	l := NewLayer()
	l.ToggleMode()

	l.StrokeBegin(0, 0)
	l.StrokeAddPoint(1, 1) // decimated away, stroke stays at 1 point
	l.StrokeEnd()

	if len(l.Strokes()) != 0 {
		t.Errorf("short stroke was committed")
	}
	// Every committed stroke has at least 2 points.
	for _, s := range l.Strokes() {
		if len(s.Points) < 2 {
			t.Errorf("committed stroke with %d points", len(s.Points))
		}
	}
}

// Scenario: draw A, B, C; undo twice, redo once, then a new stroke clears
// the redo stack.
func TestUndoRedoOrdering(t *testing.T) {
	l := NewLayer()
	l.ToggleMode()

	drawStroke(l, 0, 10)   // A
	drawStroke(l, 100, 10) // B
	drawStroke(l, 200, 10) // C

	a, b, c := l.Strokes()[0], l.Strokes()[1], l.Strokes()[2]

	l.Undo()
	if len(l.Strokes()) != 2 || l.Strokes()[1] != b || l.RedoDepth() != 1 {
		t.Fatal("first undo: want committed [A,B], redo [C]")
	}

	l.Undo()
	if len(l.Strokes()) != 1 || l.Strokes()[0] != a || l.RedoDepth() != 2 {
		t.Fatal("second undo: want committed [A], redo [C,B]")
	}

	l.Redo()
	if len(l.Strokes()) != 2 || l.Strokes()[1] != b || l.RedoDepth() != 1 {
		t.Fatal("redo: want committed [A,B], redo [C]")
	}

	drawStroke(l, 300, 10) // D
	if l.RedoDepth() != 0 {
		t.Error("new stroke did not clear the redo stack")
	}
	if len(l.Strokes()) != 3 || l.Strokes()[0] != a || l.Strokes()[1] != b {
		t.Error("committed list after D is not [A,B,D]")
	}
	_ = c
}

func TestUndoRedoRoundTrip(t *testing.T) {
	l := NewLayer()
	l.ToggleMode()
	drawStroke(l, 0, 10)
	drawStroke(l, 50, 10)

	before := append([]*Stroke(nil), l.Strokes()...)
	l.Undo()
	l.Redo()

	if len(l.Strokes()) != len(before) {
		t.Fatal("undo+redo changed the stroke count")
	}
	for i := range before {
		if l.Strokes()[i] != before[i] {
			t.Errorf("stroke %d differs after undo+redo", i)
		}
	}
}

func TestUndoDiscardsInProgressStroke(t *testing.T) {
	l := NewLayer()
	l.ToggleMode()
	drawStroke(l, 0, 10)

	l.StrokeBegin(100, 100)
	l.StrokeAddPoint(150, 100)
	l.Undo()

	if l.Drawing() {
		t.Error("in-progress stroke survived undo")
	}
	if len(l.Strokes()) != 1 {
		t.Error("undo of in-progress stroke removed a committed stroke")
	}
	if l.RedoDepth() != 0 {
		t.Error("undo of in-progress stroke pushed onto redo")
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	l := NewLayer()
	l.Undo()
	l.Redo()
	if len(l.Strokes()) != 0 || l.RedoDepth() != 0 {
		t.Error("undo/redo on empty state changed something")
	}
}

func TestClear(t *testing.T) {
	l := NewLayer()
	l.ToggleMode()
	drawStroke(l, 0, 10)
	l.Undo()
	drawStroke(l, 50, 10)

	l.Clear()
	if len(l.Strokes()) != 0 || l.RedoDepth() != 0 {
		t.Error("clear left strokes behind")
	}

	// Clear on an already empty state is a no-op.
	l.Clear()
	if len(l.Strokes()) != 0 {
		t.Error("clear on empty state misbehaved")
	}
}

func TestToggleModeEndsStroke(t *testing.T) {
	l := NewLayer()
	l.ToggleMode()
	l.StrokeBegin(0, 0)
	l.StrokeAddPoint(100, 0)

	l.ToggleMode()
	if l.Drawing() {
		t.Error("stroke still in progress after mode off")
	}
	if len(l.Strokes()) != 1 {
		t.Error("stroke was not committed on mode off")
	}
}

// recordPass counts the primitives emitted into it.
type recordPass struct {
	rects    []geo.Box
	textures int
}

func (r *recordPass) AddRect(box geo.Box, _ render.Color) { r.rects = append(r.rects, box) }
func (r *recordPass) AddTexture(render.TextureOptions)    { r.textures++ }

type identityTransform struct{ scale float64 }

func (t identityTransform) ToScreen(x, y float64) (float64, float64) { return x * t.scale, y * t.scale }
func (t identityTransform) ScaleFactor() float64                     { return t.scale }

func TestRenderEmitsDotsAlongSegments(t *testing.T) {
	l := NewLayer()
	l.ToggleMode()
	drawStroke(l, 0, 100)

	pass := &recordPass{}
	l.Render(pass, identityTransform{scale: 1.0})

	// 100px segment at ~2px steps: 52 dots including both endpoints.
	if len(pass.rects) != 52 {
		t.Errorf("emitted %d rects, want 52", len(pass.rects))
	}
	// Dot size follows the line width at scale 1.
	if pass.rects[0].Width != LineWidth+1 {
		t.Errorf("dot width = %v, want %v", pass.rects[0].Width, LineWidth+1)
	}
}

func TestRenderScalesWithCanvas(t *testing.T) {
	l := NewLayer()
	l.ToggleMode()
	drawStroke(l, 0, 100)

	pass := &recordPass{}
	l.Render(pass, identityTransform{scale: 2.0})

	if pass.rects[0].Width != int(LineWidth*2)+1 {
		t.Errorf("dot width at 2x = %d, want %d", pass.rects[0].Width, int(LineWidth*2)+1)
	}
}

func TestPanelHitTest(t *testing.T) {
	l := NewLayer()
	l.Panel.Place(1920, 1080)
	p := &l.Panel

	if got := p.ButtonAt(0, 0); got != ButtonNone {
		t.Errorf("hit outside panel = %d, want none", got)
	}

	// Centre of the first (red) button.
	x := float64(p.X + p.Width/2)
	y := float64(p.buttonY(0) + buttonHeight/2)
	if got := p.ButtonAt(x, y); got != ButtonColorRed {
		t.Errorf("hit on first button = %d, want red", got)
	}

	// The separator between colour and action buttons is dead space.
	sepY := float64(p.buttonY(2) + buttonHeight + separatorHeight/2 + buttonSpacing/2)
	if got := p.ButtonAt(x, sepY); got != ButtonNone {
		t.Errorf("hit on separator = %d, want none", got)
	}

	y = float64(p.buttonY(5) + buttonHeight/2)
	if got := p.ButtonAt(x, y); got != ButtonClear {
		t.Errorf("hit on last button = %d, want clear", got)
	}
}

func TestPanelClickActions(t *testing.T) {
	l := NewLayer()
	l.ToggleMode()
	drawStroke(l, 0, 10)

	l.HandleClick(ButtonColorBlue)
	if l.CurrentColor != ColorBlue {
		t.Error("colour click did not select blue")
	}

	l.HandleClick(ButtonUndo)
	if len(l.Strokes()) != 0 || l.RedoDepth() != 1 {
		t.Error("undo click did not undo")
	}
	l.HandleClick(ButtonRedo)
	if len(l.Strokes()) != 1 {
		t.Error("redo click did not redo")
	}
	l.HandleClick(ButtonClear)
	if len(l.Strokes()) != 0 {
		t.Error("clear click did not clear")
	}
}
