package drawing

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
)

// Panel layout, in logical pixels.
const (
	panelX          = 20
	buttonWidth     = 50
	buttonHeight    = 50
	buttonSpacing   = 10
	panelPadding    = 10
	separatorHeight = 20
	buttonCount     = 6
)

// Panel colours.
var (
	panelBackground = render.Color{R: 0.15, G: 0.15, B: 0.15, A: 0.9}
	buttonNormal    = render.Color{R: 0.25, G: 0.25, B: 0.25, A: 1.0}
	buttonHover     = render.Color{R: 0.35, G: 0.35, B: 0.35, A: 1.0}
	buttonSelected  = render.Color{R: 0.45, G: 0.45, B: 0.45, A: 1.0}
	iconColor       = render.Color{R: 0.9, G: 0.9, B: 0.9, A: 1.0}
)

// Button identifies one panel button.
type Button int

const (
	ButtonNone Button = iota
	ButtonColorRed
	ButtonColorGreen
	ButtonColorBlue
	ButtonUndo
	ButtonRedo
	ButtonClear
)

// Panel is the drawing tool panel pinned to the left screen edge,
// vertically centred. Positions are logical pixels; rendering scales to
// physical pixels.
type Panel struct {
	X, Y          int
	Width, Height int
	Hovered       Button
}

// Place positions the panel for the given logical output size.
func (p *Panel) Place(screenWidth, screenHeight int) {
	p.Width = buttonWidth + 2*panelPadding
	p.Height = panelPadding*2 + buttonHeight*buttonCount +
		buttonSpacing*(buttonCount-1) + separatorHeight
	p.X = panelX
	p.Y = (screenHeight - p.Height) / 2
}

// buttonY returns the logical y of the button at the given index. The
// three colour buttons come first, then a separator, then undo/redo/clear.
func (p *Panel) buttonY(index int) int {
	y := p.Y + panelPadding
	if index < 3 {
		return y + index*(buttonHeight+buttonSpacing)
	}
	y += 3 * (buttonHeight + buttonSpacing)
	y += separatorHeight
	return y + (index-3)*(buttonHeight+buttonSpacing)
}

// ButtonAt hit-tests the panel at logical screen coordinates.
func (p *Panel) ButtonAt(x, y float64) Button {
	if x < float64(p.X) || x >= float64(p.X+p.Width) ||
		y < float64(p.Y) || y >= float64(p.Y+p.Height) {
		return ButtonNone
	}

	relX := int(x) - (p.X + panelPadding)
	if relX < 0 || relX >= buttonWidth {
		return ButtonNone
	}

	for i := 0; i < buttonCount; i++ {
		by := p.buttonY(i)
		if int(y) >= by && int(y) < by+buttonHeight {
			return Button(int(ButtonColorRed) + i)
		}
	}
	return ButtonNone
}

// UpdateHover refreshes the hovered button from the cursor position.
func (p *Panel) UpdateHover(x, y float64) {
	p.Hovered = p.ButtonAt(x, y)
}

// HandleClick applies the clicked button to the layer.
func (l *Layer) HandleClick(button Button) {
	switch button {
	case ButtonColorRed:
		l.CurrentColor = ColorRed
	case ButtonColorGreen:
		l.CurrentColor = ColorGreen
	case ButtonColorBlue:
		l.CurrentColor = ColorBlue
	case ButtonUndo:
		l.Undo()
	case ButtonRedo:
		l.Redo()
	case ButtonClear:
		l.Clear()
	case ButtonNone:
	}
}

// RenderPanel draws the tool panel in screen space, scaled to physical
// pixels by the output scale.
func (l *Layer) RenderPanel(pass render.Pass, outputScale float64) {
	p := &l.Panel
	s := outputScale

	pass.AddRect(scaleBox(p.X, p.Y, p.Width, p.Height, s), panelBackground)

	buttonX := int(float64(p.X+panelPadding) * s)
	bw := int(buttonWidth * s)
	bh := int(buttonHeight * s)

	colors := []struct {
		button Button
		color  Color
	}{
		{ButtonColorRed, ColorRed},
		{ButtonColorGreen, ColorGreen},
		{ButtonColorBlue, ColorBlue},
	}
	for i, c := range colors {
		y := int(float64(p.buttonY(i)) * s)
		bg := buttonNormal
		if l.CurrentColor == c.color {
			bg = buttonSelected
		} else if p.Hovered == c.button {
			bg = buttonHover
		}
		pass.AddRect(geo.Box{X: buttonX, Y: y, Width: bw, Height: bh}, bg)

		// Colour swatch, centred and inset.
		inset := int(8 * s)
		pass.AddRect(geo.Box{
			X: buttonX + inset, Y: y + inset,
			Width: bw - 2*inset, Height: bh - 2*inset,
		}, render.Color{R: c.color.R, G: c.color.G, B: c.color.B, A: 1.0})
	}

	actions := []struct {
		button Button
		icon   func(render.Pass, int, int, float64)
	}{
		{ButtonUndo, renderUndoIcon},
		{ButtonRedo, renderRedoIcon},
		{ButtonClear, renderClearIcon},
	}
	for i, a := range actions {
		y := int(float64(p.buttonY(3+i)) * s)
		bg := buttonNormal
		if p.Hovered == a.button {
			bg = buttonHover
		}
		pass.AddRect(geo.Box{X: buttonX, Y: y, Width: bw, Height: bh}, bg)
		a.icon(pass, buttonX, y, s)
	}
}

// renderUndoIcon draws a left-pointing triangle out of vertical bars.
func renderUndoIcon(pass render.Pass, x, y int, scale float64) {
	cx := x + int(buttonWidth*scale)/2
	cy := y + int(buttonHeight*scale)/2
	size := int(12 * scale)
	lineW := max(int(2*scale), 1)

	for i := 0; i < size; i++ {
		pass.AddRect(geo.Box{
			X: cx - int(6*scale) + i, Y: cy - i,
			Width: lineW, Height: i*2 + 1,
		}, iconColor)
	}
}

// renderRedoIcon mirrors the undo triangle to point right.
func renderRedoIcon(pass render.Pass, x, y int, scale float64) {
	cx := x + int(buttonWidth*scale)/2
	cy := y + int(buttonHeight*scale)/2
	size := int(12 * scale)
	lineW := max(int(2*scale), 1)

	for i := 0; i < size; i++ {
		pass.AddRect(geo.Box{
			X: cx + int(6*scale) - i, Y: cy - i,
			Width: lineW, Height: i*2 + 1,
		}, iconColor)
	}
}

// renderClearIcon draws an X from two diagonal dot runs.
func renderClearIcon(pass render.Pass, x, y int, scale float64) {
	cx := x + int(buttonWidth*scale)/2
	cy := y + int(buttonHeight*scale)/2
	size := int(16 * scale)
	dot := max(int(3*scale), 1)

	for i := 0; i < size; i++ {
		pass.AddRect(geo.Box{
			X: cx - size/2 + i, Y: cy - size/2 + i,
			Width: dot, Height: dot,
		}, iconColor)
		pass.AddRect(geo.Box{
			X: cx + size/2 - i, Y: cy - size/2 + i,
			Width: dot, Height: dot,
		}, iconColor)
	}
}

func scaleBox(x, y, w, h int, s float64) geo.Box {
	return geo.Box{
		X:      int(float64(x) * s),
		Y:      int(float64(y) * s),
		Width:  int(float64(w) * s),
		Height: int(float64(h) * s),
	}
}

func boxAround(x, y, width float64) geo.Box {
	return geo.Box{
		X:      int(x - width/2),
		Y:      int(y - width/2),
		Width:  int(width) + 1,
		Height: int(width) + 1,
	}
}
