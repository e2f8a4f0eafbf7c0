// Copyright (c) 2025 Andrew
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package drawing implements the freehand annotation layer: strokes in
// canvas coordinates with undo/redo, colour selection and the on-screen
// tool panel. Strokes live in canvas space, so they pan and zoom with the
// world.
package drawing

import (
	"math"

	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
	"github.com/sirupsen/logrus"
)

// LineWidth is the stroke width in canvas units.
const LineWidth = 4.0

// MinPointDistance is the decimation threshold: points closer than this to
// the last kept point are dropped, in canvas units.
const MinPointDistance = 2.0

// Point is a stroke vertex in canvas coordinates.
type Point struct {
	X, Y float64
}

// Color is a stroke colour; strokes are always fully opaque.
type Color struct {
	R, G, B float32
}

// The selectable palette.
var (
	ColorRed   = Color{R: 0.9, G: 0.2, B: 0.2}
	ColorGreen = Color{R: 0.2, G: 0.8, B: 0.3}
	ColorBlue  = Color{R: 0.25, G: 0.5, B: 0.95}
)

// Stroke is an ordered sequence of canvas-space points. A committed stroke
// always has at least two points.
type Stroke struct {
	Points []Point
	Color  Color
}

// Layer holds the annotation state.
type Layer struct {
	// Mode reports whether drawing mode is on (pointer input draws).
	Mode bool

	current *Stroke
	lastX   float64
	lastY   float64

	strokes []*Stroke
	redo    []*Stroke

	// CurrentColor is applied to newly begun strokes.
	CurrentColor Color

	// Panel is the on-screen tool panel shown while Mode is on.
	Panel Panel
}

func NewLayer() *Layer {
	return &Layer{CurrentColor: ColorRed}
}

// ToggleMode flips drawing mode. Disabling mid-stroke ends the stroke.
func (l *Layer) ToggleMode() {
	l.Mode = !l.Mode
	if !l.Mode && l.current != nil {
		l.StrokeEnd()
	}
	logrus.WithField("enabled", l.Mode).Infoln("Drawing mode toggled")
}

// Drawing reports whether a stroke is in progress.
func (l *Layer) Drawing() bool {
	return l.current != nil
}

// Strokes returns the committed strokes in draw order.
func (l *Layer) Strokes() []*Stroke {
	return l.strokes
}

// RedoDepth returns the size of the redo stack.
func (l *Layer) RedoDepth() int {
	return len(l.redo)
}

// StrokeBegin starts a stroke at the given canvas position with the
// current colour. No-op unless drawing mode is on.
func (l *Layer) StrokeBegin(canvasX, canvasY float64) {
	if !l.Mode {
		return
	}
	l.current = &Stroke{
		Points: []Point{{X: canvasX, Y: canvasY}},
		Color:  l.CurrentColor,
	}
	l.lastX = canvasX
	l.lastY = canvasY

	logrus.WithFields(logrus.Fields{
		"x": canvasX,
		"y": canvasY,
	}).Debugln("Stroke started")
}

// StrokeAddPoint appends a point to the current stroke, unless it is
// within MinPointDistance of the last kept point.
func (l *Layer) StrokeAddPoint(canvasX, canvasY float64) {
	if l.current == nil {
		return
	}
	if math.Hypot(canvasX-l.lastX, canvasY-l.lastY) < MinPointDistance {
		return
	}
	l.current.Points = append(l.current.Points, Point{X: canvasX, Y: canvasY})
	l.lastX = canvasX
	l.lastY = canvasY
}

// StrokeEnd commits the current stroke. Strokes with fewer than two points
// are discarded. Committing clears the redo stack.
func (l *Layer) StrokeEnd() {
	if l.current == nil {
		return
	}
	if len(l.current.Points) < 2 {
		logrus.Debugln("Stroke too short, discarding")
	} else {
		l.strokes = append(l.strokes, l.current)
		l.redo = nil
		logrus.WithField("points", len(l.current.Points)).Debugln("Stroke finished")
	}
	l.current = nil
}

// Undo removes the most recent committed stroke onto the redo stack. If a
// stroke is in progress it is discarded instead.
func (l *Layer) Undo() {
	if l.current != nil {
		l.current = nil
		logrus.Infoln("Discarded in-progress stroke")
		return
	}
	if len(l.strokes) == 0 {
		logrus.Debugln("No strokes to undo")
		return
	}
	last := l.strokes[len(l.strokes)-1]
	l.strokes = l.strokes[:len(l.strokes)-1]
	l.redo = append(l.redo, last)
	logrus.Infoln("Undid last stroke")
}

// Redo restores the most recently undone stroke.
func (l *Layer) Redo() {
	if len(l.redo) == 0 {
		logrus.Debugln("No strokes to redo")
		return
	}
	last := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	l.strokes = append(l.strokes, last)
	logrus.Infoln("Redid stroke")
}

// Clear drops every committed stroke and the redo stack.
func (l *Layer) Clear() {
	l.strokes = nil
	l.redo = nil
	l.current = nil
	logrus.Infoln("All drawings cleared")
}

// transform converts canvas to screen coordinates for rendering.
type transform interface {
	ToScreen(canvasX, canvasY float64) (float64, float64)
	ScaleFactor() float64
}

// Render rasterises all committed strokes and the in-progress one into the
// pass. Each segment is filled with small squares at roughly 2px steps; the
// square side follows the canvas scale so strokes zoom with the world.
func (l *Layer) Render(pass render.Pass, tr transform) {
	for _, stroke := range l.strokes {
		renderStroke(pass, tr, stroke)
	}
	if l.current != nil {
		renderStroke(pass, tr, l.current)
	}
}

func renderStroke(pass render.Pass, tr transform, stroke *Stroke) {
	color := render.Color{R: stroke.Color.R, G: stroke.Color.G, B: stroke.Color.B, A: 1.0}
	scaledWidth := LineWidth * tr.ScaleFactor()

	for i := 1; i < len(stroke.Points); i++ {
		x1, y1 := tr.ToScreen(stroke.Points[i-1].X, stroke.Points[i-1].Y)
		x2, y2 := tr.ToScreen(stroke.Points[i].X, stroke.Points[i].Y)

		dx := x2 - x1
		dy := y2 - y1
		length := math.Hypot(dx, dy)
		if length <= 0.1 {
			continue
		}

		segments := int(length/2.0) + 1
		for j := 0; j <= segments; j++ {
			t := float64(j) / float64(segments)
			renderDot(pass, x1+dx*t, y1+dy*t, scaledWidth, color)
		}
	}
}

func renderDot(pass render.Pass, x, y, width float64, color render.Color) {
	pass.AddRect(boxAround(x, y, width), color)
}
