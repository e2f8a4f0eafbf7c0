// Copyright (c) 2025 Andrew
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package input implements the pointer interaction state machine: the
// passthrough/move/pan/draw modes, the scroll-pan versus client-scroll
// arbitration, and focus-follows-mouse. It owns no protocol objects; the
// backend glue feeds it events and it talks back through the Seat and
// Cursor interfaces.
package input

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/drawing"
	"github.com/ThatOtherAndrew/Infinidesk/internal/keys"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
	"github.com/sirupsen/logrus"
)

// Mode is the pointer interaction mode.
type Mode int

const (
	ModePassthrough Mode = iota
	ModeMove
	ModePan
	ModeDraw
	// ModeResize is reserved; nothing enters it yet.
	ModeResize
)

// Linux input-event button codes.
const (
	BtnLeft  = 0x110
	BtnRight = 0x111
)

// ScrollPanTimeoutMs ends a scroll-pan gesture after this much scroll
// inactivity.
const ScrollPanTimeoutMs = 100

// Orientation distinguishes the scroll axes.
type Orientation int

const (
	AxisVertical Orientation = iota
	AxisHorizontal
)

// Seat is the pointer-facing slice of the compositor seat.
type Seat interface {
	PointerNotifyButton(timeMs uint32, button uint32, pressed bool)
	PointerNotifyEnter(surface view.Surface, sx, sy float64)
	PointerNotifyMotion(timeMs uint32, sx, sy float64)
	PointerNotifyAxis(timeMs uint32, orientation Orientation, delta float64, deltaDiscrete int32)
	PointerClearFocus()
}

// Cursor exposes the cursor position and image to the machine.
type Cursor interface {
	Position() (x, y float64)
	SetShape(name string)
}

// Machine is the input state machine. Single-threaded: all handlers run on
// the compositor event loop.
type Machine struct {
	Canvas  *canvas.Canvas
	Views   *view.Stack
	Drawing *drawing.Layer
	Seat    Seat
	Cursor  Cursor

	// DragModifier is the modifier that turns pointer drags into window
	// moves and canvas pans.
	DragModifier keys.Modifiers

	mode    Mode
	grabbed *view.View

	dragHeld bool

	scrollPanning     bool
	scrollPanDeadline uint32
}

func NewMachine(c *canvas.Canvas, views *view.Stack, d *drawing.Layer, seat Seat, cursor Cursor) *Machine {
	return &Machine{
		Canvas:       c,
		Views:        views,
		Drawing:      d,
		Seat:         seat,
		Cursor:       cursor,
		DragModifier: keys.ModLogo,
	}
}

// Mode returns the current pointer mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// DragHeld reports whether the window-drag modifier is currently held.
func (m *Machine) DragHeld() bool {
	return m.dragHeld
}

// TrackModifierKey updates the drag-modifier state from the raw key
// stream. Must be called for every key event so the pointer path always
// sees the live modifier state.
func (m *Machine) TrackModifierKey(sym keys.Sym, pressed bool) {
	switch {
	case m.DragModifier == keys.ModLogo && (sym == keys.SymSuperL || sym == keys.SymSuperR):
		m.dragHeld = pressed
	case m.DragModifier == keys.ModAlt && (sym == keys.SymAltL || sym == keys.SymAltR):
		m.dragHeld = pressed
	}
}

// ScrollPanning reports whether a scroll-pan gesture currently owns scroll
// events, expiring it first if its deadline passed.
func (m *Machine) ScrollPanning(nowMs uint32) bool {
	if m.scrollPanning && int32(nowMs-m.scrollPanDeadline) >= 0 {
		m.scrollPanning = false
		logrus.Debugln("Scroll-pan gesture timed out")
	}
	return m.scrollPanning
}

// Tick expires the scroll-pan deadline from the frame clock.
func (m *Machine) Tick(nowMs uint32) {
	m.ScrollPanning(nowMs)
}

// HandleButtonPress arbitrates a pointer button press per the interaction
// rules: drawing-UI clicks, drawing strokes, modified drags, then plain
// clicks that focus, raise and pass through to the client.
func (m *Machine) HandleButtonPress(timeMs uint32, button uint32, nowMs uint32) {
	cx, cy := m.Cursor.Position()

	if m.Drawing.Mode {
		if b := m.Drawing.Panel.ButtonAt(cx, cy); b != drawing.ButtonNone {
			if button == BtnLeft {
				m.Drawing.HandleClick(b)
				logrus.WithField("button", b).Debugln("Drawing UI button clicked")
			}
			return
		}
		if button == BtnLeft {
			m.mode = ModeDraw
			canvasX, canvasY := m.Canvas.ToCanvas(cx, cy)
			m.Drawing.StrokeBegin(canvasX, canvasY)
			return
		}
	}

	v, _, _, _ := m.Views.At(m.Canvas, cx, cy)

	if m.dragHeld {
		if button == BtnLeft && v != nil {
			m.mode = ModeMove
			m.grabbed = v
			canvasX, canvasY := m.Canvas.ToCanvas(cx, cy)
			v.MoveBegin(canvasX, canvasY)
			m.Views.Focus(v, nowMs)
			m.Views.Raise(v)
			return
		}
		if button == BtnRight {
			m.mode = ModePan
			m.Canvas.PanBegin(cx, cy)
			return
		}
	}

	if v != nil {
		m.Views.Focus(v, nowMs)
		m.Views.Raise(v)
	}
	m.Seat.PointerNotifyButton(timeMs, button, true)
}

// HandleButtonRelease ends any interactive mode, or forwards the release.
func (m *Machine) HandleButtonRelease(timeMs uint32, button uint32) {
	switch m.mode {
	case ModeMove:
		if m.grabbed != nil {
			m.grabbed.MoveEnd()
		}
		m.resetMode()
	case ModePan:
		m.Canvas.PanEnd()
		m.resetMode()
	case ModeDraw:
		m.Drawing.StrokeEnd()
		m.resetMode()
	default:
		m.Seat.PointerNotifyButton(timeMs, button, false)
	}
}

// HandleMotion dispatches pointer motion to the active mode, falling back
// to the passthrough behaviour: pointer focus, cursor image, and
// focus-follows-mouse.
func (m *Machine) HandleMotion(timeMs uint32, nowMs uint32) {
	cx, cy := m.Cursor.Position()

	switch m.mode {
	case ModeMove:
		if m.grabbed != nil {
			canvasX, canvasY := m.Canvas.ToCanvas(cx, cy)
			m.grabbed.MoveUpdate(canvasX, canvasY)
		}
		return
	case ModePan:
		m.Canvas.PanUpdate(cx, cy)
		return
	case ModeDraw:
		canvasX, canvasY := m.Canvas.ToCanvas(cx, cy)
		m.Drawing.StrokeAddPoint(canvasX, canvasY)
		return
	case ModeResize:
		return
	}

	if m.Drawing.Mode {
		m.Drawing.Panel.UpdateHover(cx, cy)
	}

	v, surface, sx, sy := m.Views.At(m.Canvas, cx, cy)

	if v == nil {
		m.Cursor.SetShape("default")
	}

	if surface != nil {
		m.Seat.PointerNotifyEnter(surface, sx, sy)
		m.Seat.PointerNotifyMotion(timeMs, sx, sy)

		// Focus-follows-mouse, without raising. Suppressed while a
		// scroll-pan gesture owns the pointer so navigating the canvas
		// does not steal focus.
		if v != nil && !m.ScrollPanning(nowMs) {
			m.Views.Focus(v, nowMs)
		}
	} else {
		m.Seat.PointerClearFocus()
	}
}

// HandleAxis arbitrates scroll events: drag-modifier zoom, gesture-owned
// panning, client scroll over views, and new scroll-pan gestures over
// empty canvas.
func (m *Machine) HandleAxis(timeMs uint32, orientation Orientation, delta float64, deltaDiscrete int32, nowMs uint32) {
	cx, cy := m.Cursor.Position()

	if m.dragHeld {
		if orientation == AxisVertical {
			factor := canvas.ZoomScrollFactor
			if delta >= 0 {
				factor = 1.0 / canvas.ZoomScrollFactor
			}
			m.Canvas.Zoom(factor, cx, cy)
		}
		// Horizontal scroll is ignored while the modifier is held.
		return
	}

	if m.ScrollPanning(nowMs) {
		m.panByScroll(orientation, delta)
		m.scrollPanDeadline = nowMs + ScrollPanTimeoutMs
		return
	}

	v, surface, _, _ := m.Views.At(m.Canvas, cx, cy)
	if v != nil && surface != nil {
		m.Seat.PointerNotifyAxis(timeMs, orientation, delta, deltaDiscrete)
		return
	}

	// Empty canvas: begin a scroll-pan gesture.
	m.scrollPanning = true
	m.scrollPanDeadline = nowMs + ScrollPanTimeoutMs
	m.panByScroll(orientation, delta)
	logrus.Debugln("Scroll-pan gesture started")
}

func (m *Machine) panByScroll(orientation Orientation, delta float64) {
	if orientation == AxisVertical {
		m.Canvas.PanDelta(0, delta)
	} else {
		m.Canvas.PanDelta(delta, 0)
	}
}

// ViewUnmapped cancels any interactive mode tied to a view that just
// unmapped.
func (m *Machine) ViewUnmapped(v *view.View) {
	if m.grabbed == v {
		m.resetMode()
	}
}

func (m *Machine) resetMode() {
	m.mode = ModePassthrough
	m.grabbed = nil
	logrus.Debugln("Cursor mode reset to passthrough")
}
