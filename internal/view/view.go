// Copyright (c) 2025 Andrew
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package view implements the window model of the infinite canvas: views
// positioned in canvas coordinates, the z-ordered stack with its focus and
// raise semantics, interactive moves, the focus and map-in animations, and
// the gather operation.
package view

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/anim"
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
	"github.com/sirupsen/logrus"
)

// Animation durations in milliseconds.
const (
	FocusAnimDurationMs = 200
	MapAnimDurationMs   = 200
)

// MapAnimScaleStart is the scale windows animate in from when mapped.
const MapAnimScaleStart = 0.9

// Surface is an opaque handle to a client surface, owned by the backend
// glue. The view model only passes it through to the seat.
type Surface interface{}

// Toplevel is the backend-side window a view manages. The glue implements
// this on top of the compositor framework's toplevel object.
type Toplevel interface {
	// Geometry returns the content rectangle within the client buffer.
	// X and Y are the geometry offset, non-zero for clients drawing their
	// own shadows.
	Geometry() geo.Box
	Mapped() bool
	Surface() Surface
	// SurfaceAt resolves the surface (including subsurfaces and popups) at
	// buffer-local coordinates, returning surface-local coordinates.
	SurfaceAt(x, y float64) (surface Surface, sx, sy float64, ok bool)
	SetActivated(active bool)
	// SetSize schedules a configure. (0, 0) lets the client pick its size.
	SetSize(width, height int)
	Close()
	Title() string
	AppID() string
	// ForEachSurface walks the surface tree in paint order, yielding each
	// surface with its position relative to the buffer origin. Popups are
	// excluded; they render in their own pipeline stage.
	ForEachSurface(fn func(s render.Surface, sx, sy int))
	// ForEachPopupSurface walks only the popup surfaces.
	ForEachPopupSurface(fn func(s render.Surface, sx, sy int))
}

type focusAnim struct {
	progress float64
	startMs  uint32
	active   bool
}

type mapAnim struct {
	progress     float64
	startMs      uint32
	animatingOut bool
}

// View is one toplevel window on the canvas. X and Y are the canvas
// coordinates of the top-left corner of the content rectangle.
type View struct {
	ID uint32

	X, Y float64

	Toplevel Toplevel

	// Focused mirrors the keyboard focus state for border rendering.
	Focused bool

	focus focusAnim
	entry mapAnim

	// Interactive move state, all in canvas units.
	moving    bool
	grabX     float64
	grabY     float64
	grabViewX float64
	grabViewY float64

	// Last seen geometry offset, for detecting CSD changes on commit.
	lastGeoX int
	lastGeoY int
}

// Stack is the server's ordered view list. Index 0 is the top of the
// z-stack and receives keyboard focus. The stack exclusively owns all list
// mutations.
type Stack struct {
	views  []*View
	nextID uint32

	// OnKeyboardEnter is invoked when a view gains keyboard focus, so the
	// glue can move the seat's keyboard focus to its surface.
	OnKeyboardEnter func(v *View)
}

func NewStack() *Stack {
	return &Stack{nextID: 1}
}

// Add creates a view for the given toplevel and inserts it into the stack.
// The new view starts at the top but is not focused until it maps.
func (s *Stack) Add(t Toplevel) *View {
	v := &View{ID: s.nextID, Toplevel: t}
	s.nextID++
	s.views = append([]*View{v}, s.views...)

	logrus.WithField("id", v.ID).Debugln("Created view")
	return v
}

// Remove takes the view out of the stack. Called from the destroy path.
func (s *Stack) Remove(v *View) {
	for i, other := range s.views {
		if other == v {
			s.views = append(s.views[:i], s.views[i+1:]...)
			logrus.WithField("id", v.ID).Debugln("Removed view")
			return
		}
	}
}

// Len returns the number of views in the stack.
func (s *Stack) Len() int {
	return len(s.views)
}

// Top returns the head of the stack, or nil when empty.
func (s *Stack) Top() *View {
	if len(s.views) == 0 {
		return nil
	}
	return s.views[0]
}

// Focused returns the currently focused view, or nil.
func (s *Stack) Focused() *View {
	for _, v := range s.views {
		if v.Focused {
			return v
		}
	}
	return nil
}

// Views returns the stack front-to-back. Callers must not mutate the
// returned slice.
func (s *Stack) Views() []*View {
	return s.views
}

// ForEachBackToFront visits views in reverse z-order, the paint order of
// the composition pipeline.
func (s *Stack) ForEachBackToFront(fn func(v *View)) {
	for i := len(s.views) - 1; i >= 0; i-- {
		fn(s.views[i])
	}
}

// Focus gives v keyboard focus and starts the focus animations. A no-op if
// v's surface already holds focus. Focus does not raise; callers wanting
// click-to-focus behaviour combine it with Raise.
func (s *Stack) Focus(v *View, nowMs uint32) {
	if v == nil {
		return
	}

	prev := s.Focused()
	if prev != nil && prev.Toplevel.Surface() == v.Toplevel.Surface() {
		// Don't re-focus an already focused surface.
		return
	}

	if prev != nil {
		prev.Focused = false
		prev.focus.startMs = nowMs
		prev.focus.active = true
		prev.Toplevel.SetActivated(false)
	}

	v.Focused = true
	v.focus.startMs = nowMs
	v.focus.active = true
	v.Toplevel.SetActivated(true)

	if s.OnKeyboardEnter != nil {
		s.OnKeyboardEnter(v)
	}

	logrus.WithField("id", v.ID).Debugln("Focused view")
}

// Raise moves v to the head of the stack (top of the z-order).
func (s *Stack) Raise(v *View) {
	if v == nil {
		return
	}
	for i, other := range s.views {
		if other == v {
			s.views = append(s.views[:i], s.views[i+1:]...)
			s.views = append([]*View{v}, s.views...)
			logrus.WithField("id", v.ID).Debugln("Raised view")
			return
		}
	}
}

// PlaceMapped positions the view so its content centre sits at the centre
// of the output's usable area (converted to canvas units) and starts the
// map-in animation. Called when the client maps.
func (v *View) PlaceMapped(c *canvas.Canvas, usable geo.Box, nowMs uint32) {
	screenCentreX := float64(usable.X) + float64(usable.Width)/2
	screenCentreY := float64(usable.Y) + float64(usable.Height)/2
	centreX, centreY := c.ToCanvas(screenCentreX, screenCentreY)

	g := v.Toplevel.Geometry()
	v.X = centreX - float64(g.Width)/2
	v.Y = centreY - float64(g.Height)/2

	v.entry.progress = 0
	v.entry.startMs = nowMs
	v.entry.animatingOut = false

	logrus.WithFields(logrus.Fields{
		"id": v.ID,
		"x":  v.X,
		"y":  v.Y,
	}).Debugln("Placed mapped view in usable area")
}

// HandleUnmap clears interactive and animation state when the client
// unmaps. There is no exit animation; the window disappears immediately.
func (v *View) HandleUnmap() {
	v.MoveEnd()
	v.entry.progress = 0
	v.entry.animatingOut = false
}

// HandleCommit reacts to a client commit: the initial commit answers with
// a zero-sized configure so the client picks its own size, and geometry
// offset changes (CSD shadows reported late) are tracked. Returns true if
// the geometry offset changed.
func (v *View) HandleCommit(initial bool) bool {
	if initial {
		v.Toplevel.SetSize(0, 0)
		return false
	}
	if !v.Toplevel.Mapped() {
		return false
	}
	g := v.Toplevel.Geometry()
	if g.X != v.lastGeoX || g.Y != v.lastGeoY {
		v.lastGeoX = g.X
		v.lastGeoY = g.Y
		return true
	}
	return false
}

// MoveBegin starts an interactive move. The cursor position is in canvas
// units.
func (v *View) MoveBegin(cursorX, cursorY float64) {
	v.moving = true
	v.grabX = cursorX
	v.grabY = cursorY
	v.grabViewX = v.X
	v.grabViewY = v.Y

	logrus.WithField("id", v.ID).Debugln("View move started")
}

// MoveUpdate repositions the view by the cursor delta since the grab.
func (v *View) MoveUpdate(cursorX, cursorY float64) {
	if !v.moving {
		return
	}
	v.X = v.grabViewX + (cursorX - v.grabX)
	v.Y = v.grabViewY + (cursorY - v.grabY)
}

// MoveEnd finishes an interactive move. Idempotent.
func (v *View) MoveEnd() {
	if v.moving {
		logrus.WithFields(logrus.Fields{
			"id": v.ID,
			"x":  v.X,
			"y":  v.Y,
		}).Debugln("View move ended")
	}
	v.moving = false
}

// Moving reports whether an interactive move is in progress.
func (v *View) Moving() bool {
	return v.moving
}

// SetPosition places the view's content top-left at the given canvas
// coordinates.
func (v *View) SetPosition(x, y float64) {
	v.X = x
	v.Y = y
}

// Close asks the client to close.
func (v *View) Close() {
	v.Toplevel.Close()
}

// Centre returns the canvas coordinates of the content centre.
func (v *View) Centre() (float64, float64) {
	g := v.Toplevel.Geometry()
	return v.X + float64(g.Width)/2, v.Y + float64(g.Height)/2
}

// FocusProgress is the focus animation value: 0 fully unfocused, 1 fully
// focused.
func (v *View) FocusProgress() float64 {
	return v.focus.progress
}

// MapProgress is the map-in animation value in [0, 1].
func (v *View) MapProgress() float64 {
	return v.entry.progress
}

// FocusAnimActive reports whether the focus animation is running.
func (v *View) FocusAnimActive() bool {
	return v.focus.active
}

// UpdateAnimations advances the focus and map animations of every view.
func (s *Stack) UpdateAnimations(nowMs uint32) {
	for _, v := range s.views {
		if v.focus.active {
			t := anim.Progress(nowMs, v.focus.startMs, FocusAnimDurationMs)
			if t >= 1.0 {
				if v.Focused {
					v.focus.progress = 1.0
				} else {
					v.focus.progress = 0.0
				}
				v.focus.active = false
			} else {
				eased := anim.EaseOutCubic(t)
				if v.Focused {
					v.focus.progress = eased
				} else {
					v.focus.progress = 1.0 - eased
				}
			}
		}

		if v.entry.progress < 1.0 && !v.entry.animatingOut {
			t := anim.Progress(nowMs, v.entry.startMs, MapAnimDurationMs)
			if t >= 1.0 {
				v.entry.progress = 1.0
			} else {
				v.entry.progress = anim.EaseOutCubic(t)
			}
		}
	}
}

// AnyAnimating reports whether any view animation is still running, so the
// composition pipeline can request an immediate next frame.
func (s *Stack) AnyAnimating() bool {
	for _, v := range s.views {
		if v.focus.active {
			return true
		}
		if v.entry.progress < 1.0 && !v.entry.animatingOut {
			return true
		}
	}
	return false
}
