// Copyright (c) 2025 Andrew
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package canvas implements the infinite canvas viewport: the coordinate
// transforms between canvas and screen space, pan and zoom gestures, and
// the animated viewport snap.
//
// The canvas coordinate system is unbounded, with (0, 0) at the initial
// viewport origin, positive X to the right and positive Y downward. The
// viewport is the top-left corner of the visible region in canvas units;
// the transform to screen space is
//
//	screen = (canvas - viewport) * scale
package canvas

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/anim"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/sirupsen/logrus"
)

// Zoom limits.
const (
	ZoomMin = 0.1
	ZoomMax = 4.0
)

// ZoomScrollFactor is the zoom applied per scroll-wheel notch.
const ZoomScrollFactor = 1.03

// SnapDurationMs is the length of the viewport snap animation.
const SnapDurationMs = 800

type Canvas struct {
	// Viewport top-left corner in canvas coordinates.
	ViewportX float64
	ViewportY float64

	// Zoom level. 1.0 = 100%, always within [ZoomMin, ZoomMax].
	Scale float64

	// Motion-driven pan gesture state.
	panning          bool
	panStartCursor   geo.Vec
	panStartViewport geo.Vec

	// Viewport snap animation state.
	snapActive  bool
	snapStartMs uint32
	snapStart   geo.Vec
	snapTarget  geo.Vec
}

func New() *Canvas {
	logrus.Debugln("Canvas initialised at origin with scale 1.0")
	return &Canvas{Scale: 1.0}
}

// ToScreen converts canvas coordinates to screen coordinates.
func (c *Canvas) ToScreen(canvasX, canvasY float64) (float64, float64) {
	return (canvasX - c.ViewportX) * c.Scale, (canvasY - c.ViewportY) * c.Scale
}

// ToCanvas converts screen coordinates to canvas coordinates.
func (c *Canvas) ToCanvas(screenX, screenY float64) (float64, float64) {
	return screenX/c.Scale + c.ViewportX, screenY/c.Scale + c.ViewportY
}

// PanBegin starts a motion-driven pan gesture at the given screen cursor
// position.
func (c *Canvas) PanBegin(cursorX, cursorY float64) {
	c.panning = true
	c.panStartCursor = geo.Vec{X: cursorX, Y: cursorY}
	c.panStartViewport = geo.Vec{X: c.ViewportX, Y: c.ViewportY}

	logrus.WithFields(logrus.Fields{
		"cursor":   c.panStartCursor,
		"viewport": c.panStartViewport,
	}).Debugln("Pan started")
}

// PanUpdate moves the viewport as the cursor moves during a pan gesture.
// Dragging moves the canvas under the cursor, so the viewport moves in the
// opposite direction.
func (c *Canvas) PanUpdate(cursorX, cursorY float64) {
	if !c.panning {
		return
	}
	c.ViewportX = c.panStartViewport.X - (cursorX-c.panStartCursor.X)/c.Scale
	c.ViewportY = c.panStartViewport.Y - (cursorY-c.panStartCursor.Y)/c.Scale
}

// PanEnd finishes a pan gesture. Safe to call when no gesture is active.
func (c *Canvas) PanEnd() {
	if c.panning {
		logrus.WithFields(logrus.Fields{
			"viewport_x": c.ViewportX,
			"viewport_y": c.ViewportY,
		}).Debugln("Pan ended")
	}
	c.panning = false
}

// Panning reports whether a motion-driven pan gesture is active.
func (c *Canvas) Panning() bool {
	return c.panning
}

// PanDelta pans the viewport by a screen-pixel delta, applied directly to
// the viewport. Used for scroll-driven panning.
func (c *Canvas) PanDelta(deltaX, deltaY float64) {
	c.ViewportX += deltaX / c.Scale
	c.ViewportY += deltaY / c.Scale
}

// Zoom scales the canvas by factor, keeping the screen-space focus point
// stationary. A factor > 1 zooms in. The resulting scale is clamped to
// [ZoomMin, ZoomMax]; if clamping leaves the scale unchanged the call is a
// no-op.
func (c *Canvas) Zoom(factor, focusX, focusY float64) {
	newScale := c.Scale * factor
	if newScale < ZoomMin {
		newScale = ZoomMin
	} else if newScale > ZoomMax {
		newScale = ZoomMax
	}
	if newScale == c.Scale {
		return
	}

	// Canvas point under the focus before the scale change.
	focusCanvasX, focusCanvasY := c.ToCanvas(focusX, focusY)

	c.Scale = newScale

	// Keep the focus point at the same screen position:
	// focus = (canvas_focus - viewport) * scale
	// => viewport = canvas_focus - focus / scale
	c.ViewportX = focusCanvasX - focusX/c.Scale
	c.ViewportY = focusCanvasY - focusY/c.Scale

	logrus.WithFields(logrus.Fields{
		"scale":      c.Scale,
		"viewport_x": c.ViewportX,
		"viewport_y": c.ViewportY,
	}).Debugln("Zoomed")
}

// SetScale zooms so that the resulting scale equals the given value,
// focused on the given screen point.
func (c *Canvas) SetScale(scale, focusX, focusY float64) {
	c.Zoom(scale/c.Scale, focusX, focusY)
}

// ViewportCentre returns the canvas coordinates at the centre of the
// viewport for an output of the given logical size.
func (c *Canvas) ViewportCentre(outputWidth, outputHeight int) (float64, float64) {
	return c.ToCanvas(float64(outputWidth)/2, float64(outputHeight)/2)
}

// SnapTo starts an animated pan that places the given canvas point at the
// centre of an output of the given logical size.
func (c *Canvas) SnapTo(centreX, centreY float64, outputWidth, outputHeight int, nowMs uint32) {
	c.snapStart = geo.Vec{X: c.ViewportX, Y: c.ViewportY}
	c.snapTarget = geo.Vec{
		X: centreX - float64(outputWidth)/2/c.Scale,
		Y: centreY - float64(outputHeight)/2/c.Scale,
	}
	c.snapStartMs = nowMs
	c.snapActive = true

	logrus.WithFields(logrus.Fields{
		"target_x": c.snapTarget.X,
		"target_y": c.snapTarget.Y,
	}).Debugln("Viewport snap started")
}

// Tick advances the snap animation. Returns true while the animation is
// running so the caller can schedule another frame.
func (c *Canvas) Tick(nowMs uint32) bool {
	if !c.snapActive {
		return false
	}

	t := anim.Progress(nowMs, c.snapStartMs, SnapDurationMs)
	eased := anim.EaseOutCubic(t)
	c.ViewportX = anim.Lerp(c.snapStart.X, c.snapTarget.X, eased)
	c.ViewportY = anim.Lerp(c.snapStart.Y, c.snapTarget.Y, eased)

	if t >= 1.0 {
		c.snapActive = false
		logrus.Debugln("Viewport snap finished")
	}
	return c.snapActive
}

// Snapping reports whether the snap animation is running.
func (c *Canvas) Snapping() bool {
	return c.snapActive
}
