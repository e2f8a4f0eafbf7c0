package main

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/anim"
	"github.com/ThatOtherAndrew/Infinidesk/internal/input"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
	"github.com/swaywm/go-wlroots/wlroots"
)

/* seatAdapter implements input.Seat on the wlroots seat. */
type seatAdapter struct {
	server *Server
}

func (a *seatAdapter) PointerNotifyButton(timeMs uint32, button uint32, pressed bool) {
	state := wlroots.ButtonStateReleased
	if pressed {
		state = wlroots.ButtonStatePressed
	}
	a.server.seat.NotifyPointerButton(timeMs, button, state)
}

func (a *seatAdapter) PointerNotifyEnter(surface view.Surface, sx, sy float64) {
	wlrSurface, ok := surface.(wlroots.Surface)
	if !ok {
		return
	}
	a.server.seat.NotifyPointerEnter(wlrSurface, sx, sy)
}

func (a *seatAdapter) PointerNotifyMotion(timeMs uint32, sx, sy float64) {
	a.server.seat.NotifyPointerMotion(timeMs, sx, sy)
}

func (a *seatAdapter) PointerNotifyAxis(timeMs uint32, orientation input.Orientation, delta float64, deltaDiscrete int32) {
	wlrOrientation := wlroots.AxisOrientationVertical
	if orientation == input.AxisHorizontal {
		wlrOrientation = wlroots.AxisOrientationHorizontal
	}
	a.server.seat.NotifyPointerAxis(timeMs, wlrOrientation, delta, deltaDiscrete, wlroots.AxisSourceWheel)
}

func (a *seatAdapter) PointerClearFocus() {
	a.server.seat.ClearPointerFocus()
}

/* cursorAdapter implements input.Cursor on the wlroots cursor. */
type cursorAdapter struct {
	server *Server
}

func (a *cursorAdapter) Position() (float64, float64) {
	return a.server.cursor.X(), a.server.cursor.Y()
}

func (a *cursorAdapter) SetShape(name string) {
	a.server.cursor.SetXCursor(a.server.cursorMgr, name)
}

func (server *Server) handleCursorMotion(dev wlroots.InputDevice, timeMs uint32, dx float64, dy float64) {
	/* Relative pointer motion: the cursor only moves when told to. It
	 * constrains motion to the output layout for us. */
	server.cursor.Move(dev, dx, dy)
	server.machine.HandleMotion(timeMs, anim.NowMs())
}

func (server *Server) handleCursorMotionAbsolute(dev wlroots.InputDevice, timeMs uint32, x float64, y float64) {
	/* Absolute motion, emitted e.g. when running nested under another
	 * compositor: warp the cursor to the event position. */
	server.cursor.WarpAbsolute(dev, x, y)
	server.machine.HandleMotion(timeMs, anim.NowMs())
}

func (server *Server) handleCursorButton(_ wlroots.InputDevice, timeMs uint32, button uint32, state wlroots.ButtonState) {
	if state == wlroots.ButtonStatePressed {
		server.machine.HandleButtonPress(timeMs, button, anim.NowMs())
	} else {
		server.machine.HandleButtonRelease(timeMs, button)
	}
}

func (server *Server) handleCursorAxis(_ wlroots.InputDevice, timeMs uint32, source wlroots.AxisSource, orientation wlroots.AxisOrientation, delta float64, deltaDiscrete int32) {
	machineOrientation := input.AxisVertical
	if orientation == wlroots.AxisOrientationHorizontal {
		machineOrientation = input.AxisHorizontal
	}
	server.machine.HandleAxis(timeMs, machineOrientation, delta, deltaDiscrete, anim.NowMs())
}

func (server *Server) handleCursorFrame() {
	/* Frame events group pointer events that belong together. */
	server.seat.NotifyPointerFrame()
}

func (server *Server) handleSetCursorRequest(client wlroots.SeatClient, surface wlroots.Surface, _ uint32, hotspotX int32, hotspotY int32) {
	/* Any client may send this; only honour the one with pointer focus. */
	focusedClient := server.seat.PointerState().FocusedClient()
	if focusedClient == client {
		server.cursor.SetSurface(surface, hotspotX, hotspotY)
	}
}
