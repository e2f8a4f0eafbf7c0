package main

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/anim"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
)

/* wlrToplevel implements view.Toplevel on a wlroots xdg-toplevel. It is
 * the only place that converts between the binding's surface types and
 * the view model's interfaces. */
type wlrToplevel struct {
	server   *Server
	toplevel wlroots.XDGTopLevel
	view     *view.View
}

func (t *wlrToplevel) Geometry() geo.Box {
	box := t.toplevel.Base().Geometry()
	return geo.Box{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}
}

func (t *wlrToplevel) Mapped() bool {
	return t.toplevel.Base().Surface().Mapped()
}

func (t *wlrToplevel) Surface() view.Surface {
	return t.toplevel.Base().Surface()
}

func (t *wlrToplevel) SurfaceAt(x, y float64) (view.Surface, float64, float64, bool) {
	surface, sx, sy := t.toplevel.Base().SurfaceAt(x, y)
	if surface.Nil() {
		return nil, 0, 0, false
	}
	return surface, sx, sy, true
}

func (t *wlrToplevel) SetActivated(active bool) {
	t.toplevel.SetActivated(active)
}

func (t *wlrToplevel) SetSize(width, height int) {
	t.toplevel.Base().TopLevelSetSize(uint32(width), uint32(height))
}

func (t *wlrToplevel) Close() {
	t.toplevel.SendClose()
}

func (t *wlrToplevel) Title() string {
	return t.toplevel.Title()
}

func (t *wlrToplevel) AppID() string {
	return t.toplevel.AppID()
}

func (t *wlrToplevel) ForEachSurface(fn func(s render.Surface, sx, sy int)) {
	t.toplevel.Base().ForEachSurface(func(surface wlroots.Surface, sx int, sy int) {
		fn(&wlrSurface{surface: surface}, sx, sy)
	})
}

func (t *wlrToplevel) ForEachPopupSurface(fn func(s render.Surface, sx, sy int)) {
	t.toplevel.Base().ForEachPopupSurface(func(surface wlroots.Surface, sx int, sy int) {
		fn(&wlrSurface{surface: surface}, sx, sy)
	})
}

/* wlrSurface implements render.Surface on a wlroots surface. */
type wlrSurface struct {
	surface wlroots.Surface
}

func (s *wlrSurface) Texture() render.Texture {
	texture := s.surface.Texture()
	if texture.Nil() {
		return nil
	}
	return &wlrTexture{texture: texture}
}

func (s *wlrSurface) Size() (int, int) {
	current := s.surface.Current()
	return current.Width(), current.Height()
}

func (s *wlrSurface) BufferScale() int {
	return s.surface.Current().Scale()
}

func (s *wlrSurface) SourceBox() geo.FBox {
	box := s.surface.BufferSourceBox()
	return geo.FBox{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}
}

type wlrTexture struct {
	texture wlroots.Texture
}

func (t *wlrTexture) Size() (int, int) {
	return t.texture.Width(), t.texture.Height()
}

func (server *Server) handleNewXDGSurface(xdgSurface wlroots.XDGSurface) {
	/* Raised for both toplevels (application windows) and popups. */
	if xdgSurface.Role() == wlroots.XDGSurfaceRolePopup {
		parent := xdgSurface.Popup().Parent()
		if parent.Nil() {
			logrus.Errorln("Popup has no parent surface")
			return
		}
		/* The scene tracks popup positioning relative to the parent. */
		xdgSurface.SetData(parent.XDGSurface().SceneTree().NewXDGSurface(xdgSurface))
		return
	}
	if xdgSurface.Role() != wlroots.XDGSurfaceRoleTopLevel {
		return
	}

	toplevel := xdgSurface.TopLevel()
	logrus.WithFields(logrus.Fields{
		"title":  toplevel.Title(),
		"app-id": toplevel.AppID(),
	}).Infoln("New toplevel")

	xdgSurface.SetData(server.scene.Tree().NewXDGSurface(toplevel.Base()))

	adapter := &wlrToplevel{server: server, toplevel: toplevel}
	adapter.view = server.views.Add(adapter)

	xdgSurface.OnMap(func(surface wlroots.XDGSurface) {
		server.handleMapToplevel(adapter)
	})
	xdgSurface.OnUnmap(func(surface wlroots.XDGSurface) {
		server.handleUnmapToplevel(adapter)
	})
	xdgSurface.OnDestroy(func(surface wlroots.XDGSurface) {
		server.handleDestroyToplevel(adapter)
	})
	xdgSurface.OnCommit(func(surface wlroots.XDGSurface) {
		server.handleCommitToplevel(adapter, surface)
	})

	toplevel.OnRequestMove(func(client wlroots.SeatClient, serial uint32) {
		/* Client-initiated moves are replaced by the Super+drag gesture. */
		logrus.Debugln("Client requested move (use Super+drag)")
	})
	toplevel.OnRequestResize(func(client wlroots.SeatClient, serial uint32, edges wlroots.Edges) {
		logrus.Debugln("Client requested resize (not implemented)")
	})
	toplevel.OnSetTitle(func(topLevel wlroots.XDGTopLevel) {
		server.switcher.MarkDirty()
	})
	toplevel.OnSetAppID(func(topLevel wlroots.XDGTopLevel) {
		server.switcher.MarkDirty()
	})
}

func (server *Server) handleMapToplevel(adapter *wlrToplevel) {
	now := anim.NowMs()

	/* Centre the window in the usable area, which already excludes the
	 * exclusive zones of panels and docks. Without an output yet, the
	 * view is centred on the viewport's top-left corner. */
	usable := geo.Box{}
	if output := server.primaryOutput(); output != nil {
		usable = output.usableArea
	}
	adapter.view.PlaceMapped(server.canvas, usable, now)

	server.views.Focus(adapter.view, now)
	server.views.Raise(adapter.view)
	server.scheduleFrame()
}

func (server *Server) handleUnmapToplevel(adapter *wlrToplevel) {
	/* A grabbed view that unmaps cancels the interactive mode. */
	server.machine.ViewUnmapped(adapter.view)
	adapter.view.HandleUnmap()
	if server.switcher.Active() {
		server.switcher.Cancel()
	}
}

func (server *Server) handleDestroyToplevel(adapter *wlrToplevel) {
	logrus.WithField("id", adapter.view.ID).Debugln("Toplevel destroyed")
	server.views.Remove(adapter.view)
}

func (server *Server) handleCommitToplevel(adapter *wlrToplevel, xdgSurface wlroots.XDGSurface) {
	if adapter.view.HandleCommit(xdgSurface.InitialCommit()) {
		server.scheduleFrame()
	}
}
