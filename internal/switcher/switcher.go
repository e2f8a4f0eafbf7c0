// Copyright (c) 2025 Andrew
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package switcher implements the spatial alt-tab overlay: cycling through
// the view stack and, on confirm, snapping the viewport to the chosen
// window. The overlay is rasterised into an offscreen bitmap at physical
// resolution and blitted once per frame at screen centre.
package switcher

import (
	"image"

	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
	"github.com/sirupsen/logrus"
)

// Uploader turns the rasterised overlay into a GPU texture and releases
// it again when the switcher deactivates.
type Uploader interface {
	Upload(img *image.RGBA) (render.Texture, error)
	Release(t render.Texture)
}

type Switcher struct {
	Views    *view.Stack
	Uploader Uploader

	active   bool
	selected *view.View
	dirty    bool

	texture render.Texture
}

func New(views *view.Stack, uploader Uploader) *Switcher {
	return &Switcher{Views: views, Uploader: uploader}
}

// Active reports whether the overlay is showing.
func (s *Switcher) Active() bool {
	return s.active
}

// Selected returns the currently highlighted view, or nil when inactive.
func (s *Switcher) Selected() *view.View {
	return s.selected
}

// Start activates the switcher. With fewer than one view it does nothing;
// the initial selection is the second view in z-order, since the first is
// already focused.
func (s *Switcher) Start() {
	views := s.Views.Views()
	if len(views) == 0 {
		return
	}

	s.active = true
	if len(views) >= 2 {
		s.selected = views[1]
	} else {
		s.selected = views[0]
	}
	s.dirty = true

	logrus.WithField("selected", s.selected.ID).Debugln("Switcher started")
}

// Next advances the selection, wrapping around.
func (s *Switcher) Next() {
	if !s.active {
		return
	}
	s.selected = s.step(1)
	s.dirty = true
}

// Prev moves the selection backwards, wrapping around.
func (s *Switcher) Prev() {
	if !s.active {
		return
	}
	s.selected = s.step(-1)
	s.dirty = true
}

func (s *Switcher) step(delta int) *view.View {
	views := s.Views.Views()
	if len(views) == 0 {
		return nil
	}
	index := 0
	for i, v := range views {
		if v == s.selected {
			index = i
			break
		}
	}
	index = (index + delta + len(views)) % len(views)
	return views[index]
}

// Confirm snaps the viewport so the selected view's centre lands at screen
// centre, focuses and raises it, then deactivates.
func (s *Switcher) Confirm(c *canvas.Canvas, outputWidth, outputHeight int, nowMs uint32) {
	if !s.active {
		return
	}
	if s.selected != nil {
		s.Views.SnapToView(s.selected, c, outputWidth, outputHeight, nowMs)
		logrus.WithField("selected", s.selected.ID).Debugln("Switcher confirmed")
	}
	s.deactivate()
}

// Cancel dismisses the overlay without changing focus.
func (s *Switcher) Cancel() {
	if !s.active {
		return
	}
	s.deactivate()
	logrus.Debugln("Switcher cancelled")
}

// MarkDirty forces the overlay to re-rasterise on the next frame. Called
// when a view's title changes while the switcher is up.
func (s *Switcher) MarkDirty() {
	if s.active {
		s.dirty = true
	}
}

func (s *Switcher) deactivate() {
	s.active = false
	s.selected = nil
	s.releaseTexture()
}

func (s *Switcher) releaseTexture() {
	if s.texture != nil && s.Uploader != nil {
		s.Uploader.Release(s.texture)
	}
	s.texture = nil
}

// Render blits the overlay centred on the output. Output dimensions are in
// physical pixels; the bitmap is rasterised at physical resolution
// whenever it is dirty.
func (s *Switcher) Render(pass render.Pass, outputWidth, outputHeight int, outputScale float64) {
	if !s.active {
		return
	}

	if s.dirty || s.texture == nil {
		img := s.rasterise(outputScale)
		if img == nil {
			return
		}
		s.releaseTexture()
		texture, err := s.Uploader.Upload(img)
		if err != nil {
			logrus.WithError(err).Errorln("Failed to upload switcher overlay")
			return
		}
		s.texture = texture
		s.dirty = false
	}

	w, h := s.texture.Size()
	pass.AddTexture(render.TextureOptions{
		Texture: s.texture,
		DstBox: geo.Box{
			X:      (outputWidth - w) / 2,
			Y:      (outputHeight - h) / 2,
			Width:  w,
			Height: h,
		},
		Alpha: 1.0,
	})
}
