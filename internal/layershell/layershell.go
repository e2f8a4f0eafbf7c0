// Copyright (c) 2025 Andrew
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package layershell implements the wlr-layer-shell arrangement algorithm:
// positioning surfaces from their anchors and margins, carving exclusive
// zones out of the usable area, and producing the configure sizes sent
// back to clients.
package layershell

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/sirupsen/logrus"
)

// Layer is the z-level a surface is assigned to.
type Layer int

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
	LayerCount
)

// ClampLayer maps out-of-range layer indices to LayerTop.
func ClampLayer(l Layer) Layer {
	if l < LayerBackground || l >= LayerCount {
		return LayerTop
	}
	return l
}

// Anchor is the edge bitmask from the layer-shell protocol.
type Anchor uint32

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight
)

// Margins are the per-edge margins requested by the client.
type Margins struct {
	Top, Right, Bottom, Left int
}

// State is the committed layer-surface state the arranger works from.
type State struct {
	Layer         Layer
	Anchors       Anchor
	Margins       Margins
	DesiredWidth  int
	DesiredHeight int
	// ExclusiveZone > 0 reserves a strip at the anchored edge; 0 and
	// negative values reserve nothing.
	ExclusiveZone int
}

// Surface is one layer surface as tracked per output.
type Surface struct {
	State  State
	Mapped bool

	// Position and Size are assigned by Arrange, in output-local screen
	// coordinates.
	Position geo.Vec
	Size     geo.Box
}

// A surface anchored to both opposing edges of an axis stretches along
// that axis.
func (s State) anchoredHorizontally() bool {
	return s.Anchors&AnchorLeft != 0 && s.Anchors&AnchorRight != 0
}

func (s State) anchoredVertically() bool {
	return s.Anchors&AnchorTop != 0 && s.Anchors&AnchorBottom != 0
}

// arrangeOne positions a single surface within the full area and shrinks
// the usable area by its exclusive zone.
func arrangeOne(surface *Surface, fullArea geo.Box, usableArea *geo.Box) {
	s := surface.State

	// Resolve the configure size: a zero desired size on a stretched axis
	// fills the area between the margins.
	width := s.DesiredWidth
	if width == 0 && s.anchoredHorizontally() {
		width = fullArea.Width - s.Margins.Left - s.Margins.Right
	}
	height := s.DesiredHeight
	if height == 0 && s.anchoredVertically() {
		height = fullArea.Height - s.Margins.Top - s.Margins.Bottom
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	// Horizontal placement.
	var x int
	switch {
	case s.anchoredHorizontally():
		x = fullArea.X + s.Margins.Left
	case s.Anchors&AnchorLeft != 0:
		x = fullArea.X + s.Margins.Left
	case s.Anchors&AnchorRight != 0:
		x = fullArea.X + fullArea.Width - width - s.Margins.Right
	default:
		x = fullArea.X + (fullArea.Width-width)/2
	}

	// Vertical placement.
	var y int
	switch {
	case s.anchoredVertically():
		y = fullArea.Y + s.Margins.Top
	case s.Anchors&AnchorTop != 0:
		y = fullArea.Y + s.Margins.Top
	case s.Anchors&AnchorBottom != 0:
		y = fullArea.Y + fullArea.Height - height - s.Margins.Bottom
	default:
		y = fullArea.Y + (fullArea.Height-height)/2
	}

	surface.Position = geo.Vec{X: float64(x), Y: float64(y)}
	surface.Size = geo.Box{X: x, Y: y, Width: width, Height: height}

	if s.ExclusiveZone <= 0 {
		return
	}

	// Reduce the usable area along the anchored edge. A surface anchored
	// to opposing edges reserves along the edge given by the single
	// remaining anchor. A corner anchor reserves along its top or bottom
	// edge; a surface anchored to all four edges or to none reserves
	// nothing.
	zone := s.ExclusiveZone
	switch {
	case s.Anchors&AnchorTop != 0 && s.Anchors&AnchorBottom == 0:
		take := zone + s.Margins.Top
		usableArea.Y += take
		usableArea.Height -= take
	case s.Anchors&AnchorBottom != 0 && s.Anchors&AnchorTop == 0:
		usableArea.Height -= zone + s.Margins.Bottom
	case s.Anchors&AnchorLeft != 0 && s.Anchors&AnchorRight == 0:
		take := zone + s.Margins.Left
		usableArea.X += take
		usableArea.Width -= take
	case s.Anchors&AnchorRight != 0 && s.Anchors&AnchorLeft == 0:
		usableArea.Width -= zone + s.Margins.Right
	}
}

// Arrange lays out all surfaces of an output, iterating layers in the
// fixed order background, bottom, top, overlay. It returns the usable
// area left after all exclusive zones. The caller sends each surface a
// configure with its assigned Size.
func Arrange(layers *[LayerCount][]*Surface, fullArea geo.Box) geo.Box {
	usable := fullArea

	for layer := LayerBackground; layer < LayerCount; layer++ {
		for _, surface := range layers[layer] {
			arrangeOne(surface, fullArea, &usable)
		}
	}

	logrus.WithFields(logrus.Fields{
		"x":      usable.X,
		"y":      usable.Y,
		"width":  usable.Width,
		"height": usable.Height,
	}).Debugln("Arranged layer surfaces")
	return usable
}
