// Copyright (c) 2025 Andrew
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package render implements the per-frame composition pipeline. It is
// deliberately decoupled from the compositor framework: everything here
// emits textured and solid-colour rectangles into a Pass, which the
// backend glue implements against the real GPU render pass.
package render

import "github.com/ThatOtherAndrew/Infinidesk/internal/geo"

// Color is an RGBA colour. Channels are in [0, 1]; textures are blended
// with premultiplied alpha.
type Color struct {
	R, G, B, A float32
}

// BackgroundColor is the canvas clear colour, also used for the corner
// masks that round off window content.
var BackgroundColor = Color{R: 0.18, G: 0.18, B: 0.18, A: 1.0}

// FilterMode selects the texture sampling filter.
type FilterMode int

const (
	FilterBilinear FilterMode = iota
	FilterNearest
)

// Texture is an opaque handle to an uploaded GPU texture.
type Texture interface {
	Size() (width, height int)
}

// Surface is the render-facing side of a client surface: enough to emit
// its texture into a pass.
type Surface interface {
	// Texture returns nil when the surface has no attached buffer yet.
	Texture() Texture
	// Size is the surface size in logical coordinates.
	Size() (width, height int)
	BufferScale() int
	// SourceBox is the viewporter crop; an empty box means the full buffer.
	SourceBox() geo.FBox
}

// TextureOptions describes one textured-rectangle primitive.
type TextureOptions struct {
	Texture Texture
	// SrcBox is the source crop in buffer coordinates. An empty box means
	// the full buffer.
	SrcBox geo.FBox
	DstBox geo.Box
	Alpha  float32
	Filter FilterMode
}

// Pass receives the primitives for one output frame, in paint order.
type Pass interface {
	AddRect(box geo.Box, color Color)
	AddTexture(opts TextureOptions)
}
