// Copyright (c) 2025 Andrew
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package geo holds the small geometry types shared by every component:
// integer pixel boxes, float source boxes and 2D vectors.
package geo

import "math"

// Box is an axis-aligned rectangle in integer pixels.
type Box struct {
	X, Y, Width, Height int
}

// FBox is an axis-aligned rectangle with float coordinates, used for
// texture source boxes (viewporter cropping).
type FBox struct {
	X, Y, Width, Height float64
}

// Vec is a point or displacement in canvas or screen space.
type Vec struct {
	X, Y float64
}

func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Contains reports whether the point (x, y) lies inside the box, with the
// usual half-open convention [X, X+Width) x [Y, Y+Height).
func (b Box) Contains(x, y float64) bool {
	return x >= float64(b.X) && x < float64(b.X+b.Width) &&
		y >= float64(b.Y) && y < float64(b.Y+b.Height)
}

// ContainsBox reports whether inner lies entirely within b.
func (b Box) ContainsBox(inner Box) bool {
	return inner.X >= b.X && inner.Y >= b.Y &&
		inner.X+inner.Width <= b.X+b.Width &&
		inner.Y+inner.Height <= b.Y+b.Height
}

func (b FBox) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

func (v Vec) Length() float64 { return math.Hypot(v.X, v.Y) }
