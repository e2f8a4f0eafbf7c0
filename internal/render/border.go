package render

import "math"

// Window decoration constants, in canvas units at scale 1.
const (
	BorderWidth  = 3
	CornerRadius = 10
)

// Border colours.
var (
	BorderFocused   = Color{R: 0.4, G: 0.6, B: 0.9, A: 1.0}
	BorderUnfocused = Color{R: 0.3, G: 0.3, B: 0.35, A: 1.0}
)

// Span is a horizontal run of pixels within a corner region, produced by
// the CPU rasterisation of rounded corners.
type Span struct {
	Start, Width int
}

// cornerBorderSpan computes the border span for one row of a rounded
// corner: the annulus between the outer circle of radius outerR and the
// inner circle of radius outerR-borderWidth, sampled at the row centre.
func cornerBorderSpan(row, radius, borderWidth int) Span {
	outerR := float64(radius)
	innerR := float64(radius - borderWidth)
	if innerR < 0 {
		innerR = 0
	}

	dy := float64(radius) - float64(row) - 0.5

	var outerExtent float64
	if dy <= outerR {
		outerExtent = math.Sqrt(outerR*outerR - dy*dy)
	}
	var innerExtent float64
	if dy <= innerR {
		innerExtent = math.Sqrt(innerR*innerR - dy*dy)
	}

	segStart := int(math.Floor(float64(radius) - outerExtent))
	segEnd := int(math.Ceil(float64(radius) - innerExtent))
	if segStart < 0 {
		segStart = 0
	}
	if segEnd > radius {
		segEnd = radius
	}
	if segEnd < segStart {
		segEnd = segStart
	}
	return Span{Start: segStart, Width: segEnd - segStart}
}

// cornerMaskSpan computes, for one row of a corner of the given radius, the
// width of the region outside the arc that has to be painted over with the
// background colour.
func cornerMaskSpan(row, radius int) int {
	r := float64(radius)
	dy := r - float64(row) - 0.5
	var dx float64
	if dy <= r {
		dx = math.Sqrt(r*r - dy*dy)
	}
	return int(math.Floor(r - dx))
}
