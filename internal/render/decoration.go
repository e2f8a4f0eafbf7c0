package render

import "github.com/ThatOtherAndrew/Infinidesk/internal/geo"

// RenderBorder draws a window border of the given width with rounded
// corners. The corner arcs are approximated CPU-side by emitting one
// horizontal rectangle per row of the corner region.
func RenderBorder(pass Pass, box geo.Box, borderWidth, cornerRadius int, color Color) {
	if box.Width <= 0 || box.Height <= 0 || borderWidth <= 0 {
		return
	}

	maxRadius := box.Width
	if box.Height < maxRadius {
		maxRadius = box.Height
	}
	maxRadius /= 2
	if cornerRadius > maxRadius {
		cornerRadius = maxRadius
	}
	if cornerRadius < 0 {
		cornerRadius = 0
	}

	if cornerRadius == 0 {
		pass.AddRect(geo.Box{X: box.X, Y: box.Y, Width: box.Width, Height: borderWidth}, color)
		pass.AddRect(geo.Box{X: box.X, Y: box.Y + box.Height - borderWidth, Width: box.Width, Height: borderWidth}, color)
		pass.AddRect(geo.Box{X: box.X, Y: box.Y + borderWidth, Width: borderWidth, Height: box.Height - 2*borderWidth}, color)
		pass.AddRect(geo.Box{X: box.X + box.Width - borderWidth, Y: box.Y + borderWidth, Width: borderWidth, Height: box.Height - 2*borderWidth}, color)
		return
	}

	// Straight edges between the corners.
	if box.Width > 2*cornerRadius {
		pass.AddRect(geo.Box{
			X: box.X + cornerRadius, Y: box.Y,
			Width: box.Width - 2*cornerRadius, Height: borderWidth,
		}, color)
		pass.AddRect(geo.Box{
			X: box.X + cornerRadius, Y: box.Y + box.Height - borderWidth,
			Width: box.Width - 2*cornerRadius, Height: borderWidth,
		}, color)
	}
	if box.Height > 2*cornerRadius {
		pass.AddRect(geo.Box{
			X: box.X, Y: box.Y + cornerRadius,
			Width: borderWidth, Height: box.Height - 2*cornerRadius,
		}, color)
		pass.AddRect(geo.Box{
			X: box.X + box.Width - borderWidth, Y: box.Y + cornerRadius,
			Width: borderWidth, Height: box.Height - 2*cornerRadius,
		}, color)
	}

	// Rounded corners, one horizontal segment per row.
	for row := 0; row < cornerRadius; row++ {
		span := cornerBorderSpan(row, cornerRadius, borderWidth)
		if span.Width <= 0 {
			continue
		}
		segEnd := span.Start + span.Width

		// Top-left.
		pass.AddRect(geo.Box{X: box.X + span.Start, Y: box.Y + row, Width: span.Width, Height: 1}, color)
		// Top-right (mirrored).
		pass.AddRect(geo.Box{
			X: box.X + box.Width - cornerRadius + (cornerRadius - segEnd),
			Y: box.Y + row, Width: span.Width, Height: 1,
		}, color)
		// Bottom-left.
		pass.AddRect(geo.Box{X: box.X + span.Start, Y: box.Y + box.Height - 1 - row, Width: span.Width, Height: 1}, color)
		// Bottom-right.
		pass.AddRect(geo.Box{
			X: box.X + box.Width - cornerRadius + (cornerRadius - segEnd),
			Y: box.Y + box.Height - 1 - row, Width: span.Width, Height: 1,
		}, color)
	}
}

// RenderCornerMasks paints background-coloured runs over the window
// corners so the rectangular client texture appears rounded.
func RenderCornerMasks(pass Pass, box geo.Box, cornerRadius int, background Color) {
	if box.Width <= 0 || box.Height <= 0 || cornerRadius <= 0 {
		return
	}

	maxRadius := box.Width
	if box.Height < maxRadius {
		maxRadius = box.Height
	}
	maxRadius /= 2
	if cornerRadius > maxRadius {
		cornerRadius = maxRadius
	}

	for row := 0; row < cornerRadius; row++ {
		fill := cornerMaskSpan(row, cornerRadius)
		if fill <= 0 {
			continue
		}

		pass.AddRect(geo.Box{X: box.X, Y: box.Y + row, Width: fill, Height: 1}, background)
		pass.AddRect(geo.Box{X: box.X + box.Width - fill, Y: box.Y + row, Width: fill, Height: 1}, background)
		pass.AddRect(geo.Box{X: box.X, Y: box.Y + box.Height - 1 - row, Width: fill, Height: 1}, background)
		pass.AddRect(geo.Box{X: box.X + box.Width - fill, Y: box.Y + box.Height - 1 - row, Width: fill, Height: 1}, background)
	}
}
