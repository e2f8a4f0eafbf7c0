package switcher

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay styling, logical pixels.
const (
	overlayPadding     = 20
	overlayItemHeight  = 40
	overlayItemPadding = 10
	overlayMinWidth    = 300
	overlayRadius      = 10
	highlightRadius    = 5
)

var (
	overlayBackground = color.NRGBA{R: 38, G: 38, B: 38, A: 242}
	highlightColor    = color.NRGBA{R: 77, G: 128, B: 204, A: 204}
	textColor         = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// rasterise draws the overlay at physical resolution: a rounded panel with
// one row per view and a highlight behind the selected one.
func (s *Switcher) rasterise(outputScale float64) *image.RGBA {
	views := s.Views.Views()
	if len(views) == 0 {
		return nil
	}

	width := overlayMinWidth
	height := overlayPadding*2 + len(views)*overlayItemHeight

	physW := int(float64(width) * outputScale)
	physH := int(float64(height) * outputScale)
	img := image.NewRGBA(image.Rect(0, 0, physW, physH))

	sc := func(v int) int { return int(float64(v) * outputScale) }

	fillRoundedRect(img, image.Rect(0, 0, physW, physH), sc(overlayRadius), overlayBackground)

	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
	}

	itemY := overlayPadding
	for _, v := range views {
		if v == s.selected {
			fillRoundedRect(img, image.Rect(
				sc(overlayItemPadding),
				sc(itemY),
				sc(width-overlayItemPadding),
				sc(itemY+overlayItemHeight-4),
			), sc(highlightRadius), highlightColor)
		}

		appID := v.Toplevel.AppID()
		if appID == "" {
			appID = "unknown"
		}
		title := v.Toplevel.Title()
		if title == "" {
			title = "(untitled)"
		}
		text := fmt.Sprintf("%s - %s", appID, title)
		text = ellipsize(&drawer, text, sc(width-overlayPadding*2))

		drawer.Dot = fixed.P(sc(overlayPadding), sc(itemY+overlayItemHeight/2)+6)
		drawer.DrawString(text)

		itemY += overlayItemHeight
	}

	return img
}

// ellipsize trims the string with a trailing ellipsis so it fits maxWidth.
func ellipsize(d *font.Drawer, text string, maxWidth int) string {
	if d.MeasureString(text).Ceil() <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if d.MeasureString(candidate).Ceil() <= maxWidth {
			return candidate
		}
	}
	return "..."
}

// fillRoundedRect fills a rounded rectangle row by row, clipping the
// corner rows against the corner circles.
func fillRoundedRect(img *image.RGBA, rect image.Rectangle, radius int, c color.NRGBA) {
	w := rect.Dx()
	h := rect.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	if limit := min(w, h) / 2; radius > limit {
		radius = limit
	}

	for row := 0; row < h; row++ {
		inset := 0
		if row < radius || row >= h-radius {
			dy := 0.0
			if row < radius {
				dy = float64(radius-row) - 0.5
			} else {
				dy = float64(row-(h-radius)) + 0.5
			}
			r := float64(radius)
			dx := 0.0
			if dy <= r {
				dx = math.Sqrt(r*r - dy*dy)
			}
			inset = int(math.Floor(r - dx))
		}
		for x := rect.Min.X + inset; x < rect.Max.X-inset; x++ {
			img.Set(x, rect.Min.Y+row, c)
		}
	}
}
