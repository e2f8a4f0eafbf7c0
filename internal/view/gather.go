package view

import (
	"math"

	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/sirupsen/logrus"
)

// GatherGap is the minimum distance kept between a gathered view's nearest
// edge and the centroid, in canvas units.
const GatherGap = 20.0

// gatherShrink halves every view's distance to the centroid per invocation.
const gatherShrink = 0.5

const gatherEpsilon = 0.001

// Gather pulls all views towards their common centroid: each view's centre
// moves halfway along its vector from the centroid, clamped so the view's
// nearest edge stays at least GatherGap away. Afterwards the viewport
// snaps so the new centroid sits at screen centre.
func (s *Stack) Gather(c *canvas.Canvas, outputWidth, outputHeight int, nowMs uint32) {
	if len(s.views) == 0 {
		return
	}

	centroidX, centroidY := s.centroid()

	for _, v := range s.views {
		g := v.Toplevel.Geometry()
		centreX, centreY := v.Centre()

		vecX := centreX - centroidX
		vecY := centreY - centroidY
		distance := math.Hypot(vecX, vecY)

		// A view already at the centroid stays put.
		var minDistance float64
		if distance >= gatherEpsilon {
			dirX := vecX / distance
			dirY := vecY / distance

			// Distance from the view centre to its bounding-box edge along
			// the approach direction.
			tx := math.Inf(1)
			if math.Abs(dirX) > gatherEpsilon {
				tx = float64(g.Width) / 2 / math.Abs(dirX)
			}
			ty := math.Inf(1)
			if math.Abs(dirY) > gatherEpsilon {
				ty = float64(g.Height) / 2 / math.Abs(dirY)
			}
			minDistance = math.Min(tx, ty) + GatherGap
		}

		newDistance := distance * gatherShrink
		if newDistance < minDistance {
			newDistance = minDistance
		}

		effective := 1.0
		if distance >= gatherEpsilon {
			effective = newDistance / distance
		}

		newCentreX := centroidX + vecX*effective
		newCentreY := centroidY + vecY*effective
		v.X = newCentreX - float64(g.Width)/2
		v.Y = newCentreY - float64(g.Height)/2
	}

	// The clamping may have shifted the centroid; recompute before
	// centring the viewport on it.
	newCentroidX, newCentroidY := s.centroid()
	c.SnapTo(newCentroidX, newCentroidY, outputWidth, outputHeight, nowMs)

	logrus.WithFields(logrus.Fields{
		"views":      len(s.views),
		"centroid_x": newCentroidX,
		"centroid_y": newCentroidY,
	}).Debugln("Gathered views")
}

func (s *Stack) centroid() (float64, float64) {
	var cx, cy float64
	for _, v := range s.views {
		x, y := v.Centre()
		cx += x
		cy += y
	}
	n := float64(len(s.views))
	return cx / n, cy / n
}
