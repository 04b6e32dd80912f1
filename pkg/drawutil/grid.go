package drawutil

import (
	"image"
	"math"

	"github.com/wesen/weave/pkg/cellbuf"
	"github.com/wesen/weave/pkg/geom"
)

// DrawGrid fills the buffer with dots ('·') at world-aligned grid
// intersections, projected through the viewport transform. origin is the
// screen position of the buffer's top-left cell; spacing is in world
// units.
func DrawGrid(buf *cellbuf.Buffer, view *geom.Viewport, origin image.Point, spacing float64, style cellbuf.StyleKey) {
	if spacing <= 0 || buf.W == 0 || buf.H == 0 {
		return
	}
	// Zoomed far out the dots would repaint every cell; widen the spacing
	// until intersections sit a few cells apart.
	for spacing*view.Scale < 3 {
		spacing *= 2
	}

	minW := view.ToWorld(geom.FromCell(origin))
	maxW := view.ToWorld(geom.Pt(float64(origin.X+buf.W), float64(origin.Y+buf.H)))

	for wy := math.Floor(minW.Y/spacing) * spacing; wy <= maxW.Y; wy += spacing {
		for wx := math.Floor(minW.X/spacing) * spacing; wx <= maxW.X; wx += spacing {
			sp := view.ToScreen(geom.Pt(wx, wy)).Cell().Sub(origin)
			buf.Set(sp.X, sp.Y, '·', style)
		}
	}
}
