package drawutil

import (
	"image"
	"math"

	"github.com/wesen/weave/pkg/cellbuf"
)

// Bezier control-point offsets. The offset grows with the horizontal
// distance between the endpoints and clamps to this range, so the curve
// shape stays continuous as the horizontal distance crosses zero.
const (
	curveMinOffset = 2.0
	curveMaxOffset = 24.0
)

func curveOffset(dx float64) float64 {
	off := math.Abs(dx) * 0.5
	if off < curveMinOffset {
		return curveMinOffset
	}
	if off > curveMaxOffset {
		return curveMaxOffset
	}
	return off
}

func cubic(a, b, c, d, t float64) float64 {
	u := 1 - t
	return u*u*u*a + 3*u*u*t*b + 3*u*t*t*c + t*t*t*d
}

// CurvePoints returns the connected cell path of a cubic Bezier from p0
// to p1. The first control point extends right from p0 and the second
// extends left into p1, matching an output-to-input edge. Consecutive
// samples are joined with Bresenham segments so the path has no gaps.
func CurvePoints(p0, p1 image.Point) []image.Point {
	dx := float64(p1.X - p0.X)
	dy := float64(p1.Y - p0.Y)
	off := curveOffset(dx)

	x0, y0 := float64(p0.X), float64(p0.Y)
	x3, y3 := float64(p1.X), float64(p1.Y)
	x1, y1 := x0+off, y0
	x2, y2 := x3-off, y3

	steps := int(math.Abs(dx)+math.Abs(dy)) + 4
	if steps > 128 {
		steps = 128
	}

	pts := []image.Point{p0}
	prev := p0
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		next := image.Pt(
			iround(cubic(x0, x1, x2, x3, t)),
			iround(cubic(y0, y1, y2, y3, t)),
		)
		if next == prev {
			continue
		}
		seg := Bresenham(prev.X, prev.Y, next.X, next.Y)
		pts = append(pts, seg[1:]...)
		prev = next
	}
	return pts
}

// DrawCurve draws a curve path with per-point line characters.
func DrawCurve(buf *cellbuf.Buffer, pts []image.Point, style cellbuf.StyleKey) {
	for i, p := range pts {
		buf.Set(p.X, p.Y, pointChar(pts, i), style)
	}
}

// DrawArrowCurve draws a curve path ending in an arrowhead. The body uses
// lineStyle and the arrowhead uses arrowStyle.
func DrawArrowCurve(buf *cellbuf.Buffer, pts []image.Point, lineStyle, arrowStyle cellbuf.StyleKey) {
	if len(pts) == 0 {
		return
	}
	for i, p := range pts[:len(pts)-1] {
		buf.Set(p.X, p.Y, pointChar(pts, i), lineStyle)
	}
	last := pts[len(pts)-1]
	var dx, dy int
	if len(pts) >= 2 {
		dx = last.X - pts[len(pts)-2].X
		dy = last.Y - pts[len(pts)-2].Y
	}
	buf.Set(last.X, last.Y, ArrowChar(dx, dy), arrowStyle)
}

// DrawDashedCurve draws a curve path with every 3rd point skipped. Used
// for the in-progress connection preview.
func DrawDashedCurve(buf *cellbuf.Buffer, pts []image.Point, style cellbuf.StyleKey) {
	for i, p := range pts {
		if i%3 != 2 {
			buf.Set(p.X, p.Y, pointChar(pts, i), style)
		}
	}
}

func iround(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
