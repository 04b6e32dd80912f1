// Package geom provides the canvas coordinate model: float64 world/screen
// points and the viewport transform (scale + offset) between them.
package geom

import "image"

// Point is a 2D point with float64 components. Node positions live in
// world coordinates; pointer input arrives in screen coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// FromCell converts an integer cell coordinate to a Point.
func FromCell(p image.Point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// Cell rounds the point to the nearest integer cell.
func (p Point) Cell() image.Point {
	return image.Pt(round(p.X), round(p.Y))
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Div returns p scaled by 1/s.
func (p Point) Div(s float64) Point { return Point{p.X / s, p.Y / s} }

func round(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
