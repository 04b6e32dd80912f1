// Package cellbuf provides a 2D character buffer with per-cell styling
// and efficient Lipgloss-based rendering.
//
// Each cell holds a rune and a StyleKey (an int enum). At render time the
// caller provides a map[StyleKey]lipgloss.Style, so the buffer stays
// decoupled from any specific color scheme.
//
// Limitation: all runes are assumed to be single-width. CJK or other
// double-width characters are not handled correctly.
package cellbuf

import "image"

// StyleKey identifies a visual style. The caller defines the mapping
// from StyleKey to lipgloss.Style at render time.
type StyleKey int

// Cell is a single character in the buffer with an associated style.
type Cell struct {
	Ch    rune
	Style StyleKey
}

// Buffer is a 2D grid of styled cells, stored row-major in a flat slice.
type Buffer struct {
	W, H  int
	cells []Cell
}

// New creates a Buffer of the given size, filled with spaces in the given
// default style. Negative dimensions are treated as zero.
func New(w, h int, defaultStyle StyleKey) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Buffer{W: w, H: h, cells: make([]Cell, w*h)}
	b.Fill(defaultStyle)
	return b
}

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// At returns the cell at (x, y). Out-of-bounds reads return a zero Cell.
func (b *Buffer) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.W+x]
}

// Set writes a single character at (x, y). Out-of-bounds writes are
// silently ignored.
func (b *Buffer) Set(x, y int, ch rune, style StyleKey) {
	if b.InBounds(x, y) {
		b.cells[y*b.W+x] = Cell{Ch: ch, Style: style}
	}
}

// SetString writes a string starting at (x, y), advancing x for each
// rune. Characters that fall outside the buffer are silently skipped.
func (b *Buffer) SetString(x, y int, s string, style StyleKey) {
	i := 0
	for _, ch := range s {
		b.Set(x+i, y, ch, style)
		i++
	}
}

// SetPoints writes the same character at every point. Convenience for
// polyline and marker rendering.
func (b *Buffer) SetPoints(pts []image.Point, ch rune, style StyleKey) {
	for _, p := range pts {
		b.Set(p.X, p.Y, ch, style)
	}
}

// Fill resets every cell to a space with the given style.
func (b *Buffer) Fill(style StyleKey) {
	for i := range b.cells {
		b.cells[i] = Cell{Ch: ' ', Style: style}
	}
}
