package geom

// Scale bounds for the viewport. Zoom requests outside this range clamp
// rather than error.
const (
	MinScale = 0.1
	MaxScale = 5.0
)

// Viewport is the presentation transform between world and screen space:
// screen = world*Scale + Offset. It is not part of the graph and is never
// persisted with it.
type Viewport struct {
	Scale  float64
	Offset Point
}

// NewViewport returns a viewport at scale 1 with zero offset.
func NewViewport() *Viewport {
	return &Viewport{Scale: 1}
}

// ToWorld converts a screen point to world coordinates.
func (v *Viewport) ToWorld(screen Point) Point {
	return screen.Sub(v.Offset).Div(v.Scale)
}

// ToScreen converts a world point to screen coordinates.
func (v *Viewport) ToScreen(world Point) Point {
	return world.Mul(v.Scale).Add(v.Offset)
}

// PanBy shifts the viewport by a screen-space delta.
func (v *Viewport) PanBy(delta Point) {
	v.Offset = v.Offset.Add(delta)
}

// ZoomAt multiplies the scale by factor, clamped to [MinScale, MaxScale],
// keeping the world point under pivot visually fixed. Repeated calls at a
// clamp boundary are idempotent: when the clamped scale equals the current
// scale the offset is left untouched, so there is no drift.
func (v *Viewport) ZoomAt(pivot Point, factor float64) {
	next := clampScale(v.Scale * factor)
	if next == v.Scale {
		return
	}
	pivotWorld := v.ToWorld(pivot)
	v.Scale = next
	// offset such that pivotWorld maps back onto pivot under the new scale
	v.Offset = pivot.Sub(pivotWorld.Mul(v.Scale))
}

// Reset restores scale 1 and centers the world origin in a viewport of the
// given screen size.
func (v *Viewport) Reset(viewW, viewH float64) {
	v.Scale = 1
	v.Offset = Pt(viewW/2, viewH/2)
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
