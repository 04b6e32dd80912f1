package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func approxEq(a, b Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

// ── Transform inverse ──

func TestToWorldToScreenInverse(t *testing.T) {
	viewports := []Viewport{
		{Scale: 1, Offset: Pt(0, 0)},
		{Scale: 2, Offset: Pt(40, -12)},
		{Scale: 0.25, Offset: Pt(-100.5, 33.75)},
		{Scale: 5, Offset: Pt(7, 7)},
	}
	points := []Point{
		Pt(0, 0), Pt(10, 20), Pt(-3.5, 99.25), Pt(1e4, -1e4),
	}
	for _, v := range viewports {
		for _, p := range points {
			got := v.ToScreen(v.ToWorld(p))
			if !approxEq(got, p) {
				t.Errorf("viewport %+v: ToScreen(ToWorld(%v)) = %v", v, p, got)
			}
			got = v.ToWorld(v.ToScreen(p))
			if !approxEq(got, p) {
				t.Errorf("viewport %+v: ToWorld(ToScreen(%v)) = %v", v, p, got)
			}
		}
	}
}

// ── ZoomAt ──

func TestZoomAtPivotInvariance(t *testing.T) {
	v := Viewport{Scale: 1, Offset: Pt(17, -4)}
	pivot := Pt(33, 21)

	before := v.ToWorld(pivot)
	v.ZoomAt(pivot, 1.5)
	after := v.ToWorld(pivot)

	if !approxEq(before, after) {
		t.Errorf("pivot world moved: %v → %v", before, after)
	}
	if v.Scale != 1.5 {
		t.Errorf("scale = %v, want 1.5", v.Scale)
	}
}

func TestZoomAtPivotInvarianceRepeated(t *testing.T) {
	v := Viewport{Scale: 0.8, Offset: Pt(-5, 60)}
	pivot := Pt(10, 10)
	want := v.ToWorld(pivot)
	for _, f := range []float64{2, 0.5, 1.3, 0.7, 3} {
		v.ZoomAt(pivot, f)
		if got := v.ToWorld(pivot); !approxEq(got, want) {
			t.Fatalf("after factor %v: pivot world %v, want %v", f, got, want)
		}
	}
}

func TestZoomClampUpper(t *testing.T) {
	v := Viewport{Scale: 1, Offset: Pt(0, 0)}
	for range 10 {
		v.ZoomAt(Pt(5, 5), 10)
	}
	if v.Scale != MaxScale {
		t.Errorf("scale = %v, want %v", v.Scale, MaxScale)
	}
}

func TestZoomClampLower(t *testing.T) {
	v := Viewport{Scale: 1, Offset: Pt(0, 0)}
	for range 10 {
		v.ZoomAt(Pt(5, 5), 0.01)
	}
	if v.Scale != MinScale {
		t.Errorf("scale = %v, want %v", v.Scale, MinScale)
	}
}

func TestZoomAtClampBoundaryNoDrift(t *testing.T) {
	v := Viewport{Scale: MaxScale, Offset: Pt(12, 34)}
	before := v.Offset
	for range 100 {
		v.ZoomAt(Pt(50, 50), 2)
	}
	if v.Offset != before {
		t.Errorf("offset drifted at clamp boundary: %v → %v", before, v.Offset)
	}
}

// ── PanBy / Reset ──

func TestPanByAccumulates(t *testing.T) {
	v := NewViewport()
	v.PanBy(Pt(10, -5))
	v.PanBy(Pt(-4, 2))
	if !approxEq(v.Offset, Pt(6, -3)) {
		t.Errorf("offset = %v, want (6,-3)", v.Offset)
	}
}

func TestReset(t *testing.T) {
	v := Viewport{Scale: 3.2, Offset: Pt(999, -999)}
	v.Reset(80, 24)
	if v.Scale != 1 {
		t.Errorf("scale = %v, want 1", v.Scale)
	}
	// World origin should land at the viewport center.
	if got := v.ToScreen(Pt(0, 0)); !approxEq(got, Pt(40, 12)) {
		t.Errorf("origin maps to %v, want (40,12)", got)
	}
}
