package canvas

import (
	"image"
	"testing"
)

// ── NodeAt ──

func TestNodeAtTopmost(t *testing.T) {
	r := NewRegistry()
	r.SetNode("bottom", image.Rect(10, 10, 30, 16))
	r.SetNode("top", image.Rect(20, 12, 40, 18))

	id, ok := r.NodeAt(image.Pt(25, 13)) // overlap region
	if !ok {
		t.Fatal("expected hit")
	}
	if id != "top" {
		t.Errorf("hit %q, want later-registered %q", id, "top")
	}
}

func TestNodeAtMiss(t *testing.T) {
	r := NewRegistry()
	r.SetNode("a", image.Rect(0, 0, 5, 3))
	if _, ok := r.NodeAt(image.Pt(50, 50)); ok {
		t.Error("expected miss")
	}
}

// ── PortAt ──

func TestPortAtFiltersKind(t *testing.T) {
	r := NewRegistry()
	rect := image.Rect(10, 5, 12, 8)
	r.SetPort(PortRef{NodeID: "a", Kind: PortOut, Name: "out"}, rect)

	if _, ok := r.PortAt(image.Pt(10, 6), PortIn); ok {
		t.Error("output port must not match an input query")
	}
	ref, ok := r.PortAt(image.Pt(10, 6), PortOut)
	if !ok {
		t.Fatal("expected output port hit")
	}
	if ref.NodeID != "a" || ref.Name != "out" {
		t.Errorf("ref = %+v", ref)
	}
}

// Ports are registered regardless of whether they are currently visible,
// so a drag released over a not-yet-revealed port still resolves.
func TestPortAtIndependentOfVisibility(t *testing.T) {
	r := NewRegistry()
	r.SetPort(PortRef{NodeID: "hidden", Kind: PortIn}, image.Rect(0, 0, 2, 2))
	if _, ok := r.PortAt(image.Pt(1, 1), PortIn); !ok {
		t.Error("registered port should always be hittable")
	}
}

// ── ConnectionAt ──

func TestConnectionAt(t *testing.T) {
	r := NewRegistry()
	r.SetConnectionPath("a-b", []image.Point{{X: 3, Y: 3}, {X: 4, Y: 3}, {X: 5, Y: 4}})

	id, ok := r.ConnectionAt(image.Pt(4, 3))
	if !ok || id != "a-b" {
		t.Errorf("got (%q,%v), want (a-b,true)", id, ok)
	}
	if _, ok := r.ConnectionAt(image.Pt(9, 9)); ok {
		t.Error("expected miss off the path")
	}
}

// ── PortAnchor ──

func TestPortAnchorCenter(t *testing.T) {
	r := NewRegistry()
	r.SetPort(PortRef{NodeID: "a", Kind: PortOut}, image.Rect(10, 4, 12, 6))
	anchor, ok := r.PortAnchor("a", PortOut)
	if !ok {
		t.Fatal("expected anchor")
	}
	if anchor != image.Pt(11, 5) {
		t.Errorf("anchor = %v, want (11,5)", anchor)
	}
}

// ── Reset ──

func TestResetClearsEverything(t *testing.T) {
	r := NewRegistry()
	r.SetNode("a", image.Rect(0, 0, 5, 3))
	r.SetPort(PortRef{NodeID: "a", Kind: PortIn}, image.Rect(0, 1, 1, 2))
	r.SetConnectionPath("a-b", []image.Point{{X: 1, Y: 1}})

	r.Reset()

	if _, ok := r.NodeAt(image.Pt(1, 1)); ok {
		t.Error("node survived Reset")
	}
	if _, ok := r.PortAt(image.Pt(0, 1), PortIn); ok {
		t.Error("port survived Reset")
	}
	if _, ok := r.ConnectionAt(image.Pt(1, 1)); ok {
		t.Error("path survived Reset")
	}
}
