package weaveui

import (
	"image"
	"math"

	"github.com/wesen/weave/internal/catalog"
	"github.com/wesen/weave/pkg/canvas"
	"github.com/wesen/weave/pkg/drawutil"
	"github.com/wesen/weave/pkg/flowgraph"
	"github.com/wesen/weave/pkg/geom"
)

// Minimum on-screen node size in cells. Zooming out shrinks boxes toward
// this floor so labels stay legible and clickable.
const (
	minNodeW = 8
	minNodeH = 3
)

// nodeScreenRect computes the on-screen rectangle for a node under the
// current viewport, in canvas-local cells.
func nodeScreenRect(view *geom.Viewport, n *flowgraph.Node) image.Rectangle {
	info := catalog.Lookup(n.Type)
	tl := view.ToScreen(n.Pos).Cell()
	w := int(math.Round(info.W * view.Scale))
	h := int(math.Round(info.H * view.Scale))
	if w < minNodeW {
		w = minNodeW
	}
	if h < minNodeH {
		h = minNodeH
	}
	return image.Rect(tl.X, tl.Y, tl.X+w, tl.Y+h)
}

// portRects returns the clickable input and output regions for a node
// rectangle: 3x3 areas centered on the middle of the left and right box
// edges, so the anchor (region center) is the border cell the marker is
// drawn in and the click target spills one cell past the edge.
func portRects(r image.Rectangle) (in, out image.Rectangle) {
	my := (r.Min.Y + r.Max.Y) / 2
	in = image.Rect(r.Min.X-1, my-1, r.Min.X+2, my+2)
	out = image.Rect(r.Max.X-2, my-1, r.Max.X+1, my+2)
	return in, out
}

// syncGeometry rebuilds the hit-test registry from the exact rectangles
// and curves the renderer draws this frame. Rendering and hit-testing
// share this one function so they can never disagree.
func syncGeometry(s *canvas.Session) {
	reg := s.Geometry
	reg.Reset()

	for _, n := range s.Graph.Nodes() {
		r := nodeScreenRect(s.View, n)
		reg.SetNode(n.ID, r)
		in, out := portRects(r)
		reg.SetPort(canvas.PortRef{NodeID: n.ID, Kind: canvas.PortIn, Name: "input"}, in)
		reg.SetPort(canvas.PortRef{NodeID: n.ID, Kind: canvas.PortOut, Name: "output"}, out)
	}

	for _, conn := range s.Graph.Connections() {
		fromRect, okF := reg.NodeRect(conn.From)
		toRect, okT := reg.NodeRect(conn.To)
		if !okF || !okT {
			continue
		}
		// Port anchors when registered, box-edge exits otherwise.
		from, ok := reg.PortAnchor(conn.From, canvas.PortOut)
		if !ok {
			from = drawutil.EdgeExit(fromRect, rectCenter(toRect))
		}
		to, ok := reg.PortAnchor(conn.To, canvas.PortIn)
		if !ok {
			to = drawutil.EdgeExit(toRect, rectCenter(fromRect))
		}
		reg.SetConnectionPath(conn.ID, drawutil.CurvePoints(from, to))
	}
}

func rectCenter(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}
