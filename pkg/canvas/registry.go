// Package canvas is the interaction engine for the workflow canvas: a
// screen-geometry registry fed by the render layer, and a gesture session
// that turns pointer events into graph mutations through exactly one
// active mode at a time.
package canvas

import "image"

// PortKind distinguishes input ports (connection targets) from output
// ports (connection sources).
type PortKind int

const (
	PortIn PortKind = iota
	PortOut
)

// PortRef identifies one port of one node.
type PortRef struct {
	NodeID string
	Kind   PortKind
	Name   string
}

type portRegion struct {
	ref  PortRef
	rect image.Rectangle
}

// Registry is the authoritative record of where everything is on screen
// right now. The render layer re-registers node bodies, ports, and
// connection paths from the same math it draws with, so hit-testing stays
// correct under any viewport transform. Visibility is irrelevant here: a
// port hidden until hovered is still registered and still hittable, since
// a fast drag can cross it before any hover reveal.
type Registry struct {
	nodeOrder []string // registration order; topmost is last
	nodeRects map[string]image.Rectangle
	ports     []portRegion
	pathOrder []string
	paths     map[string][]image.Point
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodeRects: make(map[string]image.Rectangle),
		paths:     make(map[string][]image.Point),
	}
}

// Reset clears all recorded geometry. Called at the top of every geometry
// sync so stale entries for deleted elements cannot survive a frame.
func (r *Registry) Reset() {
	r.nodeOrder = r.nodeOrder[:0]
	r.ports = r.ports[:0]
	r.pathOrder = r.pathOrder[:0]
	clear(r.nodeRects)
	clear(r.paths)
}

// SetNode records the rendered screen rect of a node body. Later
// registrations stack on top of earlier ones.
func (r *Registry) SetNode(id string, rect image.Rectangle) {
	if _, ok := r.nodeRects[id]; !ok {
		r.nodeOrder = append(r.nodeOrder, id)
	}
	r.nodeRects[id] = rect
}

// SetPort records the rendered screen rect of a port.
func (r *Registry) SetPort(ref PortRef, rect image.Rectangle) {
	r.ports = append(r.ports, portRegion{ref: ref, rect: rect})
}

// SetConnectionPath records the screen cells a connection was drawn
// through, used to select connections by clicking their path.
func (r *Registry) SetConnectionPath(id string, pts []image.Point) {
	if _, ok := r.paths[id]; !ok {
		r.pathOrder = append(r.pathOrder, id)
	}
	r.paths[id] = pts
}

// NodeAt returns the topmost node whose body contains the point.
func (r *Registry) NodeAt(pt image.Point) (string, bool) {
	for i := len(r.nodeOrder) - 1; i >= 0; i-- {
		id := r.nodeOrder[i]
		if pt.In(r.nodeRects[id]) {
			return id, true
		}
	}
	return "", false
}

// PortAt returns the first registered port of the given kind whose region
// contains the point.
func (r *Registry) PortAt(pt image.Point, kind PortKind) (PortRef, bool) {
	for _, p := range r.ports {
		if p.ref.Kind == kind && pt.In(p.rect) {
			return p.ref, true
		}
	}
	return PortRef{}, false
}

// ConnectionAt returns the connection whose drawn path passes through the
// point, checking later-drawn paths first.
func (r *Registry) ConnectionAt(pt image.Point) (string, bool) {
	for i := len(r.pathOrder) - 1; i >= 0; i-- {
		id := r.pathOrder[i]
		for _, p := range r.paths[id] {
			if p == pt {
				return id, true
			}
		}
	}
	return "", false
}

// ConnectionPath returns the recorded screen cells of a connection.
func (r *Registry) ConnectionPath(id string) ([]image.Point, bool) {
	pts, ok := r.paths[id]
	return pts, ok
}

// NodeRect returns the recorded body rect of a node.
func (r *Registry) NodeRect(id string) (image.Rectangle, bool) {
	rect, ok := r.nodeRects[id]
	return rect, ok
}

// PortAnchor returns the center of the first registered port of the given
// kind on the given node. Edge endpoints attach here.
func (r *Registry) PortAnchor(nodeID string, kind PortKind) (image.Point, bool) {
	for _, p := range r.ports {
		if p.ref.NodeID == nodeID && p.ref.Kind == kind {
			c := p.rect.Min.Add(p.rect.Max)
			return image.Pt(c.X/2, c.Y/2), true
		}
	}
	return image.Point{}, false
}
