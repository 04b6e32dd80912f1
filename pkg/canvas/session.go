package canvas

import (
	"image"

	"github.com/wesen/weave/pkg/flowgraph"
	"github.com/wesen/weave/pkg/geom"
)

// Mode is the active gesture of the current pointer-down-to-up session.
// Exactly one mode is active at any instant; the pointer-down target
// (port, node body, connection path, background) picks it before any
// state transition happens.
type Mode int

const (
	ModeIdle Mode = iota
	ModePan
	ModeNodeDrag
	ModeConnect
)

// Session owns one canvas: its graph, its viewport, its geometry registry,
// the selection, and the gesture state machine. All methods run on the
// event loop; there is no internal locking.
type Session struct {
	Graph    *flowgraph.Graph
	View     *geom.Viewport
	Geometry *Registry

	mode    Mode
	selNode string
	selConn string

	// node drag
	dragNode        string
	dragStartWorld  geom.Point
	dragStartScreen geom.Point

	// pan
	lastPanScreen geom.Point

	// connection drag
	connSource PortRef
	connStart  geom.Point // world anchor of the source port
	previewEnd geom.Point // world position of the preview edge end
}

// NewSession creates a session over the given graph and viewport.
func NewSession(g *flowgraph.Graph, v *geom.Viewport) *Session {
	return &Session{Graph: g, View: v, Geometry: NewRegistry()}
}

// Mode returns the active gesture mode.
func (s *Session) Mode() Mode { return s.mode }

// SelectedNode returns the selected node id, or "".
func (s *Session) SelectedNode() string { return s.selNode }

// SelectedConnection returns the selected connection id, or "".
func (s *Session) SelectedConnection() string { return s.selConn }

// PointerDown starts a gesture. The target under the pointer decides the
// mode: an output port starts a connection drag, a node body starts a
// node drag (and selects the node), a connection path selects the
// connection, and empty background clears the selection and starts a pan.
//
// A press that arrives while a connection drag is already active resolves
// the drag exactly like a release would, so a second press can never
// stack a node drag on top of it.
func (s *Session) PointerDown(screen image.Point) {
	if s.mode == ModeConnect {
		s.resolveConnect(screen)
		return
	}
	if s.mode != ModeIdle {
		return
	}

	sp := geom.FromCell(screen)

	if ref, ok := s.Geometry.PortAt(screen, PortOut); ok {
		if s.Graph.Node(ref.NodeID) == nil {
			return
		}
		anchor := screen
		if a, ok := s.Geometry.PortAnchor(ref.NodeID, PortOut); ok {
			anchor = a
		}
		s.mode = ModeConnect
		s.connSource = ref
		s.connStart = s.View.ToWorld(geom.FromCell(anchor))
		s.previewEnd = s.connStart
		return
	}

	if id, ok := s.Geometry.NodeAt(screen); ok {
		n := s.Graph.Node(id)
		if n == nil {
			return
		}
		s.selNode, s.selConn = id, ""
		s.mode = ModeNodeDrag
		s.dragNode = id
		s.dragStartWorld = n.Pos
		s.dragStartScreen = sp
		return
	}

	if cid, ok := s.Geometry.ConnectionAt(screen); ok {
		s.selNode, s.selConn = "", cid
		return
	}

	s.selNode, s.selConn = "", ""
	s.mode = ModePan
	s.lastPanScreen = sp
}

// PointerMove advances the active gesture. A drag whose target node has
// been deleted by another code path drops back to idle instead of writing
// through a stale reference.
func (s *Session) PointerMove(screen image.Point) {
	sp := geom.FromCell(screen)

	switch s.mode {
	case ModePan:
		s.View.PanBy(sp.Sub(s.lastPanScreen))
		s.lastPanScreen = sp

	case ModeNodeDrag:
		if s.Graph.Node(s.dragNode) == nil {
			s.endGesture()
			return
		}
		// Screen delta divided by scale: drag speed in world space matches
		// pointer speed in screen space at every zoom level.
		delta := sp.Sub(s.dragStartScreen)
		s.Graph.MoveNode(s.dragNode, s.dragStartWorld.Add(delta.Div(s.View.Scale)))

	case ModeConnect:
		if s.Graph.Node(s.connSource.NodeID) == nil {
			s.endGesture()
			return
		}
		s.previewEnd = s.View.ToWorld(sp)
	}
}

// PointerUp ends the gesture. A node drag commits its last position, a
// pan simply stops, and a connection drag resolves against the input
// ports under the release point.
func (s *Session) PointerUp(screen image.Point) {
	if s.mode == ModeConnect {
		s.resolveConnect(screen)
		return
	}
	s.endGesture()
}

// resolveConnect commits or cancels the pending connection. Empty-space
// drops, self-connections, and duplicates all cancel silently.
func (s *Session) resolveConnect(screen image.Point) {
	src := s.connSource
	s.endGesture()

	if s.Graph.Node(src.NodeID) == nil {
		return
	}
	target, ok := s.Geometry.PortAt(screen, PortIn)
	if !ok || target.NodeID == src.NodeID {
		return
	}
	s.Graph.Connect(src.NodeID, target.NodeID, src.Name, target.Name)
}

// CancelGesture aborts the active gesture without committing anything.
// Returns true if a gesture was actually cancelled. A cancelled node drag
// leaves the node at its last dragged position; a cancelled connection
// drag leaves the graph untouched.
func (s *Session) CancelGesture() bool {
	if s.mode == ModeIdle {
		return false
	}
	s.endGesture()
	return true
}

func (s *Session) endGesture() {
	s.mode = ModeIdle
	s.dragNode = ""
	s.connSource = PortRef{}
}

// Preview returns the world-space endpoints of the in-progress connection
// preview edge, if a connection drag is active.
func (s *Session) Preview() (from, to geom.Point, ok bool) {
	if s.mode != ModeConnect {
		return geom.Point{}, geom.Point{}, false
	}
	return s.connStart, s.previewEnd, true
}

// SelectNode selects a node, clearing any connection selection. Unknown
// ids clear the node selection instead.
func (s *Session) SelectNode(id string) {
	if id != "" && s.Graph.Node(id) == nil {
		id = ""
	}
	s.selNode, s.selConn = id, ""
}

// SelectConnection selects a connection, clearing any node selection.
func (s *Session) SelectConnection(id string) {
	if id != "" && s.Graph.Connection(id) == nil {
		id = ""
	}
	s.selNode, s.selConn = "", id
}

// ClearSelection clears both selections.
func (s *Session) ClearSelection() {
	s.selNode, s.selConn = "", ""
}

// DeleteSelected removes the selected connection, or the selected node
// with its cascading connection cleanup. Returns true if anything was
// deleted. Deleting the node currently being dragged also ends the drag.
func (s *Session) DeleteSelected() bool {
	if s.selConn != "" {
		s.Graph.Disconnect(s.selConn)
		s.selConn = ""
		return true
	}
	if s.selNode != "" {
		if s.mode == ModeNodeDrag && s.dragNode == s.selNode {
			s.endGesture()
		}
		s.Graph.RemoveNode(s.selNode)
		s.selNode = ""
		return true
	}
	return false
}
