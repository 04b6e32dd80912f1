// Package flowgraph is the workflow graph store: typed nodes positioned in
// world coordinates and directed connections between them, with stable
// insertion-order iteration.
//
// Connection identity is derived from the ordered (from, to) pair, so at
// most one connection can exist per ordered pair. Self-loops and duplicate
// connections are silently ignored rather than reported: they are reachable
// through ordinary direct manipulation and must not interrupt it.
package flowgraph

import (
	"github.com/google/uuid"

	"github.com/wesen/weave/pkg/geom"
)

// Node is a single processing node on the canvas.
type Node struct {
	ID     string
	Type   string
	Pos    geom.Point // world coordinates
	Label  string
	Config map[string]any // opaque to the canvas, owned by the config forms
}

// Connection is a directed edge between two nodes. Port names are optional.
type Connection struct {
	ID       string
	From     string
	To       string
	FromPort string
	ToPort   string
}

// ConnectionID derives the deterministic connection id for an ordered node
// pair. Two Connect calls for the same pair yield the same id.
func ConnectionID(from, to string) string {
	return from + "-" + to
}

// Graph holds nodes and connections keyed by id.
type Graph struct {
	nodes     map[string]*Node
	conns     map[string]*Connection
	nodeOrder []string // insertion order for deterministic iteration
	connOrder []string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		conns: make(map[string]*Connection),
	}
}

// ── Node operations ──

// AddNode inserts a node and returns its id. An empty id is assigned a
// fresh UUID; inserting an id that already exists replaces the node in
// place without disturbing iteration order.
func (g *Graph) AddNode(n Node) string {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if _, exists := g.nodes[n.ID]; !exists {
		g.nodeOrder = append(g.nodeOrder, n.ID)
	}
	g.nodes[n.ID] = &n
	return n.ID
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		if n, ok := g.nodes[id]; ok {
			result = append(result, n)
		}
	}
	return result
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// MoveNode updates a node's world position. Unknown ids are ignored.
func (g *Graph) MoveNode(id string, pos geom.Point) {
	if n, ok := g.nodes[id]; ok {
		n.Pos = pos
	}
}

// RemoveNode deletes the node and cascades over every connection that
// references it. Unknown ids are a no-op.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)

	for i, oid := range g.nodeOrder {
		if oid == id {
			g.nodeOrder = append(g.nodeOrder[:i], g.nodeOrder[i+1:]...)
			break
		}
	}

	filtered := g.connOrder[:0]
	for _, cid := range g.connOrder {
		c := g.conns[cid]
		if c.From == id || c.To == id {
			delete(g.conns, cid)
			continue
		}
		filtered = append(filtered, cid)
	}
	g.connOrder = filtered
}

// ── Connection operations ──

// Connect creates a connection from one node to another. Returns the
// connection and true on success. Self-loops, duplicates, and references
// to missing nodes all return (nil, false) without mutating the graph.
func (g *Graph) Connect(from, to, fromPort, toPort string) (*Connection, bool) {
	if from == to {
		return nil, false
	}
	if g.nodes[from] == nil || g.nodes[to] == nil {
		return nil, false
	}
	id := ConnectionID(from, to)
	if _, exists := g.conns[id]; exists {
		return nil, false
	}
	c := &Connection{ID: id, From: from, To: to, FromPort: fromPort, ToPort: toPort}
	g.conns[id] = c
	g.connOrder = append(g.connOrder, id)
	return c, true
}

// Connection returns the connection with the given id, or nil.
func (g *Graph) Connection(id string) *Connection {
	return g.conns[id]
}

// Connections returns all connections in insertion order.
func (g *Graph) Connections() []*Connection {
	result := make([]*Connection, 0, len(g.connOrder))
	for _, id := range g.connOrder {
		if c, ok := g.conns[id]; ok {
			result = append(result, c)
		}
	}
	return result
}

// ConnectionCount returns the number of connections.
func (g *Graph) ConnectionCount() int { return len(g.conns) }

// HasConnection reports whether a connection exists for the ordered pair.
func (g *Graph) HasConnection(from, to string) bool {
	_, ok := g.conns[ConnectionID(from, to)]
	return ok
}

// Disconnect removes the connection with the given id. Unknown ids are a
// no-op.
func (g *Graph) Disconnect(id string) {
	if _, ok := g.conns[id]; !ok {
		return
	}
	delete(g.conns, id)
	for i, cid := range g.connOrder {
		if cid == id {
			g.connOrder = append(g.connOrder[:i], g.connOrder[i+1:]...)
			return
		}
	}
}

// OutConnections returns connections originating at the given node.
func (g *Graph) OutConnections(from string) []*Connection {
	var result []*Connection
	for _, id := range g.connOrder {
		if c := g.conns[id]; c != nil && c.From == from {
			result = append(result, c)
		}
	}
	return result
}

// InConnections returns connections terminating at the given node.
func (g *Graph) InConnections(to string) []*Connection {
	var result []*Connection
	for _, id := range g.connOrder {
		if c := g.conns[id]; c != nil && c.To == to {
			result = append(result, c)
		}
	}
	return result
}

// Clone returns a deep copy of the graph. Serialization reads go through a
// clone so an autosave can never capture a graph mid-mutation.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, id := range g.nodeOrder {
		n := *g.nodes[id]
		if n.Config != nil {
			cfg := make(map[string]any, len(n.Config))
			for k, v := range n.Config {
				cfg[k] = v
			}
			n.Config = cfg
		}
		c.nodes[n.ID] = &n
		c.nodeOrder = append(c.nodeOrder, n.ID)
	}
	for _, id := range g.connOrder {
		cn := *g.conns[id]
		c.conns[cn.ID] = &cn
		c.connOrder = append(c.connOrder, cn.ID)
	}
	return c
}
