package flowgraph

import (
	"testing"

	"github.com/wesen/weave/pkg/geom"
)

func addNode(g *Graph, id string, x, y float64) string {
	return g.AddNode(Node{ID: id, Type: "brain", Pos: geom.Pt(x, y), Label: id})
}

// ── AddNode ──

func TestAddNodeAssignsID(t *testing.T) {
	g := New()
	id := g.AddNode(Node{Type: "input"})
	if id == "" {
		t.Fatal("expected generated id")
	}
	if g.Node(id) == nil {
		t.Fatal("node not retrievable by generated id")
	}
}

func TestAddNodeKeepsExplicitID(t *testing.T) {
	g := New()
	id := addNode(g, "a", 1, 2)
	if id != "a" {
		t.Errorf("id = %q, want %q", id, "a")
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New()
	addNode(g, "c", 30, 0)
	addNode(g, "a", 10, 0)
	addNode(g, "b", 20, 0)

	nodes := g.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	// Insertion order, not id order
	if nodes[0].ID != "c" || nodes[1].ID != "a" || nodes[2].ID != "b" {
		t.Error("Nodes() not in insertion order")
	}
}

func TestNodeNonExistent(t *testing.T) {
	g := New()
	if g.Node("missing") != nil {
		t.Error("expected nil for non-existent id")
	}
}

// ── MoveNode ──

func TestMoveNode(t *testing.T) {
	g := New()
	addNode(g, "a", 0, 0)
	g.MoveNode("a", geom.Pt(50, -12.5))
	if got := g.Node("a").Pos; got != geom.Pt(50, -12.5) {
		t.Errorf("pos = %v, want (50,-12.5)", got)
	}
}

func TestMoveNodeUnknownID(t *testing.T) {
	g := New()
	g.MoveNode("ghost", geom.Pt(1, 1)) // should not panic
}

// ── Connect ──

func TestConnect(t *testing.T) {
	g := New()
	addNode(g, "a", 0, 0)
	addNode(g, "b", 10, 0)

	c, ok := g.Connect("a", "b", "out", "in")
	if !ok {
		t.Fatal("Connect failed")
	}
	if c.ID != "a-b" {
		t.Errorf("id = %q, want %q", c.ID, "a-b")
	}
	if !g.HasConnection("a", "b") {
		t.Error("HasConnection(a,b) = false")
	}
	if g.HasConnection("b", "a") {
		t.Error("reverse pair should not exist")
	}
}

func TestConnectSelfLoopRejected(t *testing.T) {
	g := New()
	addNode(g, "a", 0, 0)
	if _, ok := g.Connect("a", "a", "", ""); ok {
		t.Error("self-loop should be rejected")
	}
	if g.ConnectionCount() != 0 {
		t.Error("graph mutated by rejected self-loop")
	}
}

func TestConnectDuplicateSuppressed(t *testing.T) {
	g := New()
	addNode(g, "a", 0, 0)
	addNode(g, "b", 10, 0)
	g.Connect("a", "b", "", "")
	if _, ok := g.Connect("a", "b", "", ""); ok {
		t.Error("duplicate should be suppressed")
	}
	if g.ConnectionCount() != 1 {
		t.Errorf("expected exactly 1 connection, got %d", g.ConnectionCount())
	}
}

func TestConnectMissingNode(t *testing.T) {
	g := New()
	addNode(g, "a", 0, 0)
	if _, ok := g.Connect("a", "ghost", "", ""); ok {
		t.Error("connection to missing node should fail")
	}
}

// ── RemoveNode cascade ──

func TestRemoveNodeCascades(t *testing.T) {
	g := New()
	addNode(g, "a", 0, 0)
	addNode(g, "b", 10, 0)
	addNode(g, "c", 20, 0)
	g.Connect("a", "b", "", "")
	g.Connect("c", "a", "", "")
	g.Connect("b", "c", "", "")

	g.RemoveNode("a")

	if g.Node("a") != nil {
		t.Error("node a should be gone")
	}
	conns := g.Connections()
	if len(conns) != 1 {
		t.Fatalf("expected 1 surviving connection, got %d", len(conns))
	}
	for _, c := range conns {
		if c.From == "a" || c.To == "a" {
			t.Errorf("dangling reference to removed node: %s", c.ID)
		}
	}
}

func TestRemoveNonExistentNode(t *testing.T) {
	g := New()
	addNode(g, "a", 0, 0)
	g.RemoveNode("ghost")
	if g.NodeCount() != 1 {
		t.Error("RemoveNode of unknown id should be a no-op")
	}
}

// ── Disconnect ──

func TestDisconnect(t *testing.T) {
	g := New()
	addNode(g, "a", 0, 0)
	addNode(g, "b", 10, 0)
	g.Connect("a", "b", "", "")
	g.Disconnect("a-b")
	if g.ConnectionCount() != 0 {
		t.Error("connection should be removed")
	}
	g.Disconnect("a-b") // repeated removal is a no-op
}

// ── In/Out connections ──

func TestOutAndInConnections(t *testing.T) {
	g := New()
	addNode(g, "a", 0, 0)
	addNode(g, "b", 10, 0)
	addNode(g, "c", 20, 0)
	g.Connect("a", "b", "", "")
	g.Connect("a", "c", "", "")
	g.Connect("b", "c", "", "")

	if got := len(g.OutConnections("a")); got != 2 {
		t.Errorf("OutConnections(a) = %d, want 2", got)
	}
	if got := len(g.InConnections("c")); got != 2 {
		t.Errorf("InConnections(c) = %d, want 2", got)
	}
}

// ── Clone ──

func TestCloneIsDeep(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a", Type: "tool", Config: map[string]any{"k": "v"}})
	addNode(g, "b", 5, 5)
	g.Connect("a", "b", "", "")

	c := g.Clone()
	c.Node("a").Config["k"] = "changed"
	c.MoveNode("b", geom.Pt(99, 99))
	c.RemoveNode("a")

	if g.Node("a").Config["k"] != "v" {
		t.Error("clone shares config map with original")
	}
	if g.Node("b").Pos != geom.Pt(5, 5) {
		t.Error("clone shares node with original")
	}
	if g.ConnectionCount() != 1 {
		t.Error("clone mutation leaked into original connections")
	}
}
