package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesen/weave/internal/catalog"
	"github.com/wesen/weave/pkg/flowgraph"
	"github.com/wesen/weave/pkg/geom"
)

func buildGraph(t *testing.T) *flowgraph.Graph {
	t.Helper()
	g := flowgraph.New()
	g.AddNode(flowgraph.Node{ID: "in", Type: catalog.TypeInput, Label: "Input", Pos: geom.Pt(0, 0), Config: map[string]any{"input_type": "text"}})
	g.AddNode(flowgraph.Node{ID: "brain", Type: catalog.TypeBrain, Label: "Brain", Pos: geom.Pt(40, 0), Config: map[string]any{"model": "gpt-4o"}})
	g.AddNode(flowgraph.Node{ID: "kb", Type: catalog.TypeKnowledge, Label: "Docs", Pos: geom.Pt(40, 20), Config: map[string]any{"collection": "docs"}})
	g.AddNode(flowgraph.Node{ID: "tool", Type: catalog.TypeTool, Label: "Search", Pos: geom.Pt(80, 20), Config: map[string]any{"tool_name": "search"}})
	g.AddNode(flowgraph.Node{ID: "out", Type: catalog.TypeOutput, Label: "Output", Pos: geom.Pt(120, 0), Config: map[string]any{}})
	mustConnect(t, g, "in", "brain")
	mustConnect(t, g, "kb", "brain")
	mustConnect(t, g, "brain", "tool")
	mustConnect(t, g, "brain", "out")
	return g
}

func mustConnect(t *testing.T, g *flowgraph.Graph, from, to string) {
	t.Helper()
	if _, ok := g.Connect(from, to, "output", "input"); !ok {
		t.Fatalf("connect %s-%s failed", from, to)
	}
}

func TestSerializeShape(t *testing.T) {
	p := Serialize("wf-1", buildGraph(t))

	assert.Equal(t, "wf-1", p.WorkflowID)
	require.Len(t, p.Nodes, 5)
	require.Len(t, p.Connections, 4)

	// insertion order is preserved
	assert.Equal(t, "in", p.Nodes[0].NodeID)
	assert.Equal(t, "out", p.Nodes[4].NodeID)
	assert.Equal(t, "in-brain", p.Connections[0].ID)

	brain := p.Nodes[1]
	assert.Equal(t, "brain", brain.NodeType)
	assert.Equal(t, "Brain", brain.Name)
	assert.Equal(t, 40.0, brain.PositionX)
	assert.Contains(t, brain.SystemRules, "Brain Node")
	assert.Equal(t, "gpt-4o", brain.UserConfig["model"])
}

func TestSerializeSnapshotsGraph(t *testing.T) {
	g := buildGraph(t)
	p := Serialize("wf", g)
	g.Node("brain").Config["model"] = "changed"
	assert.Equal(t, "gpt-4o", p.Nodes[1].UserConfig["model"],
		"payload must not alias live graph state")
}

func TestRoundTrip(t *testing.T) {
	g := buildGraph(t)
	data, err := Marshal("wf-rt", g)
	require.NoError(t, err)

	id, g2, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "wf-rt", id)
	assert.Equal(t, g.NodeCount(), g2.NodeCount())
	assert.Equal(t, g.ConnectionCount(), g2.ConnectionCount())

	for _, n := range g.Nodes() {
		n2 := g2.Node(n.ID)
		require.NotNil(t, n2, "node %s lost in round trip", n.ID)
		assert.Equal(t, n.Type, n2.Type)
		assert.Equal(t, n.Label, n2.Label)
		assert.Equal(t, n.Pos, n2.Pos)
	}
	assert.True(t, g2.HasConnection("kb", "brain"))
	c := g2.Connection("in-brain")
	require.NotNil(t, c)
	assert.Equal(t, "output", c.FromPort)
	assert.Equal(t, "input", c.ToPort)
}

func TestDeserializeTolerance(t *testing.T) {
	// connections missing entirely, node with no config or name
	raw := []byte(`{"workflow_id":"w","nodes":[{"node_id":"a","node_type":"brain","position_x":1,"position_y":2}]}`)
	_, g, err := Unmarshal(raw)
	require.NoError(t, err)
	n := g.Node("a")
	require.NotNil(t, n)
	assert.Equal(t, "Brain", n.Label, "missing name falls back to catalog label")
	assert.NotNil(t, n.Config)
}

func TestDeserializeDanglingConnectionFails(t *testing.T) {
	p := Payload{
		WorkflowID:  "w",
		Nodes:       []Node{{NodeID: "a", NodeType: "input"}},
		Connections: []Connection{{From: "a", To: "ghost"}},
	}
	_, err := Deserialize(p)
	assert.Error(t, err)
}

func TestDeserializeDuplicateNodeIDFails(t *testing.T) {
	p := Payload{
		WorkflowID: "w",
		Nodes:      []Node{{NodeID: "a", NodeType: "input"}, {NodeID: "a", NodeType: "output"}},
	}
	_, err := Deserialize(p)
	assert.Error(t, err)
}

func TestDeserializeDuplicateConnectionCollapses(t *testing.T) {
	p := Payload{
		WorkflowID: "w",
		Nodes:      []Node{{NodeID: "a", NodeType: "input"}, {NodeID: "b", NodeType: "output"}},
		Connections: []Connection{
			{From: "a", To: "b"},
			{From: "a", To: "b"},
		},
	}
	g, err := Deserialize(p)
	require.NoError(t, err)
	assert.Equal(t, 1, g.ConnectionCount())
}

func TestConnectionPortsOmittedWhenEmpty(t *testing.T) {
	g := flowgraph.New()
	g.AddNode(flowgraph.Node{ID: "a", Type: "input"})
	g.AddNode(flowgraph.Node{ID: "b", Type: "output"})
	g.Connect("a", "b", "", "")

	data, err := json.Marshal(Serialize("w", g))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "fromPort")
	assert.NotContains(t, string(data), "toPort")
}
