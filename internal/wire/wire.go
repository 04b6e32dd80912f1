// Package wire converts between the in-memory graph and the JSON payload
// the execution backend consumes.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/wesen/weave/internal/catalog"
	"github.com/wesen/weave/pkg/flowgraph"
	"github.com/wesen/weave/pkg/geom"
)

// Node is the transport form of a graph node.
type Node struct {
	NodeID      string         `json:"node_id"`
	NodeType    string         `json:"node_type"`
	Name        string         `json:"name"`
	PositionX   float64        `json:"position_x"`
	PositionY   float64        `json:"position_y"`
	SystemRules string         `json:"system_rules"`
	UserConfig  map[string]any `json:"user_configuration"`
}

// Connection is the transport form of a graph edge.
type Connection struct {
	ID       string `json:"id"`
	From     string `json:"from"`
	To       string `json:"to"`
	FromPort string `json:"fromPort,omitempty"`
	ToPort   string `json:"toPort,omitempty"`
}

// Payload is the full workflow document.
type Payload struct {
	WorkflowID  string       `json:"workflow_id"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// Serialize captures the graph as a transport payload. The graph is
// snapshotted first so a concurrent edit cannot produce a payload with a
// connection whose endpoint is missing.
func Serialize(workflowID string, g *flowgraph.Graph) Payload {
	snap := g.Clone()
	p := Payload{
		WorkflowID:  workflowID,
		Nodes:       make([]Node, 0, snap.NodeCount()),
		Connections: make([]Connection, 0, snap.ConnectionCount()),
	}
	for _, n := range snap.Nodes() {
		p.Nodes = append(p.Nodes, Node{
			NodeID:      n.ID,
			NodeType:    n.Type,
			Name:        n.Label,
			PositionX:   n.Pos.X,
			PositionY:   n.Pos.Y,
			SystemRules: catalog.SystemRules(n.Type),
			UserConfig:  n.Config,
		})
	}
	for _, c := range snap.Connections() {
		p.Connections = append(p.Connections, Connection{
			ID:       c.ID,
			From:     c.From,
			To:       c.To,
			FromPort: c.FromPort,
			ToPort:   c.ToPort,
		})
	}
	return p
}

// Marshal renders the graph as indented JSON.
func Marshal(workflowID string, g *flowgraph.Graph) ([]byte, error) {
	return json.MarshalIndent(Serialize(workflowID, g), "", "  ")
}

// Deserialize rebuilds a graph from a payload. A connection referencing a
// node that is not in the payload fails the whole load rather than
// producing a silently truncated graph.
func Deserialize(p Payload) (*flowgraph.Graph, error) {
	g := flowgraph.New()
	for _, wn := range p.Nodes {
		if wn.NodeID == "" {
			return nil, fmt.Errorf("node %q has no id", wn.Name)
		}
		if g.Node(wn.NodeID) != nil {
			return nil, fmt.Errorf("duplicate node id %q", wn.NodeID)
		}
		cfg := wn.UserConfig
		if cfg == nil {
			cfg = map[string]any{}
		}
		label := wn.Name
		if label == "" {
			label = catalog.Label(wn.NodeType)
		}
		g.AddNode(flowgraph.Node{
			ID:     wn.NodeID,
			Type:   wn.NodeType,
			Label:  label,
			Pos:    geom.Pt(wn.PositionX, wn.PositionY),
			Config: cfg,
		})
	}
	for _, wc := range p.Connections {
		if g.Node(wc.From) == nil || g.Node(wc.To) == nil {
			return nil, fmt.Errorf("connection %s-%s references a missing node", wc.From, wc.To)
		}
		if wc.From == wc.To {
			return nil, fmt.Errorf("connection %s-%s is a self-loop", wc.From, wc.To)
		}
		// duplicates collapse to one connection
		g.Connect(wc.From, wc.To, wc.FromPort, wc.ToPort)
	}
	return g, nil
}

// Unmarshal parses JSON into a graph.
func Unmarshal(data []byte) (string, *flowgraph.Graph, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", nil, fmt.Errorf("parse workflow: %w", err)
	}
	g, err := Deserialize(p)
	if err != nil {
		return "", nil, err
	}
	return p.WorkflowID, g, nil
}
