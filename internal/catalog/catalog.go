// Package catalog describes the node types a workflow can contain: their
// display labels, canvas footprint, default configuration, and the system
// rules sent to the execution backend.
package catalog

import (
	"fmt"
	"math/rand"

	"github.com/wesen/weave/pkg/flowgraph"
	"github.com/wesen/weave/pkg/geom"
)

// Node type identifiers as they appear on the wire.
const (
	TypeBrain       = "brain"
	TypeInput       = "input"
	TypeOutput      = "output"
	TypeKnowledge   = "knowledge"
	TypeTool        = "tool"
	TypeExternalApp = "externalApp"
)

// Info is the static description of one node type.
type Info struct {
	Type  string
	Label string
	// Badge is the single-letter marker shown in the palette and on the
	// node box.
	Badge string
	// W and H are the node footprint in world units at scale 1.
	W, H float64
	// DefaultConfig seeds a freshly spawned node's user configuration.
	DefaultConfig map[string]any
}

var infos = []Info{
	{
		Type: TypeInput, Label: "Input", Badge: "I", W: 20, H: 5,
		DefaultConfig: map[string]any{"input_type": "text"},
	},
	{
		Type: TypeBrain, Label: "Brain", Badge: "B", W: 22, H: 5,
		DefaultConfig: map[string]any{"model": "gpt-4o", "temperature": 0.7},
	},
	{
		Type: TypeKnowledge, Label: "Knowledge Base", Badge: "K", W: 22, H: 5,
		DefaultConfig: map[string]any{"collection": "default"},
	},
	{
		Type: TypeTool, Label: "Tool", Badge: "T", W: 20, H: 5,
		DefaultConfig: map[string]any{"tool_name": ""},
	},
	{
		Type: TypeExternalApp, Label: "External App", Badge: "X", W: 22, H: 5,
		DefaultConfig: map[string]any{"endpoint": "", "method": "POST"},
	},
	{
		Type: TypeOutput, Label: "Output", Badge: "O", W: 20, H: 5,
		DefaultConfig: map[string]any{"format": "text"},
	},
}

var byType = func() map[string]Info {
	m := make(map[string]Info, len(infos))
	for _, in := range infos {
		m[in.Type] = in
	}
	return m
}()

// Types returns every known node type in palette order.
func Types() []Info {
	out := make([]Info, len(infos))
	copy(out, infos)
	return out
}

// Lookup returns the Info for a node type. Unknown types get a generic
// Info rather than an error so that graphs saved by newer versions still
// load and render.
func Lookup(nodeType string) Info {
	if in, ok := byType[nodeType]; ok {
		return in
	}
	return Info{
		Type:  nodeType,
		Label: nodeType,
		Badge: "?",
		W:     20, H: 5,
		DefaultConfig: map[string]any{},
	}
}

// Known reports whether nodeType is one of the built-in types.
func Known(nodeType string) bool {
	_, ok := byType[nodeType]
	return ok
}

// Label returns the display label for a node type.
func Label(nodeType string) string {
	return Lookup(nodeType).Label
}

const spawnJitter = 30.0

// NewNode builds a node of the given type near the given world position,
// jittered so repeated spawns don't stack exactly on top of each other.
func NewNode(nodeType string, around geom.Point) flowgraph.Node {
	in := Lookup(nodeType)
	cfg := make(map[string]any, len(in.DefaultConfig))
	for k, v := range in.DefaultConfig {
		cfg[k] = v
	}
	return flowgraph.Node{
		Type:  nodeType,
		Label: in.Label,
		Pos: geom.Pt(
			around.X+(rand.Float64()*2-1)*spawnJitter,
			around.Y+(rand.Float64()*2-1)*spawnJitter,
		),
		Config: cfg,
	}
}

const brainRules = `You are a Brain Node in an AI agent workflow system.
Your responsibilities:
- Reason intelligently about the workflow and user goals.
- Consider all available connected tools and their capabilities.
- Use previous node outputs and memory context to guide decisions.
- Always align actions with the user's configuration preferences.
- Choose the best next step: which node/tool to invoke, in what order.
- If multiple paths are possible, explain your reasoning.
- Output in a structured, traceable format for testing/debugging.`

// SystemRules returns the instruction block the execution backend attaches
// to a node of the given type.
func SystemRules(nodeType string) string {
	switch nodeType {
	case TypeBrain:
		return brainRules
	case TypeInput:
		return "Collect and preprocess the user's input for downstream nodes."
	case TypeOutput:
		return "Format the final workflow result for presentation to the user."
	case TypeKnowledge:
		return "Retrieve relevant documents from the knowledge base and summarize them for the workflow."
	case TypeTool:
		return "Invoke the configured tool and report its result."
	case TypeExternalApp:
		return "Call the configured external application endpoint and relay its response."
	default:
		return fmt.Sprintf("Execute %s node", nodeType)
	}
}
