// Package weaveui is the terminal canvas editor: a Bubble Tea program
// that drives a canvas session with mouse and keyboard, renders the
// workflow graph through lipgloss layers, and talks to the project store
// and execution backend.
package weaveui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/wesen/weave/internal/config"
	"github.com/wesen/weave/internal/project"
	"github.com/wesen/weave/internal/runner"
	"github.com/wesen/weave/pkg/canvas"
	"github.com/wesen/weave/pkg/flowgraph"
	"github.com/wesen/weave/pkg/geom"
)

// Model is the main application state.
type Model struct {
	Width, Height  int
	MouseX, MouseY int

	Session    *canvas.Session
	WorkflowID string
	Store      *project.Store
	Cfg        *config.Config
	Logger     *zap.Logger

	Dirty  bool
	Status string

	// Execution state
	Running   bool
	RunNodeID string // node currently reported as executing
	Console   []string
	runClient *runner.Client

	// Edit modal state
	EditOpen   bool
	EditNodeID string
	EditLabel  textinput.Model
	EditConfig textinput.Model
	EditFocus  int // 0=label, 1=config
}

// NewModel creates the editor model over an existing graph.
func NewModel(workflowID string, g *flowgraph.Graph, store *project.Store, cfg *config.Config, logger *zap.Logger) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if g == nil {
		g = flowgraph.New()
	}
	return Model{
		Session:    canvas.NewSession(g, geom.NewViewport()),
		WorkflowID: workflowID,
		Store:      store,
		Cfg:        cfg,
		Logger:     logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}
