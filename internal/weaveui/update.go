package weaveui

import (
	"context"
	"fmt"
	"image"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/wesen/weave/internal/catalog"
	"github.com/wesen/weave/internal/runner"
	"github.com/wesen/weave/internal/wire"
	"github.com/wesen/weave/pkg/geom"
)

// paletteTypeKeys maps number keys to palette entries.
var paletteTypeKeys = map[string]int{
	"1": 0, "2": 1, "3": 2, "4": 3, "5": 4, "6": 5,
}

type savedMsg struct{ err error }

type runStartedMsg struct {
	client *runner.Client
	err    error
}

type runEventMsg runner.Event

type runClosedMsg struct{}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		if m.EditOpen {
			return m.handleEditKeys(msg)
		}
		return m.handleKeys(msg)

	case tea.MouseMsg:
		return handleMouse(m, msg, m.canvasRect(), m.paletteRect())

	case savedMsg:
		if msg.err != nil {
			m.Status = fmt.Sprintf("save failed: %v", msg.err)
		} else {
			m.Dirty = false
			m.Status = fmt.Sprintf("saved %s", m.WorkflowID)
		}

	case runStartedMsg:
		if msg.err != nil {
			m.Status = fmt.Sprintf("run failed: %v", msg.err)
			m.Console = append(m.Console, fmt.Sprintf("! %v", msg.err))
			return m, nil
		}
		m.Running = true
		m.runClient = msg.client
		m.Status = "running"
		return m, waitEvent(msg.client)

	case runEventMsg:
		return m.handleRunEvent(runner.Event(msg))

	case runClosedMsg:
		if m.Running {
			m.Console = append(m.Console, "! connection closed")
			m.Status = "run aborted"
		}
		m = m.stopRun()
	}

	return m, nil
}

// handleKeys processes keyboard input on the canvas.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		m = m.stopRun()
		return m, tea.Quit

	// Viewport panning
	case "up":
		m.Session.View.PanBy(geom.Pt(0, m.Cfg.UI.PanStep))
	case "down":
		m.Session.View.PanBy(geom.Pt(0, -m.Cfg.UI.PanStep))
	case "left":
		m.Session.View.PanBy(geom.Pt(m.Cfg.UI.PanStep, 0))
	case "right":
		m.Session.View.PanBy(geom.Pt(-m.Cfg.UI.PanStep, 0))

	// Zoom at the canvas center
	case "+", "=":
		m.Session.View.ZoomAt(m.canvasCenter(), m.Cfg.UI.ZoomStep)
	case "-":
		m.Session.View.ZoomAt(m.canvasCenter(), 1/m.Cfg.UI.ZoomStep)
	case "0":
		r := m.canvasRect()
		m.Session.View.Reset(float64(r.Dx()), float64(r.Dy()))

	// Spawn nodes from the palette
	case "1", "2", "3", "4", "5", "6":
		if idx, ok := paletteTypeKeys[key]; ok {
			m = m.spawnNode(idx)
		}

	case "e":
		return m.openEditModal()

	case "d", "delete", "backspace":
		if m.Session.DeleteSelected() {
			m.Dirty = true
		}

	case "esc", "escape":
		if !m.Session.CancelGesture() {
			m.Session.ClearSelection()
		}

	case "s":
		return m, m.saveCmd()

	case "r":
		if !m.Running {
			return m, m.startRunCmd()
		}
	}

	return m, nil
}

// spawnNode adds a node of the palette entry at the canvas center and
// selects it.
func (m Model) spawnNode(paletteIdx int) Model {
	types := catalog.Types()
	if paletteIdx < 0 || paletteIdx >= len(types) {
		return m
	}
	center := m.Session.View.ToWorld(m.canvasCenter())
	n := catalog.NewNode(types[paletteIdx].Type, center)
	id := m.Session.Graph.AddNode(n)
	m.Session.SelectNode(id)
	m.Dirty = true
	m.Status = fmt.Sprintf("added %s", types[paletteIdx].Label)
	return m
}

func (m Model) saveCmd() tea.Cmd {
	if m.Store == nil {
		return func() tea.Msg {
			return savedMsg{err: fmt.Errorf("no project store configured")}
		}
	}
	store, id, g := m.Store, m.WorkflowID, m.Session.Graph
	return func() tea.Msg {
		return savedMsg{err: store.Save(id, g)}
	}
}

// startRunCmd serializes the graph and starts a backend run. The payload
// is captured before the command runs so later edits don't leak into an
// in-flight submission.
func (m Model) startRunCmd() tea.Cmd {
	payload := wire.Serialize(m.WorkflowID, m.Session.Graph)
	url := m.Cfg.Backend.URL
	logger := m.Logger
	return func() tea.Msg {
		c, err := runner.Dial(context.Background(), url, logger)
		if err != nil {
			return runStartedMsg{err: err}
		}
		if err := c.Execute(payload); err != nil {
			c.Close()
			return runStartedMsg{err: err}
		}
		return runStartedMsg{client: c}
	}
}

// waitEvent blocks on the next backend event.
func waitEvent(c *runner.Client) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-c.Events()
		if !ok {
			return runClosedMsg{}
		}
		return runEventMsg(ev)
	}
}

func (m Model) handleRunEvent(ev runner.Event) (tea.Model, tea.Cmd) {
	switch ev.Type {
	case runner.EventExecutionStarted, runner.EventWorkflowStarted:
		m.Console = append(m.Console, fmt.Sprintf("▶ %s started", ev.WorkflowID))
	case runner.EventNodeExecuted:
		m.RunNodeID = ev.NodeID
		line := fmt.Sprintf("✓ %s", m.nodeLabel(ev.NodeID))
		if ev.Result != "" {
			line += ": " + ev.Result
		}
		m.Console = append(m.Console, line)
	case runner.EventExecutionError:
		m.Console = append(m.Console, fmt.Sprintf("✗ %s: %s", m.nodeLabel(ev.NodeID), ev.Error))
		m.Status = "run failed"
	case runner.EventWorkflowFinished:
		m.Console = append(m.Console, "■ finished")
		m.Status = "run finished"
	}
	m.Logger.Debug("Run event", zap.String("type", ev.Type), zap.String("node", ev.NodeID))

	if ev.Terminal() {
		m = m.stopRun()
		return m, nil
	}
	return m, waitEvent(m.runClient)
}

// stopRun tears the run connection down, if any.
func (m Model) stopRun() Model {
	if m.runClient != nil {
		m.runClient.Close()
		m.runClient = nil
	}
	m.Running = false
	m.RunNodeID = ""
	return m
}

func (m Model) nodeLabel(id string) string {
	if n := m.Session.Graph.Node(id); n != nil {
		return n.Label
	}
	if id == "" {
		return "workflow"
	}
	return id
}

// canvasRect computes the canvas region rectangle for coordinate
// transforms. Must match the layout in View.
func (m Model) canvasRect() image.Rectangle {
	topH := 1
	bottomH := 1
	return image.Rect(paletteWidth, topH, m.Width-panelWidth, m.Height-bottomH)
}

// paletteRect is the clickable palette strip on the left.
func (m Model) paletteRect() image.Rectangle {
	return image.Rect(0, 1, paletteWidth, m.Height-1)
}

// canvasCenter is the canvas midpoint in canvas-local coordinates,
// the reference point for keyboard zoom.
func (m Model) canvasCenter() geom.Point {
	r := m.canvasRect()
	return geom.Pt(float64(r.Dx())/2, float64(r.Dy())/2)
}
