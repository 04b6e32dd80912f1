package weaveui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/weave/pkg/canvas"
	"github.com/wesen/weave/pkg/tealayout"
)

var (
	tbStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("#0a1510")).
		Foreground(toolbarColor).
		Bold(true)

	ftStyle = lipgloss.NewStyle().
		Foreground(footerColor)

	bgStyle = lipgloss.NewStyle().
		Background(colorBG)
)

// modeNames maps gesture modes to footer display names.
var modeNames = map[canvas.Mode]string{
	canvas.ModeIdle:     "idle",
	canvas.ModePan:      "pan",
	canvas.ModeNodeDrag: "move",
	canvas.ModeConnect:  "wire",
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.Width == 0 || m.Height == 0 {
		return tea.NewView("")
	}

	// Layout: toolbar(1) + footer(1) + palette(left) + panel(right) + canvas
	layout := tealayout.NewLayoutBuilder(m.Width, m.Height).
		TopFixed("toolbar", 1).
		BottomFixed("footer", 1).
		LeftFixed("palette", paletteWidth).
		RightFixed("panel", panelWidth).
		Remaining("canvas").
		Build()

	canvasRegion := layout.Get("canvas")
	paletteRegion := layout.Get("palette")
	panelRegion := layout.Get("panel")

	// Hit-test geometry always mirrors what this frame draws.
	syncGeometry(m.Session)

	var layers []*lipgloss.Layer

	// Background
	layers = append(layers,
		tealayout.FillLayer(layout.Get("toolbar"), tbStyle, "toolbar-bg", 0),
		tealayout.FillLayer(canvasRegion, bgStyle, "canvas-bg", 0),
		tealayout.FillLayer(layout.Get("footer"), ftStyle, "footer-bg", 0),
	)

	// Toolbar content
	state := ""
	if m.Running {
		state = "  │  ⟳ running"
	} else if m.Dirty {
		state = "  │  ● unsaved"
	}
	tbContent := fmt.Sprintf(
		" WEAVE  │  %s%s  │  [s]ave [r]un [e]dit [q]uit",
		m.WorkflowID, state,
	)
	layers = append(layers,
		tealayout.ToolbarLayer(tbContent, m.Width, tbStyle),
	)

	// Footer content
	selStr := "none"
	if id := m.Session.SelectedNode(); id != "" {
		if n := m.Session.Graph.Node(id); n != nil {
			selStr = n.Label
		}
	} else if id := m.Session.SelectedConnection(); id != "" {
		selStr = id
	}
	ftContent := fmt.Sprintf(
		" Mouse: (%d,%d)  Zoom: %.0f%%  Mode: %s  Sel: %s  Nodes: %d  %s",
		m.MouseX, m.MouseY, m.Session.View.Scale*100,
		modeNames[m.Session.Mode()], selStr,
		m.Session.Graph.NodeCount(), m.Status,
	)
	layers = append(layers,
		tealayout.FooterLayer(ftContent, m.Width, m.Height-1, ftStyle),
	)

	// Canvas: grid + connections + preview at Z=0, nodes above
	layers = append(layers,
		buildCanvasLayer(m.Session, m.Cfg.UI.ShowGrid, canvasRegion.Rect, m.RunNodeID),
	)
	layers = append(layers,
		buildNodeLayers(m.Session, canvasRegion.Rect, m.RunNodeID)...,
	)

	// Left palette
	pr := paletteRegion.Rect
	if pr.Dx() > 0 && pr.Dy() > 0 {
		layers = append(layers, tealayout.FillLayer(paletteRegion, bgStyle, "palette-bg", 0))
		layers = append(layers, buildPaletteLayer(pr.Min.X, pr.Min.Y, pr.Dx(), pr.Dy()))
		layers = append(layers, buildSeparatorLayer("sep-left", pr.Max.X, pr.Min.Y, pr.Dy()))
	}

	// Right panel: properties + console + help
	sr := panelRegion.Rect
	sw := sr.Dx()
	sh := sr.Dy()
	if sw > 0 && sh > 0 {
		propsH := 10
		helpH := 8
		consoleH := sh - propsH - helpH
		if consoleH < 3 {
			consoleH = 3
		}

		layers = append(layers, buildSeparatorLayer("sep-right", sr.Min.X-1, sr.Min.Y, sh))
		layers = append(layers, tealayout.FillLayer(panelRegion, bgStyle, "panel-bg", 0))

		selNode := m.Session.Graph.Node(m.Session.SelectedNode())
		layers = append(layers, buildPropsPanelLayer(selNode, sr.Min.X+1, sr.Min.Y, sw-2, propsH))
		layers = append(layers, buildConsolePanelLayer(m.Console, m.Running, sr.Min.X+1, sr.Min.Y+propsH, sw-2, consoleH))
		layers = append(layers, buildHelpPanelLayer(sr.Min.X+1, sr.Min.Y+propsH+consoleH, sw-2, helpH))
	}

	// Edit modal on top of everything
	if m.EditOpen {
		if modal := buildEditModalLayer(m, m.Width, m.Height); modal != nil {
			layers = append(layers, modal)
		}
	}

	// Compose
	comp := lipgloss.NewCompositor(layers...)
	cv := lipgloss.NewCanvas(m.Width, m.Height)
	cv.Compose(comp)

	v := tea.NewView(cv.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}
