package weaveui

import (
	"image"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/weave/pkg/canvas"
	"github.com/wesen/weave/pkg/geom"
)

const wheelPanStep = 2.0

// handleMouse processes mouse events. Pointer positions are translated
// into canvas-local coordinates before they reach the session, so the
// gesture state machine never sees chrome offsets.
func handleMouse(m Model, msg tea.MouseMsg, canvasRect, paletteRect image.Rectangle) (Model, tea.Cmd) {
	mouse := msg.Mouse()
	m.MouseX = mouse.X
	m.MouseY = mouse.Y

	if m.EditOpen {
		return m, nil
	}

	screen := image.Pt(mouse.X, mouse.Y)
	local := screen.Sub(canvasRect.Min)
	inCanvas := screen.In(canvasRect)

	switch msg.(type) {
	case tea.MouseWheelMsg:
		if !inCanvas {
			return m, nil
		}
		if mouse.Mod&tea.ModCtrl != 0 {
			pivot := geom.FromCell(local)
			switch mouse.Button {
			case tea.MouseWheelUp:
				m.Session.View.ZoomAt(pivot, m.Cfg.UI.ZoomStep)
			case tea.MouseWheelDown:
				m.Session.View.ZoomAt(pivot, 1/m.Cfg.UI.ZoomStep)
			}
			return m, nil
		}
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.Session.View.PanBy(geom.Pt(0, wheelPanStep))
		case tea.MouseWheelDown:
			m.Session.View.PanBy(geom.Pt(0, -wheelPanStep))
		case tea.MouseWheelLeft:
			m.Session.View.PanBy(geom.Pt(wheelPanStep, 0))
		case tea.MouseWheelRight:
			m.Session.View.PanBy(geom.Pt(-wheelPanStep, 0))
		}

	case tea.MouseClickMsg:
		if mouse.Button != tea.MouseLeft {
			return m, nil
		}
		if screen.In(paletteRect) {
			return m.handlePaletteClick(mouse.Y - paletteRect.Min.Y), nil
		}
		if inCanvas {
			wasDirty := m.graphFingerprint()
			m.Session.PointerDown(local)
			if m.graphFingerprint() != wasDirty {
				m.Dirty = true
			}
		}

	case tea.MouseMotionMsg:
		// A gesture keeps tracking even when the pointer strays over the
		// chrome, so fast drags don't stall at the canvas edge.
		if inCanvas || m.Session.Mode() != canvas.ModeIdle {
			m.Session.PointerMove(local)
			if m.Session.Mode() == canvas.ModeNodeDrag {
				m.Dirty = true
			}
		}

	case tea.MouseReleaseMsg:
		if m.Session.Mode() != canvas.ModeIdle {
			before := m.graphFingerprint()
			m.Session.PointerUp(local)
			if m.graphFingerprint() != before {
				m.Dirty = true
			}
		}
	}

	return m, nil
}

// handlePaletteClick spawns the node type on the clicked palette row.
// Rows follow the palette layout: title, divider, then one row per type.
func (m Model) handlePaletteClick(row int) Model {
	idx := row - 2
	return m.spawnNode(idx)
}

// graphFingerprint is a cheap change detector for marking the model
// dirty after gestures that may mutate the graph.
func (m Model) graphFingerprint() int {
	return m.Session.Graph.NodeCount()*10000 + m.Session.Graph.ConnectionCount()
}
