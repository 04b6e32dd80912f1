package weaveui

import (
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/weave/internal/catalog"
)

// openEditModal opens the edit modal for the selected node.
func (m Model) openEditModal() (tea.Model, tea.Cmd) {
	id := m.Session.SelectedNode()
	if id == "" {
		return m, nil
	}
	node := m.Session.Graph.Node(id)
	if node == nil {
		return m, nil
	}

	m.EditOpen = true
	m.EditNodeID = id
	m.EditFocus = 0

	m.EditLabel = textinput.New()
	m.EditLabel.Prompt = ""
	m.EditLabel.CharLimit = 30
	m.EditLabel.SetValue(node.Label)

	cfgJSON, err := json.Marshal(node.Config)
	if err != nil {
		cfgJSON = []byte("{}")
	}
	m.EditConfig = textinput.New()
	m.EditConfig.Prompt = ""
	m.EditConfig.CharLimit = 200
	m.EditConfig.SetValue(string(cfgJSON))

	cmd := m.EditLabel.Focus()
	return m, cmd
}

// handleEditKeys processes keys while the edit modal is open.
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc", "escape":
		m.EditOpen = false
		return m, nil

	case "enter":
		node := m.Session.Graph.Node(m.EditNodeID)
		if node == nil {
			// deleted while the modal was open
			m.EditOpen = false
			return m, nil
		}
		var cfg map[string]any
		raw := strings.TrimSpace(m.EditConfig.Value())
		if raw == "" {
			raw = "{}"
		}
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			m.Status = fmt.Sprintf("invalid config: %v", err)
			return m, nil
		}
		node.Label = strings.TrimSpace(m.EditLabel.Value())
		if node.Label == "" {
			node.Label = catalog.Label(node.Type)
		}
		node.Config = cfg
		m.Dirty = true
		m.EditOpen = false
		m.Status = fmt.Sprintf("updated %s", node.Label)
		return m, nil

	case "tab", "shift+tab":
		if m.EditFocus == 0 {
			m.EditFocus = 1
			m.EditLabel.Blur()
			cmd := m.EditConfig.Focus()
			return m, cmd
		}
		m.EditFocus = 0
		m.EditConfig.Blur()
		cmd := m.EditLabel.Focus()
		return m, cmd

	default:
		var cmd tea.Cmd
		if m.EditFocus == 0 {
			m.EditLabel, cmd = m.EditLabel.Update(msg)
		} else {
			m.EditConfig, cmd = m.EditConfig.Update(msg)
		}
		return m, cmd
	}
}

// buildEditModalLayer renders the edit modal as a centered Z=100 Layer.
func buildEditModalLayer(m Model, screenW, screenH int) *lipgloss.Layer {
	node := m.Session.Graph.Node(m.EditNodeID)
	if node == nil {
		return nil
	}

	info := catalog.Lookup(node.Type)

	titleStyle := lipgloss.NewStyle().
		Foreground(c("#00ffc8")).
		Background(c("#0a1510")).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(c("#ddaa44")).
		Background(c("#0a1510"))

	hintStyle := lipgloss.NewStyle().
		Foreground(c("#336655")).
		Background(c("#0a1510")).
		Italic(true)

	focusLabel := "  "
	focusConfig := "  "
	if m.EditFocus == 0 {
		focusLabel = "▸ "
	} else {
		focusConfig = "▸ "
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("  EDIT — %s", strings.ToUpper(info.Label))),
		"",
		labelStyle.Render(focusLabel + "Label:"),
		"  " + m.EditLabel.View(),
		"",
		labelStyle.Render(focusConfig + "Config (JSON object):"),
		"  " + m.EditConfig.View(),
		"",
		hintStyle.Render("  [tab] switch  [enter] save  [esc] cancel"),
	}

	content := strings.Join(lines, "\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(c("#00d4a0")).
		Background(c("#0a1510")).
		Width(56).
		Padding(1, 2)

	rendered := boxStyle.Render(content)

	renderedW := lipgloss.Width(rendered)
	renderedH := lipgloss.Height(rendered)
	cx := (screenW - renderedW) / 2
	cy := (screenH - renderedH) / 2
	if cx < 0 {
		cx = 0
	}
	if cy < 0 {
		cy = 0
	}

	return lipgloss.NewLayer(rendered).X(cx).Y(cy).Z(100).ID("edit-modal")
}
