package weaveui

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wesen/weave/internal/catalog"
	"github.com/wesen/weave/pkg/flowgraph"
)

const (
	panelWidth   = 34
	paletteWidth = 18
)

// panelBG is the panel background color, defined inline to avoid init-order issues.
var panelBG = c("#1a2a20")

// Panel styles — all share the same background for consistency.
var (
	panelTitleStyle = lipgloss.NewStyle().
			Foreground(c("#00ffc8")).
			Background(panelBG).
			Bold(true)

	panelDimStyle = lipgloss.NewStyle().
			Foreground(c("#336655")).
			Background(panelBG)

	panelTextStyle = lipgloss.NewStyle().
			Foreground(c("#00d4a0")).
			Background(panelBG)

	panelKeyStyle = lipgloss.NewStyle().
			Foreground(c("#ddaa44")).
			Background(panelBG)

	panelValStyle = lipgloss.NewStyle().
			Foreground(c("#00ffc8")).
			Background(panelBG)

	panelSepStyle = lipgloss.NewStyle().
			Foreground(c("#1a4a3a")).
			Background(panelBG)

	// panelLineStyle wraps padding with consistent background.
	panelLineStyle = lipgloss.NewStyle().
			Background(panelBG)
)

// padLine right-pads and renders a line with consistent background to the given width.
func padLine(s string, width int) string {
	vis := lipgloss.Width(s)
	pad := width - vis
	if pad > 0 {
		s += panelLineStyle.Render(strings.Repeat(" ", pad))
	}
	return s
}

// padBlock pads lines to the given height and width.
func padBlock(lines []string, width, height int) []string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, l := range lines {
		lines[i] = padLine(l, width)
	}
	return lines
}

// buildPaletteLayer renders the left node-type palette. Row positions
// must match handlePaletteClick: title, divider, then one row per type.
func buildPaletteLayer(x, y, width, height int) *lipgloss.Layer {
	lines := []string{
		panelTitleStyle.Render(" NODES"),
		panelDimStyle.Render(strings.Repeat("─", width-1)),
	}
	for i, in := range catalog.Types() {
		lines = append(lines,
			panelKeyStyle.Render(fmt.Sprintf(" [%d]", i+1))+
				panelTextStyle.Render(" "+in.Label))
	}
	lines = append(lines, "")
	lines = append(lines, panelDimStyle.Render(" click or key"))
	lines = append(lines, panelDimStyle.Render(" to add"))

	content := strings.Join(padBlock(lines, width, height), "\n")
	return lipgloss.NewLayer(content).X(x).Y(y).Z(1).ID("palette")
}

// buildPropsPanelLayer renders the selected node's properties.
func buildPropsPanelLayer(n *flowgraph.Node, x, y, width, height int) *lipgloss.Layer {
	var lines []string
	lines = append(lines, panelTitleStyle.Render(" PROPERTIES"))
	lines = append(lines, panelDimStyle.Render(strings.Repeat("─", width-2)))

	if n == nil {
		lines = append(lines, panelDimStyle.Render("  (nothing selected)"))
	} else {
		lines = append(lines,
			panelKeyStyle.Render("  type")+panelDimStyle.Render(" = ")+
				panelValStyle.Render(catalog.Label(n.Type)))
		lines = append(lines,
			panelKeyStyle.Render("  label")+panelDimStyle.Render(" = ")+
				panelValStyle.Render(n.Label))
		lines = append(lines,
			panelKeyStyle.Render("  pos")+panelDimStyle.Render(" = ")+
				panelValStyle.Render(fmt.Sprintf("(%.0f, %.0f)", n.Pos.X, n.Pos.Y)))

		keys := make([]string, 0, len(n.Config))
		for k := range n.Config {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			line := panelKeyStyle.Render(fmt.Sprintf("  %s", k)) +
				panelDimStyle.Render(" = ") +
				panelValStyle.Render(fmt.Sprintf("%v", n.Config[k]))
			lines = append(lines, line)
		}
	}

	content := strings.Join(padBlock(lines, width, height), "\n")
	return lipgloss.NewLayer(content).X(x).Y(y).Z(1).ID("panel-props")
}

// buildConsolePanelLayer renders the execution console section.
func buildConsolePanelLayer(output []string, running bool, x, y, width, height int) *lipgloss.Layer {
	var lines []string
	title := " CONSOLE"
	if running {
		title = " CONSOLE (running)"
	}
	lines = append(lines, panelTitleStyle.Render(title))
	lines = append(lines, panelDimStyle.Render(strings.Repeat("─", width-2)))

	if len(output) == 0 {
		lines = append(lines, panelDimStyle.Render("  (empty)"))
	} else {
		maxLines := height - 2
		start := 0
		if len(output) > maxLines {
			start = len(output) - maxLines
		}
		for _, line := range output[start:] {
			if lipgloss.Width(line) > width-4 {
				line = line[:width-4]
			}
			lines = append(lines, panelTextStyle.Render("  "+line))
		}
	}

	content := strings.Join(padBlock(lines, width, height), "\n")
	return lipgloss.NewLayer(content).X(x).Y(y).Z(1).ID("panel-console")
}

// buildHelpPanelLayer renders the static help section.
func buildHelpPanelLayer(x, y, width, height int) *lipgloss.Layer {
	helpLines := []string{
		panelTitleStyle.Render(" HELP"),
		panelDimStyle.Render(strings.Repeat("─", width-2)),
		panelTextStyle.Render("  drag body=move  drag ●=wire"),
		panelTextStyle.Render("  drag bg=pan  wheel=pan"),
		panelTextStyle.Render("  ctrl+wheel / + - = zoom"),
		panelTextStyle.Render("  [e]dit [d]elete [esc]cancel"),
		panelTextStyle.Render("  [s]ave [r]un [0]reset [q]uit"),
	}

	content := strings.Join(padBlock(helpLines, width, height), "\n")
	return lipgloss.NewLayer(content).X(x).Y(y).Z(1).ID("panel-help")
}

// buildSeparatorLayer creates a vertical separator line.
func buildSeparatorLayer(id string, x, y, height int) *lipgloss.Layer {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = panelSepStyle.Render("│")
	}
	content := strings.Join(lines, "\n")
	return lipgloss.NewLayer(content).X(x).Y(y).Z(1).ID(id)
}
