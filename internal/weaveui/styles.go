package weaveui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

// Color palette — CRT green terminal aesthetic.
var (
	colorBG = c("#080e0b")

	// Node type colors
	nodeColors = map[string]struct{ border, text color.Color }{
		"input":       {border: c("#44ff88"), text: c("#88ffbb")},
		"brain":       {border: c("#00ccee"), text: c("#66ffee")},
		"knowledge":   {border: c("#ddaa44"), text: c("#ffcc66")},
		"tool":        {border: c("#00d4a0"), text: c("#00ffc8")},
		"externalApp": {border: c("#cc66ff"), text: c("#ddaaff")},
		"output":      {border: c("#ff8866"), text: c("#ffbbaa")},
	}

	// Fallback for node types the palette doesn't know
	unknownBorder = c("#1a6a4a")
	unknownText   = c("#00d4a0")

	// Selection / execution override colors
	selBorder  = c("#00ffee")
	selText    = c("#00ffee")
	selBG      = c("#0a1a15")
	execBorder = c("#ffcc00")
	execText   = c("#ffee66")
	execBG     = c("#12120a")

	// Port marker colors
	portInColor  = c("#336655")
	portOutColor = c("#00ffc8")

	// Chrome colors
	toolbarColor = c("#00ffc8")
	footerColor  = c("#666666")
)

// typeColors returns border and text colors for a node type.
func typeColors(nodeType string) (border, text color.Color) {
	if nc, ok := nodeColors[nodeType]; ok {
		return nc.border, nc.text
	}
	return unknownBorder, unknownText
}

// borderForType picks the box border per node type.
func borderForType(nodeType string) lipgloss.Border {
	switch nodeType {
	case "input", "output":
		return lipgloss.RoundedBorder()
	case "brain":
		return lipgloss.DoubleBorder()
	default:
		return lipgloss.NormalBorder()
	}
}
