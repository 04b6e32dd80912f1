package weaveui

import (
	"fmt"
	"image"

	"charm.land/lipgloss/v2"

	"github.com/wesen/weave/internal/catalog"
	"github.com/wesen/weave/pkg/canvas"
	"github.com/wesen/weave/pkg/cellbuf"
	"github.com/wesen/weave/pkg/drawutil"
)

// cellbuf style keys for the grid/connection background layer.
const (
	styleBG         cellbuf.StyleKey = 0
	styleGrid       cellbuf.StyleKey = 1
	styleEdge       cellbuf.StyleKey = 2
	styleEdgeActive cellbuf.StyleKey = 3
	styleEdgeSel    cellbuf.StyleKey = 4
	stylePreview    cellbuf.StyleKey = 5
)

// bufStyles maps cellbuf StyleKeys to lipgloss styles for rendering.
var bufStyles = map[cellbuf.StyleKey]lipgloss.Style{
	styleBG:         lipgloss.NewStyle().Foreground(c("#1a3a2a")).Background(colorBG),
	styleGrid:       lipgloss.NewStyle().Foreground(c("#0e2e20")).Background(colorBG),
	styleEdge:       lipgloss.NewStyle().Foreground(c("#00d4a0")).Background(colorBG),
	styleEdgeActive: lipgloss.NewStyle().Foreground(c("#ffcc00")).Background(colorBG).Bold(true),
	styleEdgeSel:    lipgloss.NewStyle().Foreground(c("#00ffee")).Background(colorBG).Bold(true),
	stylePreview:    lipgloss.NewStyle().Foreground(c("#336655")).Background(colorBG),
}

const gridSpacing = 10.0

// buildCanvasLayer renders the grid, committed connections, and the
// in-progress connection preview into a cellbuf and returns it as a
// single background layer at Z=0. It reads the curves straight out of
// the geometry registry so drawing matches hit-testing cell for cell.
func buildCanvasLayer(s *canvas.Session, showGrid bool, viewport image.Rectangle, runNodeID string) *lipgloss.Layer {
	w := viewport.Dx()
	h := viewport.Dy()
	if w <= 0 || h <= 0 {
		return lipgloss.NewLayer("").X(viewport.Min.X).Y(viewport.Min.Y).Z(0)
	}

	buf := cellbuf.New(w, h, styleBG)

	if showGrid {
		drawutil.DrawGrid(buf, s.View, image.Pt(0, 0), gridSpacing, styleGrid)
	}

	for _, conn := range s.Graph.Connections() {
		pts, ok := s.Geometry.ConnectionPath(conn.ID)
		if !ok {
			continue
		}
		es := styleEdge
		if conn.ID == s.SelectedConnection() {
			es = styleEdgeSel
		}
		if runNodeID != "" && conn.To == runNodeID {
			es = styleEdgeActive
		}
		drawutil.DrawArrowCurve(buf, pts, es, es)
	}

	// Dashed preview while a connection drag is in flight
	if from, to, ok := s.Preview(); ok {
		p0 := s.View.ToScreen(from).Cell()
		p1 := s.View.ToScreen(to).Cell()
		drawutil.DrawDashedCurve(buf, drawutil.CurvePoints(p0, p1), stylePreview)
	}

	rendered := buf.Render(bufStyles)
	return lipgloss.NewLayer(rendered).X(viewport.Min.X).Y(viewport.Min.Y).Z(0).ID("canvas")
}

// buildNodeLayers creates a box layer plus port marker layers for each
// visible node, using the same rectangles the registry holds.
func buildNodeLayers(s *canvas.Session, viewport image.Rectangle, runNodeID string) []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	for _, node := range s.Graph.Nodes() {
		local, ok := s.Geometry.NodeRect(node.ID)
		if !ok {
			continue
		}
		r := local.Add(viewport.Min)
		if !r.Overlaps(viewport) {
			continue
		}

		info := catalog.Lookup(node.Type)
		bc, tc := typeColors(node.Type)
		bg := colorBG
		if node.ID == s.SelectedNode() {
			bc, tc, bg = selBorder, selText, selBG
		}
		if runNodeID != "" && node.ID == runNodeID {
			bc, tc, bg = execBorder, execText, execBG
		}

		boxStyle := lipgloss.NewStyle().
			Border(borderForType(node.Type)).
			BorderForeground(bc).
			Background(bg).
			Width(r.Dx() - 2).
			Height(r.Dy() - 2).
			AlignHorizontal(lipgloss.Center).
			AlignVertical(lipgloss.Center)

		label := node.Label
		maxLen := r.Dx() - 4
		if maxLen < 0 {
			maxLen = 0
		}
		if len(label) > maxLen {
			label = label[:maxLen]
		}

		textStyle := lipgloss.NewStyle().
			Foreground(tc).
			Background(bg).
			Bold(true)

		layers = append(layers, lipgloss.NewLayer(boxStyle.Render(textStyle.Render(label))).
			X(r.Min.X).Y(r.Min.Y).Z(2).
			ID("node-"+node.ID))

		// Type badge in the top border
		if info.Badge != "" {
			tag := lipgloss.NewStyle().
				Foreground(bc).
				Background(bg).
				Render(fmt.Sprintf("[%s]", info.Badge))
			layers = append(layers, lipgloss.NewLayer(tag).
				X(r.Min.X+2).Y(r.Min.Y).Z(3).
				ID("tag-"+node.ID))
		}

		// Port markers on the side edges
		layers = append(layers, buildPortMarkers(s, node.ID, viewport)...)
	}

	return layers
}

func buildPortMarkers(s *canvas.Session, nodeID string, viewport image.Rectangle) []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	if a, ok := s.Geometry.PortAnchor(nodeID, canvas.PortIn); ok {
		marker := lipgloss.NewStyle().Foreground(portInColor).Background(colorBG).Render("◦")
		layers = append(layers, lipgloss.NewLayer(marker).
			X(a.X+viewport.Min.X).Y(a.Y+viewport.Min.Y).Z(3).
			ID("in-"+nodeID))
	}
	if a, ok := s.Geometry.PortAnchor(nodeID, canvas.PortOut); ok {
		marker := lipgloss.NewStyle().Foreground(portOutColor).Background(colorBG).Render("●")
		layers = append(layers, lipgloss.NewLayer(marker).
			X(a.X+viewport.Min.X).Y(a.Y+viewport.Min.Y).Z(3).
			ID("out-"+nodeID))
	}
	return layers
}
