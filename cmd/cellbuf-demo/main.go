// cellbuf-demo renders a sample workflow canvas to the terminal to
// visually verify that cellbuf + drawutil + lipgloss styling works
// correctly without starting the full editor.
//
// Run: go run ./cmd/cellbuf-demo/
package main

import (
	"fmt"
	"image"

	"charm.land/lipgloss/v2"

	"github.com/wesen/weave/pkg/cellbuf"
	"github.com/wesen/weave/pkg/drawutil"
	"github.com/wesen/weave/pkg/geom"
)

// Style keys
const (
	BG       cellbuf.StyleKey = 0
	Grid     cellbuf.StyleKey = 1
	Edge     cellbuf.StyleKey = 2
	Preview  cellbuf.StyleKey = 3
	NodeBox  cellbuf.StyleKey = 4
	NodeText cellbuf.StyleKey = 5
)

func main() {
	styles := map[cellbuf.StyleKey]lipgloss.Style{
		BG:       lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")).Background(lipgloss.Color("#0a0a0a")),
		Grid:     lipgloss.NewStyle().Foreground(lipgloss.Color("#1a3a1a")).Background(lipgloss.Color("#0a0a0a")),
		Edge:     lipgloss.NewStyle().Foreground(lipgloss.Color("#00d4a0")).Background(lipgloss.Color("#0a0a0a")),
		Preview:  lipgloss.NewStyle().Foreground(lipgloss.Color("#336655")).Background(lipgloss.Color("#0a0a0a")),
		NodeBox:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Background(lipgloss.Color("#0a1510")),
		NodeText: lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffcc")).Background(lipgloss.Color("#0a1510")).Bold(true),
	}

	buf := cellbuf.New(70, 25, BG)

	// Grid dots under the viewport transform
	view := geom.NewViewport()
	drawutil.DrawGrid(buf, view, image.Pt(0, 0), 8, Grid)

	// Three node boxes: input → brain → output
	inputRect := image.Rect(2, 3, 20, 8)
	brainRect := image.Rect(28, 10, 48, 15)
	outputRect := image.Rect(52, 2, 68, 7)

	drawBox(buf, inputRect, NodeBox, '╭', '╮', '╰', '╯')
	buf.SetString(inputRect.Min.X+4, inputRect.Min.Y+2, " Input ", NodeText)

	drawBox(buf, brainRect, NodeBox, '╔', '╗', '╚', '╝')
	buf.SetString(brainRect.Min.X+5, brainRect.Min.Y+2, " Brain ", NodeText)

	drawBox(buf, outputRect, NodeBox, '╭', '╮', '╰', '╯')
	buf.SetString(outputRect.Min.X+3, outputRect.Min.Y+2, " Output ", NodeText)

	// Bezier edges from output ports to input ports
	out1 := image.Pt(inputRect.Max.X-1, (inputRect.Min.Y+inputRect.Max.Y)/2)
	in2 := image.Pt(brainRect.Min.X, (brainRect.Min.Y+brainRect.Max.Y)/2)
	drawutil.DrawArrowCurve(buf, drawutil.CurvePoints(out1, in2), Edge, Edge)

	out2 := image.Pt(brainRect.Max.X-1, (brainRect.Min.Y+brainRect.Max.Y)/2)
	in3 := image.Pt(outputRect.Min.X, (outputRect.Min.Y+outputRect.Max.Y)/2)
	drawutil.DrawArrowCurve(buf, drawutil.CurvePoints(out2, in3), Edge, Edge)

	// Dashed preview curve, as drawn mid connection-drag
	drawutil.DrawDashedCurve(buf, drawutil.CurvePoints(out1, image.Pt(40, 20)), Preview)

	fmt.Println()
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ffcc")).
		Bold(true).
		Underline(true)
	fmt.Println(title.Render("  cellbuf visual demo — weave canvas rendering"))
	fmt.Println()

	fmt.Println(buf.Render(styles))

	fmt.Println()
	legend := lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	fmt.Println(legend.Render("  Grid=dim dots  Edge=green curves  Preview=dashed  Nodes=boxed"))
	fmt.Println()
}

func drawBox(buf *cellbuf.Buffer, r image.Rectangle, style cellbuf.StyleKey, tl, tr, bl, br rune) {
	x, y := r.Min.X, r.Min.Y
	w, h := r.Dx(), r.Dy()
	buf.Set(x, y, tl, style)
	for i := 1; i < w-1; i++ {
		buf.Set(x+i, y, '─', style)
	}
	buf.Set(x+w-1, y, tr, style)
	buf.Set(x, y+h-1, bl, style)
	for i := 1; i < w-1; i++ {
		buf.Set(x+i, y+h-1, '─', style)
	}
	buf.Set(x+w-1, y+h-1, br, style)
	for j := 1; j < h-1; j++ {
		buf.Set(x, y+j, '│', style)
		buf.Set(x+w-1, y+j, '│', style)
		for i := 1; i < w-1; i++ {
			buf.Set(x+i, y+j, ' ', style)
		}
	}
}
