package cellbuf

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Render converts the buffer into a styled string. The caller provides a
// mapping from StyleKey to lipgloss.Style.
//
// Consecutive cells sharing a StyleKey are merged into runs, with a single
// Style.Render() call per run. This is significantly faster than per-cell
// rendering. Rows are joined with "\n"; an empty buffer returns "".
func (b *Buffer) Render(styles map[StyleKey]lipgloss.Style) string {
	if b.W == 0 || b.H == 0 {
		return ""
	}

	var out strings.Builder
	chunk := make([]rune, 0, b.W)

	for y := 0; y < b.H; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		row := b.cells[y*b.W : (y+1)*b.W]

		x := 0
		for x < b.W {
			runStyle := row[x].Style
			chunk = chunk[:0]
			for x < b.W && row[x].Style == runStyle {
				chunk = append(chunk, row[x].Ch)
				x++
			}
			if s, ok := styles[runStyle]; ok {
				out.WriteString(s.Render(string(chunk)))
			} else {
				out.WriteString(string(chunk))
			}
		}
	}

	return out.String()
}
