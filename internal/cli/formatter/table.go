package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator. Cell widths
// are measured with lipgloss so styled (ANSI-colored) cells align correctly.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	writeCell := func(col int, text string, last bool) {
		b.WriteString(text)
		if !last {
			pad := widths[col] - lipgloss.Width(text)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}

	for i, h := range headers {
		writeCell(i, StyleHeader.Render(h), i == len(headers)-1)
	}
	b.WriteString("\n")

	for i, w := range widths {
		writeCell(i, StyleDim.Render(strings.Repeat("─", w)), i == len(widths)-1)
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < len(headers); i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(i, cell, i == len(headers)-1)
		}
		b.WriteString("\n")
	}

	return b.String()
}
