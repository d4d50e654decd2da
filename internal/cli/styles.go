package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	plain lipgloss.Style
	title lipgloss.Style
	bold  lipgloss.Style
	muted lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
}

// newStyles picks colors for w; writers that are not terminals get plain
// text.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		plain: r.NewStyle(),
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3")),
		bold:  r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("#8a8f98")),
		good:  r.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("#e53935")),
	}
}

// table renders rows under headers with columns padded to the widest cell.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func (t *table) add(row ...string) { t.rows = append(t.rows, row) }

func (t *table) render(st styles) string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(st.title.Render(t.title))
		sb.WriteString("\n")
	}

	line := func(cells []string, style lipgloss.Style) {
		parts := make([]string, 0, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts = append(parts, style.Width(widths[i]).Render(cell))
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		sb.WriteString("\n")
	}

	line(t.headers, st.bold)
	for _, row := range t.rows {
		line(row, st.plain)
	}
	return sb.String()
}
