package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const columnGap = "  "

// Table is a titled grid of pre-rendered cells. Cells may carry ANSI
// styling; widths are measured on the visible text.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  string
}

// RenderTable renders rows under headers.
func RenderTable(headers []string, rows [][]string) string {
	return Table{Headers: headers, Rows: rows}.Render()
}

// Render renders every row.
func (t Table) Render() string {
	return t.render(-1, 0, len(t.Rows))
}

func (t Table) widths() []int {
	n := len(t.Headers)
	for _, r := range t.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	w := make([]int, n)
	for i, h := range t.Headers {
		w[i] = lipgloss.Width(h)
	}
	for _, r := range t.Rows {
		for i, c := range r {
			if cw := lipgloss.Width(c); cw > w[i] {
				w[i] = cw
			}
		}
	}
	return w
}

// render draws limit rows starting at offset, highlighting cursor.
func (t Table) render(cursor, offset, limit int) string {
	var b strings.Builder
	if t.Title != "" {
		b.WriteString(titleStyle.Render(t.Title))
		b.WriteString("\n")
	}

	if len(t.Rows) == 0 {
		b.WriteString(dimStyle.Render("No entries"))
		b.WriteString("\n")
		return b.String()
	}

	w := t.widths()
	if len(t.Headers) > 0 {
		b.WriteString(headerStyle.Render(joinCells(t.Headers, w)))
		b.WriteString("\n")
	}

	end := offset + limit
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	for i := offset; i < end; i++ {
		line := joinCells(t.Rows[i], w)
		if i == cursor {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if t.Footer != "" {
		b.WriteString(dimStyle.Render(t.Footer))
		b.WriteString("\n")
	}
	return b.String()
}

func joinCells(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = pad(c, widths[i])
	}
	return strings.TrimRight(strings.Join(parts, columnGap), " ")
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
