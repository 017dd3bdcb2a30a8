// Package ui renders ACROSS results as terminal tables and browses them
// with Bubble Tea.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-across/internal/version"
)

// header and footer lines around a page
const chromeLines = 6

const defaultPageSize = 20

// Browser pages through one or more tables. Tab switches table, arrows move
// the cursor.
type Browser struct {
	tables []Table
	active int
	cursor int
	offset int
	width  int
	height int
}

// NewBrowser creates a browser over tables.
func NewBrowser(tables ...Table) Browser {
	return Browser{tables: tables}
}

// Init implements tea.Model.
func (m Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m = m.switchTable(1)
		case "shift+tab", "left", "h":
			m = m.switchTable(-1)
		case "up", "k":
			m = m.moveCursor(-1)
		case "down", "j":
			m = m.moveCursor(1)
		case "pgup", "b":
			m = m.moveCursor(-m.pageSize())
		case "pgdown", " ", "f":
			m = m.moveCursor(m.pageSize())
		case "home", "g":
			m = m.moveCursor(-m.rowCount())
		case "end", "G":
			m = m.moveCursor(m.rowCount())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.moveCursor(0)
	}

	return m, nil
}

// Active returns the index of the shown table.
func (m Browser) Active() int {
	return m.active
}

// Cursor returns the selected row of the shown table.
func (m Browser) Cursor() int {
	return m.cursor
}

func (m Browser) rowCount() int {
	if len(m.tables) == 0 {
		return 0
	}
	return len(m.tables[m.active].Rows)
}

func (m Browser) pageSize() int {
	if m.height <= chromeLines+1 {
		return defaultPageSize
	}
	return m.height - chromeLines
}

func (m Browser) switchTable(step int) Browser {
	n := len(m.tables)
	if n < 2 {
		return m
	}
	m.active = ((m.active+step)%n + n) % n
	m.cursor, m.offset = 0, 0
	return m
}

func (m Browser) moveCursor(step int) Browser {
	rows := m.rowCount()
	if rows == 0 {
		m.cursor, m.offset = 0, 0
		return m
	}
	m.cursor += step
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= rows {
		m.cursor = rows - 1
	}

	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	return m
}

// View implements tea.Model.
func (m Browser) View() string {
	if len(m.tables) == 0 {
		return dimStyle.Render("Nothing to show") + "\n"
	}

	var b strings.Builder
	b.WriteString(renderTitle())
	b.WriteString("\n")
	if len(m.tables) > 1 {
		b.WriteString(m.renderTabs())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	t := m.tables[m.active]
	t.Title = ""
	b.WriteString(t.render(m.cursor, m.offset, m.pageSize()))
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Browser) renderTabs() string {
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	var parts []string
	for i, t := range m.tables {
		name := t.Title
		if name == "" {
			name = fmt.Sprintf("Table %d", i+1)
		}
		label := fmt.Sprintf("[%d] %s", i+1, name)
		if i == m.active {
			parts = append(parts, activeStyle.Render("▶ "+label))
		} else {
			parts = append(parts, dimStyle.Render("  "+label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Browser) renderFooter() string {
	rows := m.rowCount()
	pos := "0/0"
	if rows > 0 {
		pos = fmt.Sprintf("%d/%d", m.cursor+1, rows)
	}
	help := "↑↓: move | pgup/pgdn: page | q: quit"
	if len(m.tables) > 1 {
		help = "↑↓: move | tab: next table | pgup/pgdn: page | q: quit"
	}
	return "\n" + dimStyle.Render("row "+pos+"  |  "+help)
}

// renderTitle draws the program name in a blue to magenta gradient.
func renderTitle() string {
	name := []rune("ls-across")
	var b strings.Builder
	for i, r := range name {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(i, len(name))))
		b.WriteString(style.Render(string(r)))
	}
	b.WriteString(dimStyle.Render(" v" + version.Version))
	return b.String()
}

// gradientColor interpolates #3B82F6 -> #8B5CF6 -> #D946EF across width.
func gradientColor(col, width int) string {
	stops := [3][3]float64{{59, 130, 246}, {139, 92, 246}, {217, 70, 239}}
	x := 0.0
	if width > 1 {
		x = float64(col) / float64(width-1)
	}
	seg, t := 0, x*2
	if t >= 1 {
		seg, t = 1, t-1
	}
	var rgb [3]int
	for i := range rgb {
		v := stops[seg][i] + t*(stops[seg+1][i]-stops[seg][i])
		rgb[i] = int(min(max(v, 0), 255))
	}
	return fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2])
}

// Browse runs a full-screen browser until the user quits or ctx ends.
func Browse(ctx context.Context, tables ...Table) error {
	p := tea.NewProgram(NewBrowser(tables...), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}
