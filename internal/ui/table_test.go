package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"Name", "RA"}, [][]string{
		{"Crab", "83.6331"},
		{"Sgr A*", "266.4168"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[1], "Crab")
	assert.Contains(t, lines[2], "266.4168")
}

func TestTable_Empty(t *testing.T) {
	out := Table{Title: "Plan", Headers: []string{"Begin"}}.Render()
	assert.Contains(t, out, "Plan")
	assert.Contains(t, out, "No entries")
	assert.NotContains(t, out, "Begin")
}

func TestTable_Footer(t *testing.T) {
	out := Table{Rows: [][]string{{"a"}}, Footer: "1 row"}.Render()
	assert.Contains(t, out, "1 row")
}

func TestTable_Widths(t *testing.T) {
	tbl := Table{
		Headers: []string{"A", "Long header"},
		Rows:    [][]string{{"wide cell", "x"}, {"b", "y", "extra"}},
	}
	assert.Equal(t, []int{9, 11, 5}, tbl.widths())
}

func TestTable_RenderWindow(t *testing.T) {
	tbl := Table{Rows: rows(10)}
	out := tbl.render(-1, 3, 4)
	assert.Equal(t, 4, strings.Count(out, "\n"))
	assert.Equal(t, 2, strings.Count(tbl.render(-1, 8, 4), "\n"))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, "abcdef", pad("abcdef", 4))
	assert.Equal(t, "°   ", pad("°", 4))
}
