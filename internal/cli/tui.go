package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
	"github.com/matzehuels/cyclegraph/pkg/depgraph/transform"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CycleListModel - Interactive cycle browser
// =============================================================================

// CycleListModel is the bubbletea model for browsing cycles. Enter shows
// the edges of the selected cycle with their import counts.
type CycleListModel struct {
	Cycles   []transform.Cycle
	Graph    *depgraph.Graph
	Cursor   int
	Offset   int
	Height   int
	Expanded bool
}

// newCycleListModel creates a new cycle list model.
func newCycleListModel(cycles []transform.Cycle, g *depgraph.Graph) CycleListModel {
	return CycleListModel{
		Cycles: cycles,
		Graph:  g,
		Height: 10,
	}
}

func (m CycleListModel) Init() tea.Cmd {
	return nil
}

func (m CycleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Cycles)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m CycleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Import Cycles"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Cycles))

	var rows [][]string
	for i := m.Offset; i < end; i++ {
		c := m.Cycles[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, strconv.Itoa(c.ID), strconv.Itoa(len(c.Nodes)), cyclePath(c)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Length", "Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Cycles) {
				return lipgloss.NewStyle()
			}
			if col == 1 {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.Cycles[idx].Color))
			}
			if idx == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Expanded && m.Cursor < len(m.Cycles) {
		b.WriteString("\n")
		b.WriteString(m.details(m.Cycles[m.Cursor]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Cycles))))

	return b.String()
}

// details lists the edges of c with their weights.
func (m CycleListModel) details(c transform.Cycle) string {
	var b strings.Builder
	for _, pair := range c.Edges() {
		weight := "?"
		if m.Graph != nil {
			if e, ok := m.Graph.Edge(pair[0], pair[1]); ok {
				weight = plural(e.Weight, "import")
			}
		}
		fmt.Fprintf(&b, "  %s %s %s  %s\n",
			listNormalStyle.Render(pair[0]),
			listDimStyle.Render(iconArrow),
			listNormalStyle.Render(pair[1]),
			listDimStyle.Render(weight))
	}
	return b.String()
}
