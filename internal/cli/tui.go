package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scopeviz/scopetree/pkg/object"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listExpandedStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

// explorerRow is one selectable line: a node header or one of its properties.
type explorerRow struct {
	nodeID   string
	property string // empty for node headers
	label    string
}

// ExplorerModel is the bubbletea model for browsing a snapshot's nodes and
// toggling per-property expansion state.
type ExplorerModel struct {
	Rows     []explorerRow
	Expanded map[string]map[string]bool // nodeID -> property -> expanded
	Cursor   int
	Height   int
	Offset   int
	Quit     bool
}

// NewExplorerModel flattens the graph into navigable rows, root first.
func NewExplorerModel(g *object.Graph) ExplorerModel {
	m := ExplorerModel{
		Expanded: make(map[string]map[string]bool),
		Height:   15,
	}
	for _, n := range g.Nodes() {
		header := n.TypeName
		if header == "" {
			header = n.ID
		}
		if n.ID == g.Root().ID {
			header += "  (root)"
		}
		m.Rows = append(m.Rows, explorerRow{nodeID: n.ID, label: header})
		for _, p := range n.Properties {
			label := p.Name
			if p.IsReference() {
				label += " → " + p.Target
			} else {
				label += " = " + p.Value
			}
			m.Rows = append(m.Rows, explorerRow{nodeID: n.ID, property: p.Name, label: label})
		}
	}
	return m
}

// ExpansionFlags renders the selected expansion state as --expand values
// for the layout command, sorted for stable output.
func (m ExplorerModel) ExpansionFlags() []string {
	var flags []string
	for nodeID, props := range m.Expanded {
		for prop, on := range props {
			if on {
				flags = append(flags, nodeID+":"+prop)
			}
		}
	}
	sort.Strings(flags)
	return flags
}

func (m ExplorerModel) Init() tea.Cmd {
	return nil
}

func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Quit = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			row := m.Rows[m.Cursor]
			if row.property != "" {
				props, ok := m.Expanded[row.nodeID]
				if !ok {
					props = make(map[string]bool)
					m.Expanded[row.nodeID] = props
				}
				props[row.property] = !props[row.property]
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ExplorerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Snapshot Explorer"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ toggle expanded  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := row.label
		style := listNormalStyle
		if row.property == "" {
			style = StyleHighlight
		} else {
			line = "    " + line
			if m.Expanded[row.nodeID][row.property] {
				line += "  [expanded]"
				style = listExpandedStyle
			}
		}
		if i == m.Cursor {
			style = listSelectedStyle
		}

		b.WriteString(cursor + style.Render(line) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d", m.Cursor+1, len(m.Rows))))
	return b.String()
}
