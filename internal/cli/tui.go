package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chartfit/pkg/integrations/analytics"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ChartListModel - Interactive chart selection
// =============================================================================

// ChartSelection holds the result of the chart selection.
type ChartSelection struct {
	Chart *analytics.Chart
}

// ChartListModel is the bubbletea model for interactive chart selection.
type ChartListModel struct {
	Charts   []analytics.Chart
	Cursor   int
	Selected *ChartSelection
	Height   int
	Offset   int
}

// NewChartListModel creates a new chart list model.
func NewChartListModel(charts []analytics.Chart) ChartListModel {
	return ChartListModel{
		Charts: charts,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m ChartListModel) Init() tea.Cmd {
	return nil
}

func (m ChartListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Charts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			chart := m.Charts[m.Cursor]
			m.Selected = &ChartSelection{Chart: &chart}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ChartListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Chart"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Charts) {
		end = len(m.Charts)
	}

	for i := m.Offset; i < end; i++ {
		c := m.Charts[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := fmt.Sprintf("%s%s", cursor, style.Render(c.Name))
		if c.Description != "" {
			line += "  " + listDimStyle.Render(c.Description)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.Charts) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(
			fmt.Sprintf("%d/%d", m.Cursor+1, len(m.Charts))))
	}

	return b.String()
}

// pickChart runs the interactive selector and returns the chosen chart,
// or nil when the user quit without selecting.
func pickChart(charts []analytics.Chart) (*analytics.Chart, error) {
	model := NewChartListModel(charts)
	prog := tea.NewProgram(model)
	final, err := prog.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(ChartListModel); ok && m.Selected != nil {
		return m.Selected.Chart, nil
	}
	return nil, nil
}
