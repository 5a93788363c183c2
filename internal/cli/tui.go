package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// TemplateListModel is the bubbletea model for interactive template selection.
type TemplateListModel struct {
	Templates []string
	Cursor    int
	Selected  string
}

// NewTemplateListModel creates a new template list model.
func NewTemplateListModel(templates []string) TemplateListModel {
	return TemplateListModel{Templates: templates}
}

func (m TemplateListModel) Init() tea.Cmd {
	return nil
}

func (m TemplateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Templates)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Templates[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m TemplateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Template"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, path := range m.Templates {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		var status string
		if _, err := os.Stat(path); err != nil {
			status = StyleWarning.Render("!")
		} else {
			status = styleIconSuccess.Render("*")
		}

		line := fmt.Sprintf("%s%s %s", cursor, status, path)

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s found   %s missing\n",
		styleIconSuccess.Render("*"), StyleWarning.Render("!")))

	return b.String()
}

// pickTemplate runs the interactive template picker and returns the chosen
// path, or the empty string if the user quit without selecting.
func pickTemplate(templates []string) (string, error) {
	p := tea.NewProgram(NewTemplateListModel(templates))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(TemplateListModel)
	if !ok {
		return "", nil
	}
	return m.Selected, nil
}
