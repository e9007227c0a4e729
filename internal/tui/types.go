package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"commando/internal/commit"
)

func (m model) updateTypeList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.typeCursor > 0 {
			m.typeCursor--
		}
	case "down", "j":
		if m.typeCursor < len(commit.Registry)-1 {
			m.typeCursor++
		}
	case "enter":
		m.msg.Type = commit.Registry[m.typeCursor].Type
		return m.goTo(screenScope)
	case "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) viewTypeList() string {
	s := m.style

	title := m.stepTitle(1, "Type")
	subtitle := s.subtitle.Render("What kind of change is this?")

	var items string
	for i, info := range commit.Registry {
		cursor := "  "
		name := s.menuItem.Render(fmt.Sprintf("%-9s", info.Type))
		if m.typeCursor == i {
			cursor = s.menuCursor.Render("> ")
			name = s.menuCursor.Render(fmt.Sprintf("  %-9s", info.Type))
		}
		items += fmt.Sprintf("%s%s %s\n", cursor, name, s.label.Render(info.Description))
	}

	return title + "\n" + subtitle + "\n\n" + items + "\n" + s.instruction.Render("↑↓: navigate • enter: select • q: quit")
}
