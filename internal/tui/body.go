package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) updateBody(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.msg.Body = m.bodyTextarea.Value()
		return m.goTo(screenBreaking)
	case "esc":
		m.msg.Body = m.bodyTextarea.Value()
		return m.goTo(screenDescription)
	}
	var cmd tea.Cmd
	m.bodyTextarea, cmd = m.bodyTextarea.Update(msg)
	return m, cmd
}

func (m model) viewBody() string {
	s := m.style

	title := m.stepTitle(4, "Body")
	subtitle := s.subtitle.Render("Explain what and why. Long lines are wrapped on commit.")

	help := s.instruction.Render("ctrl+s: continue • esc: back • ctrl+c: cancel")

	return title + "\n" + subtitle + "\n\n" + m.bodyTextarea.View() + "\n\n" + help
}
