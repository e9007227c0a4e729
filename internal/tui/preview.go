package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		if err := m.msg.Validate(); err != nil {
			m.fieldErr = err
			return m, nil
		}
		m.confirmed = true
		return m, tea.Quit
	case "e":
		return m.goTo(screenType)
	case "o":
		m.optionCursor = 0
		return m.goTo(screenOptions)
	case "esc":
		return m.goTo(screenFooters)
	case "q":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

// render evaluates the preview template over the message being built.
func (m model) render() (string, error) {
	return m.preview.Render(m.msg.Context(m.extra))
}

func (m model) viewPreview() string {
	s := m.style

	title := s.title.Render("Preview")

	text, err := m.render()
	if err != nil {
		text = s.error.Render(err.Error())
	}
	view := title + "\n" + s.preview.Render(text)

	if err := m.msg.Validate(); err != nil {
		var lines []string
		for _, line := range strings.Split(err.Error(), "\n") {
			lines = append(lines, s.error.Render("• "+line))
		}
		view += "\n\n" + strings.Join(lines, "\n")
	} else {
		view += "\n\n" + s.success.Render("Message is valid.")
	}

	var flags []string
	if m.opts.Push {
		flags = append(flags, "push")
	}
	if m.opts.NoVerify {
		flags = append(flags, "no-verify")
	}
	if m.opts.SignOff {
		flags = append(flags, "sign-off")
	}
	if len(flags) > 0 {
		view += "\n" + s.label.Render(fmt.Sprintf("Options: %s", strings.Join(flags, ", ")))
	}

	return view + "\n" + s.instruction.Render("enter: commit • e: edit • o: options • esc: back • q: quit")
}
