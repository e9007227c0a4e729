package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type option struct {
	label string
	help  string
	value func(o *Options) *bool
}

var options = []option{
	{"Push after commit", "push the current branch to its upstream", func(o *Options) *bool { return &o.Push }},
	{"Skip hooks", "pass --no-verify to git commit", func(o *Options) *bool { return &o.NoVerify }},
	{"Sign off", "add a Signed-off-by trailer", func(o *Options) *bool { return &o.SignOff }},
}

func (m model) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.optionCursor > 0 {
			m.optionCursor--
		}
	case "down", "j":
		if m.optionCursor < len(options)-1 {
			m.optionCursor++
		}
	case "enter", " ":
		v := options[m.optionCursor].value(&m.opts)
		*v = !*v
	case "esc":
		return m.goTo(screenPreview)
	case "q":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) viewOptions() string {
	s := m.style

	title := s.title.Render("Commit options")
	subtitle := s.subtitle.Render("These apply to this commit only")

	var items string
	for i, o := range options {
		status := s.value.Render("disabled")
		if *o.value(&m.opts) {
			status = s.success.Render("enabled")
		}
		cursor := "  "
		if m.optionCursor == i {
			cursor = s.menuCursor.Render("> ")
		}
		items += fmt.Sprintf("%s%s %s\n%s\n", cursor, s.menuItem.Render(o.label), status, s.label.Render("     "+o.help))
	}

	return title + "\n" + subtitle + "\n\n" + items + "\n" +
		s.instruction.Render("↑↓: navigate • enter: toggle • esc: back • q: quit")
}
