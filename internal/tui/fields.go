package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"commando/internal/commit"
)

// input returns the text input shown on the current screen.
func (m *model) input() *textinput.Model {
	switch m.screen {
	case screenScope:
		return &m.scopeInput
	case screenDescription:
		return &m.descInput
	case screenBreaking:
		return &m.breakingInput
	default:
		return &m.footerInput
	}
}

var previous = map[screen]screen{
	screenScope:       screenType,
	screenDescription: screenScope,
	screenBreaking:    screenBody,
	screenFooters:     screenBreaking,
}

func (m model) updateField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submitField()
	case "esc":
		return m.goTo(previous[m.screen])
	}
	var cmd tea.Cmd
	in := m.input()
	*in, cmd = in.Update(msg)
	m.fieldErr = nil
	return m, cmd
}

// submitField validates the current input and advances.
func (m model) submitField() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input().Value())

	switch m.screen {
	case screenScope:
		if value != "" {
			if err := commit.ValidateScope(value); err != nil {
				m.fieldErr = err
				return m, nil
			}
		}
		m.msg.Scope = value
		return m.goTo(screenDescription)

	case screenDescription:
		if err := commit.ValidateDescription(value); err != nil {
			m.fieldErr = err
			return m, nil
		}
		m.msg.Description = value
		return m.goTo(screenBody)

	case screenBreaking:
		m.msg.BreakingNote = value
		return m.goTo(screenFooters)

	case screenFooters:
		if value == "" {
			return m.goTo(screenPreview)
		}
		f, ok := commit.ParseFooter(value)
		if !ok {
			m.fieldErr = fmt.Errorf("%w: want \"Key: value\" or \"Key #value\"", commit.ErrInvalidFooter)
			return m, nil
		}
		if commit.IsBreakingKey(f.Key) {
			m.msg.BreakingNote = f.Value
		} else {
			if err := commit.ValidateFooter(f); err != nil {
				m.fieldErr = err
				return m, nil
			}
			m.msg.Footers = append(m.msg.Footers, f)
		}
		m.footerInput.SetValue("")
		return m, nil
	}
	return m, nil
}

func (m model) viewField() string {
	s := m.style

	var title, subtitle string
	switch m.screen {
	case screenScope:
		title = m.stepTitle(2, "Scope")
		subtitle = "Which part of the codebase does this touch?"
	case screenDescription:
		title = m.stepTitle(3, "Description")
		prefix := string(m.msg.Type)
		if m.msg.Scope != "" {
			prefix += "(" + m.msg.Scope + ")"
		}
		subtitle = fmt.Sprintf("%s: ... (%d/%d)", prefix, len([]rune(m.descInput.Value())), commit.MaxDescription)
	case screenBreaking:
		title = m.stepTitle(5, "Breaking change")
		subtitle = "Describe what breaks for users, if anything."
	case screenFooters:
		title = m.stepTitle(6, "Footers")
		subtitle = "Add trailers one per line; enter on an empty line to preview."
	}

	view := title + "\n" + s.subtitle.Render(subtitle) + "\n\n" + m.input().View()

	if m.screen == screenFooters && len(m.msg.Footers) > 0 {
		var lines []string
		for _, f := range m.msg.Footers {
			lines = append(lines, s.value.Render("  "+f.String()))
		}
		view += "\n\n" + s.label.Render("Footers:") + "\n" + strings.Join(lines, "\n")
	}
	if m.fieldErr != nil {
		view += "\n\n" + s.error.Render(m.fieldErr.Error())
	}
	return view + "\n" + s.instruction.Render("enter: next • esc: back • ctrl+c: cancel")
}
