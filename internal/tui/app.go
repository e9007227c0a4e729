// Package tui is the interactive commit wizard: it walks the user through
// each message field, previews the result and returns it on confirmation.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"commando/internal/commit"
	"commando/internal/template"
)

// ErrCancelled is returned when the user leaves the wizard without
// confirming.
var ErrCancelled = errors.New("cancelled")

// Wizard configures one interactive run.
type Wizard struct {
	// Seed pre-fills the fields. It may be nil.
	Seed *commit.Message
	// Preview renders the message on the preview screen.
	Preview *template.Template
	// Extra holds additional template values such as branch.
	Extra template.Context
	// Scopes are offered as completions in the scope field.
	Scopes  []string
	Options Options
}

// Result is what the user confirmed.
type Result struct {
	Message *commit.Message
	Options Options
}

// Run shows the wizard on the terminal until the user confirms or
// cancels.
func (w *Wizard) Run(ctx context.Context) (*Result, error) {
	p := tea.NewProgram(newModel(w), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(model).result()
}

func (m model) result() (*Result, error) {
	if !m.confirmed {
		return nil, ErrCancelled
	}
	msg := m.msg
	msg.Footers = append([]commit.Footer(nil), m.msg.Footers...)
	return &Result{Message: &msg, Options: m.opts}, nil
}

func newModel(w *Wizard) model {
	seed := commit.Message{}
	if w.Seed != nil {
		seed = *w.Seed
	}

	scope := textinput.New()
	scope.Placeholder = "optional, e.g. api"
	scope.CharLimit = 32
	scope.ShowSuggestions = len(w.Scopes) > 0
	scope.SetSuggestions(w.Scopes)
	scope.SetValue(seed.Scope)

	desc := textinput.New()
	desc.Placeholder = "short imperative summary"
	desc.CharLimit = commit.MaxDescription
	desc.SetValue(seed.Description)

	breaking := textinput.New()
	breaking.Placeholder = "leave empty if nothing breaks"
	breaking.SetValue(seed.BreakingNote)

	footer := textinput.New()
	footer.Placeholder = "Key: value, e.g. Refs: #123"

	ta := textarea.New()
	ta.SetHeight(10)
	ta.SetWidth(commit.BodyWidth + 6)
	ta.ShowLineNumbers = false
	ta.SetValue(seed.Body)

	preview := w.Preview
	if preview == nil {
		preview = template.MustCompile("{{ header }}")
	}

	m := model{
		screen:        screenType,
		msg:           seed,
		opts:          w.Options,
		scopeInput:    scope,
		descInput:     desc,
		breakingInput: breaking,
		footerInput:   footer,
		bodyTextarea:  ta,
		preview:       preview,
		extra:         w.Extra,
		help:          help.New(),
		keys:          defaultKeyMap(),
		style:         newStyles(),
	}
	for i, info := range commit.Registry {
		if info.Type == seed.Type {
			m.typeCursor = i
		}
	}
	return m
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Finish: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "finish body"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.cancelled = true
			return m, tea.Quit
		}
		switch m.screen {
		case screenType:
			return m.updateTypeList(msg)
		case screenScope, screenDescription, screenBreaking, screenFooters:
			return m.updateField(msg)
		case screenBody:
			return m.updateBody(msg)
		case screenPreview:
			return m.updatePreview(msg)
		case screenOptions:
			return m.updateOptions(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 4; w > 20 && w < commit.BodyWidth+6 {
			m.bodyTextarea.SetWidth(w)
		}
	}
	return m, nil
}

func (m model) View() string {
	var content string

	switch m.screen {
	case screenType:
		content = m.viewTypeList()
	case screenScope, screenDescription, screenBreaking, screenFooters:
		content = m.viewField()
	case screenBody:
		content = m.viewBody()
	case screenPreview:
		content = m.viewPreview()
	case screenOptions:
		content = m.viewOptions()
	}

	helpView := m.help.View(m.keys)
	return content + "\n" + helpView
}

// goTo switches screens and moves focus to the screen's input.
func (m model) goTo(s screen) (model, tea.Cmd) {
	m.screen = s
	m.fieldErr = nil
	m.scopeInput.Blur()
	m.descInput.Blur()
	m.breakingInput.Blur()
	m.footerInput.Blur()
	m.bodyTextarea.Blur()

	var cmd tea.Cmd
	switch s {
	case screenScope:
		cmd = m.scopeInput.Focus()
	case screenDescription:
		cmd = m.descInput.Focus()
	case screenBreaking:
		cmd = m.breakingInput.Focus()
	case screenFooters:
		cmd = m.footerInput.Focus()
	case screenBody:
		cmd = m.bodyTextarea.Focus()
	}
	return m, cmd
}

func (m model) stepTitle(n int, name string) string {
	return m.style.title.Render(fmt.Sprintf("Step %d/6 · %s", n, name))
}
