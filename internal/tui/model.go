package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"commando/internal/commit"
	"commando/internal/template"
)

type screen int

const (
	screenType screen = iota
	screenScope
	screenDescription
	screenBody
	screenBreaking
	screenFooters
	screenPreview
	screenOptions
)

// Options are per-commit switches the user can flip before confirming.
type Options struct {
	Push     bool
	NoVerify bool
	SignOff  bool
}

type model struct {
	screen screen
	msg    commit.Message
	opts   Options
	// Type list
	typeCursor int
	// Single-line fields
	scopeInput    textinput.Model
	descInput     textinput.Model
	breakingInput textinput.Model
	footerInput   textinput.Model
	// Body
	bodyTextarea textarea.Model
	// Preview
	preview      *template.Template
	extra        template.Context
	optionCursor int
	fieldErr     error
	// Outcome
	confirmed bool
	cancelled bool
	// Help
	help help.Model
	keys keyMap
	// Styling
	style *styles
	// Dimensions
	width  int
	height int
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Back   key.Binding
	Finish key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Back, k.Quit}
}
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Finish, k.Back, k.Quit},
	}
}

type styles struct {
	title       lipgloss.Style
	subtitle    lipgloss.Style
	menuItem    lipgloss.Style
	menuCursor  lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	error       lipgloss.Style
	success     lipgloss.Style
	instruction lipgloss.Style
	preview     lipgloss.Style
}

func newStyles() *styles {
	return &styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginBottom(1),
		subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).MarginBottom(1),
		menuItem:    lipgloss.NewStyle().PaddingLeft(2),
		menuCursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true),
		label:       lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
		value:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		error:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")),
		success:     lipgloss.NewStyle().Foreground(lipgloss.Color("#55FF55")),
		instruction: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).MarginTop(1),
		preview:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7D56F4")).Padding(0, 1),
	}
}
