package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"commando/internal/commit"
	"commando/internal/debug"
	"commando/internal/template"
)

// ErrAborted is returned when the saved buffer holds no message.
var ErrAborted = errors.New("aborting commit due to empty commit message")

// Collector drives one editor-mode collection.
type Collector struct {
	Editor Editor
	// Template renders the buffer the editor opens with.
	Template *template.Template
	// Seed pre-fills the buffer. It may be nil.
	Seed *commit.Message
	// Extra holds additional template values such as branch and files.
	Extra template.Context
	// Strict makes undefined variables a render error.
	Strict bool
	// Retries is how many times the editor is reopened after the saved
	// message fails validation.
	Retries int
}

// Collect opens the editor and returns the parsed, validated message.
//
// The saved text is stripped of comment lines, parsed, and then itself
// rendered as a template against the parsed fields, so a body may refer
// to {{ scope }} or {{ branch }}. The result is parsed again and
// validated. When validation fails after the last retry, the message is
// returned along with the error.
func (c *Collector) Collect(ctx context.Context) (*commit.Message, error) {
	seed := c.Seed
	if seed == nil {
		seed = &commit.Message{}
	}
	var problems []string
	for attempt := 0; ; attempt++ {
		m, err := c.once(ctx, seed, problems)
		if err == nil || m == nil || attempt >= c.Retries {
			return m, err
		}
		debug.Log("message failed validation, reopening editor", "attempt", attempt+1, "err", err)
		seed = m
		problems = strings.Split(err.Error(), "\n")
	}
}

func (c *Collector) once(ctx context.Context, seed *commit.Message, problems []string) (*commit.Message, error) {
	opts := []template.Option{template.WithStrict(c.Strict)}

	initial, err := c.Template.Render(seed.Context(c.extra(problems)), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to render editor template: %w", err)
	}

	saved, err := c.Editor.Edit(ctx, initial)
	if err != nil {
		return nil, err
	}
	text := commit.StripComments(saved)
	if text == "" {
		return nil, ErrAborted
	}

	m, err := commit.Expand(text, seed, c.extra(nil), opts...)
	if err != nil {
		return nil, err
	}
	debug.Log("collected message", "header", m.Header())
	return m, m.Validate()
}

func (c *Collector) extra(problems []string) template.Context {
	ctx := make(template.Context, len(c.Extra)+1)
	for k, v := range c.Extra {
		ctx[k] = v
	}
	ctx["problems"] = template.Strings(problems...)
	return ctx
}
