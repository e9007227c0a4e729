package app

import (
	"context"
	"strings"

	"commando/internal/commit"
	"commando/internal/template"
)

// Overrides are field values given as flags. They win over whatever the
// source produced.
type Overrides struct {
	Type  string
	Scope string
}

// Apply copies the non-empty overrides onto m.
func (o Overrides) Apply(m *commit.Message) error {
	if o.Type != "" {
		t, err := commit.ParseType(o.Type)
		if err != nil {
			return err
		}
		m.Type = t
	}
	if s := strings.TrimSpace(o.Scope); s != "" {
		m.Scope = s
	}
	return nil
}

// Seed returns a message holding only the overrides, used to pre-fill
// the editor and the wizard. An invalid type is left for validation.
func (o Overrides) Seed() *commit.Message {
	m := &commit.Message{Scope: strings.TrimSpace(o.Scope)}
	if t, err := commit.ParseType(o.Type); err == nil {
		m.Type = t
	}
	return m
}

// TextSource resolves a message given as text: a -m flag, a file or
// piped stdin. The text is taken literally unless Expand is set, in which
// case it may use template tags over its own fields.
type TextSource struct {
	Text      string
	Overrides Overrides
	Extra     template.Context
	Expand    bool
	Strict    bool
}

func (s TextSource) Resolve(ctx context.Context) (*commit.Message, error) {
	var (
		m   *commit.Message
		err error
	)
	if s.Expand {
		m, err = commit.Expand(s.Text, s.Overrides.Seed(), s.Extra, template.WithStrict(s.Strict))
	} else {
		m, err = commit.Parse(s.Text)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Overrides.Apply(m); err != nil {
		return nil, err
	}
	return m, nil
}
