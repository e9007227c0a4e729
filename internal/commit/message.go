// Package commit holds the conventional commit message model: its fields,
// validation rules, text format and parser.
package commit

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxDescription is the longest header description accepted.
	MaxDescription = 72
	// BodyWidth is the column at which body lines are wrapped.
	BodyWidth = 72

	BreakingChangeKey = "BREAKING CHANGE"
)

var (
	ErrInvalidType         = errors.New("invalid commit type")
	ErrEmptyDescription    = errors.New("description cannot be empty")
	ErrDescriptionTooLong  = errors.New("description is too long")
	ErrInvalidScope        = errors.New("invalid scope")
	ErrEmptyBreakingChange = errors.New("breaking change description cannot be empty")
	ErrInvalidFooter       = errors.New("invalid footer")
	ErrDuplicateFooter     = errors.New("duplicate footer key")
	ErrMalformedHeader     = errors.New("malformed header")
	ErrEmptyMessage        = errors.New("empty commit message")
)

// Footer is a trailer line such as "Refs: #123".
type Footer struct {
	Key   string
	Value string
}

func (f Footer) String() string { return f.Key + ": " + f.Value }

// Message is a structured conventional commit message.
type Message struct {
	Type         Type
	Scope        string
	Description  string
	Body         string
	Breaking     bool   // '!' in the header
	BreakingNote string // BREAKING CHANGE footer text
	Footers      []Footer
}

// IsBreaking reports whether the message announces a breaking change.
func (m *Message) IsBreaking() bool {
	return m.Breaking || m.BreakingNote != ""
}

// Validate checks every field and returns all violations joined.
func (m *Message) Validate() error {
	var errs []error
	if _, err := ParseType(string(m.Type)); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateDescription(m.Description); err != nil {
		errs = append(errs, err)
	}
	if m.Scope != "" {
		if err := ValidateScope(m.Scope); err != nil {
			errs = append(errs, err)
		}
	}
	if m.BreakingNote != "" && strings.TrimSpace(m.BreakingNote) == "" {
		errs = append(errs, ErrEmptyBreakingChange)
	}
	seen := map[string]bool{}
	for _, f := range m.Footers {
		if err := ValidateFooter(f); err != nil {
			errs = append(errs, err)
			continue
		}
		k := strings.ToLower(f.Key)
		if seen[k] && !strings.HasSuffix(k, "-by") {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateFooter, f.Key))
		}
		seen[k] = true
	}
	return errors.Join(errs...)
}

// ValidateDescription checks a header description.
func ValidateDescription(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrEmptyDescription
	}
	if n := utf8.RuneCountInString(s); n > MaxDescription {
		return fmt.Errorf("%w (%d characters, maximum is %d)", ErrDescriptionTooLong, n, MaxDescription)
	}
	return nil
}

// ValidateScope checks that scope is letters, digits, hyphens and
// underscores.
func ValidateScope(scope string) error {
	s := strings.TrimSpace(scope)
	if s == "" {
		return fmt.Errorf("%w: scope is blank", ErrInvalidScope)
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("%w: %q (use letters, digits, hyphens or underscores)", ErrInvalidScope, scope)
		}
	}
	return nil
}

// ValidateFooter checks a footer key and value.
func ValidateFooter(f Footer) error {
	if !isFooterKey(f.Key) || isBreakingKey(f.Key) {
		return fmt.Errorf("%w: key %q", ErrInvalidFooter, f.Key)
	}
	if strings.TrimSpace(f.Value) == "" {
		return fmt.Errorf("%w: %q has no value", ErrInvalidFooter, f.Key)
	}
	return nil
}

func isBreakingKey(k string) bool { return k == BreakingChangeKey || k == "BREAKING-CHANGE" }

func isFooterKey(k string) bool {
	if isBreakingKey(k) {
		return true
	}
	if k == "" {
		return false
	}
	for i, r := range k {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '-'):
		default:
			return false
		}
	}
	return true
}

// Header returns the first line: type(scope)!: description
func (m *Message) Header() string {
	var b strings.Builder
	b.WriteString(string(m.Type))
	if m.Scope != "" {
		b.WriteString("(" + strings.TrimSpace(m.Scope) + ")")
	}
	if m.IsBreaking() {
		b.WriteByte('!')
	}
	b.WriteString(": ")
	b.WriteString(strings.TrimSpace(m.Description))
	return b.String()
}

// AllFooters returns the trailer lines in output order: the breaking change
// note first, then the remaining footers as given.
func (m *Message) AllFooters() []Footer {
	var out []Footer
	if note := strings.TrimSpace(m.BreakingNote); note != "" {
		out = append(out, Footer{Key: BreakingChangeKey, Value: note})
	}
	for _, f := range m.Footers {
		out = append(out, Footer{Key: strings.TrimSpace(f.Key), Value: strings.TrimSpace(f.Value)})
	}
	return out
}

// String formats the message: header, wrapped body and footers separated
// by blank lines.
func (m *Message) String() string {
	var b strings.Builder
	b.WriteString(m.Header())
	if body := Wrap(strings.TrimSpace(m.Body), BodyWidth); body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footers := m.AllFooters(); len(footers) > 0 {
		b.WriteString("\n")
		for _, f := range footers {
			b.WriteString("\n")
			b.WriteString(f.String())
		}
	}
	return b.String()
}

// Wrap breaks every line of text longer than width at word boundaries.
// Existing line breaks are kept.
func Wrap(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if utf8.RuneCountInString(line) > width {
			lines[i] = wrapLine(line, width)
		}
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, width int) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(line) {
		wl := utf8.RuneCountInString(word)
		switch {
		case n == 0:
		case n+1+wl > width:
			b.WriteByte('\n')
			n = 0
		default:
			b.WriteByte(' ')
			n++
		}
		b.WriteString(word)
		n += wl
	}
	return b.String()
}
