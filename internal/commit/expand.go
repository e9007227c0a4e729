package commit

import (
	"fmt"

	"commando/internal/template"
)

// Expand treats text as a template over its own fields. The text is
// parsed, rendered against the parsed message plus extra, and parsed
// again, so "fix(api): {{ scope }} timeout" becomes "fix(api): api
// timeout". When text has no parsable header, seed supplies the fields.
// The result is not validated.
func Expand(text string, seed *Message, extra template.Context, opts ...template.Option) (*Message, error) {
	fields := seed
	if parsed, err := Parse(text); err == nil {
		fields = parsed
	}
	if fields == nil {
		fields = &Message{}
	}

	tpl, err := template.Compile(text)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}
	out, err := tpl.Render(fields.Context(extra), opts...)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}
	return Parse(out)
}
