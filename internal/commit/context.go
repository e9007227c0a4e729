package commit

import (
	"strings"

	"commando/internal/template"
)

// Context exposes the message to templates. Keys from extra are copied
// first so the message fields always win.
//
//	type, type_description, scope, description, body, header
//	breaking (bool), breaking_note
//	footers: list of {key, value, line}
//	trailers: every footer line, breaking change first
//	types:   list of {name, description}
func (m *Message) Context(extra template.Context) template.Context {
	ctx := make(template.Context, len(extra)+10)
	for k, v := range extra {
		ctx[k] = v
	}

	footers := make(template.List, 0, len(m.Footers))
	for _, f := range m.Footers {
		f = Footer{Key: strings.TrimSpace(f.Key), Value: strings.TrimSpace(f.Value)}
		footers = append(footers, template.Map{
			"key":   template.String(f.Key),
			"value": template.String(f.Value),
			"line":  template.String(f.String()),
		})
	}

	trailers := make(template.List, 0, len(footers)+1)
	for _, f := range m.AllFooters() {
		trailers = append(trailers, template.String(f.String()))
	}

	ctx["type"] = template.String(m.Type)
	ctx["type_description"] = template.String(m.Type.Describe())
	ctx["scope"] = template.String(strings.TrimSpace(m.Scope))
	ctx["description"] = template.String(strings.TrimSpace(m.Description))
	ctx["body"] = template.String(Wrap(strings.TrimSpace(m.Body), BodyWidth))
	ctx["breaking"] = template.Bool(m.IsBreaking())
	ctx["breaking_note"] = template.String(strings.TrimSpace(m.BreakingNote))
	ctx["footers"] = footers
	ctx["trailers"] = trailers
	ctx["types"] = TypesValue()
	if m.Type != "" {
		ctx["header"] = template.String(m.Header())
	} else {
		ctx["header"] = template.String("")
	}
	return ctx
}

// TypesValue lists the Registry as template maps with name and
// description keys.
func TypesValue() template.List {
	out := make(template.List, len(Registry))
	for i, info := range Registry {
		out[i] = template.Map{
			"name":        template.String(info.Type),
			"description": template.String(info.Description),
		}
	}
	return out
}
