// Package template compiles and renders commit-message templates.
//
// The markup is deliberately small:
//
//	{{ path }}                          substitute a variable
//	{% if path %} ... {% end %}         render the body when path is truthy
//	{% for name in path %} ... {% end %} render the body once per list element
//	{# ... #}                           comment, discarded
//
// Everything else passes through byte for byte. A compiled Template is
// immutable and may be rendered concurrently with independent contexts.
package template

// Template is a compiled template.
type Template struct {
	nodes []Node
}

// Compile lexes and parses src. The first lexical or structural error
// aborts compilation and no Template is returned.
func Compile(src string) (*Template, error) {
	nodes, err := parse(src)
	if err != nil {
		return nil, err
	}
	return &Template{nodes: nodes}, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// templates embedded in the binary.
func MustCompile(src string) *Template {
	t, err := Compile(src)
	if err != nil {
		panic("template: MustCompile: " + err.Error())
	}
	return t
}

// Nodes returns the top-level nodes in document order. The slice is
// shared and must not be modified.
func (t *Template) Nodes() []Node { return t.nodes }

// Option configures a render call.
type Option func(*renderer)

// WithStrict makes undefined paths an error instead of rendering as the
// empty string. It applies to {% if %} conditions and {% for %} iterables
// as well as {{ }} substitutions: a missing path in any of them is an
// UndefinedVariable error. Strict mode also rejects substituting a Map
// with TypeMismatch.
func WithStrict(strict bool) Option {
	return func(r *renderer) { r.strict = strict }
}

// Render evaluates t against ctx. Rendering is all or nothing: on error
// the returned string is empty.
func (t *Template) Render(ctx Context, opts ...Option) (string, error) {
	r := &renderer{ctx: ctx}
	for _, opt := range opts {
		opt(r)
	}
	if r.ctx == nil {
		r.ctx = Context{}
	}
	if err := r.renderNodes(t.nodes, nil); err != nil {
		return "", err
	}
	return r.buf.String(), nil
}

// Render compiles src and renders it against ctx in one step.
func Render(src string, ctx Context, opts ...Option) (string, error) {
	t, err := Compile(src)
	if err != nil {
		return "", err
	}
	return t.Render(ctx, opts...)
}
