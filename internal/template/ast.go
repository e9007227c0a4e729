package template

import "strings"

// Node is any AST node in a compiled template. The set is closed: Text,
// Variable, If and For.
type Node interface {
	node()
}

// Path is a dotted identifier path split into segments.
type Path []string

func parsePath(s string) Path { return Path(strings.Split(s, ".")) }

func (p Path) String() string { return strings.Join(p, ".") }

// Text is literal text between tags.
type Text struct {
	Text string
}

func (*Text) node() {}

// Variable is a substitution: {{ path }}
type Variable struct {
	Path Path
	Pos  Pos
}

func (*Variable) node() {}

// If renders Body when Cond is truthy: {% if path %}...{% end %}
type If struct {
	Cond Path
	Body []Node
	Pos  Pos
}

func (*If) node() {}

// For renders Body once per element of Iterable with Var bound to the
// element: {% for var in path %}...{% end %}
type For struct {
	Var      string
	Iterable Path
	Body     []Node
	Pos      Pos
}

func (*For) node() {}
