package template

import (
	"bytes"
	"fmt"
)

// Visitor is called for every node reached by Walk.
type Visitor interface {
	Visit(n Node) error
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(n Node) error

func (f VisitorFunc) Visit(n Node) error { return f(n) }

// Walk visits n and then its children depth first, in document order.
func Walk(v Visitor, n Node) error {
	if err := v.Visit(n); err != nil {
		return err
	}
	var children []Node
	switch t := n.(type) {
	case *If:
		children = t.Body
	case *For:
		children = t.Body
	}
	for _, c := range children {
		if err := Walk(v, c); err != nil {
			return err
		}
	}
	return nil
}

// Variables returns every path the template references, in document
// order, without duplicates. Loop variables are reported as written.
func (t *Template) Variables() []string {
	seen := map[string]bool{}
	var out []string
	add := func(p Path) {
		s := p.String()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, n := range t.nodes {
		_ = Walk(VisitorFunc(func(n Node) error {
			switch x := n.(type) {
			case *Variable:
				add(x.Path)
			case *If:
				add(x.Cond)
			case *For:
				add(x.Iterable)
			}
			return nil
		}), n)
	}
	return out
}

// Pretty returns a line-oriented representation of the AST.
func Pretty(t *Template) string {
	var buf bytes.Buffer
	buf.WriteString("Template\n")
	for _, n := range t.nodes {
		ppNode(&buf, 2, n)
	}
	return buf.String()
}

func ppNode(buf *bytes.Buffer, indent int, n Node) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
	switch t := n.(type) {
	case *Text:
		fmt.Fprintf(buf, "Text(%q)\n", t.Text)
	case *Variable:
		fmt.Fprintf(buf, "Variable(%s)\n", t.Path)
	case *If:
		fmt.Fprintf(buf, "If(%s) @%s\n", t.Cond, t.Pos)
		for _, c := range t.Body {
			ppNode(buf, indent+2, c)
		}
	case *For:
		fmt.Fprintf(buf, "For(%s in %s) @%s\n", t.Var, t.Iterable, t.Pos)
		for _, c := range t.Body {
			ppNode(buf, indent+2, c)
		}
	}
}
