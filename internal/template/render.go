package template

import (
	"fmt"
	"strings"
)

// scope is one loop binding. Scopes chain outward to the enclosing loop;
// the render context sits beneath the outermost scope.
type scope struct {
	name   string
	val    Value
	parent *scope
}

type renderer struct {
	ctx    Context
	strict bool
	buf    strings.Builder
}

func (r *renderer) resolve(sc *scope, path Path) (Value, bool) {
	for s := sc; s != nil; s = s.parent {
		if s.name == path[0] {
			return descend(s.val, path[1:])
		}
	}
	return r.ctx.Lookup(path)
}

// lookup resolves path for a node at pos. In lenient mode a missing path
// is Null; in strict mode it is an UndefinedVariable error.
func (r *renderer) lookup(sc *scope, path Path, pos Pos) (Value, error) {
	v, ok := r.resolve(sc, path)
	if ok {
		return v, nil
	}
	if r.strict {
		return nil, &Error{Kind: KindUndefinedVariable, Pos: pos, Path: path.String()}
	}
	return Null{}, nil
}

func (r *renderer) renderNodes(nodes []Node, sc *scope) error {
	for _, n := range nodes {
		switch t := n.(type) {
		case *Text:
			r.buf.WriteString(t.Text)
		case *Variable:
			v, err := r.lookup(sc, t.Path, t.Pos)
			if err != nil {
				return err
			}
			if _, ok := v.(Map); ok && r.strict {
				return &Error{Kind: KindTypeMismatch, Pos: t.Pos, Path: t.Path.String(), Detail: "cannot substitute a map"}
			}
			r.buf.WriteString(v.String())
		case *If:
			v, err := r.lookup(sc, t.Cond, t.Pos)
			if err != nil {
				return err
			}
			if v.Truth() {
				if err := r.renderNodes(t.Body, sc); err != nil {
					return err
				}
			}
		case *For:
			v, found := r.resolve(sc, t.Iterable)
			if !found {
				if r.strict {
					return &Error{Kind: KindUndefinedVariable, Pos: t.Pos, Path: t.Iterable.String()}
				}
				continue
			}
			items, ok := v.(List)
			if !ok {
				return &Error{Kind: KindNotIterable, Pos: t.Pos, Path: t.Iterable.String(), Detail: fmt.Sprintf("got %s", typeName(v))}
			}
			for _, it := range items {
				if err := r.renderNodes(t.Body, &scope{name: t.Var, val: it, parent: sc}); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("unhandled node type: %T", n)
		}
	}
	return nil
}

func typeName(v Value) string {
	switch v.(type) {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case String:
		return "string"
	case List:
		return "list"
	case Map:
		return "map"
	}
	return fmt.Sprintf("%T", v)
}
