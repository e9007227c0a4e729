package template

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Value is a value bound in a render context. It defines its text form and
// its truthiness in if tags.
type Value interface {
	String() string
	Truth() bool
}

// Null is the absence of a value. It renders as "".
type Null struct{}

func (Null) String() string { return "" }
func (Null) Truth() bool    { return false }

// Bool wraps a boolean.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Truth() bool { return bool(b) }

// String wraps a string.
type String string

func (s String) String() string { return string(s) }
func (s String) Truth() bool    { return len(s) > 0 }

// List is an ordered sequence of values, the only iterable value.
type List []Value

// String joins the elements with ", ".
func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
func (l List) Truth() bool { return len(l) > 0 }

// Map is a nested namespace reached through dotted paths. It is not
// meant to be substituted directly.
type Map map[string]Value

func (m Map) String() string { return "{...}" }
func (m Map) Truth() bool    { return len(m) > 0 }

// Context is the set of named values available to one render call.
type Context map[string]Value

// Strings builds a List from plain strings.
func Strings(ss ...string) List {
	l := make(List, len(ss))
	for i, s := range ss {
		l[i] = String(s)
	}
	return l
}

// NewContext converts a map of Go values into a Context.
func NewContext(m map[string]any) Context {
	ctx := make(Context, len(m))
	for k, v := range m {
		ctx[k] = FromGo(v)
	}
	return ctx
}

// FromGo converts a Go value, such as one decoded from YAML or JSON, into
// a Value. Numbers and other scalars become their formatted String.
func FromGo(v any) Value {
	if v == nil {
		return Null{}
	}
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case []byte:
		return String(t)
	case []string:
		return Strings(t...)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make(List, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, FromGo(rv.Index(i).Interface()))
		}
		return out
	case reflect.Map:
		out := Map{}
		it := rv.MapRange()
		for it.Next() {
			out[fmt.Sprint(it.Key().Interface())] = FromGo(it.Value().Interface())
		}
		return out
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}
		}
		return FromGo(rv.Elem().Interface())
	}
	return String(fmt.Sprint(v))
}

// Keys returns the context's names in sorted order.
func (c Context) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup resolves a dotted path. A key containing the dots verbatim wins
// over descending through nested maps.
func (c Context) Lookup(path Path) (Value, bool) {
	if len(path) == 0 {
		return nil, false
	}
	if len(path) > 1 {
		if v, ok := c[path.String()]; ok {
			return v, true
		}
	}
	v, ok := c[path[0]]
	if !ok {
		return nil, false
	}
	return descend(v, path[1:])
}

func descend(v Value, rest Path) (Value, bool) {
	for _, seg := range rest {
		m, ok := v.(Map)
		if !ok {
			return nil, false
		}
		if v, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return v, true
}
