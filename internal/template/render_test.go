package template

import (
	"errors"
	"sync"
	"testing"
)

func renderHelper(t *testing.T, src string, ctx Context, opts ...Option) (string, error) {
	t.Helper()
	tpl, err := Compile(src)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return tpl.Render(ctx, opts...)
}

func TestRenderExamples(t *testing.T) {
	cases := []struct {
		name string
		src  string
		ctx  Context
		want string
	}{
		{"substitution", "Hello {{name}}!", Context{"name": String("World")}, "Hello World!"},
		{"if true", "{% if flag %}YES{% end %}", Context{"flag": Bool(true)}, "YES"},
		{"if false", "{% if flag %}YES{% end %}", Context{"flag": Bool(false)}, ""},
		{"for", "{% for x in items %}{{x}},{% end %}", Context{"items": Strings("a", "b", "c")}, "a,b,c,"},
		{"comment", "A{# hidden #}B", nil, "AB"},
		{"empty", "", nil, ""},
		{"identity", "feat(api): add\n\n# comment line\n  indented { } % #\n", nil, "feat(api): add\n\n# comment line\n  indented { } % #\n"},
		{"missing is empty", "[{{ nope }}]", Context{}, "[]"},
		{"missing if is false", "{% if nope %}X{% end %}", Context{}, ""},
		{"missing for is empty", "{% for x in nope %}X{% end %}", Context{}, ""},
		{"null renders empty", "[{{ n }}]", Context{"n": Null{}}, "[]"},
		{"bool renders", "{{ b }}", Context{"b": Bool(true)}, "true"},
		{"list renders joined", "{{ l }}", Context{"l": Strings("a", "b")}, "a, b"},
		{"dotted path", "{{ commit.type }}", Context{"commit": Map{"type": String("feat")}}, "feat"},
		{"dotted key wins", "{{ a.b }}", Context{"a.b": String("flat"), "a": Map{"b": String("nested")}}, "flat"},
		{"loop over maps", "{% for f in footers %}{{ f.key }}={{ f.value }};{% end %}", Context{
			"footers": List{
				Map{"key": String("Refs"), "value": String("#1")},
				Map{"key": String("Closes"), "value": String("#2")},
			},
		}, "Refs=#1;Closes=#2;"},
		{"nested loops", "{% for a in xs %}{% for b in ys %}{{a}}{{b}} {% end %}{% end %}", Context{
			"xs": Strings("1", "2"),
			"ys": Strings("a", "b"),
		}, "1a 1b 2a 2b "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := renderHelper(t, tc.src, tc.ctx)
			if err != nil {
				t.Fatalf("render error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		val  Value
		want bool
	}{
		{Null{}, false},
		{Bool(false), false},
		{Bool(true), true},
		{String(""), false},
		{String(" "), true},
		{String("x"), true},
		{List{}, false},
		{List{Null{}}, true},
		{Map{}, false},
	}
	tpl := MustCompile("{% if v %}T{% end %}")
	for _, tc := range cases {
		got, err := tpl.Render(Context{"v": tc.val})
		if err != nil {
			t.Fatalf("render error: %v", err)
		}
		if (got == "T") != tc.want {
			t.Fatalf("truth of %#v = %v, want %v", tc.val, got == "T", tc.want)
		}
	}
}

func TestLoopScopeShadowsAndDoesNotLeak(t *testing.T) {
	src := "{{x}}|{% for x in items %}{{x}}{% end %}|{{x}}"
	got, err := renderHelper(t, src, Context{"x": String("outer"), "items": Strings("a", "b")})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if want := "outer|ab|outer"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// the loop variable is gone after the loop when nothing outer defines it
	got, err = renderHelper(t, "{% for y in items %}{% end %}[{{y}}]", Context{"items": Strings("a")})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if got != "[]" {
		t.Fatalf("loop variable leaked: %q", got)
	}
}

func TestRenderErrors(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		ctx    Context
		strict bool
		kind   error
	}{
		{"not iterable string", "ok {% for x in name %}{{x}}{% end %}", Context{"name": String("abc")}, false, ErrNotIterable},
		{"not iterable bool", "{% for x in b %}{% end %}", Context{"b": Bool(true)}, false, ErrNotIterable},
		{"null iterable", "{% for x in n %}{% end %}", Context{"n": Null{}}, false, ErrNotIterable},
		{"null iterable strict", "[{% for x in n %}X{% end %}]", Context{"n": Null{}}, true, ErrNotIterable},
		{"not iterable map", "{% for x in m %}{% end %}", Context{"m": Map{"a": Null{}}}, false, ErrNotIterable},
		{"strict variable", "text {{ nope }}", Context{}, true, ErrUndefinedVariable},
		{"strict if", "{% if nope %}{% end %}", Context{}, true, ErrUndefinedVariable},
		{"strict for", "{% for x in nope %}{% end %}", Context{}, true, ErrUndefinedVariable},
		{"strict nested path", "{{ a.b }}", Context{"a": Map{}}, true, ErrUndefinedVariable},
		{"strict map substitution", "{{ a }}", Context{"a": Map{"b": String("c")}}, true, ErrTypeMismatch},
		{"error deep in loop", "{% for x in xs %}{{ x }}{% for y in x %}{% end %}{% end %}", Context{"xs": Strings("a")}, false, ErrNotIterable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := renderHelper(t, tc.src, tc.ctx, WithStrict(tc.strict))
			if !errors.Is(err, tc.kind) {
				t.Fatalf("got %v, want %v", err, tc.kind)
			}
			if got != "" {
				t.Fatalf("partial output %q returned with error", got)
			}
			if !IsRenderError(err) || IsCompileError(err) {
				t.Fatalf("%v not classified as a render error", err)
			}
		})
	}
}

func TestNotIterableCarriesLine(t *testing.T) {
	_, err := renderHelper(t, "a\nb\n{% for x in s %}{% end %}", Context{"s": String("x")})
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("got %v, want *Error", err)
	}
	if e.Pos.Line != 3 || e.Path != "s" {
		t.Fatalf("got %+v, want line 3 path s", e)
	}
}

func TestStrictCoversConditionsAndIterables(t *testing.T) {
	for _, src := range []string{"{% if gone %}{% end %}", "{% for x in gone %}{% end %}", "{{ gone }}"} {
		if _, err := renderHelper(t, src, Context{}, WithStrict(true)); !errors.Is(err, ErrUndefinedVariable) {
			t.Fatalf("%s: got %v, want undefined variable", src, err)
		}
		if out, err := renderHelper(t, src, Context{}); err != nil || out != "" {
			t.Fatalf("%s: lenient got %q, %v", src, out, err)
		}
	}
}

func TestStrictResolvesLoopVariables(t *testing.T) {
	got, err := renderHelper(t, "{% for x in xs %}{{ x }}{% end %}", Context{"xs": Strings("a")}, WithStrict(true))
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if got != "a" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderDeterministicAndConcurrent(t *testing.T) {
	tpl := MustCompile("{{ type }}{% if scope %}({{ scope }}){% end %}: {{ description }}{% for f in footers %}\n{{ f }}{% end %}")
	ctx := Context{
		"type":        String("fix"),
		"scope":       String("lexer"),
		"description": String("track columns"),
		"footers":     Strings("Refs: #1", "Closes: #2"),
	}
	want := "fix(lexer): track columns\nRefs: #1\nCloses: #2"

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	outs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := tpl.Render(ctx)
			if err != nil {
				errs <- err
				return
			}
			outs <- out
		}()
	}
	wg.Wait()
	close(errs)
	close(outs)
	for err := range errs {
		t.Fatalf("render error: %v", err)
	}
	for out := range outs {
		if out != want {
			t.Fatalf("got %q, want %q", out, want)
		}
	}
}

func TestRenderDoesNotMutateContext(t *testing.T) {
	ctx := Context{"items": Strings("a", "b")}
	if _, err := renderHelper(t, "{% for x in items %}{{x}}{% end %}", ctx); err != nil {
		t.Fatalf("render error: %v", err)
	}
	if len(ctx) != 1 {
		t.Fatalf("context mutated: %v", ctx.Keys())
	}
}

func TestPackageRender(t *testing.T) {
	got, err := Render("{{ a }}", Context{"a": String("b")})
	if err != nil || got != "b" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := Render("{{ a", nil); !errors.Is(err, ErrUnterminatedDelimiter) {
		t.Fatalf("got %v, want unterminated delimiter", err)
	}
}

func TestFromGo(t *testing.T) {
	ctx := NewContext(map[string]any{
		"type":    "feat",
		"draft":   false,
		"count":   3,
		"none":    nil,
		"footers": []any{"Refs: #1", map[string]any{"key": "Closes"}},
		"scopes":  []string{"api", "cli"},
	})
	got, err := renderHelper(t, "{{ type }} {{ draft }} {{ count }} [{{ none }}] {% for f in footers %}{% if f.key %}{{ f.key }}{% end %}{% end %} {{ scopes }}", ctx)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if want := "feat false 3 [] Closes api, cli"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
