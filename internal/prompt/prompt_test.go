package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"commando/internal/commit"
	"commando/internal/template"
)

func TestMessageTemplateMatchesString(t *testing.T) {
	tpl := template.MustCompile(MessageTemplate)
	cases := []*commit.Message{
		{Type: commit.Fix, Description: "typo"},
		{Type: commit.Feat, Scope: "api", Description: "add x", Body: "why\n\nhow"},
		{Type: commit.Feat, Description: "drop", BreakingNote: "v1 is gone"},
		{
			Type: commit.Docs, Description: "readme", Body: "b",
			BreakingNote: "n",
			Footers:      []commit.Footer{{Key: "Refs", Value: "#1"}, {Key: "Closes", Value: "#2"}},
		},
		{Type: commit.Chore, Description: "deps", Footers: []commit.Footer{{Key: "Refs", Value: "#3"}}},
	}
	for _, m := range cases {
		got, err := tpl.Render(m.Context(nil), template.WithStrict(true))
		if err != nil {
			t.Fatalf("render error: %v", err)
		}
		if want := m.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestDefaultTemplate(t *testing.T) {
	m := &commit.Message{}
	ctx := m.Context(template.Context{
		"branch":   template.String("main"),
		"files":    template.Strings("a.go", "b.go"),
		"problems": template.Strings("description cannot be empty"),
	})
	out, err := template.Render(DefaultTemplate, ctx, template.WithStrict(true))
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	for _, frag := range []string{"# On branch main", "#   feat: a new feature", "#\ta.go", "#   description cannot be empty"} {
		if !strings.Contains(out, frag) {
			t.Fatalf("output missing %q:\n%s", frag, out)
		}
	}
	if got := commit.StripComments(out); got != "" {
		t.Fatalf("empty seed left text after stripping: %q", got)
	}

	// branch and files are optional
	if _, err := template.Render(DefaultTemplate, m.Context(nil)); err != nil {
		t.Fatalf("render without extras: %v", err)
	}
}

func TestReadMessage(t *testing.T) {
	got, err := ReadMessage(strings.NewReader("\n fix: x \n\n"))
	if err != nil || got != "fix: x" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := ReadMessage(strings.NewReader("  \n")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("got %v, want ErrEmpty", err)
	}
}

func TestReadFileAndLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "msg.txt")
	if err := os.WriteFile(path, []byte("feat: y\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, err := ReadFile(path); err != nil || got != "feat: y" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := ReadFile(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("want error for missing file")
	}

	if got, _ := LoadTemplate(""); got != DefaultTemplate {
		t.Fatalf("empty path did not return the default template")
	}
	if got, err := LoadTemplate(path); err != nil || got != "feat: y\n" {
		t.Fatalf("got %q, %v", got, err)
	}
}
