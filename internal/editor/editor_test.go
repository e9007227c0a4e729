package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"commando/internal/commit"
	"commando/internal/prompt"
	"commando/internal/template"
)

func TestResolve(t *testing.T) {
	t.Setenv("GIT_EDITOR", "")
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	if runtime.GOOS != "windows" {
		if got := Resolve(""); got != "vi" {
			t.Fatalf("fallback = %q, want vi", got)
		}
	}

	t.Setenv("EDITOR", "nano")
	if got := Resolve(""); got != "nano" {
		t.Fatalf("got %q, want nano", got)
	}
	t.Setenv("VISUAL", "emacs")
	if got := Resolve(""); got != "emacs" {
		t.Fatalf("got %q, want emacs", got)
	}
	t.Setenv("GIT_EDITOR", "vim")
	if got := Resolve(""); got != "vim" {
		t.Fatalf("got %q, want vim", got)
	}
	if got := Resolve(" code --wait "); got != "code --wait" {
		t.Fatalf("got %q, want override", got)
	}
}

func TestSessionEdit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the editor")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor")
	body := "#!/bin/sh\ngrep -q seeded \"$1\" || exit 3\nprintf 'feat: edited\\n' > \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	s := &Session{Command: script, Dir: dir}
	got, err := s.Edit(context.Background(), "seeded\n")
	if err != nil {
		t.Fatalf("edit error: %v", err)
	}
	if got != "feat: edited\n" {
		t.Fatalf("got %q", got)
	}

	if _, err := (&Session{Command: script, Dir: dir}).Edit(context.Background(), "other"); err == nil {
		t.Fatalf("want error when the editor exits non-zero")
	}
	if _, err := (&Session{}).Edit(context.Background(), ""); err == nil {
		t.Fatalf("want error for empty command")
	}
}

func newCollector(ed Func) *Collector {
	return &Collector{
		Editor:   ed,
		Template: template.MustCompile(prompt.DefaultTemplate),
		Extra: template.Context{
			"branch": template.String("main"),
			"files":  template.Strings("a.go"),
		},
		Strict: true,
	}
}

func TestCollectRendersBufferAgainstFields(t *testing.T) {
	c := newCollector(func(_ context.Context, initial string) (string, error) {
		if !strings.Contains(initial, "# On branch main") {
			t.Errorf("pre-fill missing branch:\n%s", initial)
		}
		return "fix(api): handle {{ scope }} errors\n\nOn {{ branch }}.\n# comment\n", nil
	})
	m, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect error: %v", err)
	}
	if m.Description != "handle api errors" || m.Body != "On main." || m.Scope != "api" {
		t.Fatalf("got %+v", m)
	}
}

func TestCollectSeedsBuffer(t *testing.T) {
	c := newCollector(func(_ context.Context, initial string) (string, error) {
		return initial, nil
	})
	c.Seed = &commit.Message{Type: commit.Docs, Description: "readme", Footers: []commit.Footer{{Key: "Refs", Value: "#4"}}}
	m, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect error: %v", err)
	}
	if m.String() != c.Seed.String() {
		t.Fatalf("got %q, want %q", m.String(), c.Seed.String())
	}
}

func TestCollectErrors(t *testing.T) {
	cases := []struct {
		name  string
		saved string
		want  error
	}{
		{"empty buffer", "# only comments\n\n", ErrAborted},
		{"unterminated tag", "fix: x {{ oops", template.ErrUnterminatedDelimiter},
		{"strict undefined", "fix: {{ nope }}", template.ErrUndefinedVariable},
		{"malformed header", "no header here", commit.ErrMalformedHeader},
		{"invalid message", "fix:", commit.ErrEmptyDescription},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCollector(func(context.Context, string) (string, error) { return tc.saved, nil })
			_, err := c.Collect(context.Background())
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCollectRetriesWithProblems(t *testing.T) {
	calls := 0
	c := newCollector(func(_ context.Context, initial string) (string, error) {
		calls++
		if calls == 1 {
			return "fix:", nil
		}
		if !strings.HasPrefix(initial, "fix: ") || !strings.Contains(initial, "description cannot be empty") {
			t.Errorf("second buffer not seeded with the failed message:\n%s", initial)
		}
		return "fix: described", nil
	})
	c.Retries = 2
	m, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect error: %v", err)
	}
	if calls != 2 || m.Description != "described" {
		t.Fatalf("calls=%d message=%+v", calls, m)
	}
}

func TestCollectEditorError(t *testing.T) {
	boom := errors.New("boom")
	c := newCollector(func(context.Context, string) (string, error) { return "", boom })
	if _, err := c.Collect(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
}
