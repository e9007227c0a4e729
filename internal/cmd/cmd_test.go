package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"commando/internal/prompt"
	"commando/internal/template"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	valuesFile, setValues, renderStrict = "", nil, false
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCheckTemplates(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.tmpl", prompt.DefaultTemplate)
	bad := writeFile(t, dir, "bad.tmpl", "{% if scope %}\nno end")

	results, err := checkTemplates(context.Background(), []string{good, bad})
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	if results[0] != nil || !errors.Is(results[1], template.ErrUnbalancedBlock) {
		t.Fatalf("results = %v", results)
	}

	if _, err := checkTemplates(context.Background(), []string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("want read error")
	}

	out, err := execute(t, "template", "check", good, bad)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(out, "good.tmpl") || !strings.Contains(out, "bad.tmpl:1:1") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestTemplateRender(t *testing.T) {
	dir := t.TempDir()
	tpl := writeFile(t, dir, "t.tmpl", "{{ type }}{% if scope %}({{ scope }}){% end %}: {{ subject }}{% for f in refs %} #{{ f }}{% end %}")
	vals := writeFile(t, dir, "vals.yaml", "type: fix\nscope: \"\"\nsubject: stop crash\nrefs: [1, 2]\n")

	out, err := execute(t, "template", "render", tpl, "--values", vals)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if out != "fix: stop crash #1 #2\n" {
		t.Fatalf("got %q", out)
	}

	out, err = execute(t, "template", "render", tpl, "--values", vals, "--set", "scope=core")
	if err != nil || out != "fix(core): stop crash #1 #2\n" {
		t.Fatalf("got %q, %v", out, err)
	}

	strictTpl := writeFile(t, dir, "s.tmpl", "{{ missing }}")
	if _, err := execute(t, "template", "render", strictTpl, "--values", vals, "--strict"); !errors.Is(err, template.ErrUndefinedVariable) {
		t.Fatalf("got %v, want undefined variable", err)
	}
}

func TestTemplateRenderSample(t *testing.T) {
	dir := t.TempDir()
	tpl := writeFile(t, dir, "default.tmpl", prompt.DefaultTemplate)
	out, err := execute(t, "template", "render", tpl, "--strict")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.HasPrefix(out, "feat(cli): add template command\n") || !strings.Contains(out, "# On branch main") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestTemplateTokensAndAST(t *testing.T) {
	dir := t.TempDir()
	tpl := writeFile(t, dir, "t.tmpl", "{% for f in footers %}{{ f.line }}{% end %}")

	out, err := execute(t, "template", "tokens", tpl)
	if err != nil {
		t.Fatalf("tokens error: %v", err)
	}
	for _, frag := range []string{"ControlOpen@1:1", `Expression("f in footers")`, `Identifier("f.line")`, "EndOfInput@"} {
		if !strings.Contains(out, frag) {
			t.Fatalf("tokens output missing %q:\n%s", frag, out)
		}
	}

	out, err = execute(t, "template", "ast", tpl)
	if err != nil {
		t.Fatalf("ast error: %v", err)
	}
	if !strings.Contains(out, "For(f in footers)") || !strings.Contains(out, "variables: footers, f.line") {
		t.Fatalf("ast output:\n%s", out)
	}
}

func TestRenderContextSet(t *testing.T) {
	if _, err := renderContext("", []string{"novalue"}); err == nil {
		t.Fatalf("want error for --set without =")
	}
	ctx, err := renderContext("", []string{"branch=dev"})
	if err != nil {
		t.Fatal(err)
	}
	if ctx["branch"] != template.String("dev") {
		t.Fatalf("branch = %v", ctx["branch"])
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	defer func() { cfgFile = "" }()

	if _, err := execute(t, "config", "init", "--config", path); err != nil {
		t.Fatalf("init error: %v", err)
	}
	if _, err := execute(t, "config", "set", "auto_push", "true", "--config", path); err != nil {
		t.Fatalf("set error: %v", err)
	}
	out, err := execute(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	if !strings.Contains(out, "auto_push: true") {
		t.Fatalf("show output:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	rootCmd.Version = "1.2.3"
	out, err := execute(t, "version")
	if err != nil || !strings.Contains(out, "commando version 1.2.3") {
		t.Fatalf("got %q, %v", out, err)
	}
}
