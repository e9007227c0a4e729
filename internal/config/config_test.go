package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	got, err := Init(path)
	if err != nil || got != path {
		t.Fatalf("init = %q, %v", got, err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("load after init: %v", err)
	}
	if _, err := Init(path); err == nil {
		t.Fatalf("second init should fail")
	}
}

func TestSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cases := []struct {
		key, value string
		wantErr    bool
	}{
		{"auto_push", "true", false},
		{"editor", "nano -w", false},
		{"expand_messages", "yes", true},
		{"types.wip", "work in progress", false},
		{"no_verify", "maybe", true},
		{"providers", "x", true},
		{"types.", "x", true},
	}
	for _, tc := range cases {
		err := Set(path, tc.key, tc.value)
		if (err != nil) != tc.wantErr {
			t.Fatalf("Set(%q, %q) error = %v, wantErr %v", tc.key, tc.value, err, tc.wantErr)
		}
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	want := &Config{
		AutoPush: true,
		Editor:   "nano -w",
		Types:    map[string]string{"wip": "work in progress"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Config{
		Template:        "/tmp/commit.tmpl",
		StrictTemplates: true,
		ExpandMessages:  true,
		AutoAdd:         true,
		SignOff:         true,
		Types:           map[string]string{"wip": "work"},
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("save error: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	lines, shown, err := Show(path)
	if err != nil || shown != path {
		t.Fatalf("show = %q, %v", shown, err)
	}
	joined := strings.Join(lines, "\n")
	for _, frag := range []string{"auto_add: true", "strict_templates: true", "expand_messages: true", "template: /tmp/commit.tmpl"} {
		if !strings.Contains(joined, frag) {
			t.Fatalf("show output missing %q:\n%s", frag, joined)
		}
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("COMMANDO_NO_VERIFY", "true")
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if !cfg.NoVerify {
		t.Fatalf("COMMANDO_NO_VERIFY not applied")
	}
}
