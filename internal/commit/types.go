package commit

import (
	"fmt"
	"strings"
)

// Type is a conventional commit type.
type Type string

const (
	Feat     Type = "feat"
	Fix      Type = "fix"
	Docs     Type = "docs"
	Style    Type = "style"
	Refactor Type = "refactor"
	Perf     Type = "perf"
	Test     Type = "test"
	Build    Type = "build"
	CI       Type = "ci"
	Chore    Type = "chore"
	Revert   Type = "revert"
)

// TypeInfo describes a commit type for prompts and templates.
type TypeInfo struct {
	Type        Type
	Description string
}

// Registry lists every known commit type in display order. It is read
// without locking; modify it only through Register, at startup.
var Registry = []TypeInfo{
	{Feat, "a new feature"},
	{Fix, "a bug fix"},
	{Docs, "documentation only changes"},
	{Style, "formatting, whitespace, missing semicolons"},
	{Refactor, "code change that neither fixes a bug nor adds a feature"},
	{Perf, "a performance improvement"},
	{Test, "adding or correcting tests"},
	{Build, "build system or external dependencies"},
	{CI, "CI configuration and scripts"},
	{Chore, "maintenance that does not touch src or tests"},
	{Revert, "reverts a previous commit"},
}

// Types returns every known type name in display order.
func Types() []string {
	names := make([]string, len(Registry))
	for i, info := range Registry {
		names[i] = string(info.Type)
	}
	return names
}

// ParseType resolves s, case-insensitively, to a known Type.
func ParseType(s string) (Type, error) {
	candidate := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, info := range Registry {
		if info.Type == candidate {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be one of: %s)", ErrInvalidType, strings.TrimSpace(s), strings.Join(Types(), ", "))
}

// Describe returns the one-line description of t, or "" for an unknown type.
func (t Type) Describe() string {
	for _, info := range Registry {
		if info.Type == t {
			return info.Description
		}
	}
	return ""
}

// Register adds a custom type to the Registry. Registering a name that is
// already known only updates its description.
//
// Register is not safe for concurrent use. Call it before anything reads
// the Registry, as the command does right after loading its config.
func Register(name, description string) error {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	if t == "" || !isFooterKey(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidType, name)
	}
	for i := range Registry {
		if Registry[i].Type == t {
			if description != "" {
				Registry[i].Description = description
			}
			return nil
		}
	}
	Registry = append(Registry, TypeInfo{Type: t, Description: description})
	return nil
}
