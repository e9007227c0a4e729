// Package editor collects a commit message by opening the user's text
// editor on a pre-filled buffer, the way `git commit` does.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"commando/internal/debug"
)

// Editor edits a buffer and returns the saved text.
type Editor interface {
	Edit(ctx context.Context, initial string) (string, error)
}

// Func adapts a function to the Editor interface.
type Func func(ctx context.Context, initial string) (string, error)

func (f Func) Edit(ctx context.Context, initial string) (string, error) { return f(ctx, initial) }

// Resolve picks the editor command. A non-empty override, normally from
// the config file, wins over GIT_EDITOR, VISUAL and EDITOR.
func Resolve(override string) string {
	candidates := []string{override, os.Getenv("GIT_EDITOR"), os.Getenv("VISUAL"), os.Getenv("EDITOR")}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// Session runs an external editor on a temporary file.
type Session struct {
	// Command may carry arguments, e.g. "code --wait".
	Command string
	// Dir holds the temporary file; empty means os.TempDir.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewSession returns a Session for command attached to the terminal.
func NewSession(command string) *Session {
	return &Session{Command: command, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Edit writes initial to a temporary file, waits for the editor to exit
// and returns the file's contents.
func (s *Session) Edit(ctx context.Context, initial string) (string, error) {
	fields := strings.Fields(s.Command)
	if len(fields) == 0 {
		return "", errors.New("no editor configured")
	}

	f, err := os.CreateTemp(s.Dir, "COMMIT_EDITMSG-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create message file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write message file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write message file: %w", err)
	}

	debug.Log("launching editor", "command", s.Command, "file", path)
	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %q failed: %w", fields[0], err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read message file: %w", err)
	}
	return string(data), nil
}
