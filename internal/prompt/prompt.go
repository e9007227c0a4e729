// Package prompt holds the default commit templates and the plain-text
// message readers used by the paste and file input modes.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmpty is returned when the input holds no message text.
var ErrEmpty = errors.New("no commit message given")

// ReadMessage reads a whole message from r, such as piped stdin.
func ReadMessage(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read message: %w", err)
	}
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		return "", ErrEmpty
	}
	return msg, nil
}

// ReadFile reads a message from path. "-" reads from stdin.
func ReadFile(path string) (string, error) {
	if path == "-" {
		return ReadMessage(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open message file: %w", err)
	}
	defer f.Close()
	return ReadMessage(f)
}

// LoadTemplate returns the editor template stored at path, or
// DefaultTemplate when path is empty.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return DefaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}
