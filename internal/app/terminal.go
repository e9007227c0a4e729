package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"commando/internal/commit"
	"commando/internal/git"
)

var (
	titleColor  = color.New(color.Bold)
	headerColor = color.New(color.FgYellow, color.Bold)
	footerColor = color.New(color.FgCyan)
	okColor     = color.New(color.FgGreen, color.Bold)
	infoColor   = color.New(color.Faint)
)

// Terminal is the line-oriented UI used outside the wizard.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Preview(m *commit.Message) {
	titleColor.Fprintln(t.out, "\nCommit message:")
	lines := strings.Split(m.String(), "\n")
	nFooters := len(m.AllFooters())
	for i, line := range lines {
		switch {
		case i == 0:
			headerColor.Fprintln(t.out, "  "+line)
		case i >= len(lines)-nFooters:
			footerColor.Fprintln(t.out, "  "+line)
		default:
			fmt.Fprintln(t.out, "  "+line)
		}
	}
	fmt.Fprintln(t.out)
}

// Confirm asks a yes/no question defaulting to yes.
func (t *Terminal) Confirm(question string) (bool, error) {
	fmt.Fprintf(t.out, "%s? [Y/n]: ", question)
	input, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "y", "yes":
		return true, nil
	case "n", "no", "q", "quit":
		return false, nil
	default:
		fmt.Fprintln(t.out, "Invalid choice, defaulting to no")
		return false, nil
	}
}

func (t *Terminal) Report(res *git.CommitResult) {
	sha := res.SHA
	if len(sha) > 7 {
		sha = sha[:7]
	}
	okColor.Fprintf(t.out, "Committed [%s] ", sha)
	fmt.Fprintln(t.out, res.Summary)
}

func (t *Terminal) Info(format string, args ...any) {
	infoColor.Fprintf(t.out, format+"\n", args...)
}
