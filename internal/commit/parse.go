package commit

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	headerRe = regexp.MustCompile(`^(\w+)(?:\(([^)]*)\))?(!)?:\s*(.*)$`)
	footerRe = regexp.MustCompile(`^(BREAKING CHANGE|BREAKING-CHANGE|[A-Za-z][A-Za-z0-9-]*)(: | #)(.*)$`)
)

// scissors marks the start of the verbose diff git appends to the editor
// buffer; everything below it is discarded.
const scissors = "------------------------ >8 ------------------------"

// Parse reads conventional commit text into a Message. It does not
// validate the result; call Validate for that.
func Parse(text string) (*Message, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil, ErrEmptyMessage
	}
	lines := strings.Split(text, "\n")

	match := headerRe.FindStringSubmatch(strings.TrimSpace(lines[0]))
	if match == nil {
		return nil, fmt.Errorf("%w: %q (want type(scope): description)", ErrMalformedHeader, lines[0])
	}
	m := &Message{
		Type:        Type(strings.ToLower(match[1])),
		Scope:       strings.TrimSpace(match[2]),
		Breaking:    match[3] == "!",
		Description: strings.TrimSpace(match[4]),
	}

	paras := paragraphs(lines[1:])
	if n := len(paras); n > 0 && isFooterBlock(paras[n-1]) {
		for _, line := range paras[n-1] {
			f, _ := ParseFooter(line)
			if isBreakingKey(f.Key) {
				if m.BreakingNote != "" {
					m.BreakingNote += "\n"
				}
				m.BreakingNote += f.Value
				continue
			}
			m.Footers = append(m.Footers, f)
		}
		paras = paras[:n-1]
	}

	body := make([]string, len(paras))
	for i, p := range paras {
		body[i] = strings.Join(p, "\n")
	}
	m.Body = strings.Join(body, "\n\n")
	return m, nil
}

// paragraphs groups lines into runs separated by blank lines.
func paragraphs(lines []string) [][]string {
	var out [][]string
	var cur []string
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if cur != nil {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if cur != nil {
		out = append(out, cur)
	}
	return out
}

// IsBreakingKey reports whether key introduces a breaking change note.
func IsBreakingKey(key string) bool { return isBreakingKey(key) }

func isFooterBlock(lines []string) bool {
	for _, line := range lines {
		if !footerRe.MatchString(line) {
			return false
		}
	}
	return len(lines) > 0
}

// StripComments removes lines starting with '#' (after leading blanks) and
// anything below a git scissors line, then trims the result.
func StripComments(text string) string {
	var kept []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "#") {
			if strings.Contains(trimmed, scissors) {
				break
			}
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// ParseFooter reads one "Key: value" or "Key #value" line.
func ParseFooter(line string) (Footer, bool) {
	f := footerRe.FindStringSubmatch(strings.TrimSpace(line))
	if f == nil {
		return Footer{}, false
	}
	value := strings.TrimSpace(f[3])
	if f[2] == " #" {
		value = "#" + value
	}
	return Footer{Key: f[1], Value: value}, true
}
