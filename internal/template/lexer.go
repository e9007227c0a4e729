package template

import "strings"

// The lexer scans template source and yields tokens for text and the three
// delimiter forms: variables {{ }}, control tags {% %}, and comments {# #}.
// Comments are consumed without producing tokens.

const (
	varOpen      = "{{"
	varClose     = "}}"
	controlOpen  = "{%"
	controlClose = "%}"
	commentOpen  = "{#"
	commentClose = "#}"
)

type lexer struct {
	src string
	i   int

	// location of byte offset i
	line int
	col  int

	pending []Token
	done    bool
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

// Tokenize drains the lexer and returns every token up to and including
// the EndOfInput token.
func Tokenize(src string) ([]Token, error) {
	l := newLexer(src)
	var toks []Token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.Kind == TokenEOF {
			return toks, nil
		}
	}
}

// next returns the next token in the stream. Once EndOfInput has been
// returned every further call returns it again.
func (l *lexer) next() (Token, error) {
	for {
		if len(l.pending) > 0 {
			t := l.pending[0]
			l.pending = l.pending[1:]
			return t, nil
		}
		if l.done || l.i >= len(l.src) {
			l.done = true
			return Token{Kind: TokenEOF, Pos: l.pos()}, nil
		}
		if err := l.scan(); err != nil {
			l.done = true
			l.pending = nil
			return Token{}, err
		}
	}
}

func (l *lexer) pos() Pos { return Pos{Line: l.line, Col: l.col} }

// advance moves the cursor to offset j, keeping line and column in step.
func (l *lexer) advance(j int) {
	for ; l.i < j; l.i++ {
		if l.src[l.i] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
}

// scan queues the tokens for one text run or one delimited tag.
func (l *lexer) scan() error {
	rest := l.src[l.i:]
	at, open := nextOpen(rest)
	if at < 0 {
		start := l.pos()
		l.advance(len(l.src))
		l.emit(Token{Kind: TokenText, Val: rest, Pos: start})
		return nil
	}
	if at > 0 {
		start := l.pos()
		l.advance(l.i + at)
		l.emit(Token{Kind: TokenText, Val: rest[:at], Pos: start})
		return nil
	}
	switch open {
	case varOpen:
		return l.scanVar()
	case controlOpen:
		return l.scanControl()
	default:
		return l.scanComment()
	}
}

func (l *lexer) emit(t Token) { l.pending = append(l.pending, t) }

// nextOpen finds the earliest opening delimiter in s.
func nextOpen(s string) (int, string) {
	for j := 0; j+1 < len(s); j++ {
		if s[j] != '{' {
			continue
		}
		switch s[j+1] {
		case '{':
			return j, varOpen
		case '%':
			return j, controlOpen
		case '#':
			return j, commentOpen
		}
	}
	return -1, ""
}

// body locates the closing delimiter for a tag opened at the cursor and
// returns the raw content between the delimiters and its offset.
func (l *lexer) body(open, close string, kind DelimiterKind) (string, int, error) {
	start := l.i + len(open)
	end := strings.Index(l.src[start:], close)
	if end < 0 {
		return "", 0, &Error{Kind: KindUnterminatedDelimiter, Pos: l.pos(), Delim: kind}
	}
	return l.src[start : start+end], start, nil
}

func (l *lexer) scanVar() error {
	openPos := l.pos()
	content, start, err := l.body(varOpen, varClose, DelimVariable)
	if err != nil {
		return err
	}
	l.emit(Token{Kind: TokenVarOpen, Pos: openPos})

	lead := len(content) - len(strings.TrimLeft(content, " \t\r\n"))
	path := strings.TrimSpace(content)
	l.advance(start + lead)
	if !isPath(path) {
		return &Error{Kind: KindInvalidIdentifier, Pos: l.pos(), Detail: path}
	}
	l.emit(Token{Kind: TokenIdentifier, Val: path, Pos: l.pos()})

	l.advance(start + len(content))
	l.emit(Token{Kind: TokenVarClose, Pos: l.pos()})
	l.advance(l.i + len(varClose))
	return nil
}

func (l *lexer) scanControl() error {
	openPos := l.pos()
	content, start, err := l.body(controlOpen, controlClose, DelimControl)
	if err != nil {
		return err
	}
	l.emit(Token{Kind: TokenControlOpen, Pos: openPos})

	lead := len(content) - len(strings.TrimLeft(content, " \t\r\n"))
	l.advance(start + lead)
	trimmed := strings.TrimSpace(content)
	word, tail := splitWord(trimmed)
	l.emit(Token{Kind: TokenKeyword, Keyword: lookupKeyword(word), Val: word, Pos: l.pos()})

	if tail != "" {
		after := trimmed[len(word):]
		gap := len(after) - len(strings.TrimLeft(after, " \t\r\n"))
		l.advance(start + lead + len(word) + gap)
		l.emit(Token{Kind: TokenExpression, Val: tail, Pos: l.pos()})
	}

	l.advance(start + len(content))
	l.emit(Token{Kind: TokenControlClose, Pos: l.pos()})
	l.advance(l.i + len(controlClose))
	return nil
}

func (l *lexer) scanComment() error {
	content, start, err := l.body(commentOpen, commentClose, DelimComment)
	if err != nil {
		return err
	}
	l.advance(start + len(content) + len(commentClose))
	return nil
}

// splitWord splits s at the first run of whitespace.
func splitWord(s string) (word, tail string) {
	i := strings.IndexAny(s, " \t\r\n")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// isPath reports whether s is a dotted identifier path: one or more
// segments of letters, digits and underscores separated by single dots.
func isPath(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if !isIdent(seg) {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
