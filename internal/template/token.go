package template

import "fmt"

// Pos is a 1-based line/column location in template source.
// Columns count bytes, not runes.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// TokenKind identifies a lexical unit.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenText
	TokenVarOpen      // {{
	TokenIdentifier   // dotted path inside {{ }}
	TokenVarClose     // }}
	TokenControlOpen  // {%
	TokenKeyword      // if, for, end
	TokenExpression   // raw tail after the keyword
	TokenControlClose // %}
	TokenCommentOpen  // {#
	TokenCommentClose // #}
)

var tokenNames = [...]string{
	TokenEOF:          "EndOfInput",
	TokenText:         "Text",
	TokenVarOpen:      "VarOpen",
	TokenIdentifier:   "Identifier",
	TokenVarClose:     "VarClose",
	TokenControlOpen:  "ControlOpen",
	TokenKeyword:      "Keyword",
	TokenExpression:   "Expression",
	TokenControlClose: "ControlClose",
	TokenCommentOpen:  "CommentOpen",
	TokenCommentClose: "CommentClose",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Keyword is the statement word of a control tag.
type Keyword int

const (
	KeywordUnknown Keyword = iota
	KeywordIf
	KeywordFor
	KeywordEnd
)

func lookupKeyword(word string) Keyword {
	switch word {
	case "if":
		return KeywordIf
	case "for":
		return KeywordFor
	case "end":
		return KeywordEnd
	}
	return KeywordUnknown
}

func (k Keyword) String() string {
	switch k {
	case KeywordIf:
		return "if"
	case KeywordFor:
		return "for"
	case KeywordEnd:
		return "end"
	}
	return "unknown"
}

// Token is a single lexical unit. Val holds the text content for Text,
// the path for Identifier, the raw word for Keyword and the raw tail for
// Expression; it is empty for delimiters.
type Token struct {
	Kind    TokenKind
	Keyword Keyword
	Val     string
	Pos     Pos
}

func (t Token) String() string {
	switch t.Kind {
	case TokenText, TokenIdentifier, TokenExpression, TokenKeyword:
		return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Val, t.Pos)
	}
	return fmt.Sprintf("%s@%s", t.Kind, t.Pos)
}
